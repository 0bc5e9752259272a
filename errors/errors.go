/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a stored value is not found
	ErrNotFound = errors.New("value not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnknownType is returned when no factory is registered for a type-id
	ErrUnknownType = errors.New("unknown type")

	// ErrNoFactoryTable is returned when a lookup happens while no table is live
	ErrNoFactoryTable = errors.New("no factory table")

	// ErrMissingTypeID is returned when an encoded value carries no type-id
	ErrMissingTypeID = errors.New("missing type-id")
)

// NotFoundError represents an error when a stored value is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnknownTypeError is returned by the decoder when the factory table has no
// entry for a type-id.
type UnknownTypeError struct {
	Kind   string // "object" or "exception"
	TypeID string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("no %s factory registered for type-id %q", e.Kind, e.TypeID)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownType
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(valueType, key string) error {
	return &NotFoundError{Type: valueType, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewUnknownTypeError creates a new UnknownTypeError
func NewUnknownTypeError(kind, typeID string) error {
	return &UnknownTypeError{Kind: kind, TypeID: typeID}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnknownType checks if an error reports an unregistered type-id
func IsUnknownType(err error) bool {
	return errors.Is(err, ErrUnknownType)
}

// IsNoFactoryTable checks if an error reports a lookup without a live table
func IsNoFactoryTable(err error) bool {
	return errors.Is(err, ErrNoFactoryTable)
}
