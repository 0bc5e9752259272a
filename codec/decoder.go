/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/factorytable/errors"
	"github.com/suparena/factorytable/registry"
	"go.uber.org/zap"
)

// TableFunc returns the factory table to decode against, or nil if none is live.
// Lifecycle.Current and Lease.Table both fit.
type TableFunc func() *registry.FactoryTable

// UnknownTypePolicy decides what the decoder does with unregistered type-ids.
type UnknownTypePolicy int

const (
	// UnknownTypeFail returns an errors.UnknownTypeError.
	UnknownTypeFail UnknownTypePolicy = iota
	// UnknownTypeGeneric decodes objects into map[string]any and exceptions
	// into *UnknownException.
	UnknownTypeGeneric
)

func (p UnknownTypePolicy) String() string {
	switch p {
	case UnknownTypeFail:
		return "fail"
	case UnknownTypeGeneric:
		return "generic"
	default:
		return fmt.Sprintf("UnknownTypePolicy(%d)", int(p))
	}
}

// ParseUnknownTypePolicy parses "fail" or "generic".
func ParseUnknownTypePolicy(s string) (UnknownTypePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fail":
		return UnknownTypeFail, nil
	case "generic":
		return UnknownTypeGeneric, nil
	default:
		return UnknownTypeFail, errors.NewValidationError("unknownTypes", fmt.Sprintf("unsupported policy %q", s))
	}
}

// UnknownException stands in for a remote exception whose type-id has no
// registered factory.
type UnknownException struct {
	TypeID string
	Fields map[string]any
}

func (e *UnknownException) Error() string {
	return fmt.Sprintf("unknown remote exception %q", e.TypeID)
}

func (e *UnknownException) Is(target error) bool {
	return target == errors.ErrUnknownType
}

// Decoder rebuilds values from attribute maps using the factory table.
type Decoder struct {
	tables TableFunc
	policy UnknownTypePolicy
	logger *zap.Logger
}

// Option configures a Decoder.
type Option func(*Decoder)

// WithUnknownTypePolicy sets the policy for unregistered type-ids.
func WithUnknownTypePolicy(p UnknownTypePolicy) Option {
	return func(d *Decoder) {
		d.policy = p
	}
}

// WithLogger sets the decoder's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *Decoder) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDecoder creates a Decoder reading factories from tables.
func NewDecoder(tables TableFunc, opts ...Option) *Decoder {
	d := &Decoder{
		tables: tables,
		policy: UnknownTypeFail,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Policy returns the decoder's unknown-type policy.
func (d *Decoder) Policy() UnknownTypePolicy {
	return d.policy
}

// Decode rebuilds an object or an exception depending on the item's Kind.
// Exceptions are returned as their error value.
func (d *Decoder) Decode(item map[string]types.AttributeValue) (any, error) {
	kind, err := KindOf(item)
	if err != nil {
		return nil, err
	}
	if kind == KindException {
		exc, err := d.DecodeException(item)
		if err != nil {
			return nil, err
		}
		return exc, nil
	}
	return d.DecodeObject(item)
}

// DecodeObject rebuilds an object using the object factory mapping.
func (d *Decoder) DecodeObject(item map[string]types.AttributeValue) (any, error) {
	typeID, err := TypeIDOf(item)
	if err != nil {
		return nil, err
	}
	table, err := d.table()
	if err != nil {
		return nil, err
	}

	factory, ok := table.GetObjectFactory(typeID)
	if !ok {
		return d.unknownObject(typeID, item)
	}

	obj := factory()
	if err := attributevalue.UnmarshalMap(payload(item), obj); err != nil {
		return nil, fmt.Errorf("failed to unmarshal object %q: %w", typeID, err)
	}
	return obj, nil
}

// DecodeException rebuilds a remote exception using the exception factory mapping.
// The first result is the decoded exception; the second reports decoding failures.
func (d *Decoder) DecodeException(item map[string]types.AttributeValue) (error, error) {
	typeID, err := TypeIDOf(item)
	if err != nil {
		return nil, err
	}
	table, err := d.table()
	if err != nil {
		return nil, err
	}

	factory, ok := table.GetExceptionFactory(typeID)
	if !ok {
		return d.unknownException(typeID, item)
	}

	exc := factory()
	if err := attributevalue.UnmarshalMap(payload(item), exc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal exception %q: %w", typeID, err)
	}
	return exc, nil
}

func (d *Decoder) table() (*registry.FactoryTable, error) {
	if d.tables == nil {
		return nil, errors.ErrNoFactoryTable
	}
	table := d.tables()
	if table == nil {
		return nil, errors.ErrNoFactoryTable
	}
	return table, nil
}

func (d *Decoder) unknownObject(typeID string, item map[string]types.AttributeValue) (any, error) {
	if d.policy != UnknownTypeGeneric {
		return nil, errors.NewUnknownTypeError(string(KindObject), typeID)
	}
	d.logger.Debug("decoding unregistered object type generically", zap.String("typeId", typeID))

	var generic map[string]any
	if err := attributevalue.UnmarshalMap(payload(item), &generic); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generic item: %w", err)
	}
	return generic, nil
}

func (d *Decoder) unknownException(typeID string, item map[string]types.AttributeValue) (error, error) {
	if d.policy != UnknownTypeGeneric {
		return nil, errors.NewUnknownTypeError(string(KindException), typeID)
	}
	d.logger.Debug("decoding unregistered exception type generically", zap.String("typeId", typeID))

	var fields map[string]any
	if err := attributevalue.UnmarshalMap(payload(item), &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal generic exception: %w", err)
	}
	return &UnknownException{TypeID: typeID, Fields: fields}, nil
}
