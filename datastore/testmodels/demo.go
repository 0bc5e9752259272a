/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels contains the ::Demo module in the shape the code
// generator emits it. It is used by tests and by the inspection CLI.
package testmodels

import (
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
	"github.com/suparena/factorytable/registry"
)

const (
	NotFoundExceptionTypeID         = "::Demo::NotFoundException"
	PermissionDeniedExceptionTypeID = "::Demo::PermissionDeniedException"
	WidgetTypeID                    = "::Demo::Widget"
	GadgetTypeID                    = "::Demo::Gadget"
)

// Module registers every ::Demo type.
var Module = registry.NewModule("Demo").
	Exception(NotFoundExceptionTypeID, registry.ExceptionOf[NotFoundException]()).
	Exception(PermissionDeniedExceptionTypeID, registry.ExceptionOf[PermissionDeniedException]()).
	Object(WidgetTypeID, registry.ObjectOf[Widget]()).
	Object(GadgetTypeID, registry.ObjectOf[Gadget]())

type NotFoundException struct {

	// Name of the object that was looked up.
	// Required: true
	Name string `json:"Name" dynamodbav:"Name"`

	// Request that raised the exception.
	// Format: uuid
	RequestID strfmt.UUID `json:"RequestId,omitempty" dynamodbav:"RequestId,omitempty"`
}

func (e *NotFoundException) Error() string {
	return fmt.Sprintf("%s: %s", NotFoundExceptionTypeID, e.Name)
}

func (*NotFoundException) TypeID() string { return NotFoundExceptionTypeID }

type PermissionDeniedException struct {

	// Principal that was refused.
	Principal string `json:"Principal" dynamodbav:"Principal"`

	// Reason given by the server.
	Reason string `json:"Reason,omitempty" dynamodbav:"Reason,omitempty"`
}

func (e *PermissionDeniedException) Error() string {
	return fmt.Sprintf("%s: %s: %s", PermissionDeniedExceptionTypeID, e.Principal, e.Reason)
}

func (*PermissionDeniedException) TypeID() string { return PermissionDeniedExceptionTypeID }

type Widget struct {

	// Unique identifier for the widget.
	// Required: true
	// Format: uuid
	ID strfmt.UUID `json:"Id" dynamodbav:"Id"`

	// Display name.
	// Required: true
	Name string `json:"Name" dynamodbav:"Name"`

	// Free-form labels.
	Tags []string `json:"Tags,omitempty" dynamodbav:"Tags,omitempty"`

	// Weight in grams.
	Weight float64 `json:"Weight,omitempty" dynamodbav:"Weight,omitempty"`
}

func (*Widget) TypeID() string { return WidgetTypeID }

// NewWidget returns a Widget with a freshly generated ID.
func NewWidget(name string) *Widget {
	return &Widget{
		ID:   strfmt.UUID(uuid.NewString()),
		Name: name,
	}
}

type Gadget struct {

	// Unique identifier for the gadget.
	// Format: uuid
	ID strfmt.UUID `json:"Id" dynamodbav:"Id"`

	// Model number.
	Model string `json:"Model" dynamodbav:"Model"`

	// Number of parts.
	Parts int `json:"Parts,omitempty" dynamodbav:"Parts,omitempty"`
}

func (*Gadget) TypeID() string { return GadgetTypeID }
