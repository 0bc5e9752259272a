/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/factorytable/errors"
)

// Attributes added to every encoded value.
const (
	TypeIDAttribute = "TypeId"
	KindAttribute   = "Kind"
)

// Kind tells which factory mapping a value belongs to.
type Kind string

const (
	KindObject    Kind = "object"
	KindException Kind = "exception"
)

// Identified is implemented by generated types.
type Identified interface {
	TypeID() string
}

// Encode marshals v and stamps its type-id and kind. Values implementing error
// are encoded as exceptions.
func Encode(v Identified) (map[string]types.AttributeValue, error) {
	if v == nil {
		return nil, errors.NewValidationError("value", "nil value")
	}
	typeID := v.TypeID()
	if typeID == "" {
		return nil, fmt.Errorf("encode %T: %w", v, errors.ErrMissingTypeID)
	}

	item, err := attributevalue.MarshalMap(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", typeID, err)
	}

	kind := KindObject
	if _, ok := v.(error); ok {
		kind = KindException
	}
	item[TypeIDAttribute] = &types.AttributeValueMemberS{Value: typeID}
	item[KindAttribute] = &types.AttributeValueMemberS{Value: string(kind)}
	return item, nil
}

// TypeIDOf returns the type-id stamped on item.
func TypeIDOf(item map[string]types.AttributeValue) (string, error) {
	attr, ok := item[TypeIDAttribute]
	if !ok {
		return "", errors.ErrMissingTypeID
	}
	var typeID string
	if err := attributevalue.Unmarshal(attr, &typeID); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s: %w", TypeIDAttribute, err)
	}
	if typeID == "" {
		return "", errors.ErrMissingTypeID
	}
	return typeID, nil
}

// KindOf returns the kind stamped on item. Items without a Kind attribute are objects.
func KindOf(item map[string]types.AttributeValue) (Kind, error) {
	attr, ok := item[KindAttribute]
	if !ok {
		return KindObject, nil
	}
	var kind string
	if err := attributevalue.Unmarshal(attr, &kind); err != nil {
		return "", fmt.Errorf("failed to unmarshal %s: %w", KindAttribute, err)
	}
	switch Kind(kind) {
	case KindObject, KindException:
		return Kind(kind), nil
	default:
		return "", errors.NewValidationError(KindAttribute, fmt.Sprintf("unknown kind %q", kind))
	}
}

// payload returns a copy of item without the codec's own attributes.
func payload(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		if k == TypeIDAttribute || k == KindAttribute {
			continue
		}
		out[k] = v
	}
	return out
}
