/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/factorytable/codec"
)

// Key attribute names used by the datastores.
const (
	PartitionKeyAttribute = "PK"
	SortKeyAttribute      = "SK"
)

// Key addresses a single stored value.
type Key struct {
	PK string
	SK string
}

// QueryParams defines parameters for a DynamoDB Query operation.
// Used for both regular queries and streaming queries.
type QueryParams struct {
	// TableName is the DynamoDB table name. Datastores fill it in when empty.
	TableName string
	// KeyConditionExpression is the primary condition for the query.
	KeyConditionExpression string
	// FilterExpression is an optional filter expression.
	FilterExpression *string
	// ExpressionAttributeNames contains substitution tokens for attribute names.
	ExpressionAttributeNames map[string]string
	// ExpressionAttributeValues contains the values for expression placeholders.
	ExpressionAttributeValues map[string]types.AttributeValue
	// IndexName is optional if you wish to query a secondary index.
	IndexName *string
	// Limit defines an optional limit per query page.
	Limit *int32
	// ExclusiveStartKey for pagination
	ExclusiveStartKey map[string]types.AttributeValue
	// ScanIndexForward specifies the order for index traversal.
	// If true (default), traversal is in ascending order.
	// If false, traversal is in descending order.
	ScanIndexForward *bool
}

// PartitionQuery returns QueryParams selecting every value stored under pk.
func PartitionQuery(pk string) *QueryParams {
	return &QueryParams{
		KeyConditionExpression: "#pk = :pk",
		ExpressionAttributeNames: map[string]string{
			"#pk": PartitionKeyAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk": &types.AttributeValueMemberS{Value: pk},
		},
	}
}

// TypeQuery returns QueryParams selecting every value of the given type-id.
// It is meant for an index whose partition key is the type-id attribute.
func TypeQuery(typeID string) *QueryParams {
	return &QueryParams{
		KeyConditionExpression: "#type = :type",
		ExpressionAttributeNames: map[string]string{
			"#type": codec.TypeIDAttribute,
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":type": &types.AttributeValueMemberS{Value: typeID},
		},
	}
}
