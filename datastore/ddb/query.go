/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/suparena/factorytable/storagemodels"
	"go.uber.org/zap"
)

// Query performs a query against the DynamoDB table using the provided parameters.
// Each item is decoded through the factory table using the TypeId stamped on it
// at persist time. Pages are followed until the table is exhausted, unless
// params.Limit is set, in which case a single page is returned.
func (d *DynamodbDataStore) Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error) {
	input := d.queryInput(params)
	input.Limit = params.Limit

	var results []any
	for {
		out, err := d.client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("query error: %w", err)
		}

		for _, item := range out.Items {
			v, err := d.decoder.Decode(valueAttributes(item))
			if err != nil {
				return nil, fmt.Errorf("failed to decode item %d: %w", len(results), err)
			}
			results = append(results, v)
		}

		if params.Limit != nil || len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	d.logger.Debug("query finished", zap.String("table", *input.TableName), zap.Int("items", len(results)))
	return results, nil
}

// QueryByType returns every stored value carrying typeID, using the type index.
func (d *DynamodbDataStore) QueryByType(ctx context.Context, typeID string) ([]any, error) {
	params := storagemodels.TypeQuery(typeID)
	params.IndexName = aws.String(d.typeIndex.IndexName)
	params.ExpressionAttributeNames["#type"] = d.typeIndex.PartitionKeyName
	return d.Query(ctx, params)
}

func (d *DynamodbDataStore) queryInput(params *storagemodels.QueryParams) *dynamodb.QueryInput {
	tableName := params.TableName
	if tableName == "" {
		tableName = d.tableName
	}
	return &dynamodb.QueryInput{
		TableName:                 aws.String(tableName),
		KeyConditionExpression:    aws.String(params.KeyConditionExpression),
		ExpressionAttributeNames:  params.ExpressionAttributeNames,
		ExpressionAttributeValues: params.ExpressionAttributeValues,
		FilterExpression:          params.FilterExpression,
		IndexName:                 params.IndexName,
		ExclusiveStartKey:         params.ExclusiveStartKey,
		ScanIndexForward:          params.ScanIndexForward,
	}
}
