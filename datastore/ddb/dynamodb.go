/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/factorytable/codec"
	fterrors "github.com/suparena/factorytable/errors"
	"github.com/suparena/factorytable/storagemodels"
	"go.uber.org/zap"
)

// Client is the subset of the DynamoDB API the datastore uses.
// *dynamodb.Client satisfies it.
type Client interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Query(ctx context.Context, params *sdk.QueryInput, optFns ...func(*sdk.Options)) (*sdk.QueryOutput, error)
}

// DynamodbDataStore implements datastore.Store on top of a DynamoDB table.
type DynamodbDataStore struct {
	client    Client
	tableName string
	decoder   *codec.Decoder
	typeIndex GSIConfig
	logger    *zap.Logger
}

// Option configures a DynamodbDataStore.
type Option func(*DynamodbDataStore)

// WithLogger sets the datastore's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(d *DynamodbDataStore) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTypeIndex overrides the secondary index used by QueryByType.
func WithTypeIndex(cfg GSIConfig) Option {
	return func(d *DynamodbDataStore) {
		d.typeIndex = cfg
	}
}

// NewDynamoDBClient initializes a DynamoDB client. Static credentials are used
// when awsAccessKey is set, the default credential chain otherwise. A non-empty
// endpoint overrides the service endpoint (DynamoDB Local, LocalStack).
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint string) (*sdk.Client, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(awsRegion),
	}
	if awsAccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		))
	}

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg, func(o *sdk.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
	}), nil
}

// New wraps an existing client.
func New(client Client, tableName string, decoder *codec.Decoder, opts ...Option) *DynamodbDataStore {
	d := &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		decoder:   decoder,
		typeIndex: DefaultGSIConfigs[DefaultTypeIndex],
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// NewDynamodbDataStore constructs a client and a DynamodbDataStore on top of it.
func NewDynamodbDataStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, endpoint, tableName string, decoder *codec.Decoder, opts ...Option) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion, endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	d := New(client, tableName, decoder, opts...)
	d.logger.Info("DynamoDB datastore initialized",
		zap.String("table", tableName),
		zap.String("region", awsRegion))
	return d, nil
}

// TableName returns the table the datastore operates on.
func (d *DynamodbDataStore) TableName() string {
	return d.tableName
}

// Get retrieves and decodes the value stored under key.
func (d *DynamodbDataStore) Get(ctx context.Context, key storagemodels.Key) (any, error) {
	keyMap, err := buildKey(key)
	if err != nil {
		return nil, err
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, fterrors.NewNotFoundError("value", key.PK+"|"+key.SK)
	}

	v, err := d.decoder.Decode(valueAttributes(out.Item))
	if err != nil {
		return nil, fmt.Errorf("failed to decode item %s|%s: %w", key.PK, key.SK, err)
	}
	return v, nil
}

// Put encodes v with its type-id and stores it under key.
func (d *DynamodbDataStore) Put(ctx context.Context, key storagemodels.Key, v codec.Identified) error {
	keyMap, err := buildKey(key)
	if err != nil {
		return err
	}

	item, err := codec.Encode(v)
	if err != nil {
		return err
	}
	for k, av := range keyMap {
		item[k] = av
	}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.tableName,
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	return nil
}

// Delete removes the value stored under key.
func (d *DynamodbDataStore) Delete(ctx context.Context, key storagemodels.Key) error {
	keyMap, err := buildKey(key)
	if err != nil {
		return err
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.tableName,
		Key:       keyMap,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return fmt.Errorf("delete condition failed: %w", err)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

func buildKey(key storagemodels.Key) (map[string]types.AttributeValue, error) {
	if key.PK == "" {
		return nil, fterrors.NewValidationError(storagemodels.PartitionKeyAttribute, "required")
	}
	if key.SK == "" {
		return nil, fterrors.NewValidationError(storagemodels.SortKeyAttribute, "required")
	}
	return map[string]types.AttributeValue{
		storagemodels.PartitionKeyAttribute: &types.AttributeValueMemberS{Value: key.PK},
		storagemodels.SortKeyAttribute:      &types.AttributeValueMemberS{Value: key.SK},
	}, nil
}

// valueAttributes returns a copy of item without the table's key attributes.
func valueAttributes(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		if k == storagemodels.PartitionKeyAttribute || k == storagemodels.SortKeyAttribute {
			continue
		}
		out[k] = v
	}
	return out
}
