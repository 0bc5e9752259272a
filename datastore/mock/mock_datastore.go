/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.Store for testing
package mock

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/errors"
	"github.com/suparena/factorytable/storagemodels"
)

// DataStore is an in-memory datastore.Store. Values are held in encoded form
// and decoded on the way out, so reads go through the factory table exactly
// as they would against DynamoDB.
type DataStore struct {
	mu          sync.RWMutex
	data        map[storagemodels.Key]map[string]types.AttributeValue
	decoder     *codec.Decoder
	queryFunc   func(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)
	streamFunc  func(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
	getError    error
	putError    error
	deleteError error
}

// New creates a new mock DataStore decoding through decoder
func New(decoder *codec.Decoder) *DataStore {
	return &DataStore{
		data:    make(map[storagemodels.Key]map[string]types.AttributeValue),
		decoder: decoder,
	}
}

// WithQueryFunc sets a custom query function for testing
func (m *DataStore) WithQueryFunc(f func(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)) *DataStore {
	m.queryFunc = f
	return m
}

// WithStreamFunc sets a custom stream function for testing
func (m *DataStore) WithStreamFunc(f func(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult) *DataStore {
	m.streamFunc = f
	return m
}

// WithGetError makes Get operations return an error
func (m *DataStore) WithGetError(err error) *DataStore {
	m.getError = err
	return m
}

// WithPutError makes Put operations return an error
func (m *DataStore) WithPutError(err error) *DataStore {
	m.putError = err
	return m
}

// WithDeleteError makes Delete operations return an error
func (m *DataStore) WithDeleteError(err error) *DataStore {
	m.deleteError = err
	return m
}

// Get retrieves and decodes the value stored under key
func (m *DataStore) Get(ctx context.Context, key storagemodels.Key) (any, error) {
	if m.getError != nil {
		return nil, m.getError
	}

	m.mu.RLock()
	item, exists := m.data[key]
	m.mu.RUnlock()

	if !exists {
		return nil, errors.NewNotFoundError("value", key.PK+"|"+key.SK)
	}
	return m.decoder.Decode(item)
}

// Put encodes and stores v under key
func (m *DataStore) Put(ctx context.Context, key storagemodels.Key, v codec.Identified) error {
	if m.putError != nil {
		return m.putError
	}
	if key.PK == "" || key.SK == "" {
		return errors.NewValidationError("key", "PK and SK are required")
	}

	item, err := codec.Encode(v)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = item
	return nil
}

// Delete removes the value stored under key
func (m *DataStore) Delete(ctx context.Context, key storagemodels.Key) error {
	if m.deleteError != nil {
		return m.deleteError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.data[key]; !exists {
		return errors.NewNotFoundError("value", key.PK+"|"+key.SK)
	}
	delete(m.data, key)
	return nil
}

// Query returns the decoded values matching params. The mock understands the
// partition and type conditions built by storagemodels; anything else matches
// every stored value.
func (m *DataStore) Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error) {
	if m.queryFunc != nil {
		return m.queryFunc(ctx, params)
	}

	var results []any
	for _, item := range m.matching(params) {
		v, err := m.decoder.Decode(item)
		if err != nil {
			return nil, err
		}
		results = append(results, v)
	}
	return results, nil
}

// QueryByType returns every stored value of the given type-id
func (m *DataStore) QueryByType(ctx context.Context, typeID string) ([]any, error) {
	return m.Query(ctx, storagemodels.TypeQuery(typeID))
}

// Stream returns a channel of decoded results
func (m *DataStore) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	if m.streamFunc != nil {
		return m.streamFunc(ctx, params, opts...)
	}

	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	items := m.matching(params)
	resultChan := make(chan storagemodels.StreamResult, options.BufferSize)

	go func() {
		defer close(resultChan)

		for i, item := range items {
			result := storagemodels.StreamResult{
				Raw: item,
				Meta: storagemodels.StreamMeta{
					Index:      int64(i),
					PageNumber: 1,
				},
			}
			result.TypeID, _ = codec.TypeIDOf(item)
			if v, err := m.decoder.Decode(item); err != nil {
				result.Error = fmt.Errorf("failed to decode item %d: %w", i, err)
			} else {
				result.Item = v
			}

			select {
			case <-ctx.Done():
				return
			case resultChan <- result:
			}
		}
	}()

	return resultChan
}

// Helper methods for testing

// Count returns the number of stored values
func (m *DataStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all data
func (m *DataStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[storagemodels.Key]map[string]types.AttributeValue)
}

// Raw returns the encoded item stored under key
func (m *DataStore) Raw(key storagemodels.Key) (map[string]types.AttributeValue, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	item, ok := m.data[key]
	return item, ok
}

// matching returns the stored items selected by params, ordered by key
func (m *DataStore) matching(params *storagemodels.QueryParams) []map[string]types.AttributeValue {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]storagemodels.Key, 0, len(m.data))
	for k, item := range m.data {
		if matches(params, k, item) {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].PK != keys[j].PK {
			return keys[i].PK < keys[j].PK
		}
		return keys[i].SK < keys[j].SK
	})

	items := make([]map[string]types.AttributeValue, 0, len(keys))
	for _, k := range keys {
		items = append(items, m.data[k])
	}
	if params != nil && params.Limit != nil && int(*params.Limit) < len(items) {
		items = items[:*params.Limit]
	}
	return items
}

func matches(params *storagemodels.QueryParams, key storagemodels.Key, item map[string]types.AttributeValue) bool {
	if params == nil {
		return true
	}
	if pk, ok := stringValue(params.ExpressionAttributeValues[":pk"]); ok {
		return key.PK == pk
	}
	if typeID, ok := stringValue(params.ExpressionAttributeValues[":type"]); ok {
		got, err := codec.TypeIDOf(item)
		return err == nil && got == typeID
	}
	return true
}

func stringValue(av types.AttributeValue) (string, bool) {
	s, ok := av.(*types.AttributeValueMemberS)
	if !ok {
		return "", false
	}
	return s.Value, true
}
