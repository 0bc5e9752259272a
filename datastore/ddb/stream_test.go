/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/datastore/testmodels"
	fterrors "github.com/suparena/factorytable/errors"
	"github.com/suparena/factorytable/storagemodels"
)

func seedGadgets(t *testing.T, store *DynamodbDataStore, pk string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		key := storagemodels.Key{PK: pk, SK: fmt.Sprintf("REPLY#%02d", i)}
		require.NoError(t, store.Put(context.Background(), key, &testmodels.Gadget{Model: fmt.Sprintf("g%02d", i), Parts: i}))
	}
}

func collect(ch <-chan storagemodels.StreamResult) []storagemodels.StreamResult {
	var results []storagemodels.StreamResult
	for r := range ch {
		results = append(results, r)
	}
	return results
}

func TestStream(t *testing.T) {
	store, _ := newTestStore(t)
	seedGadgets(t, store, "ORDER#10", 7)

	var (
		mu       sync.Mutex
		progress []storagemodels.StreamProgress
	)
	results := collect(store.Stream(context.Background(),
		storagemodels.PartitionQuery("ORDER#10"),
		storagemodels.WithPageSize(3),
		storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
			mu.Lock()
			progress = append(progress, p)
			mu.Unlock()
		}),
	))

	require.Len(t, results, 7)
	for i, r := range results {
		require.NoError(t, r.Error)
		g, ok := r.Item.(*testmodels.Gadget)
		require.True(t, ok, "expected *Gadget, got %T", r.Item)
		assert.Equal(t, fmt.Sprintf("g%02d", i), g.Model)
		assert.Equal(t, testmodels.GadgetTypeID, r.TypeID)
		assert.Equal(t, int64(i), r.Meta.Index)
		assert.Equal(t, i/3+1, r.Meta.PageNumber)
		assert.NotNil(t, r.Raw)
	}

	mu.Lock()
	defer mu.Unlock()
	// one report per page plus the final one
	require.Len(t, progress, 4)
	final := progress[len(progress)-1]
	assert.Equal(t, int64(7), final.ItemsProcessed)
	assert.Equal(t, 3, final.PagesProcessed)
	assert.Nil(t, final.LastKey)
	assert.NotNil(t, progress[0].LastKey)
}

func TestStreamUndecodableItem(t *testing.T) {
	store, client := newTestStore(t)
	seedGadgets(t, store, "ORDER#11", 2)
	client.items["ORDER#11|REPLY#01"][codec.TypeIDAttribute] = &types.AttributeValueMemberS{Value: "::Demo::Retired"}

	results := collect(store.Stream(context.Background(), storagemodels.PartitionQuery("ORDER#11")))
	require.Len(t, results, 2)

	assert.NoError(t, results[0].Error)
	assert.True(t, fterrors.IsUnknownType(results[1].Error))
	assert.Equal(t, "::Demo::Retired", results[1].TypeID)
	assert.Nil(t, results[1].Item)
}

func TestStreamRetry(t *testing.T) {
	store, client := newTestStore(t)
	seedGadgets(t, store, "ORDER#12", 2)
	client.queryErrs = []error{
		&types.ProvisionedThroughputExceededException{},
		&types.InternalServerError{},
	}

	results := collect(store.Stream(context.Background(),
		storagemodels.PartitionQuery("ORDER#12"),
		storagemodels.WithRetryBackoff(time.Millisecond),
	))

	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Error)
	}
	assert.Equal(t, 3, client.queryCalls)
}

func TestStreamRetriesExhausted(t *testing.T) {
	store, client := newTestStore(t)
	seedGadgets(t, store, "ORDER#13", 1)
	client.queryErrs = []error{
		&types.RequestLimitExceeded{},
		&types.RequestLimitExceeded{},
		&types.RequestLimitExceeded{},
	}

	results := collect(store.Stream(context.Background(),
		storagemodels.PartitionQuery("ORDER#13"),
		storagemodels.WithMaxRetries(2),
		storagemodels.WithRetryBackoff(time.Millisecond),
	))

	require.Len(t, results, 1)
	var rle *types.RequestLimitExceeded
	assert.ErrorAs(t, results[0].Error, &rle)
	assert.Equal(t, 3, client.queryCalls)
}

func TestStreamErrorHandler(t *testing.T) {
	boom := errors.New("boom")

	t.Run("Stop", func(t *testing.T) {
		store, client := newTestStore(t)
		seedGadgets(t, store, "ORDER#14", 1)
		client.queryErrs = []error{boom}

		results := collect(store.Stream(context.Background(),
			storagemodels.PartitionQuery("ORDER#14"),
			storagemodels.WithErrorHandler(func(error) bool { return false }),
		))
		require.Len(t, results, 1)
		assert.ErrorIs(t, results[0].Error, boom)
		assert.Equal(t, 1, client.queryCalls)
	})

	t.Run("Continue", func(t *testing.T) {
		store, client := newTestStore(t)
		seedGadgets(t, store, "ORDER#15", 2)
		client.queryErrs = []error{boom}

		var seen []error
		results := collect(store.Stream(context.Background(),
			storagemodels.PartitionQuery("ORDER#15"),
			storagemodels.WithErrorHandler(func(err error) bool {
				seen = append(seen, err)
				return true
			}),
		))
		require.Len(t, results, 2)
		assert.Equal(t, []error{boom}, seen)
		assert.Equal(t, 2, client.queryCalls)
	})
}

func TestStreamCancel(t *testing.T) {
	store, _ := newTestStore(t)
	seedGadgets(t, store, "ORDER#16", 20)

	ctx, cancel := context.WithCancel(context.Background())
	ch := store.Stream(ctx, storagemodels.PartitionQuery("ORDER#16"),
		storagemodels.WithBufferSize(1),
		storagemodels.WithPageSize(5),
	)

	first := <-ch
	require.NoError(t, first.Error)
	cancel()

	done := make(chan int)
	go func() { done <- len(collect(ch)) }()
	select {
	case n := <-done:
		assert.Less(t, n, 19)
	case <-time.After(5 * time.Second):
		t.Fatal("stream did not close after cancel")
	}
}

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"Throughput", &types.ProvisionedThroughputExceededException{}, true},
		{"RequestLimit", &types.RequestLimitExceeded{}, true},
		{"Internal", &types.InternalServerError{}, true},
		{"Wrapped", fmt.Errorf("query: %w", &types.InternalServerError{}), true},
		{"Validation", errors.New("ValidationException"), false},
		{"ResourceNotFound", &types.ResourceNotFoundException{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isRetryableError(tt.err))
		})
	}
}
