/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/datastore"
	"github.com/suparena/factorytable/datastore/testmodels"
	"github.com/suparena/factorytable/errors"
	"github.com/suparena/factorytable/registry"
	"github.com/suparena/factorytable/storagemodels"
)

var _ datastore.Store = (*DynamodbDataStore)(nil)

func newTestStore(t *testing.T, opts ...codec.Option) (*DynamodbDataStore, *fakeClient) {
	t.Helper()
	lc := registry.NewLifecycle()
	loaded := testmodels.Module.Load(lc)
	t.Cleanup(loaded.Unload)

	client := newFakeClient()
	return New(client, "values", codec.NewDecoder(lc.Current, opts...)), client
}

func TestPutGet(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)

	t.Run("Object", func(t *testing.T) {
		w := testmodels.NewWidget("sprocket")
		key := storagemodels.Key{PK: "ORDER#1", SK: "REPLY#1"}
		require.NoError(t, store.Put(ctx, key, w))

		raw := client.items["ORDER#1|REPLY#1"]
		require.NotNil(t, raw)
		assert.Equal(t, testmodels.WidgetTypeID, attrString(raw[codec.TypeIDAttribute]))
		assert.Equal(t, "object", attrString(raw[codec.KindAttribute]))

		v, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, w, v)
	})

	t.Run("Exception", func(t *testing.T) {
		exc := &testmodels.NotFoundException{Name: "widget-7"}
		key := storagemodels.Key{PK: "ORDER#1", SK: "REPLY#2"}
		require.NoError(t, store.Put(ctx, key, exc))

		v, err := store.Get(ctx, key)
		require.NoError(t, err)
		got, ok := v.(error)
		require.True(t, ok, "expected an error value, got %T", v)
		var nf *testmodels.NotFoundException
		require.ErrorAs(t, got, &nf)
		assert.Equal(t, "widget-7", nf.Name)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := store.Get(ctx, storagemodels.Key{PK: "ORDER#1", SK: "REPLY#404"})
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("InvalidKey", func(t *testing.T) {
		err := store.Put(ctx, storagemodels.Key{PK: "ORDER#1"}, testmodels.NewWidget("x"))
		assert.True(t, errors.IsValidationError(err))

		_, err = store.Get(ctx, storagemodels.Key{SK: "REPLY#1"})
		assert.True(t, errors.IsValidationError(err))
	})
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)
	key := storagemodels.Key{PK: "ORDER#2", SK: "REPLY#1"}

	require.NoError(t, store.Put(ctx, key, testmodels.NewWidget("doomed")))
	require.NoError(t, store.Delete(ctx, key))

	_, err := store.Get(ctx, key)
	assert.True(t, errors.IsNotFound(err))
}

func TestQuery(t *testing.T) {
	ctx := context.Background()
	store, client := newTestStore(t)
	client.pageSize = 2

	for i := 0; i < 5; i++ {
		key := storagemodels.Key{PK: "ORDER#3", SK: fmt.Sprintf("REPLY#%d", i)}
		require.NoError(t, store.Put(ctx, key, &testmodels.Gadget{Model: fmt.Sprintf("g%d", i)}))
	}
	require.NoError(t, store.Put(ctx, storagemodels.Key{PK: "ORDER#4", SK: "REPLY#0"}, testmodels.NewWidget("other")))

	t.Run("FollowsPages", func(t *testing.T) {
		values, err := store.Query(ctx, storagemodels.PartitionQuery("ORDER#3"))
		require.NoError(t, err)
		require.Len(t, values, 5)
		for i, v := range values {
			g, ok := v.(*testmodels.Gadget)
			require.True(t, ok, "expected *Gadget, got %T", v)
			assert.Equal(t, fmt.Sprintf("g%d", i), g.Model)
		}
		assert.Equal(t, "values", *client.lastQuery.TableName)
	})

	t.Run("LimitReturnsOnePage", func(t *testing.T) {
		params := storagemodels.PartitionQuery("ORDER#3")
		limit := int32(3)
		params.Limit = &limit
		values, err := store.Query(ctx, params)
		require.NoError(t, err)
		assert.Len(t, values, 3)
	})

	t.Run("ByType", func(t *testing.T) {
		values, err := store.QueryByType(ctx, testmodels.WidgetTypeID)
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.IsType(t, &testmodels.Widget{}, values[0])
		assert.Equal(t, DefaultTypeIndex, *client.lastQuery.IndexName)
	})
}

func TestQueryUnknownType(t *testing.T) {
	ctx := context.Background()

	seed := func(client *fakeClient) {
		client.items["ORDER#5|REPLY#0"] = map[string]types.AttributeValue{
			"PK":                  &types.AttributeValueMemberS{Value: "ORDER#5"},
			"SK":                  &types.AttributeValueMemberS{Value: "REPLY#0"},
			codec.TypeIDAttribute: &types.AttributeValueMemberS{Value: "::Other::Thing"},
			"Color":               &types.AttributeValueMemberS{Value: "red"},
		}
	}

	t.Run("Fail", func(t *testing.T) {
		store, client := newTestStore(t)
		seed(client)
		_, err := store.Query(ctx, storagemodels.PartitionQuery("ORDER#5"))
		assert.True(t, errors.IsUnknownType(err))
	})

	t.Run("Generic", func(t *testing.T) {
		store, client := newTestStore(t, codec.WithUnknownTypePolicy(codec.UnknownTypeGeneric))
		seed(client)
		values, err := store.Query(ctx, storagemodels.PartitionQuery("ORDER#5"))
		require.NoError(t, err)
		require.Len(t, values, 1)
		// key attributes are not part of the value
		assert.Equal(t, map[string]any{"Color": "red"}, values[0])
	})
}

func TestWithTypeIndex(t *testing.T) {
	cfg := GSIConfig{IndexName: "ByType", PartitionKeyName: "T", SortKeyName: "PK"}
	store := New(newFakeClient(), "values", codec.NewDecoder(nil), WithTypeIndex(cfg))
	assert.Equal(t, cfg, store.typeIndex)
	assert.Equal(t, "values", store.TableName())

	def, ok := GetGSIConfig(DefaultTypeIndex)
	require.True(t, ok)
	assert.Equal(t, codec.TypeIDAttribute, def.PartitionKeyName)
}
