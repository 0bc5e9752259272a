/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/storagemodels"
)

// Store persists polymorphic values. Values are written with their type-id and
// read back through the factory table, so a Store returns *Widget, *Gadget,
// remote exceptions, or whatever else the loaded modules registered.
type Store interface {
	Get(ctx context.Context, key storagemodels.Key) (any, error)

	Put(ctx context.Context, key storagemodels.Key, v codec.Identified) error

	Delete(ctx context.Context, key storagemodels.Key) error

	Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)

	QueryByType(ctx context.Context, typeID string) ([]any, error)

	Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
}
