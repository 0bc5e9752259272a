/*
Package datastore defines the persistence interface for polymorphic values.

	type Store interface {
	    Get(ctx context.Context, key storagemodels.Key) (any, error)
	    Put(ctx context.Context, key storagemodels.Key, v codec.Identified) error
	    Delete(ctx context.Context, key storagemodels.Key) error
	    Query(ctx context.Context, params *storagemodels.QueryParams) ([]any, error)
	    QueryByType(ctx context.Context, typeID string) ([]any, error)
	    Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult
	}

Implementations:
  - ddb: DynamoDB implementation
  - mock: In-memory implementation for testing

Both encode values with the codec package and decode them through a
codec.Decoder, so what comes back depends on which modules are loaded in the
factory table at read time.
*/
package datastore
