/*
Package ddb provides a DynamoDB implementation of the datastore.Store interface.

Every value is written as one item: the value's own attributes, the PK/SK key
attributes, and the TypeId/Kind attributes stamped by the codec. Reads decode
the item through a codec.Decoder, so the concrete Go type that comes back is
chosen by the factory table at read time.

The DynamodbDataStore supports:
  - Get / Put / Delete by explicit key
  - Query with automatic pagination
  - QueryByType on a secondary index keyed by TypeId (see GSIConfig)
  - Streaming with retry logic, progress and error handlers

Streaming:
The streaming API supports configurable options:

	results := store.Stream(ctx, storagemodels.PartitionQuery("ORDER#42"),
	    storagemodels.WithBufferSize(100),
	    storagemodels.WithPageSize(25),
	    storagemodels.WithMaxRetries(3),
	    storagemodels.WithProgressHandler(func(p storagemodels.StreamProgress) {
	        log.Printf("Processed %d items", p.ItemsProcessed)
	    }),
	)
	for r := range results {
	    if r.Error != nil {
	        // undecodable item or fatal query error
	    }
	}
*/
package ddb
