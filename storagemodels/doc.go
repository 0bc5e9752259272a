/*
Package storagemodels defines the data structures shared by the datastores.

Key Types:

Key:
Addresses one stored value by partition and sort key:

	key := Key{PK: "ORDER#42", SK: "REPLY#0001"}

QueryParams:
Parameters for querying the datastore. PartitionQuery builds the common case:

	params := PartitionQuery("ORDER#42")
	params.FilterExpression = aws.String("#k = :exception")

StreamResult:
Results from streaming operations with metadata:

	type StreamResult struct {
	    Item   any                             // The decoded object or exception
	    TypeID string                          // Type-id stamped on the item
	    Raw    map[string]types.AttributeValue // Raw DynamoDB attributes
	    Error  error                           // Item-specific error, if any
	    Meta   StreamMeta                      // Metadata about this item
	}

StreamOptions:
Configuration for streaming behavior:

	opts := []StreamOption{
	    WithBufferSize(100),
	    WithPageSize(25),
	    WithMaxRetries(3),
	    WithProgressHandler(progressFunc),
	}
*/
package storagemodels
