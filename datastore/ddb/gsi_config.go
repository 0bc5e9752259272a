/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/storagemodels"
)

// DefaultTypeIndex is the name of the index QueryByType uses unless overridden.
const DefaultTypeIndex = "TypeIndex"

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// IndexName is the actual GSI name in DynamoDB (e.g., "TypeIndex")
	IndexName string
	// PartitionKeyName is the actual partition key attribute name in the GSI (e.g., "TypeId")
	PartitionKeyName string
	// SortKeyName is the actual sort key attribute name in the GSI (e.g., "PK")
	SortKeyName string
}

// DefaultGSIConfigs holds the default GSI configurations
var DefaultGSIConfigs = map[string]GSIConfig{
	DefaultTypeIndex: {
		IndexName:        DefaultTypeIndex,
		PartitionKeyName: codec.TypeIDAttribute,
		SortKeyName:      storagemodels.PartitionKeyAttribute,
	},
}

// GetGSIConfig returns the GSI configuration for a given index name
func GetGSIConfig(indexName string) (GSIConfig, bool) {
	config, ok := DefaultGSIConfigs[indexName]
	return config, ok
}
