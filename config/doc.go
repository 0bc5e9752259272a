/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

/*
Package config loads settings for the factorytable command and its datastore.

Sources are applied in order, later ones winning:

 1. Default()
 2. an optional YAML file
 3. a .env file in the working directory
 4. environment variables (AWS_ACCESS_KEY, AWS_SECRET_KEY, AWS_REGION,
    AWS_DDB_TABLE, AWS_DDB_ENDPOINT, FACTORYTABLE_UNKNOWN_TYPES,
    FACTORYTABLE_LOG_LEVEL)

Example file:

	aws:
	  region: eu-west-1
	  table: values
	  endpoint: http://localhost:8000
	stream:
	  page_size: 50
	  retry_backoff: 250ms
	decoder:
	  unknown_types: generic
	log:
	  level: debug
	  development: true
*/
package config
