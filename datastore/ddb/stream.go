/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/factorytable/codec"
	"github.com/suparena/factorytable/storagemodels"
	"go.uber.org/zap"
)

// Stream performs a paged query against DynamoDB and delivers decoded values on
// the returned channel. The channel is closed when the query is exhausted, the
// context is cancelled, or a query error stops the stream.
func (d *DynamodbDataStore) Stream(ctx context.Context, params *storagemodels.QueryParams, opts ...storagemodels.StreamOption) <-chan storagemodels.StreamResult {
	options := storagemodels.DefaultStreamOptions()
	for _, opt := range opts {
		opt(&options)
	}

	resultCh := make(chan storagemodels.StreamResult, options.BufferSize)
	go d.streamWorker(ctx, params, options, resultCh)
	return resultCh
}

// streamWorker handles the actual streaming logic
func (d *DynamodbDataStore) streamWorker(
	ctx context.Context,
	params *storagemodels.QueryParams,
	options storagemodels.StreamOptions,
	resultCh chan<- storagemodels.StreamResult,
) {
	defer close(resultCh)

	var (
		itemIndex  int64
		pageNumber int
		errs       []error
	)
	startTime := time.Now()

	reportProgress := func(lastKey map[string]types.AttributeValue) {
		if options.ProgressHandler == nil {
			return
		}
		progress := storagemodels.StreamProgress{
			ItemsProcessed: itemIndex,
			PagesProcessed: pageNumber,
			LastKey:        lastKey,
			Errors:         errs,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	send := func(r storagemodels.StreamResult) bool {
		select {
		case <-ctx.Done():
			return false
		case resultCh <- r:
			return true
		}
	}

	input := d.queryInput(params)
	input.Limit = aws.Int32(options.PageSize)

	for {
		if ctx.Err() != nil {
			return
		}

		out, err := d.queryWithRetry(ctx, input, options)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if options.ErrorHandler == nil || !options.ErrorHandler(err) {
				send(storagemodels.StreamResult{
					Error: fmt.Errorf("query failed: %w", err),
					Meta: storagemodels.StreamMeta{
						Index:      itemIndex,
						PageNumber: pageNumber,
						Timestamp:  time.Now(),
					},
				})
				return
			}
			// Error handler chose to continue: retry the same page.
			errs = append(errs, err)
			d.logger.Warn("stream query failed, continuing", zap.Error(err))
			continue
		}

		pageNumber++

		for _, item := range out.Items {
			result := d.processItem(item, itemIndex, pageNumber)
			itemIndex++

			if !send(result) {
				return
			}
			if result.Error != nil {
				errs = append(errs, result.Error)
			}
		}

		reportProgress(out.LastEvaluatedKey)

		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		input.ExclusiveStartKey = out.LastEvaluatedKey
	}

	reportProgress(nil)
}

// queryWithRetry executes a query with configurable retry logic
func (d *DynamodbDataStore) queryWithRetry(
	ctx context.Context,
	input *dynamodb.QueryInput,
	options storagemodels.StreamOptions,
) (*dynamodb.QueryOutput, error) {
	var lastErr error

	for attempt := 0; attempt <= options.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out, err := d.client.Query(ctx, input)
		if err == nil {
			return out, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return nil, err
		}

		if attempt < options.MaxRetries {
			backoff := time.Duration(attempt+1) * options.RetryBackoff
			d.logger.Debug("retrying query",
				zap.Int("attempt", attempt+1),
				zap.Duration("backoff", backoff),
				zap.Error(err))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("query failed after %d retries: %w", options.MaxRetries, lastErr)
}

// processItem decodes a DynamoDB item through the factory table
func (d *DynamodbDataStore) processItem(
	item map[string]types.AttributeValue,
	index int64,
	pageNumber int,
) storagemodels.StreamResult {
	result := storagemodels.StreamResult{
		Raw: item,
		Meta: storagemodels.StreamMeta{
			Index:      index,
			PageNumber: pageNumber,
			Timestamp:  time.Now(),
		},
	}

	if typeID, err := codec.TypeIDOf(item); err == nil {
		result.TypeID = typeID
	}

	v, err := d.decoder.Decode(valueAttributes(item))
	if err != nil {
		result.Error = fmt.Errorf("failed to decode item %d: %w", index, err)
		return result
	}
	result.Item = v
	return result
}

// isRetryableError determines if a DynamoDB error is retryable
func isRetryableError(err error) bool {
	var (
		throughput *types.ProvisionedThroughputExceededException
		limit      *types.RequestLimitExceeded
		internal   *types.InternalServerError
	)
	if errors.As(err, &throughput) || errors.As(err, &limit) || errors.As(err, &internal) {
		return true
	}

	var retryable interface{ IsRetryable() bool }
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
