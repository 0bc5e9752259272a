/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"sort"
	"sync"

	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeClient is an in-memory stand-in for DynamoDB. Query understands the
// single-attribute equality conditions built by storagemodels.
type fakeClient struct {
	mu         sync.Mutex
	items      map[string]map[string]types.AttributeValue
	pageSize   int
	queryErrs  []error
	queryCalls int
	lastQuery  *sdk.QueryInput
}

func newFakeClient() *fakeClient {
	return &fakeClient{items: make(map[string]map[string]types.AttributeValue)}
}

func attrString(av types.AttributeValue) string {
	if s, ok := av.(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return ""
}

func itemKey(item map[string]types.AttributeValue) string {
	return attrString(item["PK"]) + "|" + attrString(item["SK"])
}

func copyItem(item map[string]types.AttributeValue) map[string]types.AttributeValue {
	out := make(map[string]types.AttributeValue, len(item))
	for k, v := range item {
		out[k] = v
	}
	return out
}

func (f *fakeClient) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	item, ok := f.items[itemKey(in.Key)]
	if !ok {
		return &sdk.GetItemOutput{}, nil
	}
	return &sdk.GetItemOutput{Item: copyItem(item)}, nil
}

func (f *fakeClient) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items[itemKey(in.Item)] = copyItem(in.Item)
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeClient) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.items, itemKey(in.Key))
	return &sdk.DeleteItemOutput{}, nil
}

func (f *fakeClient) Query(ctx context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queryCalls++
	f.lastQuery = in
	if len(f.queryErrs) > 0 {
		err := f.queryErrs[0]
		f.queryErrs = f.queryErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	var attr, want string
	for placeholder, name := range in.ExpressionAttributeNames {
		attr = name
		want = attrString(in.ExpressionAttributeValues[":"+placeholder[1:]])
	}

	keys := make([]string, 0, len(f.items))
	for k, item := range f.items {
		if attrString(item[attr]) == want {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	start := ""
	if in.ExclusiveStartKey != nil {
		start = itemKey(in.ExclusiveStartKey)
	}
	limit := f.pageSize
	if in.Limit != nil {
		limit = int(*in.Limit)
	}

	out := &sdk.QueryOutput{}
	for i, k := range keys {
		if start != "" && k <= start {
			continue
		}
		if limit > 0 && len(out.Items) == limit {
			last := out.Items[len(out.Items)-1]
			out.LastEvaluatedKey = map[string]types.AttributeValue{
				"PK": last["PK"],
				"SK": last["SK"],
			}
			break
		}
		out.Items = append(out.Items, copyItem(f.items[keys[i]]))
	}
	return out, nil
}
