package dynamodb

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeTable is a single-table, single-key in-memory stand-in for DynamoDB.
// It understands the SET-only update expressions and attribute_exists
// conditions produced by the expression builder.
type fakeTable struct {
	mu      sync.Mutex
	keyAttr string
	items   map[string]map[string]types.AttributeValue
	order   []string

	// err, when set, is returned by every call
	err error
	// pageCap, when set, truncates scan pages like the 1 MB response limit
	pageCap int

	updates []*dynamodb.UpdateItemInput
	gets    []*dynamodb.GetItemInput
	scans   int
}

func newFakeTable(keyAttr string) *fakeTable {
	return &fakeTable{
		keyAttr: keyAttr,
		items:   make(map[string]map[string]types.AttributeValue),
	}
}

func (f *fakeTable) keyOf(key map[string]types.AttributeValue) (string, error) {
	av, ok := key[f.keyAttr].(*types.AttributeValueMemberS)
	if !ok {
		return "", fmt.Errorf("missing key attribute %s", f.keyAttr)
	}
	return av.Value, nil
}

func (f *fakeTable) put(item map[string]types.AttributeValue) {
	k := item[f.keyAttr].(*types.AttributeValueMemberS).Value
	if _, exists := f.items[k]; !exists {
		f.order = append(f.order, k)
	}
	copied := make(map[string]types.AttributeValue, len(item))
	for name, v := range item {
		copied[name] = v
	}
	f.items[k] = copied
}

func (f *fakeTable) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets = append(f.gets, params)
	if f.err != nil {
		return nil, f.err
	}

	k, err := f.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	return &dynamodb.GetItemOutput{Item: f.items[k]}, nil
}

func (f *fakeTable) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	f.put(params.Item)
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeTable) UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, params)
	if f.err != nil {
		return nil, f.err
	}

	k, err := f.keyOf(params.Key)
	if err != nil {
		return nil, err
	}

	item, exists := f.items[k]
	cond := aws.ToString(params.ConditionExpression)
	if strings.Contains(cond, "attribute_exists") && !exists {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	if !exists {
		item = map[string]types.AttributeValue{f.keyAttr: &types.AttributeValueMemberS{Value: k}}
		f.order = append(f.order, k)
	}

	expr := strings.TrimSpace(aws.ToString(params.UpdateExpression))
	if !strings.HasPrefix(expr, "SET ") {
		return nil, fmt.Errorf("unsupported update expression %q", expr)
	}
	for _, action := range strings.Split(strings.TrimPrefix(expr, "SET "), ",") {
		parts := strings.SplitN(action, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed action %q", action)
		}
		name := params.ExpressionAttributeNames[strings.TrimSpace(parts[0])]
		value, ok := params.ExpressionAttributeValues[strings.TrimSpace(parts[1])]
		if name == "" || !ok {
			return nil, fmt.Errorf("unresolved action %q", action)
		}
		item[name] = value
	}
	f.items[k] = item
	return &dynamodb.UpdateItemOutput{}, nil
}

func (f *fakeTable) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}

	k, err := f.keyOf(params.Key)
	if err != nil {
		return nil, err
	}
	if _, exists := f.items[k]; exists {
		delete(f.items, k)
		for i, id := range f.order {
			if id == k {
				f.order = append(f.order[:i], f.order[i+1:]...)
				break
			}
		}
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (f *fakeTable) Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scans++
	if f.err != nil {
		return nil, f.err
	}

	start := 0
	if params.ExclusiveStartKey != nil {
		k, err := f.keyOf(params.ExclusiveStartKey)
		if err != nil {
			return nil, err
		}
		for i, id := range f.order {
			if id == k {
				start = i + 1
				break
			}
		}
	}

	limit := len(f.order)
	if params.Limit != nil {
		limit = int(*params.Limit)
	}
	if f.pageCap > 0 && f.pageCap < limit {
		limit = f.pageCap
	}

	out := &dynamodb.ScanOutput{}
	i := start
	for ; i < len(f.order) && len(out.Items) < limit; i++ {
		out.Items = append(out.Items, f.items[f.order[i]])
	}
	if i < len(f.order) && len(out.Items) > 0 {
		out.LastEvaluatedKey = map[string]types.AttributeValue{
			f.keyAttr: &types.AttributeValueMemberS{Value: f.order[i-1]},
		}
	}
	out.Count = int32(len(out.Items))
	return out, nil
}
