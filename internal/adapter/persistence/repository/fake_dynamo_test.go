package repository

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// fakeDynamo records every call and serves GetItem from items, keyed by
// "table/id".
type fakeDynamo struct {
	items map[string]map[string]types.AttributeValue

	puts      []*dynamodb.PutItemInput
	updates   []*dynamodb.UpdateItemInput
	transacts []*dynamodb.TransactWriteItemsInput
	queries   []*dynamodb.QueryInput

	queryPages [][]map[string]types.AttributeValue
	updateOut  map[string]types.AttributeValue

	putErr      error
	updateErr   error
	transactErr error
}

var _ DynamoAPI = (*fakeDynamo)(nil)

func newFakeDynamo() *fakeDynamo {
	return &fakeDynamo{items: map[string]map[string]types.AttributeValue{}}
}

func (f *fakeDynamo) seed(t *testing.T, table, id string, item any) {
	t.Helper()
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		t.Fatalf("marshal seed: %v", err)
	}
	f.items[table+"/"+id] = av
}

func (f *fakeDynamo) PutItem(_ context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.puts = append(f.puts, params)
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	id := params.Key["id"].(*types.AttributeValueMemberS).Value
	return &dynamodb.GetItemOutput{Item: f.items[aws.ToString(params.TableName)+"/"+id]}, nil
}

func (f *fakeDynamo) Query(_ context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	page := len(f.queries)
	f.queries = append(f.queries, params)
	if page >= len(f.queryPages) {
		return &dynamodb.QueryOutput{}, nil
	}
	out := &dynamodb.QueryOutput{Items: f.queryPages[page]}
	if page < len(f.queryPages)-1 {
		out.LastEvaluatedKey = map[string]types.AttributeValue{"id": strAttr("page-key")}
	}
	return out, nil
}

func (f *fakeDynamo) UpdateItem(_ context.Context, params *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	f.updates = append(f.updates, params)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &dynamodb.UpdateItemOutput{Attributes: f.updateOut}, nil
}

func (f *fakeDynamo) TransactWriteItems(_ context.Context, params *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	f.transacts = append(f.transacts, params)
	if f.transactErr != nil {
		return nil, f.transactErr
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// cancelled builds the error DynamoDB returns when the action at index fails
// its condition.
func cancelled(size, index int) error {
	reasons := make([]types.CancellationReason, size)
	for i := range reasons {
		code := "None"
		if i == index {
			code = "ConditionalCheckFailed"
		}
		reasons[i] = types.CancellationReason{Code: aws.String(code)}
	}
	return &types.TransactionCanceledException{Message: aws.String("Transaction cancelled"), CancellationReasons: reasons}
}

func keyID(t *testing.T, key map[string]types.AttributeValue) string {
	t.Helper()
	s, ok := key["id"].(*types.AttributeValueMemberS)
	if !ok {
		t.Fatalf("key without string id: %+v", key)
	}
	return s.Value
}
