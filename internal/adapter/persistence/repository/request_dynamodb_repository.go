package repository

import (
	"context"
	"fmt"
	"time"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultRequestsTableName = "requests"
	requestsClientIDIndex    = "client_id-index"
	requestsStatusIndex      = "status-index"
)

type requestItem struct {
	ID                   string              `dynamodbav:"id"`
	ClientID             string              `dynamodbav:"client_id"`
	ProviderID           string              `dynamodbav:"provider_id,omitempty"`
	ProviderName         string              `dynamodbav:"provider_name,omitempty"`
	Title                string              `dynamodbav:"title"`
	Category             string              `dynamodbav:"category"`
	Description          string              `dynamodbav:"description"`
	Location             entities.Location   `dynamodbav:"location"`
	Surface              float64             `dynamodbav:"surface"`
	Urgency              string              `dynamodbav:"urgency"`
	IsExpress            bool                `dynamodbav:"is_express"`
	EcoOptions           entities.EcoOptions `dynamodbav:"eco_options"`
	Evidence             []string            `dynamodbav:"evidence"`
	PriceOriginal        float64             `dynamodbav:"price_original"`
	PriceFinal           float64             `dynamodbav:"price_final"`
	AcceptedAdjustmentID string              `dynamodbav:"accepted_adjustment_id,omitempty"`
	Status               string              `dynamodbav:"status"`
	ClientRate           *int                `dynamodbav:"client_rate,omitempty"`
	ProviderRate         *int                `dynamodbav:"provider_rate,omitempty"`
	CreatedAt            string              `dynamodbav:"created_at"`
	UpdatedAt            string              `dynamodbav:"updated_at"`
}

// RequestDynamoRepository persists Request entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: client_id-index (PK: client_id, SK: created_at)
//   - GSI: status-index (PK: status, SK: created_at)
//
// Every status change is a conditional write on the status the caller read.
type RequestDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IRequestRepository = (*RequestDynamoRepository)(nil)

func NewRequestDynamoRepository(ddb DynamoAPI, tableName string) *RequestDynamoRepository {
	if tableName == "" {
		tableName = defaultRequestsTableName
	}
	return &RequestDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *RequestDynamoRepository) Create(ctx context.Context, req entities.Request) (entities.Request, error) {
	av, err := attributevalue.MarshalMap(toRequestItem(req))
	if err != nil {
		return entities.Request{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Request{}, err
	}
	return req, nil
}

func (r *RequestDynamoRepository) GetByID(ctx context.Context, id string) (entities.Request, error) {
	var it requestItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Request{}, err
	}
	return fromRequestItem(it), nil
}

func (r *RequestDynamoRepository) ListByClientID(ctx context.Context, clientID string) ([]entities.Request, error) {
	return r.query(ctx, requestsClientIDIndex, "client_id", clientID)
}

func (r *RequestDynamoRepository) ListByStatus(ctx context.Context, status entities.RequestStatus) ([]entities.Request, error) {
	return r.query(ctx, requestsStatusIndex, "status", string(status))
}

func (r *RequestDynamoRepository) query(ctx context.Context, index, attr, value string) ([]entities.Request, error) {
	items, err := queryAll[requestItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(index),
		KeyConditionExpression:    aws.String("#k = :v"),
		ExpressionAttributeNames:  map[string]string{"#k": attr},
		ExpressionAttributeValues: map[string]types.AttributeValue{":v": strAttr(value)},
		ScanIndexForward:          aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}
	out := make([]entities.Request, 0, len(items))
	for _, it := range items {
		out = append(out, fromRequestItem(it))
	}
	return out, nil
}

func (r *RequestDynamoRepository) UpdateStatus(ctx context.Context, id string, from, to entities.RequestStatus) (entities.Request, error) {
	return r.update(ctx, id, "#status = :from", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status = :to, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":from":       strAttr(string(from)),
			":to":         strAttr(string(to)),
			":updated_at": strAttr(now),
		}
		names := map[string]string{
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

func (r *RequestDynamoRepository) AssignProvider(ctx context.Context, id, providerID, providerName string) (entities.Request, error) {
	return r.update(ctx, id, "#status = :pending", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #provider_id = :provider_id, #provider_name = :provider_name, #price_final = #price_original, #status = :accepted, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":provider_id":   strAttr(providerID),
			":provider_name": strAttr(providerName),
			":pending":       strAttr(string(entities.RequestStatusPending)),
			":accepted":      strAttr(string(entities.RequestStatusAccepted)),
			":updated_at":    strAttr(now),
		}
		names := map[string]string{
			"#provider_id":    "provider_id",
			"#provider_name":  "provider_name",
			"#price_final":    "price_final",
			"#price_original": "price_original",
			"#status":         "status",
			"#updated_at":     "updated_at",
		}
		return expr, vals, names
	})
}

func (r *RequestDynamoRepository) SetRating(ctx context.Context, id string, field interfaces.RatingField, rating int) (entities.Request, error) {
	if field != interfaces.RatingByClient && field != interfaces.RatingByProvider {
		return entities.Request{}, fmt.Errorf("unknown rating field %q", field)
	}
	return r.update(ctx, id, "#status = :completed", func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #rate = :rate, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":rate":       &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", rating)},
			":completed":  strAttr(string(entities.RequestStatusCompleted)),
			":updated_at": strAttr(now),
		}
		names := map[string]string{
			"#rate":       string(field),
			"#status":     "status",
			"#updated_at": "updated_at",
		}
		return expr, vals, names
	})
}

// update applies a conditional update. An unknown id yields a zero Request;
// an existing item failing condition yields ErrConditionFailed.
func (r *RequestDynamoRepository) update(
	ctx context.Context,
	id string,
	condition string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Request, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                           aws.String(r.tableName),
		Key:                                 idKey(id),
		ConditionExpression:                 aws.String("attribute_exists(#id) AND " + condition),
		UpdateExpression:                    aws.String(updateExpr),
		ExpressionAttributeValues:           values,
		ExpressionAttributeNames:            mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:                        types.ReturnValueAllNew,
		ReturnValuesOnConditionCheckFailure: types.ReturnValuesOnConditionCheckFailureAllOld,
	})
	if err != nil {
		if failed, exists := conditionFailure(err); failed {
			if !exists {
				return entities.Request{}, nil
			}
			return entities.Request{}, interfaces.ErrConditionFailed
		}
		return entities.Request{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Request{}, nil
	}
	var it requestItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Request{}, err
	}
	return fromRequestItem(it), nil
}

func toRequestItem(r entities.Request) requestItem {
	evidence := r.Evidence
	if evidence == nil {
		evidence = []string{}
	}
	return requestItem{
		ID:                   r.ID,
		ClientID:             r.ClientID,
		ProviderID:           r.ProviderID,
		ProviderName:         r.ProviderName,
		Title:                r.Title,
		Category:             r.Category,
		Description:          r.Description,
		Location:             r.Location,
		Surface:              r.Surface,
		Urgency:              string(r.Urgency),
		IsExpress:            r.IsExpress,
		EcoOptions:           r.EcoOptions,
		Evidence:             evidence,
		PriceOriginal:        r.PriceOriginal,
		PriceFinal:           r.PriceFinal,
		AcceptedAdjustmentID: r.AcceptedAdjustmentID,
		Status:               string(r.Status),
		ClientRate:           r.ClientRate,
		ProviderRate:         r.ProviderRate,
		CreatedAt:            formatTime(r.CreatedAt),
		UpdatedAt:            formatTime(r.UpdatedAt),
	}
}

func fromRequestItem(it requestItem) entities.Request {
	return entities.Request{
		ID:                   it.ID,
		ClientID:             it.ClientID,
		ProviderID:           it.ProviderID,
		ProviderName:         it.ProviderName,
		Title:                it.Title,
		Category:             it.Category,
		Description:          it.Description,
		Location:             it.Location,
		Surface:              it.Surface,
		Urgency:              entities.Urgency(it.Urgency),
		IsExpress:            it.IsExpress,
		EcoOptions:           it.EcoOptions,
		Evidence:             it.Evidence,
		PriceOriginal:        it.PriceOriginal,
		PriceFinal:           it.PriceFinal,
		AcceptedAdjustmentID: it.AcceptedAdjustmentID,
		Status:               entities.RequestStatus(it.Status),
		ClientRate:           it.ClientRate,
		ProviderRate:         it.ProviderRate,
		CreatedAt:            parseTime(it.CreatedAt),
		UpdatedAt:            parseTime(it.UpdatedAt),
	}
}
