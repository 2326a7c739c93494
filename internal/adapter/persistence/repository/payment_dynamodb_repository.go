package repository

import (
	"context"
	"encoding/json"
	"time"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsRequestIDIndex   = "request_id-index"
)

type paymentItem struct {
	ID                 string  `dynamodbav:"id"`
	RequestID          string  `dynamodbav:"request_id"`
	AdjustmentID       string  `dynamodbav:"adjustment_id,omitempty"`
	Amount             float64 `dynamodbav:"amount"`
	Currency           string  `dynamodbav:"currency"`
	CheckoutID         string  `dynamodbav:"checkout_id"`
	RedirectURL        string  `dynamodbav:"redirect_url"`
	Status             string  `dynamodbav:"status"`
	ProviderPaymentID  string  `dynamodbav:"provider_payment_id,omitempty"`
	ProviderStatus     string  `dynamodbav:"provider_status,omitempty"`
	ProviderPayloadRaw string  `dynamodbav:"provider_payload_raw,omitempty"`
	CreatedAt          string  `dynamodbav:"created_at"`
	UpdatedAt          string  `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: request_id-index (PK: request_id, SK: created_at)
type PaymentDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb DynamoAPI, tableName string) *PaymentDynamoRepository {
	if tableName == "" {
		tableName = defaultPaymentsTableName
	}
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
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
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	var it paymentItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.Payment, error) {
	items, err := queryAll[paymentItem](ctx, r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsRequestIDIndex),
		KeyConditionExpression: aws.String("request_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": strAttr(requestID),
		},
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	out := make([]entities.Payment, 0, len(items))
	for _, it := range items {
		out = append(out, fromPaymentItem(it))
	}
	return out, nil
}

func (r *PaymentDynamoRepository) MarkApproved(ctx context.Context, id, providerPaymentID, providerStatus string, payload json.RawMessage) (entities.Payment, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	expr := "SET #status = :status, #provider_payment_id = :ppid, #provider_status = :pstatus, #updated_at = :updated_at"
	names := map[string]string{
		"#id":                  "id",
		"#status":              "status",
		"#provider_payment_id": "provider_payment_id",
		"#provider_status":     "provider_status",
		"#updated_at":          "updated_at",
	}
	values := map[string]types.AttributeValue{
		":status":     strAttr(string(entities.PaymentStatusApproved)),
		":ppid":       strAttr(providerPaymentID),
		":pstatus":    strAttr(providerStatus),
		":updated_at": strAttr(now),
	}
	if len(payload) > 0 {
		expr += ", #provider_payload_raw = :payload"
		names["#provider_payload_raw"] = "provider_payload_raw"
		values[":payload"] = strAttr(string(payload))
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		if failed, _ := conditionFailure(err); failed {
			return entities.Payment{}, nil
		}
		return entities.Payment{}, err
	}
	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:                 p.ID,
		RequestID:          p.RequestID,
		AdjustmentID:       p.AdjustmentID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		CheckoutID:         p.CheckoutID,
		RedirectURL:        p.RedirectURL,
		Status:             string(p.Status),
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderStatus:     p.ProviderStatus,
		ProviderPayloadRaw: string(p.ProviderPayload),
		CreatedAt:          formatTime(p.CreatedAt),
		UpdatedAt:          formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	p := entities.Payment{
		ID:                it.ID,
		RequestID:         it.RequestID,
		AdjustmentID:      it.AdjustmentID,
		Amount:            it.Amount,
		Currency:          it.Currency,
		CheckoutID:        it.CheckoutID,
		RedirectURL:       it.RedirectURL,
		Status:            entities.PaymentStatus(it.Status),
		ProviderPaymentID: it.ProviderPaymentID,
		ProviderStatus:    it.ProviderStatus,
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
	if it.ProviderPayloadRaw != "" {
		p.ProviderPayload = json.RawMessage(it.ProviderPayloadRaw)
	}
	return p
}
