package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultAdjustmentsTableName     = "price_adjustments"
	defaultAdjustmentLocksTableName = "adjustment_locks"
	adjustmentsRequestIDIndex       = "request_id-index"
	adjustmentsClientIDIndex        = "client_id-index"
	adjustmentsCountAttr            = "adjustments_count"
)

var errAdjustmentAlreadyExists = errors.New("adjustment already exists")

type adjustmentItem struct {
	ID            string   `dynamodbav:"id"`
	RequestID     string   `dynamodbav:"request_id"`
	ClientID      string   `dynamodbav:"client_id"`
	ProviderID    string   `dynamodbav:"provider_id"`
	ProviderName  string   `dynamodbav:"provider_name"`
	OriginalPrice float64  `dynamodbav:"original_price"`
	NewPrice      float64  `dynamodbav:"new_price"`
	Justification string   `dynamodbav:"justification"`
	Photos        []string `dynamodbav:"photos"`
	Videos        []string `dynamodbav:"videos"`
	Status        string   `dynamodbav:"status"`
	Reason        string   `dynamodbav:"reason,omitempty"`
	CreatedAt     string   `dynamodbav:"created_at"`
	ResolvedAt    string   `dynamodbav:"resolved_at,omitempty"`
}

// lockItem occupies the pending slot of a provider on a request.
type lockItem struct {
	ID           string `dynamodbav:"id"`
	AdjustmentID string `dynamodbav:"adjustment_id"`
	RequestID    string `dynamodbav:"request_id"`
	ProviderID   string `dynamodbav:"provider_id"`
	CreatedAt    string `dynamodbav:"created_at"`
}

// PriceAdjustmentDynamoRepository persists PriceAdjustment entities in DynamoDB.
//
// Table requirements:
//   - adjustments: PK id; GSI request_id-index (request_id, created_at);
//     GSI client_id-index (client_id, created_at)
//   - locks: PK id, one item per pending (request, provider) pair
//
// A lock is written with its adjustment and removed when the adjustment leaves
// pending, always inside the same transaction.
//
// The request item carries adjustments_count, the number of adjustment items
// stored for it. Create increments it and Accept is conditioned on it, so an
// acceptance computed from an outdated sibling list is refused.
type PriceAdjustmentDynamoRepository struct {
	ddb            DynamoAPI
	tableName      string
	locksTableName string
	requestsTable  string
}

var _ interfaces.IPriceAdjustmentRepository = (*PriceAdjustmentDynamoRepository)(nil)

func NewPriceAdjustmentDynamoRepository(ddb DynamoAPI, tableName, locksTableName, requestsTable string) *PriceAdjustmentDynamoRepository {
	if tableName == "" {
		tableName = defaultAdjustmentsTableName
	}
	if locksTableName == "" {
		locksTableName = defaultAdjustmentLocksTableName
	}
	if requestsTable == "" {
		requestsTable = defaultRequestsTableName
	}
	return &PriceAdjustmentDynamoRepository{
		ddb:            ddb,
		tableName:      tableName,
		locksTableName: locksTableName,
		requestsTable:  requestsTable,
	}
}

// Create writes the adjustment, claims its pending slot and counts it on the
// request in one transaction. The request must still be open for negotiation.
func (r *PriceAdjustmentDynamoRepository) Create(ctx context.Context, a entities.PriceAdjustment) (entities.PriceAdjustment, error) {
	av, err := attributevalue.MarshalMap(toAdjustmentItem(a))
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	lock, err := attributevalue.MarshalMap(lockItem{
		ID:           entities.PendingLockID(a.RequestID, a.ProviderID),
		AdjustmentID: a.ID,
		RequestID:    a.RequestID,
		ProviderID:   a.ProviderID,
		CreatedAt:    formatTime(a.CreatedAt),
	})
	if err != nil {
		return entities.PriceAdjustment{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: &types.Put{
				TableName:                aws.String(r.tableName),
				Item:                     av,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Put: &types.Put{
				TableName:                aws.String(r.locksTableName),
				Item:                     lock,
				ConditionExpression:      aws.String("attribute_not_exists(#id)"),
				ExpressionAttributeNames: map[string]string{"#id": "id"},
			}},
			{Update: &types.Update{
				TableName:           aws.String(r.requestsTable),
				Key:                 idKey(a.RequestID),
				ConditionExpression: aws.String("attribute_exists(#id) AND #status IN (:pending, :accepted)"),
				UpdateExpression:    aws.String("ADD #adjustments_count :one"),
				ExpressionAttributeNames: map[string]string{
					"#id":                "id",
					"#status":            "status",
					"#adjustments_count": adjustmentsCountAttr,
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":pending":  strAttr(string(entities.RequestStatusPending)),
					":accepted": strAttr(string(entities.RequestStatusAccepted)),
					":one":      numAttr(1),
				},
			}},
		},
	})
	if err != nil {
		switch {
		case transactionConditionFailed(err, 1):
			return entities.PriceAdjustment{}, interfaces.ErrPendingAdjustmentExists
		case transactionConditionFailed(err, 0):
			return entities.PriceAdjustment{}, errAdjustmentAlreadyExists
		case transactionConditionFailed(err, 2):
			return entities.PriceAdjustment{}, interfaces.ErrConditionFailed
		}
		return entities.PriceAdjustment{}, err
	}
	return a, nil
}

func (r *PriceAdjustmentDynamoRepository) GetByID(ctx context.Context, id string) (entities.PriceAdjustment, error) {
	var it adjustmentItem
	found, err := getItem(ctx, r.ddb, r.tableName, id, &it)
	if err != nil || !found {
		return entities.PriceAdjustment{}, err
	}
	return fromAdjustmentItem(it), nil
}

// FindPending resolves the pending slot with consistent reads, so a proposal
// committed just before is always seen.
func (r *PriceAdjustmentDynamoRepository) FindPending(ctx context.Context, requestID, providerID string) (entities.PriceAdjustment, error) {
	var lock lockItem
	found, err := getItem(ctx, r.ddb, r.locksTableName, entities.PendingLockID(requestID, providerID), &lock)
	if err != nil || !found {
		return entities.PriceAdjustment{}, err
	}
	a, err := r.GetByID(ctx, lock.AdjustmentID)
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	if !a.IsPending() {
		return entities.PriceAdjustment{}, nil
	}
	return a, nil
}

func (r *PriceAdjustmentDynamoRepository) ListByRequestID(ctx context.Context, requestID string) ([]entities.PriceAdjustment, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		IndexName:                 aws.String(adjustmentsRequestIDIndex),
		KeyConditionExpression:    aws.String("request_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":rid": strAttr(requestID)},
		ScanIndexForward:          aws.Bool(false),
	})
}

func (r *PriceAdjustmentDynamoRepository) ListPendingByClientID(ctx context.Context, clientID string) ([]entities.PriceAdjustment, error) {
	return r.query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(adjustmentsClientIDIndex),
		KeyConditionExpression: aws.String("client_id = :cid"),
		FilterExpression:       aws.String("#status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cid":     strAttr(clientID),
			":pending": strAttr(string(entities.AdjustmentStatusPending)),
		},
		ScanIndexForward: aws.Bool(false),
	})
}

func (r *PriceAdjustmentDynamoRepository) query(ctx context.Context, input *dynamodb.QueryInput) ([]entities.PriceAdjustment, error) {
	items, err := queryAll[adjustmentItem](ctx, r.ddb, input)
	if err != nil {
		return nil, err
	}
	out := make([]entities.PriceAdjustment, 0, len(items))
	for _, it := range items {
		out = append(out, fromAdjustmentItem(it))
	}
	return out, nil
}

// Accept writes the whole resolution as one transaction:
//   - the request takes the winning provider and price and becomes accepted,
//     provided its adjustments_count still matches the siblings given
//   - the winner becomes accepted
//   - siblings are deleted, or rejected as superseded when pending or accepted
//   - every pending slot of the request involved is freed
//
// Any failed precondition cancels everything and yields ErrConditionFailed.
func (r *PriceAdjustmentDynamoRepository) Accept(ctx context.Context, in interfaces.AdjustmentAcceptance) error {
	a := in.Adjustment
	at := formatTime(in.ResolvedAt)

	siblings := make([]entities.PriceAdjustment, 0, len(in.Siblings))
	seenIDs := map[string]bool{a.ID: true}
	for _, sib := range in.Siblings {
		if seenIDs[sib.ID] {
			continue
		}
		seenIDs[sib.ID] = true
		siblings = append(siblings, sib)
	}

	requestExpr := "SET #provider_id = :provider_id, #provider_name = :provider_name, #price_final = :price_final, #accepted_adjustment_id = :adjustment_id, #status = :accepted, #updated_at = :at"
	if in.Policy != entities.SiblingPolicyReject {
		requestExpr += ", #adjustments_count = :one"
	}
	items := []types.TransactWriteItem{
		{Update: &types.Update{
			TableName:           aws.String(r.requestsTable),
			Key:                 idKey(a.RequestID),
			ConditionExpression: aws.String("attribute_exists(#id) AND #status IN (:pending, :accepted) AND #adjustments_count = :count"),
			UpdateExpression:    aws.String(requestExpr),
			ExpressionAttributeNames: map[string]string{
				"#id":                     "id",
				"#status":                 "status",
				"#provider_id":            "provider_id",
				"#provider_name":          "provider_name",
				"#price_final":            "price_final",
				"#accepted_adjustment_id": "accepted_adjustment_id",
				"#adjustments_count":      adjustmentsCountAttr,
				"#updated_at":             "updated_at",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":pending":       strAttr(string(entities.RequestStatusPending)),
				":accepted":      strAttr(string(entities.RequestStatusAccepted)),
				":provider_id":   strAttr(a.ProviderID),
				":provider_name": strAttr(a.ProviderName),
				":price_final":   numAttr(a.NewPrice),
				":adjustment_id": strAttr(a.ID),
				":count":         numAttr(float64(1 + len(siblings))),
				":at":            strAttr(at),
			},
		}},
		r.resolveUpdate(a.ID, entities.AdjustmentStatusAccepted, "", at, entities.AdjustmentStatusPending),
	}
	if in.Policy != entities.SiblingPolicyReject {
		items[0].Update.ExpressionAttributeValues[":one"] = numAttr(1)
	}

	lockIDs := []string{entities.PendingLockID(a.RequestID, a.ProviderID)}
	seen := map[string]bool{lockIDs[0]: true}
	for _, sib := range siblings {
		if in.Policy == entities.SiblingPolicyReject {
			if sib.Status != entities.AdjustmentStatusPending && sib.Status != entities.AdjustmentStatusAccepted {
				continue
			}
			items = append(items, r.resolveUpdate(sib.ID, entities.AdjustmentStatusRejected, entities.SupersededReason, at,
				entities.AdjustmentStatusPending, entities.AdjustmentStatusAccepted))
		} else {
			items = append(items, types.TransactWriteItem{Delete: &types.Delete{
				TableName: aws.String(r.tableName),
				Key:       idKey(sib.ID),
			}})
		}
		if lockID := entities.PendingLockID(sib.RequestID, sib.ProviderID); sib.IsPending() && !seen[lockID] {
			seen[lockID] = true
			lockIDs = append(lockIDs, lockID)
		}
	}
	for _, lockID := range lockIDs {
		items = append(items, r.lockDelete(lockID))
	}
	if len(items) > maxTransactItems {
		return interfaces.ErrTooManyAdjustments
	}

	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		if transactionConditionFailed(err, -1) {
			return interfaces.ErrConditionFailed
		}
		return err
	}
	return nil
}

// Reject closes a pending adjustment and frees its slot in one transaction.
func (r *PriceAdjustmentDynamoRepository) Reject(ctx context.Context, a entities.PriceAdjustment, reason string, at time.Time) error {
	_, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			r.resolveUpdate(a.ID, entities.AdjustmentStatusRejected, reason, formatTime(at), entities.AdjustmentStatusPending),
			r.lockDelete(entities.PendingLockID(a.RequestID, a.ProviderID)),
		},
	})
	if err != nil {
		if transactionConditionFailed(err, -1) {
			return interfaces.ErrConditionFailed
		}
		return err
	}
	return nil
}

// resolveUpdate moves an adjustment currently in one of the from statuses to
// a terminal status.
func (r *PriceAdjustmentDynamoRepository) resolveUpdate(id string, status entities.AdjustmentStatus, reason, at string, from ...entities.AdjustmentStatus) types.TransactWriteItem {
	expr := "SET #status = :status, #resolved_at = :at"
	names := map[string]string{
		"#id":          "id",
		"#status":      "status",
		"#resolved_at": "resolved_at",
	}
	values := map[string]types.AttributeValue{
		":status": strAttr(string(status)),
		":at":     strAttr(at),
	}
	condition := "attribute_exists(#id) AND #status = :from0"
	if len(from) > 1 {
		placeholders := make([]string, 0, len(from))
		for i := range from {
			placeholders = append(placeholders, fmt.Sprintf(":from%d", i))
		}
		condition = "attribute_exists(#id) AND #status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	for i, st := range from {
		values[fmt.Sprintf(":from%d", i)] = strAttr(string(st))
	}
	if reason != "" {
		expr += ", #reason = :reason"
		names["#reason"] = "reason"
		values[":reason"] = strAttr(reason)
	}
	return types.TransactWriteItem{Update: &types.Update{
		TableName:                 aws.String(r.tableName),
		Key:                       idKey(id),
		ConditionExpression:       aws.String(condition),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	}}
}

func (r *PriceAdjustmentDynamoRepository) lockDelete(lockID string) types.TransactWriteItem {
	return types.TransactWriteItem{Delete: &types.Delete{
		TableName: aws.String(r.locksTableName),
		Key:       idKey(lockID),
	}}
}

func toAdjustmentItem(a entities.PriceAdjustment) adjustmentItem {
	it := adjustmentItem{
		ID:            a.ID,
		RequestID:     a.RequestID,
		ClientID:      a.ClientID,
		ProviderID:    a.ProviderID,
		ProviderName:  a.ProviderName,
		OriginalPrice: a.OriginalPrice,
		NewPrice:      a.NewPrice,
		Justification: a.Justification,
		Photos:        a.Photos,
		Videos:        a.Videos,
		Status:        string(a.Status),
		Reason:        a.Reason,
		CreatedAt:     formatTime(a.CreatedAt),
	}
	if it.Photos == nil {
		it.Photos = []string{}
	}
	if it.Videos == nil {
		it.Videos = []string{}
	}
	if a.ResolvedAt != nil {
		it.ResolvedAt = formatTime(*a.ResolvedAt)
	}
	return it
}

func fromAdjustmentItem(it adjustmentItem) entities.PriceAdjustment {
	a := entities.PriceAdjustment{
		ID:            it.ID,
		RequestID:     it.RequestID,
		ClientID:      it.ClientID,
		ProviderID:    it.ProviderID,
		ProviderName:  it.ProviderName,
		OriginalPrice: it.OriginalPrice,
		NewPrice:      it.NewPrice,
		Justification: it.Justification,
		Photos:        it.Photos,
		Videos:        it.Videos,
		Status:        entities.AdjustmentStatus(it.Status),
		Reason:        it.Reason,
		CreatedAt:     parseTime(it.CreatedAt),
	}
	if it.ResolvedAt != "" {
		resolved := parseTime(it.ResolvedAt)
		a.ResolvedAt = &resolved
	}
	return a
}
