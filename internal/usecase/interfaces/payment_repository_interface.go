package interfaces

import (
	"context"
	"encoding/json"
	"jardin_services/internal/domain/entities"
)

// IPaymentRepository abstracts persistence for checkout records.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.Payment, error)
	MarkApproved(ctx context.Context, id, providerPaymentID, providerStatus string, payload json.RawMessage) (entities.Payment, error)
}
