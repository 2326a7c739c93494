package interfaces

import (
	"context"
	"jardin_services/internal/domain/entities"
	"time"
)

// AdjustmentAcceptance is everything written by one acceptance: the parent
// request moves to accepted with the winning price, the winner is accepted and
// every sibling is removed (or rejected as superseded).
//
// Siblings is the caller's read of the other adjustments of the request. An
// adjustment added after that read is either resolved with the others or makes
// the acceptance fail with ErrConditionFailed; it never stays pending.
type AdjustmentAcceptance struct {
	Adjustment entities.PriceAdjustment
	Siblings   []entities.PriceAdjustment
	Policy     entities.SiblingPolicy
	ResolvedAt time.Time
}

// IPriceAdjustmentRepository abstracts persistence for price adjustments.
//
// Create, Accept and Reject are atomic multi-item writes:
//   - Create claims the pending slot of (request, provider) with the item and
//     fails with ErrConditionFailed once the request is closed.
//   - Accept updates the request, the winner and the siblings together.
//   - Reject flips the adjustment and frees the pending slot together.
type IPriceAdjustmentRepository interface {
	Create(ctx context.Context, a entities.PriceAdjustment) (entities.PriceAdjustment, error)
	GetByID(ctx context.Context, id string) (entities.PriceAdjustment, error)
	FindPending(ctx context.Context, requestID, providerID string) (entities.PriceAdjustment, error)
	ListByRequestID(ctx context.Context, requestID string) ([]entities.PriceAdjustment, error)
	ListPendingByClientID(ctx context.Context, clientID string) ([]entities.PriceAdjustment, error)
	Accept(ctx context.Context, acceptance AdjustmentAcceptance) error
	Reject(ctx context.Context, a entities.PriceAdjustment, reason string, at time.Time) error
}
