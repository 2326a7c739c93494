package interfaces

import (
	"context"
	"jardin_services/internal/domain/entities"
)

// RatingField selects which side of a completed request is rated.
type RatingField string

const (
	RatingByClient   RatingField = "client_rate"
	RatingByProvider RatingField = "provider_rate"
)

// IRequestRepository abstracts persistence for service requests.
//
// Lookups return a zero Request when nothing matches. Conditional updates
// return a zero Request when the id is unknown and ErrConditionFailed when the
// stored status is not the expected one.
type IRequestRepository interface {
	Create(ctx context.Context, r entities.Request) (entities.Request, error)
	GetByID(ctx context.Context, id string) (entities.Request, error)
	ListByClientID(ctx context.Context, clientID string) ([]entities.Request, error)
	ListByStatus(ctx context.Context, status entities.RequestStatus) ([]entities.Request, error)
	UpdateStatus(ctx context.Context, id string, from, to entities.RequestStatus) (entities.Request, error)
	AssignProvider(ctx context.Context, id, providerID, providerName string) (entities.Request, error)
	SetRating(ctx context.Context, id string, field RatingField, rating int) (entities.Request, error)
}
