package interfaces

import (
	"context"
	"jardin_services/internal/domain/entities"
)

// INotifier delivers user feedback. Callers never fail an operation because
// a notification could not be sent.
type INotifier interface {
	Notify(ctx context.Context, n entities.Notification) error
}
