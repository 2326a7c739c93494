package usecase

import (
	"context"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"
	"log"
	"time"
)

// notify is fire-and-forget: a delivery failure is logged and never fails
// the operation that triggered it.
func notify(ctx context.Context, notifier interfaces.INotifier, n entities.Notification) {
	if notifier == nil || n.RecipientID == "" {
		return
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if err := notifier.Notify(ctx, n); err != nil {
		log.Printf("[notification][usecase] notify failed type=%s recipient_id=%s err=%v", n.Type, n.RecipientID, err)
	}
}
