package memory

import (
	"context"
	"encoding/json"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"
	"time"
)

type PaymentRepository struct {
	s *Store
}

var _ interfaces.IPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(_ context.Context, p entities.Payment) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.payments[p.ID]; ok {
		return entities.Payment{}, errDuplicateID
	}
	r.s.payments[p.ID] = p
	return p, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.payments[id], nil
}

func (r *PaymentRepository) ListByRequestID(_ context.Context, requestID string) ([]entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]entities.Payment, 0)
	for _, p := range r.s.payments {
		if p.RequestID == requestID {
			items = append(items, p)
		}
	}
	newestFirst(items, func(p entities.Payment) int64 { return p.CreatedAt.UnixNano() })
	return items, nil
}

func (r *PaymentRepository) MarkApproved(_ context.Context, id, providerPaymentID, providerStatus string, payload json.RawMessage) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return entities.Payment{}, nil
	}
	p.Status = entities.PaymentStatusApproved
	p.ProviderPaymentID = providerPaymentID
	p.ProviderStatus = providerStatus
	if len(payload) > 0 {
		p.ProviderPayload = payload
	}
	p.UpdatedAt = time.Now().UTC()
	r.s.payments[id] = p
	return p, nil
}
