package memory

import (
	"context"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"
	"time"
)

// maxAcceptanceItems mirrors the size limit of a DynamoDB transaction.
const maxAcceptanceItems = 100

type PriceAdjustmentRepository struct {
	s *Store
}

var _ interfaces.IPriceAdjustmentRepository = (*PriceAdjustmentRepository)(nil)

func (r *PriceAdjustmentRepository) Create(_ context.Context, a entities.PriceAdjustment) (entities.PriceAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.adjustments[a.ID]; ok {
		return entities.PriceAdjustment{}, errDuplicateID
	}
	if req, ok := r.s.requests[a.RequestID]; !ok || !req.Status.IsOpenForNegotiation() {
		return entities.PriceAdjustment{}, interfaces.ErrConditionFailed
	}
	lockID := entities.PendingLockID(a.RequestID, a.ProviderID)
	if a.IsPending() {
		if _, taken := r.s.locks[lockID]; taken {
			return entities.PriceAdjustment{}, interfaces.ErrPendingAdjustmentExists
		}
		r.s.locks[lockID] = a.ID
	}
	r.s.adjustments[a.ID] = cloneAdjustment(a)
	return a, nil
}

func (r *PriceAdjustmentRepository) GetByID(_ context.Context, id string) (entities.PriceAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return cloneAdjustment(r.s.adjustments[id]), nil
}

func (r *PriceAdjustmentRepository) FindPending(_ context.Context, requestID, providerID string) (entities.PriceAdjustment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, a := range r.s.adjustments {
		if a.RequestID == requestID && a.ProviderID == providerID && a.IsPending() {
			return cloneAdjustment(a), nil
		}
	}
	return entities.PriceAdjustment{}, nil
}

func (r *PriceAdjustmentRepository) ListByRequestID(_ context.Context, requestID string) ([]entities.PriceAdjustment, error) {
	return r.list(func(a entities.PriceAdjustment) bool { return a.RequestID == requestID }), nil
}

func (r *PriceAdjustmentRepository) ListPendingByClientID(_ context.Context, clientID string) ([]entities.PriceAdjustment, error) {
	return r.list(func(a entities.PriceAdjustment) bool { return a.ClientID == clientID && a.IsPending() }), nil
}

func (r *PriceAdjustmentRepository) list(match func(entities.PriceAdjustment) bool) []entities.PriceAdjustment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items := make([]entities.PriceAdjustment, 0)
	for _, a := range r.s.adjustments {
		if match(a) {
			items = append(items, cloneAdjustment(a))
		}
	}
	newestFirst(items, func(a entities.PriceAdjustment) int64 { return a.CreatedAt.UnixNano() })
	return items
}

// Accept checks every precondition before touching anything, so either the
// whole acceptance is applied or nothing is. Siblings are read from the store
// under the lock; acceptance.Siblings is not trusted.
func (r *PriceAdjustmentRepository) Accept(_ context.Context, in interfaces.AdjustmentAcceptance) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	target, ok := r.s.adjustments[in.Adjustment.ID]
	if !ok || !target.IsPending() {
		return interfaces.ErrConditionFailed
	}
	req, ok := r.s.requests[target.RequestID]
	if !ok || !req.Status.IsOpenForNegotiation() {
		return interfaces.ErrConditionFailed
	}
	var siblings []entities.PriceAdjustment
	for _, a := range r.s.adjustments {
		if a.RequestID == target.RequestID && a.ID != target.ID {
			siblings = append(siblings, a)
		}
	}
	if 2+2*len(siblings) > maxAcceptanceItems {
		return interfaces.ErrTooManyAdjustments
	}

	at := in.ResolvedAt
	req.ProviderID = target.ProviderID
	req.ProviderName = target.ProviderName
	req.PriceFinal = target.NewPrice
	req.AcceptedAdjustmentID = target.ID
	req.Status = entities.RequestStatusAccepted
	req.UpdatedAt = at
	r.s.requests[req.ID] = req

	target.Status = entities.AdjustmentStatusAccepted
	target.ResolvedAt = &at
	r.s.adjustments[target.ID] = target
	delete(r.s.locks, entities.PendingLockID(target.RequestID, target.ProviderID))

	for _, sib := range siblings {
		if sib.IsPending() {
			delete(r.s.locks, entities.PendingLockID(sib.RequestID, sib.ProviderID))
		}
		if in.Policy != entities.SiblingPolicyReject {
			delete(r.s.adjustments, sib.ID)
			continue
		}
		if sib.IsPending() || sib.Status == entities.AdjustmentStatusAccepted {
			sib.Status = entities.AdjustmentStatusRejected
			sib.Reason = entities.SupersededReason
			sib.ResolvedAt = &at
			r.s.adjustments[sib.ID] = sib
		}
	}
	return nil
}

func (r *PriceAdjustmentRepository) Reject(_ context.Context, a entities.PriceAdjustment, reason string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.adjustments[a.ID]
	if !ok || !stored.IsPending() {
		return interfaces.ErrConditionFailed
	}
	stored.Status = entities.AdjustmentStatusRejected
	stored.Reason = reason
	stored.ResolvedAt = &at
	r.s.adjustments[stored.ID] = stored
	delete(r.s.locks, entities.PendingLockID(stored.RequestID, stored.ProviderID))
	return nil
}
