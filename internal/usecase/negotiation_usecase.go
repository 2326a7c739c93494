package usecase

import (
	"context"
	"errors"
	"fmt"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase/interfaces"
	"log"
	"strings"
	"time"
)

// AcceptResult is what the client gets back after accepting an adjustment.
// Payment is zero when no checkout could be opened.
type AcceptResult struct {
	Request    entities.Request
	Adjustment entities.PriceAdjustment
	Payment    entities.Payment
}

// INegotiationUseCase resolves pending adjustments on behalf of the client.
//
// Accept commits the winning price, the assignment of the provider and the
// removal of the competing proposals in one write, then opens a checkout.
// The request only reaches in_progress once that checkout is paid.
type INegotiationUseCase interface {
	Accept(ctx context.Context, s session.Session, adjustmentID string) (AcceptResult, error)
	Reject(ctx context.Context, s session.Session, adjustmentID, reason string) (entities.PriceAdjustment, error)
}

type NegotiationUseCase struct {
	repo        interfaces.IPriceAdjustmentRepository
	requestRepo interfaces.IRequestRepository
	payments    IPaymentUseCase
	notifier    interfaces.INotifier
	policy      entities.SiblingPolicy
	now         func() time.Time
}

var _ INegotiationUseCase = (*NegotiationUseCase)(nil)

func NewNegotiationUseCase(
	repo interfaces.IPriceAdjustmentRepository,
	requestRepo interfaces.IRequestRepository,
	payments IPaymentUseCase,
	notifier interfaces.INotifier,
	policy entities.SiblingPolicy,
) *NegotiationUseCase {
	if policy == "" {
		policy = entities.SiblingPolicyDelete
	}
	return &NegotiationUseCase{
		repo:        repo,
		requestRepo: requestRepo,
		payments:    payments,
		notifier:    notifier,
		policy:      policy,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Accept makes adjustmentID the agreed price of its request.
//
// When the checkout cannot be opened the acceptance is kept and the error is
// returned along with the committed request and adjustment.
func (u *NegotiationUseCase) Accept(ctx context.Context, s session.Session, adjustmentID string) (AcceptResult, error) {
	if err := requireRole(s, session.RoleClient); err != nil {
		return AcceptResult{}, err
	}
	a, err := loadAdjustment(ctx, u.repo, adjustmentID)
	if err != nil {
		return AcceptResult{}, err
	}
	log.Printf("[negotiation][usecase] accept start adjustment_id=%s request_id=%s client_id=%s", a.ID, a.RequestID, s.UserID)

	r, err := loadRequest(ctx, u.requestRepo, a.RequestID)
	if err != nil {
		return AcceptResult{}, err
	}
	if r.ClientID != s.UserID {
		return AcceptResult{}, ErrForbidden
	}
	if !a.IsPending() {
		log.Printf("[negotiation][usecase] adjustment not pending adjustment_id=%s status=%s", a.ID, a.Status)
		return AcceptResult{}, fmt.Errorf("%w: adjustment %s is %s", ErrStaleProposal, a.ID, a.Status)
	}
	if !r.Status.IsOpenForNegotiation() {
		return AcceptResult{}, fmt.Errorf("%w: request %s is %s", ErrInvalidTransition, r.ID, r.Status)
	}

	all, err := u.repo.ListByRequestID(ctx, r.ID)
	if err != nil {
		return AcceptResult{}, err
	}
	siblings := make([]entities.PriceAdjustment, 0, len(all))
	for _, other := range all {
		if other.ID != a.ID {
			siblings = append(siblings, other)
		}
	}

	resolvedAt := u.now()
	err = u.repo.Accept(ctx, interfaces.AdjustmentAcceptance{
		Adjustment: a,
		Siblings:   siblings,
		Policy:     u.policy,
		ResolvedAt: resolvedAt,
	})
	if errors.Is(err, interfaces.ErrConditionFailed) {
		log.Printf("[negotiation][usecase] accept lost race adjustment_id=%s request_id=%s", a.ID, r.ID)
		return AcceptResult{}, fmt.Errorf("%w: adjustment %s or request %s changed", ErrStaleProposal, a.ID, r.ID)
	}
	if err != nil {
		log.Printf("[negotiation][usecase] accept write failed adjustment_id=%s err=%v", a.ID, err)
		return AcceptResult{}, err
	}

	a.Status = entities.AdjustmentStatusAccepted
	a.ResolvedAt = &resolvedAt
	updated, err := loadRequest(ctx, u.requestRepo, r.ID)
	if err != nil {
		return AcceptResult{}, err
	}
	log.Printf("[negotiation][usecase] accept committed adjustment_id=%s request_id=%s price_final=%.2f siblings=%d policy=%s", a.ID, r.ID, updated.PriceFinal, len(siblings), u.policy)

	notify(ctx, u.notifier, entities.Notification{
		Type:         entities.NotificationAdjustmentAccepted,
		RecipientID:  a.ProviderID,
		RequestID:    r.ID,
		AdjustmentID: a.ID,
		Message:      fmt.Sprintf("Votre proposition à %.2f a été acceptée", a.NewPrice),
	})

	result := AcceptResult{Request: updated, Adjustment: a}
	if a.NewPrice <= 0 || u.payments == nil {
		return result, nil
	}
	p, err := u.payments.RequestPayment(ctx, r.ID, a.ID, a.NewPrice)
	if err != nil {
		log.Printf("[negotiation][usecase] payment request failed adjustment_id=%s err=%v", a.ID, err)
		return result, err
	}
	result.Payment = p
	return result, nil
}

// Reject closes a pending adjustment with the client's reason. The parent
// request is left untouched.
func (u *NegotiationUseCase) Reject(ctx context.Context, s session.Session, adjustmentID, reason string) (entities.PriceAdjustment, error) {
	if err := requireRole(s, session.RoleClient); err != nil {
		return entities.PriceAdjustment{}, err
	}
	reason = strings.TrimSpace(reason)
	if entities.TrimmedLength(reason) < entities.MinRejectionReasonLength {
		return entities.PriceAdjustment{}, fmt.Errorf("%w: rejection reason needs at least %d characters", ErrValidation, entities.MinRejectionReasonLength)
	}
	a, err := loadAdjustment(ctx, u.repo, adjustmentID)
	if err != nil {
		return entities.PriceAdjustment{}, err
	}
	if a.ClientID != s.UserID {
		return entities.PriceAdjustment{}, ErrForbidden
	}
	if !a.IsPending() {
		return entities.PriceAdjustment{}, fmt.Errorf("%w: adjustment %s is %s", ErrAlreadyResolved, a.ID, a.Status)
	}

	at := u.now()
	err = u.repo.Reject(ctx, a, reason, at)
	if errors.Is(err, interfaces.ErrConditionFailed) {
		return entities.PriceAdjustment{}, fmt.Errorf("%w: adjustment %s changed", ErrAlreadyResolved, a.ID)
	}
	if err != nil {
		log.Printf("[negotiation][usecase] reject write failed adjustment_id=%s err=%v", a.ID, err)
		return entities.PriceAdjustment{}, err
	}
	a.Status = entities.AdjustmentStatusRejected
	a.Reason = reason
	a.ResolvedAt = &at
	log.Printf("[negotiation][usecase] reject success adjustment_id=%s request_id=%s", a.ID, a.RequestID)

	notify(ctx, u.notifier, entities.Notification{
		Type:         entities.NotificationAdjustmentRejected,
		RecipientID:  a.ProviderID,
		RequestID:    a.RequestID,
		AdjustmentID: a.ID,
		Message:      "Votre proposition a été refusée : " + reason,
	})
	return a, nil
}
