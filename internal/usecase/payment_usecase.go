package usecase

import (
	"context"
	"errors"
	"fmt"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/session"
	"jardin_services/internal/usecase/interfaces"
	"log"
	"math"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const paymentCallbackPath = "/v1/payments/callback"

var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrInvalidCheckoutID = errors.New("invalid checkout id")
)

// PaymentSettings holds what the bridge needs to build a checkout.
type PaymentSettings struct {
	Currency      string
	PublicBaseURL string
}

// IPaymentUseCase is the payment bridge between an accepted negotiation and
// the external payment gateway.
//
// RequestPayment opens a checkout for the final price. ConfirmPayment is the
// only path that moves an accepted request to in_progress, and only after the
// gateway reports the payment as approved.
type IPaymentUseCase interface {
	RequestPayment(ctx context.Context, requestID, adjustmentID string, amount float64) (entities.Payment, error)
	ConfirmPayment(ctx context.Context, checkoutID string) (bool, error)
	GetLatestByRequest(ctx context.Context, s session.Session, requestID string) (entities.Payment, error)
}

type PaymentUseCase struct {
	repo           interfaces.IPaymentRepository
	requestRepo    interfaces.IRequestRepository
	adjustmentRepo interfaces.IPriceAdjustmentRepository
	gateway        interfaces.IPaymentGateway
	notifier       interfaces.INotifier
	settings       PaymentSettings
	now            func() time.Time
	newID          func() string
}

var _ IPaymentUseCase = (*PaymentUseCase)(nil)

func NewPaymentUseCase(
	repo interfaces.IPaymentRepository,
	requestRepo interfaces.IRequestRepository,
	adjustmentRepo interfaces.IPriceAdjustmentRepository,
	gateway interfaces.IPaymentGateway,
	notifier interfaces.INotifier,
	settings PaymentSettings,
) *PaymentUseCase {
	settings.PublicBaseURL = strings.TrimRight(settings.PublicBaseURL, "/")
	return &PaymentUseCase{
		repo:           repo,
		requestRepo:    requestRepo,
		adjustmentRepo: adjustmentRepo,
		gateway:        gateway,
		notifier:       notifier,
		settings:       settings,
		now:            func() time.Time { return time.Now().UTC() },
		newID:          uuid.NewString,
	}
}

// RequestPayment opens a checkout for amount and stores it as a pending
// payment. Nothing is persisted when the gateway fails.
func (u *PaymentUseCase) RequestPayment(ctx context.Context, requestID, adjustmentID string, amount float64) (entities.Payment, error) {
	log.Printf("[payment][usecase] request-payment start request_id=%q adjustment_id=%q amount=%.2f", requestID, adjustmentID, amount)
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return entities.Payment{}, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}
	if u.gateway == nil {
		log.Printf("[payment][usecase] gateway not configured request_id=%s", requestID)
		return entities.Payment{}, fmt.Errorf("%w: gateway not configured", ErrPaymentGateway)
	}
	r, err := loadRequest(ctx, u.requestRepo, requestID)
	if err != nil {
		return entities.Payment{}, err
	}
	adjustmentID = strings.TrimSpace(adjustmentID)

	id := u.newID()
	callback := url.Values{}
	callback.Set("request_id", r.ID)
	callback.Set("reference", id)
	if adjustmentID != "" {
		callback.Set("adjustment_id", adjustmentID)
	}
	callbackURL := u.settings.PublicBaseURL + paymentCallbackPath + "?" + callback.Encode()

	checkout, err := u.gateway.CreateCheckout(ctx, interfaces.CheckoutRequest{
		Reference:   id,
		Title:       r.Title,
		Description: fmt.Sprintf("Prestation %s", r.ID),
		Amount:      roundAmount(amount),
		Currency:    u.settings.Currency,
		SuccessURL:  callbackURL,
		FailureURL:  callbackURL,
	})
	if err != nil {
		log.Printf("[payment][usecase] checkout failed request_id=%s err=%v", r.ID, err)
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}

	now := u.now()
	p := entities.Payment{
		ID:              id,
		RequestID:       r.ID,
		AdjustmentID:    adjustmentID,
		Amount:          roundAmount(amount),
		Currency:        u.settings.Currency,
		CheckoutID:      checkout.CheckoutID,
		RedirectURL:     checkout.RedirectURL,
		Status:          entities.PaymentStatusPending,
		ProviderPayload: checkout.Raw,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[payment][usecase] payment repository create failed request_id=%s payment_id=%s err=%v", r.ID, p.ID, err)
		return entities.Payment{}, err
	}
	log.Printf("[payment][usecase] request-payment success request_id=%s payment_id=%s checkout_id=%s", r.ID, created.ID, created.CheckoutID)
	return created, nil
}

// ConfirmPayment asks the gateway whether checkoutID was paid. Only an
// approved payment finalizes the request; anything else leaves it unchanged.
// Repeated confirmations of the same payment are harmless.
func (u *PaymentUseCase) ConfirmPayment(ctx context.Context, checkoutID string) (bool, error) {
	checkoutID = strings.TrimSpace(checkoutID)
	if checkoutID == "" {
		return false, ErrInvalidCheckoutID
	}
	if u.gateway == nil {
		return false, fmt.Errorf("%w: gateway not configured", ErrPaymentGateway)
	}
	log.Printf("[payment][usecase] confirm start checkout_id=%s", checkoutID)

	gp, err := u.gateway.GetPayment(ctx, checkoutID)
	if err != nil {
		log.Printf("[payment][usecase] gateway lookup failed checkout_id=%s err=%v", checkoutID, err)
		return false, fmt.Errorf("%w: %v", ErrPaymentGateway, err)
	}
	if !gp.IsPaid() {
		log.Printf("[payment][usecase] not paid checkout_id=%s provider_status=%s", checkoutID, gp.Status)
		return false, nil
	}

	p, err := u.repo.GetByID(ctx, strings.TrimSpace(gp.ExternalReference))
	if err != nil {
		return false, err
	}
	if p.ID == "" {
		log.Printf("[payment][usecase] unknown external reference checkout_id=%s reference=%q", checkoutID, gp.ExternalReference)
		return false, ErrPaymentNotFound
	}
	if gp.Amount > 0 && math.Abs(gp.Amount-p.Amount) > 0.005 {
		log.Printf("[payment][usecase] amount mismatch payment_id=%s expected=%.2f paid=%.2f", p.ID, p.Amount, gp.Amount)
		return false, fmt.Errorf("%w: paid amount %.2f does not match %.2f", ErrPaymentGateway, gp.Amount, p.Amount)
	}

	r, err := loadRequest(ctx, u.requestRepo, p.RequestID)
	if err != nil {
		return false, err
	}
	if p.AdjustmentID != "" {
		a, err := u.adjustmentRepo.GetByID(ctx, p.AdjustmentID)
		if err != nil {
			return false, err
		}
		if a.ID == "" || a.Status != entities.AdjustmentStatusAccepted || r.PriceFinal != a.NewPrice {
			log.Printf("[payment][usecase] adjustment no longer accepted payment_id=%s adjustment_id=%s", p.ID, p.AdjustmentID)
			return false, fmt.Errorf("%w: adjustment %s is no longer the accepted one", ErrStaleProposal, p.AdjustmentID)
		}
	}

	switch r.Status {
	case entities.RequestStatusAccepted:
		if _, err := advanceRequestStatus(ctx, u.requestRepo, r, entities.RequestStatusInProgress); err != nil {
			return false, err
		}
	case entities.RequestStatusInProgress, entities.RequestStatusCompleted:
		log.Printf("[payment][usecase] request already finalized request_id=%s status=%s", r.ID, r.Status)
	default:
		return false, fmt.Errorf("%w: cannot finalize payment on a %s request", ErrInvalidTransition, r.Status)
	}

	if p.Status != entities.PaymentStatusApproved {
		if _, err := u.repo.MarkApproved(ctx, p.ID, gp.ID, gp.Status, gp.Raw); err != nil {
			log.Printf("[payment][usecase] mark approved failed payment_id=%s err=%v", p.ID, err)
			return false, err
		}
	}
	log.Printf("[payment][usecase] confirm success payment_id=%s request_id=%s provider_payment_id=%s", p.ID, r.ID, gp.ID)

	for _, recipient := range []string{r.ClientID, r.ProviderID} {
		notify(ctx, u.notifier, entities.Notification{
			Type:         entities.NotificationPaymentConfirmed,
			RecipientID:  recipient,
			RequestID:    r.ID,
			AdjustmentID: p.AdjustmentID,
			Message:      "Paiement confirmé, la mission peut commencer",
		})
	}
	return true, nil
}

// GetLatestByRequest returns the most recent checkout of a request.
func (u *PaymentUseCase) GetLatestByRequest(ctx context.Context, s session.Session, requestID string) (entities.Payment, error) {
	if !s.Valid() {
		return entities.Payment{}, ErrUnauthenticated
	}
	r, err := loadRequest(ctx, u.requestRepo, requestID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !s.IsAdmin() && r.ClientID != s.UserID && !r.HasProvider(s.UserID) {
		return entities.Payment{}, ErrForbidden
	}

	payments, err := u.repo.ListByRequestID(ctx, r.ID)
	if err != nil {
		return entities.Payment{}, err
	}
	if len(payments) == 0 {
		return entities.Payment{}, ErrPaymentNotFound
	}
	latest := payments[0]
	for _, p := range payments[1:] {
		if p.CreatedAt.After(latest.CreatedAt) {
			latest = p
		}
	}
	return latest, nil
}

func roundAmount(v float64) float64 {
	return math.Round(v*100) / 100
}
