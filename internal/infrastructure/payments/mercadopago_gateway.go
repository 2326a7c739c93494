package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

const mockPaymentPrefix = "mock-"

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidPaymentID = errors.New("invalid mercado pago payment id")

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

type paymentGetter interface {
	Get(ctx context.Context, id int) (*payment.Response, error)
}

// MercadoPagoGateway opens Checkout Pro preferences and reads back payments.
//
// In mock mode no call leaves the process: the checkout redirects straight to
// the success URL with a mock payment id, and every mock payment is approved.
type MercadoPagoGateway struct {
	preferences preferenceCreator
	payments    paymentGetter
	sandbox     bool
	mockMode    bool
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mockMode bool) (*MercadoPagoGateway, error) {
	if mockMode {
		log.Printf("[payment][gateway] mock mode enabled")
		return &MercadoPagoGateway{mockMode: true}, nil
	}

	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		log.Printf("[payment][gateway] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Printf("[payment][gateway] failed creating sdk config err=%v", err)
		return nil, err
	}
	log.Printf("[payment][gateway] Mercado Pago client initialized")

	return &MercadoPagoGateway{
		preferences: preference.NewClient(cfg),
		payments:    payment.NewClient(cfg),
		sandbox:     strings.HasPrefix(accessToken, "TEST-"),
	}, nil
}

func (g *MercadoPagoGateway) CreateCheckout(ctx context.Context, req interfaces.CheckoutRequest) (entities.Checkout, error) {
	if g != nil && g.mockMode {
		return mockCheckout(req)
	}
	if g == nil || g.preferences == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.Checkout{}, ErrMercadoPagoGatewayNotConfigured
	}
	log.Printf("[payment][gateway] create preference start reference=%s amount=%.2f currency=%s", req.Reference, req.Amount, req.Currency)

	resp, err := g.preferences.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				ID:          req.Reference,
				Title:       req.Title,
				Description: req.Description,
				Quantity:    1,
				UnitPrice:   req.Amount,
				CurrencyID:  req.Currency,
			},
		},
		BackURLs: &preference.BackURLsRequest{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.FailureURL,
		},
		AutoReturn:        "approved",
		ExternalReference: req.Reference,
	})
	if err != nil {
		log.Printf("[payment][gateway] sdk preference create failed reference=%s err=%v", req.Reference, err)
		return entities.Checkout{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.Checkout{}, err
	}
	redirect := resp.InitPoint
	if g.sandbox && resp.SandboxInitPoint != "" {
		redirect = resp.SandboxInitPoint
	}
	log.Printf("[payment][gateway] create preference success reference=%s preference_id=%s", req.Reference, resp.ID)

	return entities.Checkout{CheckoutID: resp.ID, RedirectURL: redirect, Raw: raw}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (entities.GatewayPayment, error) {
	paymentID = strings.TrimSpace(paymentID)
	if g != nil && g.mockMode {
		return mockPayment(paymentID)
	}
	if g == nil || g.payments == nil {
		log.Printf("[payment][gateway] gateway not configured")
		return entities.GatewayPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	id, err := strconv.Atoi(paymentID)
	if err != nil {
		return entities.GatewayPayment{}, fmt.Errorf("%w: %q", ErrInvalidPaymentID, paymentID)
	}
	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		log.Printf("[payment][gateway] sdk payment get failed payment_id=%d err=%v", id, err)
		return entities.GatewayPayment{}, err
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		log.Printf("[payment][gateway] response marshal failed err=%v", err)
		return entities.GatewayPayment{}, err
	}
	log.Printf("[payment][gateway] payment get success payment_id=%d status=%s reference=%s", resp.ID, resp.Status, resp.ExternalReference)

	return entities.GatewayPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
		Amount:            resp.TransactionAmount,
		Raw:               raw,
	}, nil
}

func mockCheckout(req interfaces.CheckoutRequest) (entities.Checkout, error) {
	log.Printf("[payment][gateway] mock create preference start reference=%s amount=%.2f", req.Reference, req.Amount)

	paymentID := mockPaymentPrefix + req.Reference
	redirect, err := url.Parse(req.SuccessURL)
	if err != nil {
		return entities.Checkout{}, err
	}
	q := redirect.Query()
	q.Set("payment_id", paymentID)
	q.Set("status", "approved")
	q.Set("external_reference", req.Reference)
	redirect.RawQuery = q.Encode()

	checkoutID := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	raw, err := json.Marshal(map[string]any{
		"id":                 checkoutID,
		"external_reference": req.Reference,
		"init_point":         redirect.String(),
		"date_created":       time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return entities.Checkout{}, err
	}
	log.Printf("[payment][gateway] mock create preference success preference_id=%s", checkoutID)
	return entities.Checkout{CheckoutID: checkoutID, RedirectURL: redirect.String(), Raw: raw}, nil
}

// mockPayment approves any payment id minted by mockCheckout; the reference
// is carried in the id itself.
func mockPayment(paymentID string) (entities.GatewayPayment, error) {
	reference, ok := strings.CutPrefix(paymentID, mockPaymentPrefix)
	if !ok || reference == "" {
		return entities.GatewayPayment{}, fmt.Errorf("%w: %q", ErrInvalidPaymentID, paymentID)
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	raw, err := json.Marshal(map[string]any{
		"id":                 paymentID,
		"status":             "approved",
		"status_detail":      "accredited",
		"external_reference": reference,
		"date_approved":      now,
	})
	if err != nil {
		return entities.GatewayPayment{}, err
	}
	log.Printf("[payment][gateway] mock payment get success payment_id=%s status=approved", paymentID)
	return entities.GatewayPayment{ID: paymentID, Status: "approved", ExternalReference: reference, Raw: raw}, nil
}
