package payments

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"jardin_services/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
)

type fakePreferences struct {
	got  preference.Request
	resp *preference.Response
	err  error
}

func (f *fakePreferences) Create(_ context.Context, request preference.Request) (*preference.Response, error) {
	f.got = request
	return f.resp, f.err
}

type fakePayments struct {
	gotID int
	resp  *payment.Response
	err   error
}

func (f *fakePayments) Get(_ context.Context, id int) (*payment.Response, error) {
	f.gotID = id
	return f.resp, f.err
}

func checkoutRequest() interfaces.CheckoutRequest {
	return interfaces.CheckoutRequest{
		Reference:  "pay-1",
		Title:      "Tonte pelouse",
		Amount:     85,
		Currency:   "EUR",
		SuccessURL: "http://localhost:8080/v1/payments/callback?request_id=req-1",
		FailureURL: "http://localhost:8080/v1/payments/callback?request_id=req-1",
	}
}

func TestNewMercadoPagoGateway(t *testing.T) {
	if _, err := NewMercadoPagoGateway(" ", false); !errors.Is(err, ErrMissingMercadoPagoAccessToken) {
		t.Fatalf("expected ErrMissingMercadoPagoAccessToken, got %v", err)
	}
	g, err := NewMercadoPagoGateway("", true)
	if err != nil || !g.mockMode {
		t.Fatalf("expected mock gateway, got %+v err=%v", g, err)
	}
}

func TestMercadoPagoGateway_CreateCheckout(t *testing.T) {
	prefs := &fakePreferences{resp: &preference.Response{ID: "pref-1", InitPoint: "https://mp/checkout", SandboxInitPoint: "https://sandbox.mp/checkout"}}
	g := &MercadoPagoGateway{preferences: prefs}

	c, err := g.CreateCheckout(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.CheckoutID != "pref-1" || c.RedirectURL != "https://mp/checkout" || len(c.Raw) == 0 {
		t.Fatalf("unexpected checkout: %+v", c)
	}
	if prefs.got.ExternalReference != "pay-1" || len(prefs.got.Items) != 1 || prefs.got.Items[0].UnitPrice != 85 {
		t.Fatalf("unexpected preference request: %+v", prefs.got)
	}
	if prefs.got.BackURLs == nil || prefs.got.BackURLs.Success == "" {
		t.Fatalf("expected back urls")
	}

	g.sandbox = true
	c, _ = g.CreateCheckout(context.Background(), checkoutRequest())
	if c.RedirectURL != "https://sandbox.mp/checkout" {
		t.Fatalf("expected sandbox redirect, got %q", c.RedirectURL)
	}
}

func TestMercadoPagoGateway_CreateCheckoutErrors(t *testing.T) {
	g := &MercadoPagoGateway{}
	if _, err := g.CreateCheckout(context.Background(), checkoutRequest()); !errors.Is(err, ErrMercadoPagoGatewayNotConfigured) {
		t.Fatalf("expected ErrMercadoPagoGatewayNotConfigured, got %v", err)
	}

	g = &MercadoPagoGateway{preferences: &fakePreferences{err: errors.New("unauthorized")}}
	if _, err := g.CreateCheckout(context.Background(), checkoutRequest()); err == nil {
		t.Fatalf("expected sdk error")
	}
}

func TestMercadoPagoGateway_GetPayment(t *testing.T) {
	pays := &fakePayments{resp: &payment.Response{ID: 123, Status: "approved", ExternalReference: "pay-1", TransactionAmount: 85}}
	g := &MercadoPagoGateway{payments: pays}

	gp, err := g.GetPayment(context.Background(), " 123 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pays.gotID != 123 || gp.ID != "123" || !gp.IsPaid() || gp.ExternalReference != "pay-1" || gp.Amount != 85 {
		t.Fatalf("unexpected payment: %+v", gp)
	}

	if _, err := g.GetPayment(context.Background(), "abc"); !errors.Is(err, ErrInvalidPaymentID) {
		t.Fatalf("expected ErrInvalidPaymentID, got %v", err)
	}
}

func TestMercadoPagoGateway_MockRoundTrip(t *testing.T) {
	g, _ := NewMercadoPagoGateway("", true)

	c, err := g.CreateCheckout(context.Background(), checkoutRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	redirect, err := url.Parse(c.RedirectURL)
	if err != nil {
		t.Fatalf("redirect is not a url: %v", err)
	}
	q := redirect.Query()
	if q.Get("request_id") != "req-1" || q.Get("payment_id") != "mock-pay-1" {
		t.Fatalf("unexpected redirect %q", c.RedirectURL)
	}

	gp, err := g.GetPayment(context.Background(), q.Get("payment_id"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !gp.IsPaid() || gp.ExternalReference != "pay-1" {
		t.Fatalf("unexpected mock payment: %+v", gp)
	}

	if _, err := g.GetPayment(context.Background(), "123"); !errors.Is(err, ErrInvalidPaymentID) {
		t.Fatalf("expected ErrInvalidPaymentID for foreign id, got %v", err)
	}
}
