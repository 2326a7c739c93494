package interfaces

import (
	"context"
	"jardin_services/internal/domain/entities"
)

// CheckoutRequest describes a one-off priced checkout.
type CheckoutRequest struct {
	Reference   string
	Title       string
	Description string
	Amount      float64
	Currency    string
	SuccessURL  string
	FailureURL  string
}

// IPaymentGateway abstracts external payment providers (e.g. Mercado Pago).
//
// CreateCheckout opens a checkout session and returns where to redirect the
// payer. GetPayment reads back a payment delivered on the success callback.
type IPaymentGateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (entities.Checkout, error)
	GetPayment(ctx context.Context, paymentID string) (entities.GatewayPayment, error)
}
