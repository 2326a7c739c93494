package entities

import (
	"encoding/json"
	"time"
)

// PaymentStatus represents the checkout outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusRejected PaymentStatus = "rejected"
)

// Payment is the checkout record persisted for a request.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (request_id-index): request_id
//
// ID is sent to the gateway as external_reference so that a confirmed payment
// can be traced back to its request and adjustment.
// ProviderPayload keeps the raw gateway response for traceability/audit.
type Payment struct {
	ID                string          `json:"id"`
	RequestID         string          `json:"request_id"`
	AdjustmentID      string          `json:"adjustment_id,omitempty"`
	Amount            float64         `json:"amount"`
	Currency          string          `json:"currency"`
	CheckoutID        string          `json:"checkout_id"`
	RedirectURL       string          `json:"redirect_url"`
	Status            PaymentStatus   `json:"status"`
	ProviderPaymentID string          `json:"provider_payment_id,omitempty"`
	ProviderStatus    string          `json:"provider_status,omitempty"`
	ProviderPayload   json.RawMessage `json:"provider_payload,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// Checkout is what the gateway returns when a checkout session is opened.
type Checkout struct {
	CheckoutID  string
	RedirectURL string
	Raw         json.RawMessage
}

// GatewayPayment is the gateway view of a single payment.
type GatewayPayment struct {
	ID                string
	Status            string
	ExternalReference string
	Amount            float64
	Raw               json.RawMessage
}

// IsPaid reports whether the gateway accredited the payment.
func (p GatewayPayment) IsPaid() bool {
	return p.Status == "approved"
}
