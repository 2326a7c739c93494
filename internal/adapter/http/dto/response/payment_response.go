package response

import (
	"encoding/json"
	"jardin_services/internal/domain/entities"
	"time"
)

type PaymentResponse struct {
	PaymentID         string    `json:"payment_id"`
	RequestID         string    `json:"request_id"`
	AdjustmentID      string    `json:"adjustment_id,omitempty"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	CheckoutID        string    `json:"checkout_id"`
	RedirectURL       string    `json:"redirect_url"`
	Status            string    `json:"status"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	ProviderStatus    string    `json:"provider_status,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	ProviderPayloadRaw string                 `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]interface{} `json:"provider_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	res := PaymentResponse{
		PaymentID:          p.ID,
		RequestID:          p.RequestID,
		AdjustmentID:       p.AdjustmentID,
		Amount:             p.Amount,
		Currency:           p.Currency,
		CheckoutID:         p.CheckoutID,
		RedirectURL:        p.RedirectURL,
		Status:             string(p.Status),
		ProviderPaymentID:  p.ProviderPaymentID,
		ProviderStatus:     p.ProviderStatus,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
		ProviderPayloadRaw: string(p.ProviderPayload),
	}
	if len(p.ProviderPayload) > 0 {
		var parsed map[string]interface{}
		if err := json.Unmarshal(p.ProviderPayload, &parsed); err == nil {
			res.ProviderPayload = parsed
		}
	}
	return res
}

type ConfirmPaymentResponse struct {
	CheckoutID string `json:"checkout_id"`
	RequestID  string `json:"request_id,omitempty"`
	Paid       bool   `json:"paid"`
}

type SessionResponse struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}
