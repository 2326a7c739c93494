package response

import (
	"jardin_services/internal/domain/entities"
	"jardin_services/pkg"
	"time"
)

type AdjustmentResponse struct {
	AdjustmentID  string     `json:"adjustment_id"`
	RequestID     string     `json:"request_id"`
	ClientID      string     `json:"client_id"`
	ProviderID    string     `json:"provider_id"`
	ProviderName  string     `json:"provider_name"`
	OriginalPrice float64    `json:"original_price"`
	NewPrice      float64    `json:"new_price"`
	Justification string     `json:"justification"`
	Photos        []string   `json:"photos"`
	Videos        []string   `json:"videos"`
	Status        string     `json:"status"`
	Reason        string     `json:"reason,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	ResolvedAt    *time.Time `json:"resolved_at,omitempty"`
}

func FromAdjustment(a entities.PriceAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		AdjustmentID:  a.ID,
		RequestID:     a.RequestID,
		ClientID:      a.ClientID,
		ProviderID:    a.ProviderID,
		ProviderName:  a.ProviderName,
		OriginalPrice: a.OriginalPrice,
		NewPrice:      a.NewPrice,
		Justification: a.Justification,
		Photos:        nonNil(a.Photos),
		Videos:        nonNil(a.Videos),
		Status:        string(a.Status),
		Reason:        a.Reason,
		CreatedAt:     a.CreatedAt,
		ResolvedAt:    a.ResolvedAt,
	}
}

func FromAdjustments(items []entities.PriceAdjustment) []AdjustmentResponse {
	out := make([]AdjustmentResponse, 0, len(items))
	for _, a := range items {
		out = append(out, FromAdjustment(a))
	}
	return out
}

// AcceptAdjustmentResponse is returned once an adjustment is accepted. When
// the checkout could not be opened Payment is nil and PaymentError explains
// why; the acceptance itself stands.
type AcceptAdjustmentResponse struct {
	Request      RequestResponse    `json:"request"`
	Adjustment   AdjustmentResponse `json:"adjustment"`
	Payment      *PaymentResponse   `json:"payment,omitempty"`
	RedirectURL  string             `json:"redirect_url,omitempty"`
	PaymentError *pkg.HTTPError     `json:"payment_error,omitempty"`
}

func FromAcceptance(r entities.Request, a entities.PriceAdjustment, p entities.Payment) AcceptAdjustmentResponse {
	out := AcceptAdjustmentResponse{
		Request:    FromRequest(r),
		Adjustment: FromAdjustment(a),
	}
	if p.ID != "" {
		pr := FromPayment(p)
		out.Payment = &pr
		out.RedirectURL = p.RedirectURL
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
