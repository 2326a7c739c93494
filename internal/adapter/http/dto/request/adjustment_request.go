package request

import (
	"strings"

	"jardin_services/internal/usecase"
)

// ProposeAdjustmentPayload is a provider's counter-proposal. NewPrice is a
// pointer so that an explicit 0 is told apart from a missing field.
type ProposeAdjustmentPayload struct {
	ClientID      string   `json:"client_id"`
	NewPrice      *float64 `json:"new_price" binding:"required"`
	Justification string   `json:"justification"`
}

func (p ProposeAdjustmentPayload) ToInput(requestID string) usecase.ProposeAdjustmentInput {
	in := usecase.ProposeAdjustmentInput{
		RequestID:     strings.TrimSpace(requestID),
		ClientID:      strings.TrimSpace(p.ClientID),
		Justification: p.Justification,
	}
	if p.NewPrice != nil {
		in.NewPrice = *p.NewPrice
	}
	return in
}

type RejectAdjustmentRequest struct {
	Reason string `json:"reason" binding:"required"`
}
