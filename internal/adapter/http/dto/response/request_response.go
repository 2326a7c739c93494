package response

import (
	"jardin_services/internal/domain/entities"
	"time"
)

type RequestResponse struct {
	RequestID            string              `json:"request_id"`
	ClientID             string              `json:"client_id"`
	ProviderID           string              `json:"provider_id,omitempty"`
	ProviderName         string              `json:"provider_name,omitempty"`
	Title                string              `json:"title"`
	Category             string              `json:"category"`
	Description          string              `json:"description"`
	Location             entities.Location   `json:"location"`
	Surface              float64             `json:"surface"`
	Urgency              string              `json:"urgency"`
	IsExpress            bool                `json:"is_express"`
	EcoOptions           entities.EcoOptions `json:"eco_options"`
	Evidence             []string            `json:"evidence"`
	PriceOriginal        float64             `json:"price_original"`
	PriceFinal           float64             `json:"price_final"`
	AcceptedAdjustmentID string              `json:"accepted_adjustment_id,omitempty"`
	Status               string              `json:"status"`
	ClientRate           *int                `json:"client_rate,omitempty"`
	ProviderRate         *int                `json:"provider_rate,omitempty"`
	CreatedAt            time.Time           `json:"created_at"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

func FromRequest(r entities.Request) RequestResponse {
	evidence := r.Evidence
	if evidence == nil {
		evidence = []string{}
	}
	return RequestResponse{
		RequestID:            r.ID,
		ClientID:             r.ClientID,
		ProviderID:           r.ProviderID,
		ProviderName:         r.ProviderName,
		Title:                r.Title,
		Category:             r.Category,
		Description:          r.Description,
		Location:             r.Location,
		Surface:              r.Surface,
		Urgency:              string(r.Urgency),
		IsExpress:            r.IsExpress,
		EcoOptions:           r.EcoOptions,
		Evidence:             evidence,
		PriceOriginal:        r.PriceOriginal,
		PriceFinal:           r.PriceFinal,
		AcceptedAdjustmentID: r.AcceptedAdjustmentID,
		Status:               string(r.Status),
		ClientRate:           r.ClientRate,
		ProviderRate:         r.ProviderRate,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromRequests(items []entities.Request) []RequestResponse {
	out := make([]RequestResponse, 0, len(items))
	for _, r := range items {
		out = append(out, FromRequest(r))
	}
	return out
}
