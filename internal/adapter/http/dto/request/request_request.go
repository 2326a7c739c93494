package request

import (
	"errors"
	"strings"

	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase"

	"github.com/gin-gonic/gin/binding"
)

var (
	ErrEmptyPayload = errors.New("payload is empty")
)

type CoordinatesPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type LocationPayload struct {
	Address     string             `json:"address" binding:"required"`
	Coordinates CoordinatesPayload `json:"coordinates"`
}

type EcoOptionsPayload struct {
	CertificateRequested bool `json:"certificate_requested"`
	EcoFriendlyMethods   bool `json:"eco_friendly_methods"`
}

// CreateRequestPayload is the JSON a client posts to open a request, either as
// the body or as the "payload" field of a multipart form carrying evidence.
// Server-assigned fields are not accepted.
type CreateRequestPayload struct {
	Title         string            `json:"title" binding:"required"`
	Category      string            `json:"category" binding:"required"`
	Description   string            `json:"description" binding:"required"`
	Location      LocationPayload   `json:"location" binding:"required"`
	Surface       float64           `json:"surface" binding:"gte=0"`
	Urgency       string            `json:"urgency" binding:"required"`
	IsExpress     bool              `json:"is_express"`
	EcoOptions    EcoOptionsPayload `json:"eco_options"`
	PriceOriginal float64           `json:"price_original" binding:"required"`
}

func (p CreateRequestPayload) ToInput() usecase.CreateRequestInput {
	return usecase.CreateRequestInput{
		Title:       p.Title,
		Category:    p.Category,
		Description: p.Description,
		Location: entities.Location{
			Address: p.Location.Address,
			Coordinates: entities.Coordinates{
				Lat: p.Location.Coordinates.Lat,
				Lng: p.Location.Coordinates.Lng,
			},
		},
		Surface:   p.Surface,
		Urgency:   entities.Urgency(strings.ToLower(strings.TrimSpace(p.Urgency))),
		IsExpress: p.IsExpress,
		EcoOptions: entities.EcoOptions{
			CertificateRequested: p.EcoOptions.CertificateRequested,
			EcoFriendlyMethods:   p.EcoOptions.EcoFriendlyMethods,
		},
		PriceOriginal: p.PriceOriginal,
	}
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r UpdateStatusRequest) ResolveStatus() (entities.RequestStatus, error) {
	return entities.ParseRequestStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

type RateRequest struct {
	Rating int `json:"rating" binding:"required"`
}

// BindJSONField decodes and validates a JSON document received as a form
// field.
func BindJSONField(raw string, out any) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyPayload
	}
	return binding.JSON.BindBody([]byte(raw), out)
}
