package entities

import (
	"fmt"
	"time"
)

// RequestStatus represents the lifecycle of a service request.
//
// Valid status graph:
//
//	pending ──► accepted ──► in_progress ──► completed
//	   │            │              │
//	   └────────────┴──────────────┴──────► cancelled
//
// completed and cancelled are terminal states.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "pending"
	RequestStatusAccepted   RequestStatus = "accepted"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestStatusPending:    {RequestStatusAccepted, RequestStatusCancelled},
	RequestStatusAccepted:   {RequestStatusInProgress, RequestStatusCancelled},
	RequestStatusInProgress: {RequestStatusCompleted, RequestStatusCancelled},
	// completed and cancelled have no outgoing transitions
}

// ParseRequestStatus converts a raw string to a RequestStatus.
func ParseRequestStatus(s string) (RequestStatus, error) {
	st := RequestStatus(s)
	switch st {
	case RequestStatusPending, RequestStatusAccepted, RequestStatusInProgress, RequestStatusCompleted, RequestStatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("unknown request status %q", s)
}

// CanTransitionTo reports whether moving from s to next is permitted.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RequestStatus) IsTerminal() bool {
	return s == RequestStatusCompleted || s == RequestStatusCancelled
}

// IsOpenForNegotiation is true while no payment has been confirmed for the request.
func (s RequestStatus) IsOpenForNegotiation() bool {
	return s == RequestStatusPending || s == RequestStatusAccepted
}

type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

type Coordinates struct {
	Lat float64 `json:"lat" dynamodbav:"lat" validate:"min=-90,max=90"`
	Lng float64 `json:"lng" dynamodbav:"lng" validate:"min=-180,max=180"`
}

type Location struct {
	Address     string      `json:"address" dynamodbav:"address" validate:"required"`
	Coordinates Coordinates `json:"coordinates" dynamodbav:"coordinates"`
}

type EcoOptions struct {
	CertificateRequested bool `json:"certificate_requested" dynamodbav:"certificate_requested"`
	EcoFriendlyMethods   bool `json:"eco_friendly_methods" dynamodbav:"eco_friendly_methods"`
}

// Request is a client's posted job.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (client_id-index): client_id / created_at
//   - GSI (status-index): status / created_at
//
// PriceOriginal is fixed at creation. PriceFinal starts equal to it and only
// changes when a price adjustment is accepted, which also records
// AcceptedAdjustmentID.
type Request struct {
	ID                   string        `json:"id"`
	ClientID             string        `json:"client_id"`
	ProviderID           string        `json:"provider_id,omitempty"`
	ProviderName         string        `json:"provider_name,omitempty"`
	Title                string        `json:"title"`
	Category             string        `json:"category"`
	Description          string        `json:"description"`
	Location             Location      `json:"location"`
	Surface              float64       `json:"surface"`
	Urgency              Urgency       `json:"urgency"`
	IsExpress            bool          `json:"is_express"`
	EcoOptions           EcoOptions    `json:"eco_options"`
	Evidence             []string      `json:"evidence"`
	PriceOriginal        float64       `json:"price_original"`
	PriceFinal           float64       `json:"price_final"`
	// AcceptedAdjustmentID is empty for requests taken at their original price.
	AcceptedAdjustmentID string        `json:"accepted_adjustment_id,omitempty"`
	Status               RequestStatus `json:"status"`
	ClientRate           *int          `json:"client_rate,omitempty"`
	ProviderRate         *int          `json:"provider_rate,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// HasProvider reports whether the request was assigned to providerID.
func (r Request) HasProvider(providerID string) bool {
	return r.ProviderID != "" && r.ProviderID == providerID
}
