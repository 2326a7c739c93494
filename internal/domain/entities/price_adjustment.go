package entities

import (
	"strings"
	"time"
	"unicode/utf8"
)

// AdjustmentStatus is the negotiation state of a price adjustment.
// pending is initial; accepted and rejected are terminal.
type AdjustmentStatus string

const (
	AdjustmentStatusPending  AdjustmentStatus = "pending"
	AdjustmentStatusAccepted AdjustmentStatus = "accepted"
	AdjustmentStatusRejected AdjustmentStatus = "rejected"
)

const (
	// MinJustificationLength applies to proposals raising the price.
	MinJustificationLength = 20
	// MinRejectionReasonLength applies to every rejection.
	MinRejectionReasonLength = 10

	// SupersededReason is recorded on siblings rejected by an acceptance.
	SupersededReason = "superseded"
)

// SiblingPolicy decides what happens to the other adjustments of a request
// once one of them is accepted.
type SiblingPolicy string

const (
	SiblingPolicyDelete SiblingPolicy = "delete"
	SiblingPolicyReject SiblingPolicy = "reject"
)

func ParseSiblingPolicy(s string) SiblingPolicy {
	if SiblingPolicy(strings.ToLower(strings.TrimSpace(s))) == SiblingPolicyReject {
		return SiblingPolicyReject
	}
	return SiblingPolicyDelete
}

// PriceAdjustment is a provider's counter-proposal on a request price.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (request_id-index): request_id / created_at
//   - GSI (client_id-index): client_id / created_at
//
// At most one pending adjustment may exist per (request, provider). The
// constraint is held by a lock item written in the same transaction.
type PriceAdjustment struct {
	ID            string           `json:"id"`
	RequestID     string           `json:"request_id"`
	ClientID      string           `json:"client_id"`
	ProviderID    string           `json:"provider_id"`
	ProviderName  string           `json:"provider_name"`
	OriginalPrice float64          `json:"original_price"`
	NewPrice      float64          `json:"new_price"`
	Justification string           `json:"justification"`
	Photos        []string         `json:"photos"`
	Videos        []string         `json:"videos"`
	Status        AdjustmentStatus `json:"status"`
	Reason        string           `json:"reason,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	ResolvedAt    *time.Time       `json:"resolved_at,omitempty"`
}

func (a PriceAdjustment) IsPending() bool {
	return a.Status == AdjustmentStatusPending
}

// RaisesPrice is true when the proposal asks for more than the original price.
func (a PriceAdjustment) RaisesPrice() bool {
	return a.NewPrice > a.OriginalPrice
}

// TrimmedLength counts the characters of s once surrounding spaces are removed.
func TrimmedLength(s string) int {
	return utf8.RuneCountInString(strings.TrimSpace(s))
}

// PendingLockID identifies the pending-proposal slot of a provider on a request.
func PendingLockID(requestID, providerID string) string {
	return "pending#" + requestID + "#" + providerID
}
