package entities

import "time"

type NotificationType string

const (
	NotificationAdjustmentProposed NotificationType = "adjustment.proposed"
	NotificationAdjustmentAccepted NotificationType = "adjustment.accepted"
	NotificationAdjustmentRejected NotificationType = "adjustment.rejected"
	NotificationPaymentConfirmed   NotificationType = "payment.confirmed"
)

// Notification is fire-and-forget user feedback.
type Notification struct {
	Type         NotificationType `json:"type"`
	RecipientID  string           `json:"recipient_id"`
	RequestID    string           `json:"request_id"`
	AdjustmentID string           `json:"adjustment_id,omitempty"`
	Message      string           `json:"message"`
	CreatedAt    time.Time        `json:"created_at"`
}
