package interfaces

import "errors"

var (
	// ErrConditionFailed is returned when a conditional write lost against a
	// concurrent change (status precondition no longer holds).
	ErrConditionFailed = errors.New("condition failed")
	// ErrPendingAdjustmentExists is returned when the (request, provider)
	// pending slot is already taken.
	ErrPendingAdjustmentExists = errors.New("pending adjustment already exists")
	// ErrTooManyAdjustments is returned when an acceptance would touch more
	// items than a single atomic batch allows.
	ErrTooManyAdjustments = errors.New("too many adjustments for one atomic batch")
)
