package usecase

import "errors"

// Domain errors shared by the negotiation components. Usecases wrap them with
// %w to add detail; handlers match them with errors.Is.
var (
	ErrValidation            = errors.New("validation error")
	ErrDuplicateProposal     = errors.New("an adjustment is already awaiting decision")
	ErrJustificationTooShort = errors.New("justification too short")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrStaleProposal         = errors.New("adjustment changed concurrently")
	ErrAlreadyResolved       = errors.New("adjustment already resolved")
	ErrStorage               = errors.New("evidence storage error")
	ErrPaymentGateway        = errors.New("payment gateway error")
	ErrPaymentPending        = errors.New("payment not confirmed yet")
	ErrForbidden             = errors.New("forbidden")
	ErrUnauthenticated       = errors.New("unauthenticated")
)
