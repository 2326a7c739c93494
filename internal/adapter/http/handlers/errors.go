package handlers

import (
	"errors"
	"net/http"

	"jardin_services/internal/usecase"
	"jardin_services/internal/usecase/interfaces"
	"jardin_services/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Requête invalide", http.StatusBadRequest)
)

// mapDomainError translates usecase errors into the API error envelope.
func mapDomainError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Session invalide, veuillez vous reconnecter", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Action non autorisée", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidRequestID), errors.Is(err, usecase.ErrInvalidAdjustmentID), errors.Is(err, usecase.ErrInvalidCheckoutID):
		return pkg.NewDomainError("INVALID_REQUEST", "Identifiant invalide", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrValidation):
		return pkg.NewDomainError("VALIDATION_ERROR", "Données invalides, vérifiez le formulaire", err, http.StatusBadRequest)
	case errors.Is(err, usecase.ErrJustificationTooShort):
		return pkg.NewDomainError("JUSTIFICATION_TOO_SHORT", "La justification doit contenir au moins 20 caractères", err, http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrRequestNotFound):
		return pkg.NewDomainErrorSimple("REQUEST_NOT_FOUND", "Demande introuvable", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAdjustmentNotFound):
		return pkg.NewDomainErrorSimple("ADJUSTMENT_NOT_FOUND", "Proposition introuvable", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Paiement introuvable", http.StatusNotFound)
	case errors.Is(err, usecase.ErrDuplicateProposal):
		return pkg.NewDomainError("DUPLICATE_PROPOSAL", "Vous avez déjà une proposition en attente pour cette demande", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrRequestClosed):
		return pkg.NewDomainError("REQUEST_CLOSED", "Cette demande n'accepte plus de propositions", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", "Changement de statut impossible", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrStaleProposal):
		return pkg.NewDomainError("STALE_PROPOSAL", "Cette proposition n'est plus d'actualité", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrAlreadyResolved):
		return pkg.NewDomainError("ALREADY_RESOLVED", "Cette proposition a déjà été traitée", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrStorage):
		return pkg.NewDomainError("STORAGE_ERROR", "Échec de l'envoi des fichiers, veuillez réessayer", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentPending):
		return pkg.NewDomainError("PAYMENT_PENDING", "Le paiement de cette demande n'est pas encore confirmé", err, http.StatusConflict)
	case errors.Is(err, interfaces.ErrTooManyAdjustments):
		return pkg.NewDomainError("TOO_MANY_ADJUSTMENTS", "Trop de propositions sur cette demande pour l'accepter en une fois", err, http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentGateway):
		return pkg.NewDomainError("PAYMENT_GATEWAY_ERROR", "Le service de paiement est indisponible", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "Une erreur interne est survenue", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, err error) {
	appErr := mapDomainError(err)
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func writeAppError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
