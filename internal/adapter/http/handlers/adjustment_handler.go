package handlers

import (
	"errors"
	"log"
	"net/http"

	request "jardin_services/internal/adapter/http/dto/request"
	response "jardin_services/internal/adapter/http/dto/response"
	"jardin_services/internal/adapter/http/middleware"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase"

	"github.com/gin-gonic/gin"
)

// AdjustmentHandler handles price adjustment proposals and their resolution.
type AdjustmentHandler struct {
	adjustments usecase.IPriceAdjustmentUseCase
	negotiation usecase.INegotiationUseCase
}

func NewAdjustmentHandler(adjustments usecase.IPriceAdjustmentUseCase, negotiation usecase.INegotiationUseCase) *AdjustmentHandler {
	return &AdjustmentHandler{adjustments: adjustments, negotiation: negotiation}
}

// ProposeAdjustment accepts either a JSON body or a multipart form with the
// JSON in "payload" and photos/videos in "evidence".
func (h *AdjustmentHandler) ProposeAdjustment(c *gin.Context) {
	s := middleware.SessionFrom(c)
	requestID := c.Param("id")
	log.Printf("[adjustment][handler] propose start request_id=%s provider_id=%s", requestID, s.UserID)

	var payload request.ProposeAdjustmentPayload
	var evidence []entities.EvidenceFile
	if isMultipart(c) {
		if err := request.BindJSONField(c.PostForm(payloadField), &payload); err != nil {
			log.Printf("[adjustment][handler] invalid payload request_id=%s err=%v", requestID, err)
			writeAppError(c, errInvalidPayload)
			return
		}
		files, err := readEvidence(c)
		if err != nil {
			log.Printf("[adjustment][handler] invalid evidence request_id=%s err=%v", requestID, err)
			writeAppError(c, errInvalidPayload)
			return
		}
		evidence = files
	} else if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[adjustment][handler] invalid payload request_id=%s err=%v", requestID, err)
		writeAppError(c, errInvalidPayload)
		return
	}

	created, err := h.adjustments.Propose(c.Request.Context(), s, payload.ToInput(requestID), evidence)
	if err != nil {
		log.Printf("[adjustment][handler] propose failed request_id=%s err=%v", requestID, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromAdjustment(created))
}

func (h *AdjustmentHandler) ListAdjustments(c *gin.Context) {
	items, err := h.adjustments.ListByRequest(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAdjustments(items))
}

func (h *AdjustmentHandler) GetAdjustment(c *gin.Context) {
	a, err := h.adjustments.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAdjustment(a))
}

// ListPendingNotifications returns every adjustment awaiting the client's decision.
func (h *AdjustmentHandler) ListPendingNotifications(c *gin.Context) {
	items, err := h.adjustments.ListPendingForClient(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAdjustments(items))
}

// AcceptAdjustment answers 200 with the checkout redirect, or 202 when the
// acceptance was committed but the checkout could not be opened.
func (h *AdjustmentHandler) AcceptAdjustment(c *gin.Context) {
	s := middleware.SessionFrom(c)
	adjustmentID := c.Param("id")
	log.Printf("[negotiation][handler] accept start adjustment_id=%s client_id=%s", adjustmentID, s.UserID)

	result, err := h.negotiation.Accept(c.Request.Context(), s, adjustmentID)
	if err != nil {
		if errors.Is(err, usecase.ErrPaymentGateway) && result.Request.ID != "" {
			log.Printf("[negotiation][handler] accepted without checkout adjustment_id=%s err=%v", adjustmentID, err)
			body := response.FromAcceptance(result.Request, result.Adjustment, result.Payment)
			httpErr := mapDomainError(err).ToHTTPError()
			body.PaymentError = &httpErr
			c.JSON(http.StatusAccepted, body)
			return
		}
		log.Printf("[negotiation][handler] accept failed adjustment_id=%s err=%v", adjustmentID, err)
		writeError(c, err)
		return
	}
	log.Printf("[negotiation][handler] accept success adjustment_id=%s request_id=%s payment_id=%s", adjustmentID, result.Request.ID, result.Payment.ID)
	c.JSON(http.StatusOK, response.FromAcceptance(result.Request, result.Adjustment, result.Payment))
}

func (h *AdjustmentHandler) RejectAdjustment(c *gin.Context) {
	var payload request.RejectAdjustmentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	adjustmentID := c.Param("id")
	rejected, err := h.negotiation.Reject(c.Request.Context(), middleware.SessionFrom(c), adjustmentID, payload.Reason)
	if err != nil {
		log.Printf("[negotiation][handler] reject failed adjustment_id=%s err=%v", adjustmentID, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromAdjustment(rejected))
}
