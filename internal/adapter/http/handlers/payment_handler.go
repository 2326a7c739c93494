package handlers

import (
	"log"
	"net/http"
	"strings"

	response "jardin_services/internal/adapter/http/dto/response"
	"jardin_services/internal/adapter/http/middleware"
	"jardin_services/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PaymentHandler handles checkout confirmation and payment lookups.
type PaymentHandler struct {
	usecase usecase.IPaymentUseCase
}

func NewPaymentHandler(uc usecase.IPaymentUseCase) *PaymentHandler {
	return &PaymentHandler{usecase: uc}
}

// Callback is the gateway back URL. Mercado Pago appends payment_id (or
// collection_id on older flows) to the URL we registered.
func (h *PaymentHandler) Callback(c *gin.Context) {
	checkoutID := strings.TrimSpace(c.Query("payment_id"))
	if checkoutID == "" {
		checkoutID = strings.TrimSpace(c.Query("collection_id"))
	}
	requestID := c.Query("request_id")
	log.Printf("[payment][handler] callback start request_id=%s checkout_id=%s status=%s", requestID, checkoutID, c.Query("status"))

	h.confirm(c, checkoutID, requestID)
}

// ConfirmPayment lets a client re-check a checkout it already paid.
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	h.confirm(c, c.Param("checkout_id"), "")
}

func (h *PaymentHandler) confirm(c *gin.Context, checkoutID, requestID string) {
	paid, err := h.usecase.ConfirmPayment(c.Request.Context(), checkoutID)
	if err != nil {
		log.Printf("[payment][handler] confirm failed checkout_id=%s err=%v", checkoutID, err)
		writeError(c, err)
		return
	}
	log.Printf("[payment][handler] confirm done checkout_id=%s paid=%t", checkoutID, paid)
	c.JSON(http.StatusOK, response.ConfirmPaymentResponse{CheckoutID: checkoutID, RequestID: requestID, Paid: paid})
}

// GetPaymentByRequest returns the latest checkout of a request.
func (h *PaymentHandler) GetPaymentByRequest(c *gin.Context) {
	requestID := c.Param("id")
	p, err := h.usecase.GetLatestByRequest(c.Request.Context(), middleware.SessionFrom(c), requestID)
	if err != nil {
		log.Printf("[payment][handler] get-by-request failed request_id=%s err=%v", requestID, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}
