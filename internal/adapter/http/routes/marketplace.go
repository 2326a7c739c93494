package routes

import (
	"net/http"

	"jardin_services/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPing          = "/ping"
	PathSession       = "/session"
	PathRequests      = "/requests"
	PathAdjustments   = "/adjustments"
	PathNotifications = "/notifications"
	PathPayments      = "/payments"
	PathObjects       = "/objects"
)

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET(PathPing, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}

func addSessionRoutes(rg *gin.RouterGroup, h *handlers.SessionHandler) {
	rg.POST(PathSession+"/refresh", h.Refresh)
}

func addRequestRoutes(rg *gin.RouterGroup, requestHandler *handlers.RequestHandler, adjustmentHandler *handlers.AdjustmentHandler, paymentHandler *handlers.PaymentHandler) {
	requests := rg.Group(PathRequests)
	{
		requests.POST("", requestHandler.CreateRequest)
		requests.GET("", requestHandler.ListMine)
		requests.GET("/open", requestHandler.ListOpen)
		requests.GET("/:id", requestHandler.GetRequest)
		requests.PATCH("/:id/status", requestHandler.UpdateStatus)
		requests.POST("/:id/accept", requestHandler.AcceptRequest)
		requests.POST("/:id/rating", requestHandler.RateRequest)

		requests.POST("/:id/adjustments", adjustmentHandler.ProposeAdjustment)
		requests.GET("/:id/adjustments", adjustmentHandler.ListAdjustments)

		requests.GET("/:id/payment", paymentHandler.GetPaymentByRequest)
	}
}

func addAdjustmentRoutes(rg *gin.RouterGroup, h *handlers.AdjustmentHandler) {
	adjustments := rg.Group(PathAdjustments)
	{
		adjustments.GET("/:id", h.GetAdjustment)
		adjustments.POST("/:id/accept", h.AcceptAdjustment)
		adjustments.POST("/:id/reject", h.RejectAdjustment)
	}
	rg.GET(PathNotifications+PathAdjustments, h.ListPendingNotifications)
}

// addPaymentCallbackRoute is public: the gateway redirects the payer's
// browser here without our session header.
func addPaymentCallbackRoute(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	rg.GET(PathPayments+"/callback", h.Callback)
}

func addPaymentRoutes(rg *gin.RouterGroup, h *handlers.PaymentHandler) {
	rg.POST(PathPayments+"/:checkout_id/confirm", h.ConfirmPayment)
}

func addObjectRoutes(rg *gin.RouterGroup, h *handlers.ObjectHandler) {
	rg.GET(PathObjects+"/*key", h.GetObject)
}
