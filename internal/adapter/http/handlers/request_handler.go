package handlers

import (
	"log"
	"net/http"

	request "jardin_services/internal/adapter/http/dto/request"
	response "jardin_services/internal/adapter/http/dto/response"
	"jardin_services/internal/adapter/http/middleware"
	"jardin_services/internal/domain/entities"
	"jardin_services/internal/usecase"

	"github.com/gin-gonic/gin"
)

// RequestHandler handles HTTP requests for service requests.
type RequestHandler struct {
	usecase usecase.IRequestUseCase
}

func NewRequestHandler(uc usecase.IRequestUseCase) *RequestHandler {
	return &RequestHandler{usecase: uc}
}

// CreateRequest accepts either a JSON body or a multipart form with the JSON
// in the "payload" field and files in "evidence".
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	s := middleware.SessionFrom(c)
	var payload request.CreateRequestPayload
	var evidence []entities.EvidenceFile

	if isMultipart(c) {
		if err := request.BindJSONField(c.PostForm(payloadField), &payload); err != nil {
			log.Printf("[request][handler] invalid payload user_id=%s err=%v", s.UserID, err)
			writeAppError(c, errInvalidPayload)
			return
		}
		files, err := readEvidence(c)
		if err != nil {
			log.Printf("[request][handler] invalid evidence user_id=%s err=%v", s.UserID, err)
			writeAppError(c, errInvalidPayload)
			return
		}
		evidence = files
	} else if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("[request][handler] invalid payload user_id=%s err=%v", s.UserID, err)
		writeAppError(c, errInvalidPayload)
		return
	}

	created, err := h.usecase.CreateRequest(c.Request.Context(), s, payload.ToInput(), evidence)
	if err != nil {
		log.Printf("[request][handler] create failed user_id=%s err=%v", s.UserID, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromRequest(created))
}

func (h *RequestHandler) ListMine(c *gin.Context) {
	items, err := h.usecase.ListByClient(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequests(items))
}

func (h *RequestHandler) ListOpen(c *gin.Context) {
	items, err := h.usecase.ListOpen(c.Request.Context(), middleware.SessionFrom(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequests(items))
}

func (h *RequestHandler) GetRequest(c *gin.Context) {
	r, err := h.usecase.GetByID(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(r))
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	var payload request.UpdateStatusRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	status, err := payload.ResolveStatus()
	if err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}

	s := middleware.SessionFrom(c)
	updated, err := h.usecase.UpdateStatus(c.Request.Context(), s, c.Param("id"), status)
	if err != nil {
		log.Printf("[request][handler] status update failed request_id=%s to=%s err=%v", c.Param("id"), status, err)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(updated))
}

// AcceptRequest lets a provider take the request at its original price.
func (h *RequestHandler) AcceptRequest(c *gin.Context) {
	updated, err := h.usecase.AcceptAsIs(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(updated))
}

func (h *RequestHandler) RateRequest(c *gin.Context) {
	var payload request.RateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeAppError(c, errInvalidPayload)
		return
	}
	updated, err := h.usecase.Rate(c.Request.Context(), middleware.SessionFrom(c), c.Param("id"), payload.Rating)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromRequest(updated))
}
