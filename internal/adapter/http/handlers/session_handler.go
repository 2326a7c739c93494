package handlers

import (
	"log"
	"net/http"

	response "jardin_services/internal/adapter/http/dto/response"
	"jardin_services/internal/adapter/http/middleware"
	"jardin_services/internal/session"
	"jardin_services/pkg"

	"github.com/gin-gonic/gin"
)

type SessionRefresher interface {
	Refresh(s session.Session) (session.Session, string, error)
}

type SessionHandler struct {
	sessions SessionRefresher
}

func NewSessionHandler(sessions SessionRefresher) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Refresh extends the caller's session and returns a new token.
func (h *SessionHandler) Refresh(c *gin.Context) {
	s := middleware.SessionFrom(c)
	refreshed, token, err := h.sessions.Refresh(s)
	if err != nil {
		log.Printf("[session][handler] refresh failed user_id=%s err=%v", s.UserID, err)
		writeAppError(c, pkg.NewDomainError("UNAUTHENTICATED", "Session invalide, veuillez vous reconnecter", err, http.StatusUnauthorized))
		return
	}
	c.JSON(http.StatusOK, response.SessionResponse{
		Token:     token,
		UserID:    refreshed.UserID,
		Name:      refreshed.Name,
		Role:      string(refreshed.Role),
		ExpiresAt: refreshed.ExpiresAt,
	})
}
