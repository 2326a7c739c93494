package middleware

import (
	"errors"
	"log"
	"net/http"

	"jardin_services/internal/session"
	"jardin_services/pkg"

	"github.com/gin-gonic/gin"
)

// SessionKey is the gin context key holding the caller's session.Session.
const SessionKey = "session"

// SessionParser turns a bearer token into a session.
type SessionParser interface {
	Parse(token string) (session.Session, error)
}

// Auth rejects requests without a valid bearer token and stores the parsed
// session for the handlers.
func Auth(parser SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := parser.Parse(c.GetHeader("Authorization"))
		if err != nil {
			log.Printf("[auth][middleware] rejected path=%s err=%v", c.FullPath(), err)
			appErr := pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Session invalide, veuillez vous reconnecter", http.StatusUnauthorized)
			if errors.Is(err, session.ErrExpired) {
				appErr = pkg.NewDomainErrorSimple("SESSION_EXPIRED", "Session expirée, veuillez vous reconnecter", http.StatusUnauthorized)
			}
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
			return
		}
		c.Set(SessionKey, s)
		c.Next()
	}
}

// SessionFrom returns the session stored by Auth, or a zero session.
func SessionFrom(c *gin.Context) session.Session {
	v, ok := c.Get(SessionKey)
	if !ok {
		return session.Session{}
	}
	s, _ := v.(session.Session)
	return s
}
