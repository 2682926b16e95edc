package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// SessionCookie is the cookie name carrying the dashboard session token.
const SessionCookie = "dashboard_session"

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// RequireSession rejects requests without a valid dashboard session. The
// token is read from the session cookie, or from a bearer header for
// non-browser clients.
func RequireSession(m *Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(SessionCookie)
		if err != nil || tok == "" {
			raw := strings.TrimSpace(c.GetHeader(authorizationHeader))
			if strings.HasPrefix(raw, bearerPrefix) {
				tok = strings.TrimPrefix(raw, bearerPrefix)
			}
		}
		if tok == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing dashboard session"})
			return
		}
		if err := m.VerifySession(tok, time.Now()); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Next()
	}
}
