package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/palfi-booking/internal/auth"
	"github.com/BruksfildServices01/palfi-booking/internal/httperr"
)

const (
	AdminCookie   = "booking_admin"
	ContextClaims = "adminClaims"
)

// AdminMiddleware lets a request through only if it carries a valid admin
// token issued to this session and not revoked since.
func AdminMiddleware(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(AdminCookie)
		if err != nil || raw == "" {
			httperr.Abort(c, http.StatusUnauthorized, "admin_login_required", "Bejelentkezés szükséges.")
			return
		}

		claims, err := tokens.Verify(raw)
		if err != nil {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Bejelentkezés szükséges.")
			return
		}

		sess := CurrentSession(c)
		if claims.SessionID != sess.ID {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Bejelentkezés szükséges.")
			return
		}

		sess.Lock()
		ok := sess.IsAdmin(claims.ID)
		sess.Unlock()
		if !ok {
			httperr.Abort(c, http.StatusUnauthorized, "invalid_token", "Bejelentkezés szükséges.")
			return
		}

		c.Set(ContextClaims, claims)
		c.Next()
	}
}
