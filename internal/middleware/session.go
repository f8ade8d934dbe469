package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/palfi-booking/internal/session"
)

const (
	SessionCookie  = "booking_session"
	ContextSession = "session"
)

// SessionMiddleware binds every request to a browser session. The cookie has
// no expiry so the session ends with the browser, like the slot it backs.
func SessionMiddleware(reg *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || !validID(id) {
			id = uuid.NewString()
			http.SetCookie(c.Writer, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		c.Set(ContextSession, reg.Get(c.Request.Context(), id))
		c.Next()
	}
}

// CurrentSession returns the session set by SessionMiddleware.
func CurrentSession(c *gin.Context) *session.Session {
	return c.MustGet(ContextSession).(*session.Session)
}

func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
