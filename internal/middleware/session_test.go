package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/palfi-booking/internal/session"
	"github.com/BruksfildServices01/palfi-booking/internal/slot"
)

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := session.NewRegistry(slot.NewMemoryBackend(0), time.Hour, zerolog.New(io.Discard))

	var seen string
	r := gin.New()
	r.Use(SessionMiddleware(reg))
	r.GET("/", func(c *gin.Context) {
		seen = CurrentSession(c).ID
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, seen, cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Zero(t, cookies[0].MaxAge)

	first := seen
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, first, seen)
	assert.Empty(t, w.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "not-a-uuid"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", seen)
	assert.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, 2, reg.Len())
}
