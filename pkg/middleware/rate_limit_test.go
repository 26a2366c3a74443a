package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMiddleware_AllowsUnderLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(10, 2)) // generous rate
	r.GET("/ok", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// two quick requests should pass
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("GET", "/ok", nil)
		req.RemoteAddr = "10.1.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitMiddleware_BlocksWhenExceeded(t *testing.T) {
	r := gin.New()
	// very low rate to force rejections
	r.Use(RateLimitMiddleware(0.5, 1))
	r.GET("/limited", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("GET", "/limited", nil)
		req.RemoteAddr = "10.1.0.2:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	// first request -> allowed
	require.Equal(t, http.StatusOK, do().Code)

	// immediate second request -> should be rate-limited
	require.Equal(t, http.StatusTooManyRequests, do().Code)

	// wait long enough to replenish one token and it should be allowed
	time.Sleep(2100 * time.Millisecond)
	require.Equal(t, http.StatusOK, do().Code)
}
