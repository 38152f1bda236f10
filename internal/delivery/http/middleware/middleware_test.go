package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"strings"
	"testing"
	"time"

	"jobflix-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(handler gin.HandlerFunc, mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/test", handler)
	return r
}

func serve(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) }, RequestID())

	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, strings.Repeat("x", 65))
	w = serve(r, req)
	assert.NotEqual(t, strings.Repeat("x", 65), w.Header().Get(RequestIDHeader))
}

func TestErrorHandler(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantCode    int
		wantMessage string
		wantDetails bool
	}{
		{"not found", apperror.NotFound("Job not found"), http.StatusNotFound, "Job not found", false},
		{"validation", apperror.Validation([]string{"Title is required"}), http.StatusBadRequest, "Validation failed", true},
		{"internal", apperror.Internal(errors.New("disk full")), http.StatusInternalServerError, "", false},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newEngine(func(c *gin.Context) { _ = c.Error(tt.err) }, RequestID(), ErrorHandler())
			w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
			require.Equal(t, tt.wantCode, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, false, body["success"])
			assert.Equal(t, w.Header().Get(RequestIDHeader), body["request_id"])
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
			}
			assert.NotContains(t, w.Body.String(), "disk full")
			if tt.wantDetails {
				assert.Equal(t, []interface{}{"Title is required"}, body["error"])
			} else {
				assert.Nil(t, body["error"])
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }

	t.Run("allowed origin", func(t *testing.T) {
		r := newEngine(ok, CORSMiddleware("https://jobflix.example", true))
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "https://jobflix.example")
		w := serve(r, req)
		assert.Equal(t, "https://jobflix.example", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("localhost only outside release", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set("Origin", "http://localhost:3000")

		w := serve(newEngine(ok, CORSMiddleware("https://jobflix.example", false)), req)
		assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

		w = serve(newEngine(ok, CORSMiddleware("https://jobflix.example", true)), req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestSecurityHeaders(t *testing.T) {
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) }, SecurityHeadersMiddleware())
	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.Contains(t, w.Header().Get("Content-Security-Policy"), "default-src 'none'")
}

func TestMemoryLimiter(t *testing.T) {
	m := &memoryLimiter{}
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	count, resetAt := m.check("k", time.Minute, now)
	assert.Equal(t, 1, count)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	count, _ = m.check("k", time.Minute, now.Add(30*time.Second))
	assert.Equal(t, 2, count)

	count, _ = m.check("other", time.Minute, now)
	assert.Equal(t, 1, count)

	count, resetAt = m.check("k", time.Minute, now.Add(61*time.Second))
	assert.Equal(t, 1, count, "window expired")
	assert.Equal(t, now.Add(121*time.Second), resetAt)
}

func TestMemoryLimiter_SweepsExpiredEntries(t *testing.T) {
	m := &memoryLimiter{}
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	m.check("stale", time.Minute, now)
	m.check("live", time.Hour, now)

	m.check("fresh", time.Minute, now.Add(2*time.Minute))
	_, ok := m.entries.Load("stale")
	assert.True(t, ok, "no sweep before the interval elapses")

	m.check("fresh", time.Minute, now.Add(sweepInterval+time.Second))
	_, ok = m.entries.Load("stale")
	assert.False(t, ok)
	_, ok = m.entries.Load("live")
	assert.True(t, ok)
	_, ok = m.entries.Load("fresh")
	assert.True(t, ok)
}

func TestRateLimitMiddleware_StartsNoGoroutines(t *testing.T) {
	before := runtime.NumGoroutine()
	for i := 0; i < 20; i++ {
		r := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) }, RateLimitMiddleware(DefaultRateLimitConfig(5, time.Minute)))
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}
	assert.LessOrEqual(t, runtime.NumGoroutine(), before)
}

func TestRateLimitMiddleware_InMemory(t *testing.T) {
	cfg := DefaultRateLimitConfig(2, time.Minute)
	r := newEngine(func(c *gin.Context) { c.Status(http.StatusOK) }, RateLimitMiddleware(cfg))

	for i := 0; i < 2; i++ {
		w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	}

	w := serve(r, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
}
