package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func rateLimitRouter(config RateLimitConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RateLimitMiddleware(config))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return engine
}

func TestRateLimitBudget(t *testing.T) {
	engine := rateLimitRouter(RateLimitConfig{
		Requests: 3,
		Window:   time.Minute,
		KeyFunc:  func(c *gin.Context) string { return "fixed" },
	})

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimitRemainingHeader(t *testing.T) {
	engine := rateLimitRouter(RateLimitConfig{
		Requests: 5,
		Window:   time.Minute,
		KeyFunc:  func(c *gin.Context) string { return "fixed" },
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, "4", rec.Header().Get("X-RateLimit-Remaining"))

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, "3", rec.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, rec.Header().Get("X-RateLimit-Reset"))
}

func TestRateLimitWindowReset(t *testing.T) {
	engine := rateLimitRouter(RateLimitConfig{
		Requests: 1,
		Window:   50 * time.Millisecond,
		KeyFunc:  func(c *gin.Context) string { return "fixed" },
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	time.Sleep(60 * time.Millisecond)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest("GET", "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitKeysAreIndependent(t *testing.T) {
	engine := rateLimitRouter(RateLimitConfig{
		Requests: 1,
		Window:   time.Minute,
		KeyFunc:  func(c *gin.Context) string { return c.GetHeader("X-Client") },
	})

	first := httptest.NewRequest("GET", "/ping", nil)
	first.Header.Set("X-Client", "a")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, first)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	second := httptest.NewRequest("GET", "/ping", nil)
	second.Header.Set("X-Client", "b")
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusOK, rec.Code)
}
