package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name           string
		origins        []string
		method         string
		origin         string
		expectedStatus int
		expectedOrigin string
	}{
		{name: "preflight request", origins: []string{"*"}, method: http.MethodOptions, origin: "https://example.com", expectedStatus: http.StatusNoContent, expectedOrigin: "*"},
		{name: "regular GET request", origins: []string{"*"}, method: http.MethodGet, origin: "https://example.com", expectedStatus: http.StatusOK, expectedOrigin: "*"},
		{name: "no origins configured", method: http.MethodGet, expectedStatus: http.StatusOK, expectedOrigin: "*"},
		{name: "listed origin echoed", origins: []string{"https://app.example.com"}, method: http.MethodGet, origin: "https://app.example.com", expectedStatus: http.StatusOK, expectedOrigin: "https://app.example.com"},
		{name: "unlisted origin", origins: []string{"https://app.example.com"}, method: http.MethodGet, origin: "https://evil.example.com", expectedStatus: http.StatusOK, expectedOrigin: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(CORS(tt.origins...))
			router.Any("/test", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "success"})
			})

			req := httptest.NewRequest(tt.method, "/test", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.expectedOrigin, w.Header().Get("Access-Control-Allow-Origin"))
			assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), "Authorization")
		})
	}
}

func TestRequestSizeLimitWithSize(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestSizeLimitWithSize(16))
	router.POST("/test", func(c *gin.Context) {
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, body)
	})

	small := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"a":1}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, small)
	assert.Equal(t, http.StatusOK, w.Code)

	large := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"content":"`+strings.Repeat("x", 64)+`"}`))
	w = httptest.NewRecorder()
	router.ServeHTTP(w, large)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestPerClientRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiters := &sync.Map{}
	stop := make(chan struct{})
	defer close(stop)
	var once sync.Once

	router := gin.New()
	router.Use(PerClientRateLimit(limiters, stop, &once, 1, 2))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	request := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, request("10.0.0.1"))
	assert.Equal(t, http.StatusOK, request("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, request("10.0.0.1"))

	// Another client has its own bucket
	assert.Equal(t, http.StatusOK, request("10.0.0.2"))

	count := 0
	limiters.Range(func(_, _ interface{}) bool {
		count++
		return true
	})
	assert.Equal(t, 2, count)
}

func TestCleanupOldRateLimiters(t *testing.T) {
	limiters := &sync.Map{}
	limiters.Store("stale", &clientLimiter{lastSeen: time.Now().Add(-time.Hour)})
	limiters.Store("fresh", &clientLimiter{lastSeen: time.Now().Add(time.Hour)})

	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		cleanupOldRateLimiters(limiters, stop, 5*time.Millisecond, time.Minute)
		close(done)
	}()

	require.Eventually(t, func() bool {
		_, ok := limiters.Load("stale")
		return !ok
	}, time.Second, 5*time.Millisecond)

	_, ok := limiters.Load("fresh")
	assert.True(t, ok)

	close(stop)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop")
	}
}
