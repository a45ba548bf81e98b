package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow("10.0.0.1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust the first client's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Client 1 request %d should be allowed", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("Client 1 should be rate limited")
	}

	// The second client still has its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.2") {
			t.Errorf("Client 2 request %d should be allowed", i+1)
		}
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiterWithConfig(10, 2) // Small burst for testing
	defer rl.Stop()

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	// First 2 requests should succeed (burst)
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
		req.RemoteAddr = "10.0.0.1:4711"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := RateLimitMiddleware(rl)(handler)(c)
		if err != nil {
			t.Fatalf("Request %d: Expected no error, got %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("Request %d: Expected status 200, got %d", i+1, rec.Code)
		}
	}

	// 3rd request should be rate limited
	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.RemoteAddr = "10.0.0.1:4711"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := RateLimitMiddleware(rl)(handler)(c)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Errorf("Expected status 429, got %d", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}
}
