package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_BurstExhaustion(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 3)
	mw := rl.Middleware()

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	hit := func() error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rec := httptest.NewRecorder()
		return handler(e.NewContext(req, rec))
	}

	for i := 0; i < 3; i++ {
		if err := hit(); err != nil {
			t.Fatalf("request %d unexpectedly limited: %v", i, err)
		}
	}

	err := hit()
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %v", err)
	}
}

func TestRateLimiter_PerClientIsolation(t *testing.T) {
	e := echo.New()
	rl := NewRateLimiter(1, 1)
	mw := rl.Middleware()

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	hit := func(addr string) error {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		return handler(e.NewContext(req, rec))
	}

	if err := hit("203.0.113.7:1234"); err != nil {
		t.Fatalf("first client limited: %v", err)
	}
	if err := hit("203.0.113.7:1234"); err == nil {
		t.Fatalf("first client should be limited on second hit")
	}
	if err := hit("198.51.100.9:4321"); err != nil {
		t.Fatalf("second client must not share the first client's bucket: %v", err)
	}
}
