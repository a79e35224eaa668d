package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/webdesk/identity/internal/core/domain"
)

type stubAuthService struct {
	registerErr error
	loginErr    error
	token       string
}

func (s *stubAuthService) Register(_ context.Context, username, password string) (string, error) {
	if s.registerErr != nil {
		return "", s.registerErr
	}
	return s.token, nil
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (string, error) {
	if s.loginErr != nil {
		return "", s.loginErr
	}
	return s.token, nil
}

type stubTokens struct {
	username string
	err      error
}

func (s *stubTokens) Issue(username string) (string, error) { return "tok", nil }

func (s *stubTokens) Verify(token string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.username, nil
}

func newAuthContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{token: "tok-1"}, &stubTokens{})
	c, rec := newAuthContext(t, `{"username":"alice","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	payload := decodeBody(t, rec)
	if rec.Code != http.StatusOK || payload["success"] != true || payload["token"] != "tok-1" {
		t.Fatalf("unexpected response: %d %v", rec.Code, payload)
	}
}

func TestAuthHandler_Register_FunctionalFailureIs200(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{registerErr: domain.ErrUserExists}, &stubTokens{})
	c, rec := newAuthContext(t, `{"username":"alice","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	payload := decodeBody(t, rec)
	if rec.Code != http.StatusOK {
		t.Fatalf("functional failure must answer 200, got %d", rec.Code)
	}
	if payload["error"] != domain.ErrUserExists.Error() {
		t.Fatalf("unexpected error payload: %v", payload)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{token: "tok"}, &stubTokens{})
	c, rec := newAuthContext(t, `{"username":"alice"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	payload := decodeBody(t, rec)
	if rec.Code != http.StatusOK || payload["error"] == nil {
		t.Fatalf("expected validation error payload, got %d %v", rec.Code, payload)
	}
}

func TestAuthHandler_Login_DistinctFailureMessages(t *testing.T) {
	// Unknown user and wrong password surface as distinct messages.
	for _, svcErr := range []error{domain.ErrUserNotFound, domain.ErrInvalidPassword} {
		h := NewAuthHandler(&stubAuthService{loginErr: svcErr}, &stubTokens{})
		c, rec := newAuthContext(t, `{"username":"alice","password":"x"}`)

		if err := h.Login(c); err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		payload := decodeBody(t, rec)
		if payload["error"] != svcErr.Error() {
			t.Fatalf("expected %q, got %v", svcErr, payload)
		}
	}
}

func TestAuthHandler_VerifyToken(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, &stubTokens{username: "alice"})

	c, rec := newAuthContext(t, `{"token":"tok","username":"alice"}`)
	if err := h.VerifyToken(c); err != nil {
		t.Fatalf("VerifyToken returned error: %v", err)
	}
	payload := decodeBody(t, rec)
	if payload["valid"] != true || payload["username"] != "alice" {
		t.Fatalf("unexpected response: %v", payload)
	}

	// Username mismatch invalidates.
	c, rec = newAuthContext(t, `{"token":"tok","username":"bob"}`)
	_ = h.VerifyToken(c)
	if payload := decodeBody(t, rec); payload["valid"] != false {
		t.Fatalf("expected valid=false, got %v", payload)
	}

	// Verification failure invalidates.
	h = NewAuthHandler(&stubAuthService{}, &stubTokens{err: errors.New("invalid token")})
	c, rec = newAuthContext(t, `{"token":"bad"}`)
	_ = h.VerifyToken(c)
	if payload := decodeBody(t, rec); payload["valid"] != false {
		t.Fatalf("expected valid=false, got %v", payload)
	}
}
