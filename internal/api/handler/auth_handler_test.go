package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/api/middleware"
	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

type stubAuthService struct {
	loginStaffFn  func(ctx context.Context, username, password string) (*ports.StaffLoginResult, error)
	logoutFn      func(ctx context.Context, sessionID string) error
	loginClientFn func(ctx context.Context, username, password string) (*ports.ClientLoginResult, error)
}

func (s *stubAuthService) LoginStaff(ctx context.Context, username, password string) (*ports.StaffLoginResult, error) {
	return s.loginStaffFn(ctx, username, password)
}

func (s *stubAuthService) Logout(ctx context.Context, sessionID string) error {
	return s.logoutFn(ctx, sessionID)
}

func (s *stubAuthService) LoginClient(ctx context.Context, username, password string) (*ports.ClientLoginResult, error) {
	return s.loginClientFn(ctx, username, password)
}

func newAuthTestContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func findCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := rec.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestAuthHandler_Login_SetsSessionCookie(t *testing.T) {
	stub := &stubAuthService{
		loginStaffFn: func(ctx context.Context, username, password string) (*ports.StaffLoginResult, error) {
			if username != "ivan" || password != "secret123" {
				t.Fatalf("unexpected args: %s %s", username, password)
			}
			return &ports.StaffLoginResult{
				SessionID: "sess-abc",
				User:      &domain.User{ID: "u1", Username: "ivan", Role: domain.RoleManager},
			}, nil
		},
	}
	handler := NewAuthHandler(stub, false, 12*time.Hour, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"ivan","password":"secret123"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	cookie := findCookie(t, rec, middleware.StaffCookie)
	if cookie == nil {
		t.Fatalf("session cookie not set")
	}
	if cookie.Value != "sess-abc" || !cookie.HttpOnly {
		t.Fatalf("unexpected cookie: %+v", cookie)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "ivan" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginStaffFn: func(ctx context.Context, username, password string) (*ports.StaffLoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, false, 12*time.Hour, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/login", `{"username":"ivan","password":"wrong"}`)
	if err := handler.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if cookie := findCookie(t, rec, middleware.StaffCookie); cookie != nil {
		t.Fatalf("cookie must not be set on failed login")
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginStaffFn: func(ctx context.Context, username, password string) (*ports.StaffLoginResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub, false, 12*time.Hour, 24*time.Hour)

	c, _ := newAuthTestContext(t, http.MethodPost, "/auth/login", "{")
	err := handler.Login(c)
	var httpErr *echo.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Logout_DestroysSession(t *testing.T) {
	var destroyed string
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			destroyed = sessionID
			return nil
		},
	}
	handler := NewAuthHandler(stub, false, 12*time.Hour, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Request().AddCookie(&http.Cookie{Name: middleware.StaffCookie, Value: "sess-abc"})

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if destroyed != "sess-abc" {
		t.Fatalf("expected session sess-abc destroyed, got %q", destroyed)
	}

	cookie := findCookie(t, rec, middleware.StaffCookie)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}

func TestAuthHandler_Logout_WithoutCookie(t *testing.T) {
	stub := &stubAuthService{
		logoutFn: func(ctx context.Context, sessionID string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	handler := NewAuthHandler(stub, false, 12*time.Hour, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_ClientLogin_SetsTokenCookie(t *testing.T) {
	stub := &stubAuthService{
		loginClientFn: func(ctx context.Context, username, password string) (*ports.ClientLoginResult, error) {
			return &ports.ClientLoginResult{Token: "jwt-xyz", ClientID: "cl-1"}, nil
		},
	}
	handler := NewAuthHandler(stub, false, 12*time.Hour, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/client-login", `{"username":"client1","password":"secret123"}`)
	if err := handler.ClientLogin(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := findCookie(t, rec, middleware.ClientCookie)
	if cookie == nil || cookie.Value != "jwt-xyz" {
		t.Fatalf("expected token cookie, got %+v", cookie)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "jwt-xyz" || resp["client_id"] != "cl-1" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_ClientLogout_ClearsCookie(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, false, 12*time.Hour, 24*time.Hour)

	c, rec := newAuthTestContext(t, http.MethodPost, "/auth/client-logout", "")
	if err := handler.ClientLogout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := findCookie(t, rec, middleware.ClientCookie)
	if cookie == nil || cookie.MaxAge != -1 {
		t.Fatalf("expected cleared cookie, got %+v", cookie)
	}
}
