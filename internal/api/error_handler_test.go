package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smetaworks/estimates-api/internal/api/middleware"
	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/pkg/token"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error body %q: %v", rec.Body.String(), err)
	}
	return resp.Error
}

func TestHTTPErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, "Пользователь не авторизован"},
		{"session gone", domain.ErrSessionNotFound, http.StatusUnauthorized, "Пользователь не авторизован"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Неверный логин или пароль"},
		{"invalid token", domain.ErrInvalidToken, http.StatusUnauthorized, "Недействительный токен"},
		{"wrong token type", domain.ErrWrongTokenType, http.StatusUnauthorized, "Недействительный токен"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "Доступ запрещен"},
		{"client missing", domain.ErrClientNotFound, http.StatusNotFound, "Клиент не найден"},
		{"estimate missing", domain.ErrEstimateNotFound, http.StatusNotFound, "Смета не найдена"},
		{"act missing", domain.ErrActNotFound, http.StatusNotFound, "Акт не найден"},
		{"document missing", domain.ErrDocumentNotFound, http.StatusNotFound, "Документ не найден"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "Пользователь не найден"},
		{"duplicate user", domain.ErrUserExists, http.StatusConflict, "Пользователь уже существует"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
			e.GET("/boom", func(c echo.Context) error { return tc.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if got := decodeError(t, rec); got != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, got)
			}
		})
	}
}

func TestHTTPErrorHandler_EchoErrorPassthrough(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	e.GET("/boom", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusBadRequest, "поле name обязательно")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "поле name обязательно" {
		t.Fatalf("unexpected message: %q", got)
	}
}

// Unknown errors must be logged server-side and masked on the wire.
func TestHTTPErrorHandler_UnknownErrorMasked(t *testing.T) {
	var logs bytes.Buffer
	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.New(&logs))
	e.GET("/boom", func(c echo.Context) error {
		return errors.New("dial tcp 10.0.0.5:27017: connection refused")
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := decodeError(t, rec); got != "Внутренняя ошибка сервера" {
		t.Fatalf("expected generic message, got %q", got)
	}
	if strings.Contains(rec.Body.String(), "connection refused") {
		t.Fatalf("internal detail leaked to the client: %s", rec.Body.String())
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("cause not logged: %s", logs.String())
	}
}

type fixedSessionStore struct {
	sessions map[string]domain.Session
}

func (s *fixedSessionStore) Create(_ context.Context, _ domain.Session) (string, error) {
	return "", errors.New("read-only store")
}

func (s *fixedSessionStore) Get(_ context.Context, id string) (domain.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *fixedSessionStore) Delete(_ context.Context, _ string) error { return nil }

// The full chain: auth middleware rejections must come out of the error
// handler with the fixed statuses and messages.
func TestHTTPErrorHandler_AuthChain(t *testing.T) {
	const secret = "test-secret"

	sessions := &fixedSessionStore{sessions: map[string]domain.Session{
		"sess-manager": {UserID: "m1", Username: "ivan", Role: domain.RoleManager},
	}}

	e := echo.New()
	e.HTTPErrorHandler = NewHTTPErrorHandler(zerolog.Nop())
	staff := e.Group("", middleware.StaffAuth(sessions))
	staff.GET("/me", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	staff.GET("/admin-only", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		middleware.RequireRole(domain.RoleAdmin))
	e.GET("/portal", func(c echo.Context) error { return c.NoContent(http.StatusOK) },
		middleware.ClientAuth(secret))

	t.Run("no session cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/me", nil))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Пользователь не авторизован" {
			t.Fatalf("unexpected message: %q", got)
		}
	})

	t.Run("role denied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.AddCookie(&http.Cookie{Name: middleware.StaffCookie, Value: "sess-manager"})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Доступ запрещен" {
			t.Fatalf("unexpected message: %q", got)
		}
	})

	t.Run("staff-shaped token on portal", func(t *testing.T) {
		// Correct signature, wrong audience claim.
		now := time.Now()
		claims := token.ClientClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "cu-1",
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			},
			Type:         "staff",
			ClientID:     "cl-1",
			ClientUserID: "cu-1",
		}
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		req := httptest.NewRequest(http.MethodGet, "/portal", nil)
		req.AddCookie(&http.Cookie{Name: middleware.ClientCookie, Value: raw})
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
		if got := decodeError(t, rec); got != "Недействительный токен" {
			t.Fatalf("unexpected message: %q", got)
		}
	})
}
