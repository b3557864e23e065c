package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/api/metrics"
	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
	"github.com/smetaworks/estimates-api/pkg/token"
)

// Cookie names for the two audiences. The tokens are not interchangeable:
// the staff cookie references a server-side session, the client cookie holds
// a signed JWT.
const (
	StaffCookie  = "auth-session"
	ClientCookie = "client-token"
)

const principalKey = "principal"

// StaffAuth validates the staff session cookie and injects the resulting
// Principal into the request context. Validation is read-only: no refresh,
// no TTL extension.
func StaffAuth(sessions ports.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(StaffCookie)
			if err != nil || cookie.Value == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			session, err := sessions.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, domain.ErrSessionNotFound) {
					metrics.AuthRejectionsTotal.WithLabelValues("invalid_session").Inc()
					return domain.ErrUnauthenticated
				}
				return err
			}

			c.Set(principalKey, session.Principal())
			return next(c)
		}
	}
}

// ClientAuth validates the portal JWT from the client cookie or the bearer
// header. It fails closed: any signature, expiry or payload problem rejects
// the request, and a token whose type claim is not "client" is rejected even
// when its signature is valid.
func ClientAuth(jwtSecret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := clientTokenFromRequest(c)
			if raw == "" {
				metrics.AuthRejectionsTotal.WithLabelValues("missing_token").Inc()
				return domain.ErrUnauthenticated
			}

			claims, err := token.Parse(jwtSecret, raw)
			if err != nil {
				if errors.Is(err, token.ErrWrongType) {
					metrics.AuthRejectionsTotal.WithLabelValues("wrong_token_type").Inc()
					return domain.ErrWrongTokenType
				}
				metrics.AuthRejectionsTotal.WithLabelValues("invalid_token").Inc()
				return domain.ErrInvalidToken
			}

			c.Set(principalKey, domain.Principal{
				ID:           claims.ClientUserID,
				Role:         domain.RoleClient,
				ClientID:     claims.ClientID,
				ClientUserID: claims.ClientUserID,
			})
			return next(c)
		}
	}
}

// PrincipalFrom extracts the Principal injected by StaffAuth or ClientAuth.
func PrincipalFrom(c echo.Context) (domain.Principal, error) {
	p, ok := c.Get(principalKey).(domain.Principal)
	if !ok || p.Role == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Пользователь не авторизован")
	}
	return p, nil
}

func clientTokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(ClientCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
