package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/api/middleware"
	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// principalFrom extracts the principal injected by the auth middleware and
// performs a fast-fail check before any service call:
//   - the principal must be present (presence proves the middleware ran).
//   - the client role requires a non-empty client id; without it the token is
//     structurally valid but operationally unusable, so reject with 401.
func principalFrom(c echo.Context) (domain.Principal, error) {
	p, err := middleware.PrincipalFrom(c)
	if err != nil {
		return domain.Principal{}, err
	}
	if p.Role == domain.RoleClient && p.ClientID == "" {
		return domain.Principal{}, echo.NewHTTPError(http.StatusUnauthorized, "Пользователь не авторизован")
	}
	return p, nil
}
