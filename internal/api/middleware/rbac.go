package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/api/metrics"
	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// RequireRole restricts a route group to the listed roles. It works on the
// Principal injected by StaffAuth/ClientAuth, so it must run after one of
// them. Per-resource ownership checks still happen in the services; this is
// only the coarse route-level gate.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, err := PrincipalFrom(c)
			if err != nil {
				return err
			}
			if _, ok := allowed[p.Role]; !ok {
				metrics.PolicyDenialsTotal.WithLabelValues(p.Role).Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
