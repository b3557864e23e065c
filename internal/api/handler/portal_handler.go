package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// PortalHandler serves the client-facing read endpoints. Everything here sits
// behind the client token middleware; the principal's client id scopes every
// query, so there are no id parameters on these routes.
type PortalHandler struct {
	service ports.PortalService
}

func NewPortalHandler(service ports.PortalService) *PortalHandler {
	return &PortalHandler{service: service}
}

// Profile returns the client's own record.
//
// @Summary      Portal profile
// @Tags         portal
// @Produce      json
// @Success      200  {object}  domain.Client
// @Failure      401  {object}  map[string]string
// @Router       /client/profile [get]
func (h *PortalHandler) Profile(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	client, err := h.service.Profile(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Estimates returns the estimates shared with the client.
//
// @Summary      Portal estimates
// @Tags         portal
// @Produce      json
// @Success      200  {object}  estimatesResponse
// @Failure      401  {object}  map[string]string
// @Router       /client/estimates [get]
func (h *PortalHandler) Estimates(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	estimates, err := h.service.Estimates(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, estimatesResponse{Estimates: estimates})
}

// Documents returns the documents shared with the client.
//
// @Summary      Portal documents
// @Tags         portal
// @Produce      json
// @Success      200  {object}  documentsResponse
// @Failure      401  {object}  map[string]string
// @Router       /client/documents [get]
func (h *PortalHandler) Documents(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	docs, err := h.service.Documents(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, documentsResponse{Documents: docs})
}
