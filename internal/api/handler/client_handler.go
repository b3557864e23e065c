package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// ClientHandler serves the client-record endpoints for staff.
type ClientHandler struct {
	service ports.ClientService
}

func NewClientHandler(service ports.ClientService) *ClientHandler {
	return &ClientHandler{service: service}
}

type clientRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

type clientsResponse struct {
	Clients []domain.Client `json:"clients"`
}

// List returns the clients the caller may see: all of them for an admin,
// own ones for a manager.
//
// @Summary      List clients
// @Tags         clients
// @Produce      json
// @Success      200  {object}  clientsResponse
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	clients, err := h.service.List(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientsResponse{Clients: clients})
}

// ListByManager returns the clients owned by one manager.
//
// @Summary      List clients of a manager
// @Tags         clients
// @Produce      json
// @Param        managerId  path      string  true  "Manager id"
// @Success      200        {object}  clientsResponse
// @Failure      403        {object}  map[string]string
// @Router       /clients/manager/{managerId} [get]
func (h *ClientHandler) ListByManager(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	clients, err := h.service.ListByManager(c.Request().Context(), p, c.Param("managerId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientsResponse{Clients: clients})
}

// Get returns one client record.
//
// @Summary      Get a client
// @Tags         clients
// @Produce      json
// @Param        id  path      string  true  "Client id"
// @Success      200  {object}  domain.Client
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	client, err := h.service.Get(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// Create registers a new client owned by the calling manager.
//
// @Summary      Create a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        body  body      clientRequest  true  "Client details"
// @Success      201   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Create(c.Request().Context(), p, ports.CreateClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, client)
}

// Update changes a client record.
//
// @Summary      Update a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Client id"
// @Param        body  body      clientRequest  true  "Fields to update"
// @Success      200   {object}  domain.Client
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req clientRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	client, err := h.service.Update(c.Request().Context(), p, c.Param("id"), ports.UpdateClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

type portalLoginRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
}

// CreatePortalLogin provisions portal credentials for a client so they can
// sign in at /auth/client-login.
//
// @Summary      Create a portal login for a client
// @Tags         clients
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Client id"
// @Param        body  body      portalLoginRequest  true  "Portal credentials"
// @Success      201   {object}  domain.ClientUser
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /clients/{id}/portal-login [post]
func (h *ClientHandler) CreatePortalLogin(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	var req portalLoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	cu, err := h.service.CreatePortalLogin(c.Request().Context(), p, c.Param("id"), ports.CreatePortalLoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cu)
}

// Deactivate soft-deletes a client record.
//
// @Summary      Deactivate a client
// @Tags         clients
// @Produce      json
// @Param        id  path      string  true  "Client id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /clients/{id} [delete]
func (h *ClientHandler) Deactivate(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Deactivate(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Клиент деактивирован"})
}
