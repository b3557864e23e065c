package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/smetaworks/estimates-api/internal/api/metrics"
	"github.com/smetaworks/estimates-api/internal/api/middleware"
	"github.com/smetaworks/estimates-api/internal/core/domain"
	"github.com/smetaworks/estimates-api/internal/core/ports"
)

// AuthHandler serves login and logout for both audiences. Staff get an opaque
// session cookie, portal clients get a JWT cookie; neither token works on the
// other surface.
type AuthHandler struct {
	authService   ports.AuthService
	secureCookies bool
	sessionTTL    time.Duration
	tokenTTL      time.Duration
}

func NewAuthHandler(authService ports.AuthService, secureCookies bool, sessionTTL, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authService:   authService,
		secureCookies: secureCookies,
		sessionTTL:    sessionTTL,
		tokenTTL:      tokenTTL,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type staffLoginResponse struct {
	User *domain.User `json:"user"`
}

type clientLoginResponse struct {
	Token    string `json:"token"`
	ClientID string `json:"client_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// Login authenticates a staff account and sets the session cookie.
//
// @Summary      Staff login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  staffLoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.LoginStaff(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("staff", "failed").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("staff", "ok").Inc()

	c.SetCookie(h.sessionCookie(result.SessionID, int(h.sessionTTL.Seconds())))
	return c.JSON(http.StatusOK, staffLoginResponse{User: result.User})
}

// Me returns the authenticated staff identity.
//
// @Summary      Current staff identity
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.Principal
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	p, err := principalFrom(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Logout destroys the staff session. It is idempotent: a missing or stale
// cookie still gets a 200 and a cleared cookie.
//
// @Summary      Staff logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.StaffCookie); err == nil && cookie.Value != "" {
		if err := h.authService.Logout(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}
	c.SetCookie(h.sessionCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Message: "Выход выполнен"})
}

// ClientLogin authenticates a portal login and sets the client token cookie.
// The token is also returned in the body for API clients that prefer the
// Authorization header.
//
// @Summary      Portal client login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  clientLoginResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/client-login [post]
func (h *AuthHandler) ClientLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.LoginClient(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("client", "failed").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("client", "ok").Inc()

	c.SetCookie(h.clientCookie(result.Token, int(h.tokenTTL.Seconds())))
	return c.JSON(http.StatusOK, clientLoginResponse{Token: result.Token, ClientID: result.ClientID})
}

// ClientLogout clears the client token cookie. The JWT itself stays valid
// until expiry; there is no server-side state to destroy.
//
// @Summary      Portal client logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/client-logout [post]
func (h *AuthHandler) ClientLogout(c echo.Context) error {
	c.SetCookie(h.clientCookie("", -1))
	return c.JSON(http.StatusOK, messageResponse{Message: "Выход выполнен"})
}

func (h *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.StaffCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}

func (h *AuthHandler) clientCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.ClientCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
