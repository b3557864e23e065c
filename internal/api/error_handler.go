package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/smetaworks/estimates-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// User-facing messages are Russian; the taxonomy is fixed:
// 401 unauthenticated, 403 policy denial, 404 absent resource,
// 409 duplicate, 500 everything else.
const (
	msgUnauthenticated = "Пользователь не авторизован"
	msgBadCredentials  = "Неверный логин или пароль"
	msgInvalidToken    = "Недействительный токен"
	msgForbidden       = "Доступ запрещен"
	msgInternal        = "Внутренняя ошибка сервера"
)

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUnauthenticated), errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusUnauthorized, msgUnauthenticated
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, msgBadCredentials
	case errors.Is(err, domain.ErrInvalidToken), errors.Is(err, domain.ErrWrongTokenType):
		return http.StatusUnauthorized, msgInvalidToken
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, msgForbidden
	case errors.Is(err, domain.ErrClientNotFound):
		return http.StatusNotFound, "Клиент не найден"
	case errors.Is(err, domain.ErrEstimateNotFound):
		return http.StatusNotFound, "Смета не найдена"
	case errors.Is(err, domain.ErrActNotFound):
		return http.StatusNotFound, "Акт не найден"
	case errors.Is(err, domain.ErrDocumentNotFound):
		return http.StatusNotFound, "Документ не найден"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "Пользователь не найден"
	case errors.Is(err, domain.ErrUserExists):
		return http.StatusConflict, "Пользователь уже существует"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, msgInternal
}
