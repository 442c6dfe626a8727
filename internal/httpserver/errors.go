package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

// httpError maps service and token errors onto HTTP responses. Anything it
// does not recognise is logged and reported as a bare 500.
func httpError(l *slog.Logger, event string, err error) error {
	switch {
	case errors.Is(err, tokens.ErrUnauthenticated), errors.Is(err, tokens.ErrExpired):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrInvalidPassword),
		errors.Is(err, service.ErrPriceMismatch),
		errors.Is(err, service.ErrCancellationWindowExpired):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	l.Error(event, "status", 500, "reason", "internal error", "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
}
