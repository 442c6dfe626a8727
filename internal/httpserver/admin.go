package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
)

type AdminHTTP struct {
	Svc *service.AdminService
}

func (h *AdminHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.orders")

	orders, err := h.Svc.ListAllOrders(ctx)
	if err != nil {
		return httpError(l, "admin_list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *AdminHTTP) ListProfiles(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "admin.profiles")

	profiles, err := h.Svc.ListAllProfiles(ctx)
	if err != nil {
		return httpError(l, "admin_list_profiles_error", err)
	}
	return c.JSON(http.StatusOK, profiles)
}
