package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/farm_shop/internal/service"
	"github.com/Skotchmaster/farm_shop/internal/transport"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	authmw "github.com/Skotchmaster/farm_shop/pkg/middleware/auth"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) CreateOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.create")

	var req transport.CreateOrderRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("create_order_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	p, _ := authmw.PrincipalFrom(c)
	order, err := h.Svc.CreateOrder(ctx, p, req)
	if err != nil {
		return httpError(l, "create_order_error", err)
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "order created",
		"orderId": order.ID.String(),
	})
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req transport.CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		l.Warn("checkout_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	p, _ := authmw.PrincipalFrom(c)
	orders, err := h.Svc.Checkout(ctx, p, req.Items)
	if err != nil {
		return httpError(l, "checkout_error", err)
	}

	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID.String())
	}
	return c.JSON(http.StatusCreated, echo.Map{"orderIds": ids})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list")

	p, _ := authmw.PrincipalFrom(c)
	orders, err := h.Svc.ListOrders(ctx, p)
	if err != nil {
		return httpError(l, "list_orders_error", err)
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get")

	p, _ := authmw.PrincipalFrom(c)
	order, err := h.Svc.GetOrder(ctx, p, c.Param("orderId"))
	if err != nil {
		return httpError(l, "get_order_error", err)
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) CancelOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.cancel")

	p, _ := authmw.PrincipalFrom(c)
	if err := h.Svc.CancelOrder(ctx, p, c.Param("orderId")); err != nil {
		return httpError(l, "cancel_order_error", err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "order cancelled"})
}
