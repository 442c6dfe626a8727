package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_shop/internal/catalog"
	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/internal/transport"
	"github.com/Skotchmaster/farm_shop/pkg/events"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

const DefaultCancelWindow = 60 * time.Second

type OrderService struct {
	Repo         *repo.GormRepo
	Catalog      catalog.Catalog
	Events       events.Publisher
	CancelWindow time.Duration
	Now          Clock
}

func (h *OrderService) window() time.Duration {
	if h.CancelWindow <= 0 {
		return DefaultCancelWindow
	}
	return h.CancelWindow
}

// buildOrder validates one cart line and prices it against the catalog.
func (h *OrderService) buildOrder(ctx context.Context, userID uuid.UUID, line transport.CreateOrderRequest, now time.Time) (*models.Order, error) {
	if line.ProductID == "" {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if line.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrValidation)
	}
	if line.TotalPrice.IsNegative() {
		return nil, fmt.Errorf("%w: total_price must not be negative", ErrValidation)
	}

	unit, err := h.Catalog.UnitPrice(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownProduct) {
			return nil, fmt.Errorf("%w: unknown product %q", ErrValidation, line.ProductID)
		}
		return nil, err
	}
	expected := unit.Mul(decimalFromInt(line.Quantity))
	if !expected.Equal(line.TotalPrice) {
		return nil, fmt.Errorf("%w: expected %s, got %s", ErrPriceMismatch, expected.StringFixed(2), line.TotalPrice.StringFixed(2))
	}

	return &models.Order{
		UserID:     userID,
		ProductID:  line.ProductID,
		Quantity:   line.Quantity,
		TotalPrice: line.TotalPrice,
		Status:     models.OrderStatusPending,
		CreatedAt:  now,
	}, nil
}

func (h *OrderService) CreateOrder(ctx context.Context, p tokens.Principal, line transport.CreateOrderRequest) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.create")

	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, tokens.ErrUnauthenticated
	}

	order, err := h.buildOrder(ctx, userID, line, h.Now.now())
	if err != nil {
		logOrderRejection(l, "create_order_error", err)
		return nil, err
	}
	if _, err := h.Repo.CreateOrder(ctx, order); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			l.Warn("create_order_error", "status", 401, "reason", "user no longer exists", "user_id", p.ID)
			return nil, tokens.ErrUnauthenticated
		}
		l.Error("create_order_error", "status", 500, "reason", "cannot store order", "error", err)
		return nil, err
	}

	h.publish(ctx, events.OrderCreated, order)
	l.Info("create_order_success", "order_id", order.ID, "user_id", p.ID)
	return order, nil
}

// Checkout turns every cart line into an order. One bad line rejects the
// whole cart.
func (h *OrderService) Checkout(ctx context.Context, p tokens.Principal, lines []transport.CreateOrderRequest) ([]*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.checkout")

	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, tokens.ErrUnauthenticated
	}
	if len(lines) == 0 {
		l.Warn("checkout_error", "status", 400, "reason", "empty cart")
		return nil, fmt.Errorf("%w: cart is empty", ErrValidation)
	}

	now := h.Now.now()
	orders := make([]*models.Order, 0, len(lines))
	for i, line := range lines {
		order, err := h.buildOrder(ctx, userID, line, now)
		if err != nil {
			logOrderRejection(l.With("line", i), "checkout_error", err)
			return nil, err
		}
		orders = append(orders, order)
	}

	if err := h.Repo.CreateOrders(ctx, orders); err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			l.Warn("checkout_error", "status", 401, "reason", "user no longer exists", "user_id", p.ID)
			return nil, tokens.ErrUnauthenticated
		}
		l.Error("checkout_error", "status", 500, "reason", "cannot store orders", "error", err)
		return nil, err
	}

	for _, o := range orders {
		h.publish(ctx, events.OrderCreated, o)
	}
	l.Info("checkout_success", "user_id", p.ID, "orders", len(orders))
	return orders, nil
}

func (h *OrderService) ListOrders(ctx context.Context, p tokens.Principal) ([]models.Order, error) {
	userID, err := uuid.Parse(p.ID)
	if err != nil {
		return nil, tokens.ErrUnauthenticated
	}
	orders, err := h.Repo.ListOrders(ctx, userID)
	if err != nil {
		logging.FromContext(ctx).Error("list_orders_error", "status", 500, "error", err)
		return nil, err
	}
	return orders, nil
}

func (h *OrderService) GetOrder(ctx context.Context, p tokens.Principal, id string) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.get")

	order, err := h.lookup(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.Warn("get_order_error", "status", 404, "reason", "order not found", "order_id", id)
		}
		return nil, err
	}
	if order.UserID.String() != p.ID {
		l.Warn("get_order_error", "status", 403, "reason", "not the owner", "order_id", id, "user_id", p.ID)
		return nil, ErrForbidden
	}
	return order, nil
}

// CancelOrder hard deletes a pending order while it is still inside the
// cancellation window.
func (h *OrderService) CancelOrder(ctx context.Context, p tokens.Principal, id string) error {
	l := logging.FromContext(ctx).With("svc", "order.cancel")

	order, err := h.lookup(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			l.Warn("cancel_order_error", "status", 404, "reason", "order not found", "order_id", id)
		}
		return err
	}
	if order.UserID.String() != p.ID {
		l.Warn("cancel_order_error", "status", 403, "reason", "not the owner", "order_id", id, "user_id", p.ID)
		return ErrForbidden
	}

	age := h.Now.now().Sub(order.CreatedAt)
	if age > h.window() {
		l.Warn("cancel_order_error", "status", 400, "reason", "cancellation window expired", "order_id", id, "age", age.String())
		return ErrCancellationWindowExpired
	}

	if err := h.Repo.DeleteOrder(ctx, order.ID, order.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("cancel_order_error", "status", 404, "reason", "order already gone", "order_id", id)
			return fmt.Errorf("%w: order", ErrNotFound)
		}
		l.Error("cancel_order_error", "status", 500, "error", err)
		return err
	}

	h.publish(ctx, events.OrderCancelled, order)
	l.Info("cancel_order_success", "order_id", id, "user_id", p.ID)
	return nil
}

func (h *OrderService) lookup(ctx context.Context, id string) (*models.Order, error) {
	oid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: order", ErrNotFound)
	}
	order, err := h.Repo.GetOrder(ctx, oid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order", ErrNotFound)
		}
		logging.FromContext(ctx).Error("get_order_error", "status", 500, "error", err)
		return nil, err
	}
	return order, nil
}

func (h *OrderService) publish(ctx context.Context, typ string, o *models.Order) {
	if h.Events == nil {
		return
	}
	ev := events.OrderEvent{
		Type:       typ,
		OrderID:    o.ID.String(),
		UserID:     o.UserID.String(),
		ProductID:  o.ProductID,
		Quantity:   o.Quantity,
		TotalPrice: o.TotalPrice.StringFixed(2),
		At:         h.Now.now(),
	}
	if err := h.Events.Publish(ctx, events.TopicOrderEvents, ev.OrderID, ev); err != nil {
		logging.FromContext(ctx).Error("publish_error", "topic", events.TopicOrderEvents, "type", typ, "error", err)
	}
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

func logOrderRejection(l *slog.Logger, event string, err error) {
	if errors.Is(err, ErrValidation) || errors.Is(err, ErrPriceMismatch) {
		l.Warn(event, "status", 400, "reason", err.Error())
		return
	}
	l.Error(event, "status", 500, "error", err)
}
