package service

import (
	"context"

	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
)

// AdminService reads across every customer. Callers are expected to sit
// behind the admin gate.
type AdminService struct {
	Repo *repo.GormRepo
}

func (h *AdminService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := h.Repo.ListAllOrders(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_orders_error", "status", 500, "error", err)
		return nil, err
	}
	return orders, nil
}

func (h *AdminService) ListAllProfiles(ctx context.Context) ([]models.AdminProfile, error) {
	profiles, err := h.Repo.ListAllProfiles(ctx)
	if err != nil {
		logging.FromContext(ctx).Error("admin_list_profiles_error", "status", 500, "error", err)
		return nil, err
	}
	return profiles, nil
}
