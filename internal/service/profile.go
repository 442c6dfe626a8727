package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/farm_shop/internal/cache"
	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/Skotchmaster/farm_shop/internal/repo"
	"github.com/Skotchmaster/farm_shop/internal/transport"
	"github.com/Skotchmaster/farm_shop/pkg/logging"
	"github.com/Skotchmaster/farm_shop/pkg/tokens"
)

type ProfileService struct {
	Repo  *repo.GormRepo
	Cache cache.ProfileCache
}

func (h *ProfileService) owned(p tokens.Principal, userID string) (uuid.UUID, error) {
	if p.ID == "" || p.ID != userID {
		return uuid.Nil, ErrForbidden
	}
	uid, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: profile", ErrNotFound)
	}
	return uid, nil
}

func (h *ProfileService) GetProfile(ctx context.Context, p tokens.Principal, userID string) (*models.Profile, error) {
	l := logging.FromContext(ctx).With("svc", "profile.get")

	uid, err := h.owned(p, userID)
	if err != nil {
		l.Warn("get_profile_error", "status", 403, "reason", "not the owner", "user_id", p.ID)
		return nil, err
	}

	if h.Cache != nil {
		cached, err := h.Cache.Get(ctx, userID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			l.Warn("profile_cache_error", "op", "get", "error", err)
		}
	}

	profile, err := h.Repo.GetProfileByUserID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("get_profile_error", "status", 404, "reason", "profile not found", "user_id", userID)
			return nil, fmt.Errorf("%w: profile", ErrNotFound)
		}
		l.Error("get_profile_error", "status", 500, "error", err)
		return nil, err
	}

	if h.Cache != nil {
		if err := h.Cache.Set(ctx, userID, profile); err != nil {
			l.Warn("profile_cache_error", "op", "set", "error", err)
		}
	}
	return profile, nil
}

// UpdateProfile applies a merge patch. Fields left nil keep their stored
// value.
func (h *ProfileService) UpdateProfile(ctx context.Context, p tokens.Principal, userID string, patch transport.ProfilePatch) error {
	l := logging.FromContext(ctx).With("svc", "profile.update")

	uid, err := h.owned(p, userID)
	if err != nil {
		l.Warn("update_profile_error", "status", 403, "reason", "not the owner", "user_id", p.ID)
		return err
	}

	if err := h.Repo.UpdateProfile(ctx, uid, profileChanges(patch)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			l.Warn("update_profile_error", "status", 404, "reason", "profile not found", "user_id", userID)
			return fmt.Errorf("%w: profile", ErrNotFound)
		}
		l.Error("update_profile_error", "status", 500, "error", err)
		return err
	}

	if h.Cache != nil {
		if err := h.Cache.Delete(ctx, userID); err != nil {
			l.Warn("profile_cache_error", "op", "delete", "error", err)
		}
	}
	l.Info("update_profile_success", "user_id", userID)
	return nil
}

func profileChanges(patch transport.ProfilePatch) map[string]any {
	changes := make(map[string]any)
	set := func(col string, v *string) {
		if v != nil {
			changes[col] = *v
		}
	}
	set("full_name", patch.FullName)
	set("address", patch.Address)
	set("gps_location", patch.GPSLocation)
	set("phone_number", patch.PhoneNumber)
	set("birthday", patch.Birthday)
	set("gender", patch.Gender)
	set("referral_source", patch.ReferralSource)
	return changes
}
