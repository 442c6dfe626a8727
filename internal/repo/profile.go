package repo

import (
	"context"

	"github.com/Skotchmaster/farm_shop/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *GormRepo) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := r.DB.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile writes only the given columns. An empty change set still
// checks that the profile exists.
func (r *GormRepo) UpdateProfile(ctx context.Context, userID uuid.UUID, changes map[string]any) error {
	if len(changes) == 0 {
		var count int64
		if err := r.DB.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	}

	res := r.DB.WithContext(ctx).Model(&models.Profile{}).Where("user_id = ?", userID).Updates(changes)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListAllProfiles(ctx context.Context) ([]models.AdminProfile, error) {
	profiles := make([]models.AdminProfile, 0)
	err := r.DB.WithContext(ctx).
		Table("profiles").
		Select("profiles.*, users.email AS email, users.created_at AS joined_at").
		Joins("JOIN users ON users.id = profiles.user_id").
		Order("users.created_at DESC").
		Scan(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
