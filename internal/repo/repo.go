package repo

import (
	"errors"

	"github.com/Skotchmaster/farm_shop/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserAlreadyExist = errors.New("user already exist")
	ErrNotFound         = gorm.ErrRecordNotFound
)

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Profile{}, &models.Order{})
}
