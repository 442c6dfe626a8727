package config

import (
	"fmt"

	"github.com/Skotchmaster/farm_shop/pkg/config"
)

type ServiceConfig struct {
	config.Config
}

// Load reads the shop's settings from the environment. A missing database
// URL or signing key stops the process.
func Load() ServiceConfig {
	cfg := config.Load()

	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	return ServiceConfig{Config: cfg}
}

func (c ServiceConfig) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}
