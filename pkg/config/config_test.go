package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, CSV(" a@x.com, ,b@x.com "))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("CANCEL_WINDOW", "")
	t.Setenv("ES_PRODUCT_INDEX", "")

	cfg := Load()
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 60*time.Second, cfg.CancelWindow)
	assert.Equal(t, "product", cfg.ESProductIndex)
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("ADMIN_EMAILS", "root@farm.lk")
	t.Setenv("AUTH_RATE_LIMIT", "2.5")
	t.Setenv("CANCEL_WINDOW", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []string{"root@farm.lk"}, cfg.AdminEmails)
	assert.InDelta(t, 2.5, cfg.AuthRateLimit, 0.0001)
	assert.Equal(t, 60*time.Second, cfg.CancelWindow)
}
