package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_x")
	t.Setenv("REDIS_DEDUP_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "whsec_x", cfg.Stripe.WebhookSecret)
	assert.Equal(t, time.Hour, cfg.Redis.DedupTTL)
	assert.Equal(t, 5*time.Minute, cfg.Stripe.Tolerance)
	assert.Equal(t, 10, cfg.DB.MaxOpenConns)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
