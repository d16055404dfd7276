package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:    ServerConfig{Port: "8080"},
		Database:  DatabaseConfig{URL: "postgres://localhost:5432/lending?sslmode=disable"},
		Scheduler: SchedulerConfig{Interval: "24h", Timezone: "Asia/Colombo"},
		Health:    HealthConfig{Timeout: "5s"},
		Business: BusinessConfig{
			PenaltyRate:           "2.0",
			DefaultMethod:         "flat",
			DefaultThresholdWeeks: 4,
			MaxDurationWeeks:      104,
			LoanCacheTTL:          "15m",
		},
	}
}

func TestConfigValidate(t *testing.T) {
	t.Run("valid config passes", func(t *testing.T) {
		require.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing server port", func(c *Config) { c.Server.Port = "" }},
		{"missing database url", func(c *Config) { c.Database.URL = "" }},
		{"zero default threshold", func(c *Config) { c.Business.DefaultThresholdWeeks = 0 }},
		{"zero max duration", func(c *Config) { c.Business.MaxDurationWeeks = 0 }},
		{"unknown interest method", func(c *Config) { c.Business.DefaultMethod = "balloon" }},
		{"non-numeric penalty rate", func(c *Config) { c.Business.PenaltyRate = "two" }},
		{"negative penalty rate", func(c *Config) { c.Business.PenaltyRate = "-1" }},
		{"bad cache ttl", func(c *Config) { c.Business.LoanCacheTTL = "soon" }},
		{"bad scheduler interval", func(c *Config) { c.Scheduler.Interval = "daily" }},
		{"bad health timeout", func(c *Config) { c.Health.Timeout = "fast" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestConfigGetters(t *testing.T) {
	cfg := validConfig()

	assert.True(t, cfg.GetPenaltyRate().Equal(decimal.RequireFromString("2.0")))
	assert.Equal(t, 15*time.Minute, cfg.GetLoanCacheTTL())
	assert.Equal(t, 24*time.Hour, cfg.GetSchedulerInterval())
	assert.Equal(t, 5*time.Second, cfg.GetHealthTimeout())
}
