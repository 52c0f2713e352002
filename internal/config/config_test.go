package config

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	t.Setenv("CLERK_SECRET_KEY", "sk_test")

	cfg := &Config{}
	require.NoError(t, env.Parse(cfg))
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "3333", cfg.Port)
	assert.Equal(t, "file", cfg.StoreDriver)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, time.Hour, cfg.ReminderInterval)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, time.UTC, cfg.Location())
	assert.False(t, cfg.UsesRedis())
}

func TestValidateRejectsInconsistentSettings(t *testing.T) {
	cases := map[string]Config{
		"postgres without url": {StoreDriver: "postgres", AuthMode: "header", Timezone: "UTC", RateLimitRPS: 1, RateLimitBurst: 1},
		"unknown driver":       {StoreDriver: "mongo", AuthMode: "header", Timezone: "UTC", RateLimitRPS: 1, RateLimitBurst: 1},
		"clerk without key":    {StoreDriver: "memory", AuthMode: "clerk", Timezone: "UTC", RateLimitRPS: 1, RateLimitBurst: 1},
		"bad timezone":         {StoreDriver: "memory", AuthMode: "header", Timezone: "Mars/Olympus", RateLimitRPS: 1, RateLimitBurst: 1},
		"zero rate":            {StoreDriver: "memory", AuthMode: "header", Timezone: "UTC"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestTimezoneLocation(t *testing.T) {
	cfg := Config{Timezone: "Europe/Sofia"}
	assert.Equal(t, "Europe/Sofia", cfg.Location().String())
}
