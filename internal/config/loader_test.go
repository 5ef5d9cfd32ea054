package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Setenv("TODO_ADDR", ":7000")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Addr)
}

func TestLoader_Load_InvalidEnvironment(t *testing.T) {
	t.Setenv("TODO_LOG_FORMAT", "xml")

	_, err := NewLoader().Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.format")
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("TODO_ADDR", ":7000")
	t.Setenv("TODO_SERVER_URL", "http://env:8080")

	addr := ":9000"
	seed := false
	timeout := 3 * time.Second
	level := "debug"

	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		Addr:          &addr,
		Seed:          &seed,
		ClientTimeout: &timeout,
		LogLevel:      &level,
	})
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Server.Addr, "flags win over environment")
	assert.Equal(t, "http://env:8080", cfg.Client.ServerURL, "environment wins over defaults")
	assert.False(t, cfg.Database.Seed)
	assert.Equal(t, 3*time.Second, cfg.Client.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoader_LoadWithOverrides_Nil(t *testing.T) {
	cfg, err := NewLoader().LoadWithOverrides(nil)
	require.NoError(t, err)
	assert.Equal(t, NewConfig(), cfg)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 5*time.Second, ParseDurationWithFallback("5s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("five", time.Second))
	assert.Equal(t, 12, ParseIntWithFallback("12", 1))
	assert.Equal(t, 1, ParseIntWithFallback("x", 1))
	assert.True(t, ParseBoolWithFallback("true", false))
	assert.False(t, ParseBoolWithFallback("nah", false))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0755))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("9z", 8, 0755))
}
