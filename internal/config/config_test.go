package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func defaults(t *testing.T) *Config {
	t.Helper()
	cfg := &Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	cfg := defaults(t)

	require.Equal(t, 25*time.Second, cfg.ClipboardClearInterval)
	require.Equal(t, 250*time.Millisecond, cfg.ClipboardTick)
	require.Equal(t, 2*time.Minute, cfg.DatabaseLockTimeout)
	require.Equal(t, 12, cfg.RecentItemsCap)
	require.Equal(t, "quickvault", cfg.AppGroup)
	require.NoError(t, cfg.Validate())
}

func TestValidate_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero clip interval", func(c *Config) { c.ClipboardClearInterval = 0 }},
		{"negative clip interval", func(c *Config) { c.ClipboardClearInterval = -time.Second }},
		{"zero tick", func(c *Config) { c.ClipboardTick = 0 }},
		{"tick above interval", func(c *Config) { c.ClipboardTick = time.Minute }},
		{"zero lock timeout", func(c *Config) { c.DatabaseLockTimeout = 0 }},
		{"zero recents cap", func(c *Config) { c.RecentItemsCap = 0 }},
		{"negative recents cap", func(c *Config) { c.RecentItemsCap = -1 }},
		{"empty app group", func(c *Config) { c.AppGroup = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults(t)
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}
