package config

import (
	"fmt"
	"time"
)

// Config holds the runtime settings the UI layer tunes.
//
// Fields:
//   - ClipboardClearInterval: how long a copied secret stays on the clipboard.
//   - ClipboardTick: cadence of clear-countdown progress updates.
//   - DatabaseLockTimeout: idle interval after which an unlocked database is
//     locked again.
//   - RecentItemsCap: maximum number of keys the recent-items cache keeps.
//   - AppGroup: shared namespace for the durable store, common to the main
//     app and the autofill extension.
type Config struct {
	ClipboardClearInterval time.Duration
	ClipboardTick          time.Duration
	DatabaseLockTimeout    time.Duration
	RecentItemsCap         int
	AppGroup               string
}

// LoadDefaults populates c with the documented defaults.
func (c *Config) LoadDefaults() {
	c.ClipboardClearInterval = 25 * time.Second
	c.ClipboardTick = 250 * time.Millisecond
	c.DatabaseLockTimeout = 2 * time.Minute
	c.RecentItemsCap = 12
	c.AppGroup = "quickvault"
}

// Validate rejects values that would silently disable a feature. A zero or
// negative interval is a configuration mistake, not an off switch.
func (c *Config) Validate() error {
	if c.ClipboardClearInterval <= 0 {
		return fmt.Errorf("config: clipboard clear interval must be positive, got %v", c.ClipboardClearInterval)
	}
	if c.ClipboardTick <= 0 {
		return fmt.Errorf("config: clipboard tick must be positive, got %v", c.ClipboardTick)
	}
	if c.ClipboardTick > c.ClipboardClearInterval {
		return fmt.Errorf("config: clipboard tick %v exceeds clear interval %v", c.ClipboardTick, c.ClipboardClearInterval)
	}
	if c.DatabaseLockTimeout <= 0 {
		return fmt.Errorf("config: database lock timeout must be positive, got %v", c.DatabaseLockTimeout)
	}
	if c.RecentItemsCap <= 0 {
		return fmt.Errorf("config: recent items cap must be positive, got %d", c.RecentItemsCap)
	}
	if c.AppGroup == "" {
		return fmt.Errorf("config: application group must not be empty")
	}
	return nil
}

// LoadConfig builds a Config by applying defaults, then the optional JSON
// file, then command-line flags. The result is validated before it is
// returned, so callers never see a half-usable configuration.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
