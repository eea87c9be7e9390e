package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrival/quickvault/internal/flagx"
	"github.com/dmitrival/quickvault/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Intervals use
// timex.Duration, so the file can say "25s" or give integer nanoseconds.
// Absent fields keep their current (default) values.
type JsonConfig struct {
	ClipboardClearInterval *timex.Duration `json:"clipboard_clear_interval"`
	ClipboardTick          *timex.Duration `json:"clipboard_tick"`
	DatabaseLockTimeout    *timex.Duration `json:"database_lock_timeout"`
	RecentItemsCap         *int            `json:"recent_items_cap"`
	AppGroup               *string         `json:"app_group"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config.
// No flag, no file, no overlay.
func parseJson(cfg *Config) error {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return nil
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", jsonConfigFile, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("config: parse %s: %w", jsonConfigFile, err)
	}

	if jc.ClipboardClearInterval != nil {
		cfg.ClipboardClearInterval = time.Duration(jc.ClipboardClearInterval.Duration)
	}
	if jc.ClipboardTick != nil {
		cfg.ClipboardTick = time.Duration(jc.ClipboardTick.Duration)
	}
	if jc.DatabaseLockTimeout != nil {
		cfg.DatabaseLockTimeout = time.Duration(jc.DatabaseLockTimeout.Duration)
	}
	if jc.RecentItemsCap != nil {
		cfg.RecentItemsCap = *jc.RecentItemsCap
	}
	if jc.AppGroup != nil {
		cfg.AppGroup = *jc.AppGroup
	}

	return nil
}
