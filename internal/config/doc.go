// Package config loads runtime configuration for the quick-unlock core.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-clip int    clipboard clear interval (seconds)
//	-lock int    database lock timeout (seconds)
//	-n int       recent items cap
//	-g string    application group for the shared store
//
// # JSON schema
//
// Interval fields use timex.Duration, so values can be either strings like
// "25s" or integer nanoseconds:
//
//	{
//	  "clipboard_clear_interval": "25s",
//	  "clipboard_tick": "250ms",
//	  "database_lock_timeout": "2m",
//	  "recent_items_cap": 12,
//	  "app_group": "quickvault"
//	}
//
// Every loaded configuration passes Validate: non-positive intervals or caps
// are errors, never a silent feature switch-off.
package config
