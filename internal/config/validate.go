package config

import (
	"fmt"

	"aifm/internal/manifest"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateDefaults() error {
	if _, err := manifest.ParseMode(c.Defaults.Mode); err != nil {
		return fmt.Errorf("defaults.mode: %w", err)
	}
	if _, err := manifest.ParseTier(c.Defaults.Tier); err != nil {
		return fmt.Errorf("defaults.tier: %w", err)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}
