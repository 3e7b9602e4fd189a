package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeDefaults()
	if err := c.normalizeLedger(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeDefaults() {
	c.Defaults.Author = strings.TrimSpace(c.Defaults.Author)
	if c.Defaults.Author == "" {
		if value, ok := os.LookupEnv("AIFM_AUTHOR"); ok {
			c.Defaults.Author = strings.TrimSpace(value)
		}
	}
	c.Defaults.Contact = strings.TrimSpace(c.Defaults.Contact)
	if c.Defaults.Contact == "" {
		if value, ok := os.LookupEnv("AIFM_CONTACT"); ok {
			c.Defaults.Contact = strings.TrimSpace(value)
		}
	}
	c.Defaults.AISystem = strings.TrimSpace(c.Defaults.AISystem)
	c.Defaults.Mode = strings.TrimSpace(c.Defaults.Mode)
	if c.Defaults.Mode == "" {
		c.Defaults.Mode = defaultMode
	}
	c.Defaults.Tier = strings.TrimSpace(c.Defaults.Tier)
	if c.Defaults.Tier == "" {
		c.Defaults.Tier = defaultTier
	}
}

func (c *Config) normalizeLedger() error {
	c.Ledger.Path = strings.TrimSpace(c.Ledger.Path)
	if c.Ledger.Path == "" {
		c.Ledger.Path = defaultLedgerPath
	}
	expanded, err := expandPath(c.Ledger.Path)
	if err != nil {
		return fmt.Errorf("ledger.path: %w", err)
	}
	c.Ledger.Path = expanded
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
