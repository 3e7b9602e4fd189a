package main

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"aifm/internal/config"
	"aifm/internal/ledger"
	"aifm/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) ensureLogger() *slog.Logger {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		logger, err := logging.New(logging.Options{
			Level:  cfg.Logging.Level,
			Format: cfg.Logging.Format,
		})
		if err != nil {
			c.logger = logging.NewNop()
			return
		}
		c.logger = logger
	})
	return c.logger
}

// recordHistory appends to the provenance ledger when it is enabled. Ledger
// trouble never fails the operation being recorded; it is logged and dropped.
func (c *commandContext) recordHistory(ctx context.Context, record ledger.Record) {
	cfg, err := c.ensureConfig()
	if err != nil || !cfg.Ledger.Enabled {
		return
	}
	logger := c.ensureLogger()

	store, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		logger.Warn("ledger unavailable", logging.Error(err))
		return
	}
	defer store.Close()

	if err := store.Append(ctx, record); err != nil {
		logger.Warn("ledger append failed", logging.Error(err))
	}
}
