package config

const (
	defaultMode       = "human-directed-ai"
	defaultTier       = "SDA"
	defaultLedgerPath = "~/.local/share/aifm/ledger.db"
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Defaults: Defaults{
			Mode: defaultMode,
			Tier: defaultTier,
		},
		Ledger: Ledger{
			Enabled: true,
			Path:    defaultLedgerPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
