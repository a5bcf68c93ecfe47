// Package config provides configuration management for the analysis service.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Detection DetectionConfig `mapstructure:"detection"`
	Risk      RiskConfig      `mapstructure:"risk"`
	Server    ServerConfig    `mapstructure:"server"`
	Session   SessionConfig   `mapstructure:"session"`
	Data      DataConfig      `mapstructure:"data"`
}

// DetectionConfig holds the tunable thresholds of the signal detectors.
// The defaults were tuned for instruments quoting with two-decimal tick
// sizes; adjust per instrument rather than in code.
type DetectionConfig struct {
	StrongMovePercent float64 `mapstructure:"strong_move_percent"` // order block strength cutoff, % of close
	MinGapPercent     float64 `mapstructure:"min_gap_percent"`     // fair value gap floor, % of close
	LevelDecimals     int     `mapstructure:"level_decimals"`      // rounding for liquidity levels
	MaxOrderBlocks    int     `mapstructure:"max_order_blocks"`
	MaxLiquidityZones int     `mapstructure:"max_liquidity_zones"`
	MaxFairValueGaps  int     `mapstructure:"max_fair_value_gaps"`
}

// RiskConfig holds trade-parameter calculation settings.
type RiskConfig struct {
	ATRPercent         float64 `mapstructure:"atr_percent"`          // stop distance as % of price
	EntryOffsetPercent float64 `mapstructure:"entry_offset_percent"` // limit entry offset as % of price
	ForexPipValue      float64 `mapstructure:"forex_pip_value"`      // per standard lot
	DefaultRiskPercent float64 `mapstructure:"default_risk_percent"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
	Mode string `mapstructure:"mode"` // "release", "debug"
}

// SessionConfig holds session store settings.
type SessionConfig struct {
	TTLMinutes   int `mapstructure:"ttl_minutes"`
	SweepMinutes int `mapstructure:"sweep_minutes"`
}

// DataConfig holds market-data provider settings.
type DataConfig struct {
	CandleDir string `mapstructure:"candle_dir"`
}

// Default returns the built-in configuration. The detection and risk
// numbers mirror the constants the strategy was originally tuned with.
func Default() *Config {
	return &Config{
		Detection: DetectionConfig{
			StrongMovePercent: 0.2,
			MinGapPercent:     0.1,
			LevelDecimals:     2,
			MaxOrderBlocks:    5,
			MaxLiquidityZones: 5,
			MaxFairValueGaps:  3,
		},
		Risk: RiskConfig{
			ATRPercent:         0.5,
			EntryOffsetPercent: 0.1,
			ForexPipValue:      10,
			DefaultRiskPercent: 2.5,
		},
		Server: ServerConfig{
			Addr: ":8080",
			Mode: "release",
		},
		Session: SessionConfig{
			TTLMinutes:   120,
			SweepMinutes: 10,
		},
		Data: DataConfig{
			CandleDir: filepath.Join(DefaultConfigDir(), "data"),
		},
	}
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/smc-analyst"
	}
	return filepath.Join(home, ".config", "smc-analyst")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("writing config template: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("detection.strong_move_percent", cfg.Detection.StrongMovePercent)
	v.SetDefault("detection.min_gap_percent", cfg.Detection.MinGapPercent)
	v.SetDefault("detection.level_decimals", cfg.Detection.LevelDecimals)
	v.SetDefault("detection.max_order_blocks", cfg.Detection.MaxOrderBlocks)
	v.SetDefault("detection.max_liquidity_zones", cfg.Detection.MaxLiquidityZones)
	v.SetDefault("detection.max_fair_value_gaps", cfg.Detection.MaxFairValueGaps)
	v.SetDefault("risk.atr_percent", cfg.Risk.ATRPercent)
	v.SetDefault("risk.entry_offset_percent", cfg.Risk.EntryOffsetPercent)
	v.SetDefault("risk.forex_pip_value", cfg.Risk.ForexPipValue)
	v.SetDefault("risk.default_risk_percent", cfg.Risk.DefaultRiskPercent)
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.mode", cfg.Server.Mode)
	v.SetDefault("session.ttl_minutes", cfg.Session.TTLMinutes)
	v.SetDefault("session.sweep_minutes", cfg.Session.SweepMinutes)
	v.SetDefault("data.candle_dir", cfg.Data.CandleDir)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SMC_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("SMC_CANDLE_DIR"); v != "" {
		cfg.Data.CandleDir = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Detection.StrongMovePercent <= 0 {
		return fmt.Errorf("detection.strong_move_percent must be positive")
	}
	if c.Detection.MinGapPercent <= 0 {
		return fmt.Errorf("detection.min_gap_percent must be positive")
	}
	if c.Detection.LevelDecimals < 0 || c.Detection.LevelDecimals > 8 {
		return fmt.Errorf("detection.level_decimals must be between 0 and 8")
	}
	if c.Detection.MaxOrderBlocks <= 0 || c.Detection.MaxLiquidityZones <= 0 || c.Detection.MaxFairValueGaps <= 0 {
		return fmt.Errorf("detection result limits must be positive")
	}
	if c.Risk.ATRPercent < 0 {
		return fmt.Errorf("risk.atr_percent must be non-negative")
	}
	if c.Risk.EntryOffsetPercent < 0 {
		return fmt.Errorf("risk.entry_offset_percent must be non-negative")
	}
	if c.Risk.ForexPipValue <= 0 {
		return fmt.Errorf("risk.forex_pip_value must be positive")
	}
	if c.Risk.DefaultRiskPercent <= 0 || c.Risk.DefaultRiskPercent > 100 {
		return fmt.Errorf("risk.default_risk_percent must be in (0, 100]")
	}
	if c.Server.Mode != "release" && c.Server.Mode != "debug" {
		return fmt.Errorf("server.mode must be 'release' or 'debug'")
	}
	if c.Session.TTLMinutes <= 0 || c.Session.SweepMinutes <= 0 {
		return fmt.Errorf("session ttl and sweep intervals must be positive")
	}
	return nil
}
