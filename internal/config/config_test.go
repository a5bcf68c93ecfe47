package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadCreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("expected template config to be written: %v", err)
	}
	if cfg.Detection.StrongMovePercent != 0.2 {
		t.Errorf("strong_move_percent = %g, want default 0.2", cfg.Detection.StrongMovePercent)
	}
	if cfg.Risk.ATRPercent != 0.5 {
		t.Errorf("atr_percent = %g, want default 0.5", cfg.Risk.ATRPercent)
	}
}

func TestLoadReadsOverrides(t *testing.T) {
	dir := t.TempDir()
	content := "[detection]\nstrong_move_percent = 0.4\nmax_order_blocks = 7\n\n[server]\naddr = \":9090\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Detection.StrongMovePercent != 0.4 {
		t.Errorf("strong_move_percent = %g, want 0.4", cfg.Detection.StrongMovePercent)
	}
	if cfg.Detection.MaxOrderBlocks != 7 {
		t.Errorf("max_order_blocks = %d, want 7", cfg.Detection.MaxOrderBlocks)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %q, want :9090", cfg.Server.Addr)
	}
	// Untouched values keep their defaults.
	if cfg.Detection.MinGapPercent != 0.1 {
		t.Errorf("min_gap_percent = %g, want default 0.1", cfg.Detection.MinGapPercent)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SMC_SERVER_ADDR", ":7070")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want env override :7070", cfg.Server.Addr)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero strong move", func(c *Config) { c.Detection.StrongMovePercent = 0 }},
		{"negative gap", func(c *Config) { c.Detection.MinGapPercent = -1 }},
		{"bad decimals", func(c *Config) { c.Detection.LevelDecimals = 9 }},
		{"zero block cap", func(c *Config) { c.Detection.MaxOrderBlocks = 0 }},
		{"negative atr", func(c *Config) { c.Risk.ATRPercent = -0.1 }},
		{"zero pip value", func(c *Config) { c.Risk.ForexPipValue = 0 }},
		{"risk over 100", func(c *Config) { c.Risk.DefaultRiskPercent = 150 }},
		{"bad server mode", func(c *Config) { c.Server.Mode = "party" }},
		{"zero ttl", func(c *Config) { c.Session.TTLMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation to fail")
			}
		})
	}
}
