package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# SMC Analyst Configuration

[detection]
# Order block strength cutoff as percentage of close.
# A follow-through move larger than this marks the block "strong".
strong_move_percent = 0.2
# Minimum fair value gap size as percentage of close
min_gap_percent = 0.1
# Decimal places used when clustering liquidity levels
level_decimals = 2
# Result limits per detector
max_order_blocks = 5
max_liquidity_zones = 5
max_fair_value_gaps = 3

[risk]
# Stop distance as percentage of current price (volatility proxy)
atr_percent = 0.5
# Limit entry offset as percentage of current price
entry_offset_percent = 0.1
# Pip value per standard lot, used for forex position sizing
forex_pip_value = 10.0
# Risk per trade when the caller does not specify one
default_risk_percent = 2.5

[server]
# HTTP listen address
addr = ":8080"
# Gin mode: "release" or "debug"
mode = "release"

[session]
# Idle session lifetime in minutes
ttl_minutes = 120
# Eviction sweep interval in minutes
sweep_minutes = 10

[data]
# Directory holding <SYMBOL>.csv candle files
# candle_dir = "~/.config/smc-analyst/data"
`

// createTemplateConfig writes a commented config.toml so a first run
// leaves something editable behind.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
