package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"smc-analyst/internal/config"
	"smc-analyst/internal/logging"
	"smc-analyst/pkg/utils"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-06-01"
)

// App holds the application dependencies.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	rootCmd := &cobra.Command{
		Use:   "smc",
		Short: "Smart money concepts market analysis CLI",
		Long: `smc analyzes candle data for smart money concepts: order blocks,
liquidity zones, and fair value gaps. It derives trade parameters from a
directional bias and serves the same analysis over HTTP.

Use 'smc help <command>' for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/smc-analyst)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newAnalyzeCmd(app))
	rootCmd.AddCommand(newServeCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("smc-analyst v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			showConfig(output, app.Config)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) {
	output.Bold("Detection")
	output.Printf("  Strong Move:      %s\n", utils.FormatPercent(cfg.Detection.StrongMovePercent))
	output.Printf("  Min Gap:          %s\n", utils.FormatPercent(cfg.Detection.MinGapPercent))
	output.Printf("  Level Decimals:   %d\n", cfg.Detection.LevelDecimals)
	output.Printf("  Max Order Blocks: %d\n", cfg.Detection.MaxOrderBlocks)
	output.Printf("  Max Zones:        %d\n", cfg.Detection.MaxLiquidityZones)
	output.Printf("  Max Gaps:         %d\n", cfg.Detection.MaxFairValueGaps)
	output.Println()

	output.Bold("Risk")
	output.Printf("  Stop Distance:    %s\n", utils.FormatPercent(cfg.Risk.ATRPercent))
	output.Printf("  Entry Offset:     %s\n", utils.FormatPercent(cfg.Risk.EntryOffsetPercent))
	output.Printf("  Forex Pip Value:  %.1f\n", cfg.Risk.ForexPipValue)
	output.Printf("  Default Risk:     %.1f%%\n", cfg.Risk.DefaultRiskPercent)
	output.Println()

	output.Bold("Server")
	output.Printf("  Addr:             %s\n", cfg.Server.Addr)
	output.Printf("  Mode:             %s\n", cfg.Server.Mode)
	output.Println()

	output.Bold("Sessions")
	output.Printf("  TTL:              %d min\n", cfg.Session.TTLMinutes)
	output.Printf("  Sweep Interval:   %d min\n", cfg.Session.SweepMinutes)
	output.Println()

	output.Bold("Data")
	output.Printf("  Candle Dir:       %s\n", cfg.Data.CandleDir)
}
