package cli

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/spf13/cobra"

	"smc-analyst/internal/analysis/indicators"
	"smc-analyst/internal/analysis/scoring"
	"smc-analyst/internal/analysis/smc"
	"smc-analyst/internal/assistant"
	"smc-analyst/internal/marketdata"
	"smc-analyst/internal/models"
	"smc-analyst/internal/risk"
	"smc-analyst/pkg/utils"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var (
		file     string
		symbol   string
		biasFlag string
		price    float64
		balance  float64
		riskPct  float64
		class    string
		seed     int64
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run a smart money analysis over candle data",
		Long: `Analyze candle data for order blocks, liquidity zones, and fair
value gaps, and derive trade parameters for the given bias.

Candles come from --file (a CSV path) or --symbol (resolved in the
configured candle directory).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			bias, err := models.ParseBias(biasFlag)
			if err != nil {
				return err
			}

			var series *models.CandleSeries
			switch {
			case file != "":
				series, err = marketdata.LoadFile(file)
			case symbol != "":
				provider := marketdata.NewCSVProvider(app.Config.Data.CandleDir, app.Logger)
				series, err = provider.Candles(cmd.Context(), symbol)
			default:
				return fmt.Errorf("either --file or --symbol is required")
			}
			if err != nil {
				return err
			}

			if price == 0 {
				price = series.Last().Close
			}
			if riskPct == 0 {
				riskPct = app.Config.Risk.DefaultRiskPercent
			}

			var src rand.Source
			if cmd.Flags().Changed("seed") {
				src = rand.NewSource(seed)
			}

			a := assistant.New(
				smc.NewAnalyzer(app.Config.Detection),
				indicators.NewSnapshotter(4),
				risk.NewCalculator(app.Config.Risk),
				scoring.NewConfidenceScorer(src),
				app.Logger,
			)

			analysis, err := a.Analyze(cmd.Context(), assistant.Request{
				Symbol:      strings.ToUpper(symbol),
				Candles:     series.Candles(),
				Bias:        bias,
				Price:       price,
				Balance:     balance,
				RiskPercent: riskPct,
				AssetClass:  models.ParseAssetClass(class),
			})
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(analysis)
			}
			renderAnalysis(output, analysis)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "CSV file with candle data")
	cmd.Flags().StringVar(&symbol, "symbol", "", "symbol to load from the candle directory")
	cmd.Flags().StringVar(&biasFlag, "bias", "", "directional bias (bullish or bearish)")
	cmd.Flags().Float64Var(&price, "price", 0, "current price (default: last close)")
	cmd.Flags().Float64Var(&balance, "balance", 10000, "account balance")
	cmd.Flags().Float64Var(&riskPct, "risk", 0, "risk percent per trade (default from config)")
	cmd.Flags().StringVar(&class, "class", "other", "asset class (forex, stock, crypto, commodity)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed for reproducible confidence scoring")
	cmd.MarkFlagRequired("bias")

	return cmd
}

func renderAnalysis(output *Output, a *assistant.Analysis) {
	output.Bold("Smart Money Analysis")
	if a.Symbol != "" {
		output.Printf("  Symbol:     %s\n", a.Symbol)
	}
	output.Printf("  Price:      %s\n", utils.FormatUSD(a.CurrentPrice))
	output.Printf("  Confidence: %d%%\n", a.Confidence)
	output.Println()

	if len(a.OrderBlocks) > 0 {
		output.Bold("Order Blocks")
		table := NewTable(output, "TYPE", "LEVEL", "STRENGTH", "TIME")
		for _, b := range a.OrderBlocks {
			table.AddRow(directionLabel(output, b.Type), fmt.Sprintf("%.2f", b.Level),
				string(b.Strength), b.Timestamp.Format("2006-01-02 15:04"))
		}
		table.Render()
		output.Println()
	}

	if len(a.LiquidityZones) > 0 {
		output.Bold("Liquidity Zones")
		table := NewTable(output, "SIDE", "LEVEL", "TOUCHES")
		for _, z := range a.LiquidityZones {
			table.AddRow(string(z.Type), fmt.Sprintf("%.2f", z.Level), fmt.Sprintf("%d", z.Strength))
		}
		table.Render()
		output.Println()
	}

	if len(a.FairValueGaps) > 0 {
		output.Bold("Fair Value Gaps")
		table := NewTable(output, "TYPE", "RANGE", "MIDPOINT", "SIZE")
		for _, g := range a.FairValueGaps {
			table.AddRow(directionLabel(output, g.Type),
				fmt.Sprintf("%.2f - %.2f", g.Lower, g.Upper),
				fmt.Sprintf("%.2f", g.Midpoint), fmt.Sprintf("%.2f", g.Size))
		}
		table.Render()
		output.Println()
	}

	setup := a.TradeSetup
	output.Bold("Trade Setup (%s)", setup.Bias)
	output.Printf("  Entry:      %.2f\n", setup.Entry)
	output.Printf("  Stop Loss:  %.2f\n", setup.StopLoss)
	output.Printf("  Targets:    %.2f / %.2f / %.2f\n", setup.Targets.TP1, setup.Targets.TP2, setup.Targets.TP3)
	output.Printf("  Size:       %.2f\n", setup.PositionSize)
	output.Printf("  Risk:       %s (%.1f pips)\n", utils.FormatUSD(setup.RiskAmount), setup.PipRisk)
	output.Println()

	if len(a.ConfluenceFactors) > 0 {
		output.Bold("Confluence")
		for _, f := range a.ConfluenceFactors {
			output.Printf("  • %s\n", f)
		}
		output.Println()
	}

	output.Bold("Risk Warnings")
	for _, w := range a.RiskWarnings {
		output.Warning("  ! %s", w)
	}
}

func directionLabel(output *Output, d models.SignalDirection) string {
	if d == models.SignalBullish {
		return output.Green(string(d))
	}
	return output.Red(string(d))
}
