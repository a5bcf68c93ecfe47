package cli

import (
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"smc-analyst/internal/analysis/indicators"
	"smc-analyst/internal/analysis/scoring"
	"smc-analyst/internal/analysis/smc"
	"smc-analyst/internal/api"
	"smc-analyst/internal/assistant"
	"smc-analyst/internal/marketdata"
	"smc-analyst/internal/risk"
	"smc-analyst/internal/session"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.Config
			if addr != "" {
				cfg.Server.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			snapshotter := indicators.NewSnapshotter(4)
			calculator := risk.NewCalculator(cfg.Risk)
			sessions := session.NewStore(
				time.Duration(cfg.Session.TTLMinutes)*time.Minute,
				time.Duration(cfg.Session.SweepMinutes)*time.Minute,
				app.Logger,
			)
			defer sessions.Close()

			deps := api.Deps{
				Assistant: assistant.New(
					smc.NewAnalyzer(cfg.Detection),
					snapshotter,
					calculator,
					scoring.NewConfidenceScorer(rand.NewSource(time.Now().UnixNano())),
					app.Logger,
				),
				Provider:   marketdata.NewCSVProvider(cfg.Data.CandleDir, app.Logger),
				Calculator: calculator,
				Sessions:   sessions,
				Snapshots:  snapshotter,
			}

			server := api.NewServer(cfg.Server, deps, app.Logger)
			return server.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")

	return cmd
}
