package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/spboyer/dealerrank/internal/scoring"
	"github.com/spboyer/dealerrank/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scoring engine over HTTP",
		Long: `Start an HTTP server on 127.0.0.1 exposing the scoring engine.

Endpoints:
  GET  /api/health   Liveness check
  GET  /api/weights  The weight set in effect
  POST /api/score    Score {"entities": [...]} or {"rows": [...]}; ?format=json|markdown|html|table

Rejected records answer 422, malformed requests 400. The server stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadProjectConfig(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			policy, err := scoring.ParseMissingPolicy(cfg.Missing)
			if err != nil {
				return err
			}
			logger := slog.Default()
			engine, err := scoring.NewEngine(cfg.Metrics,
				scoring.WithLogger(logger),
				scoring.WithPrecision(cfg.PrecisionOrDefault()),
			)
			if err != nil {
				return fmt.Errorf("weights: %w", err)
			}

			srv, err := webserver.New(webserver.Config{
				Port:           cfg.Server.Port,
				AllowedOrigins: cfg.Server.AllowedOrigins,
				Scorer:         engine,
				Missing:        policy,
				IDColumn:       cfg.Dataset.IDColumn,
				Logger:         logger,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(os.Stderr, "dealerrank API: http://%s/api\n", srv.Addr())
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a config file (default: discover .dealerrank.yaml)")
	cmd.Flags().IntVarP(&port, "port", "p", webserver.DefaultPort, "Port to listen on (default from config)")
	return cmd
}
