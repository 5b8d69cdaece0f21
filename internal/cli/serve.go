package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zschool/planner/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the planner HTTP API server.

Serves the resolved weekly plan, converted lesson pages, and board
sessions over REST. Shuts down gracefully on SIGINT/SIGTERM.

Examples:
  planner serve
  planner serve --addr :9000`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides PLANNER_LISTEN_ADDR)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	svcs, err := getServices(ctx)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	defer func() { _ = svcs.cleanup() }()

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	srv := server.New(addr, svcs.plans, svcs.pages, svcs.boards, svcs.collector, svcs.logger)
	svcs.logger.Info("planner server starting", "addr", addr, "version", Version)

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("run server: %w", err)
	}

	svcs.logger.Info("shutdown complete")
	return nil
}
