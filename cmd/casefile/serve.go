package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/casefile/internal/cli"
	httpAdapter "github.com/aretw0/casefile/pkg/adapters/http"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Exposes the session engine as a JSON API over HTTP, with Server-Sent Events
at /sessions/{id}/events and Prometheus metrics at /metrics (or on --metrics-addr).`,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError("serve", runServe(cmd))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Listen address (overrides CASEFILE_HTTP_ADDR)")
	serveCmd.Flags().String("metrics-addr", "", "Separate metrics listen address (overrides CASEFILE_METRICS_ADDR)")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("addr") {
		cfg.HTTPAddr, _ = cmd.Flags().GetString("addr")
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
	}
	debug, _ := cmd.Flags().GetBool("debug")
	logger, err := cli.NewLogger(cfg, debug)
	if err != nil {
		return err
	}

	app, err := cli.Build(cfg, logger)
	if err != nil {
		return err
	}
	defer app.Close()

	opts := []httpAdapter.Option{
		httpAdapter.WithLogger(logger),
		httpAdapter.WithHealthCheck(app.Health),
		httpAdapter.WithStreams(app.Streams),
	}
	if cfg.MetricsAddr == "" {
		opts = append(opts, httpAdapter.WithMetricsHandler(app.Metrics.Handler()))
	}

	servers := []*http.Server{{Addr: cfg.HTTPAddr, Handler: httpAdapter.NewHandler(app.Engine, opts...)}}
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", app.Metrics.Handler())
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mux})
	}

	ctx := cli.NewSignalContext(cmd.Context())
	defer ctx.Cancel()
	return serve(ctx, logger, servers...)
}

// serve runs every server until ctx is done or one of them fails, then shuts all down.
func serve(ctx context.Context, logger *slog.Logger, servers ...*http.Server) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		g.Go(func() error {
			logger.Info("listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		logger.Info("servers stopped")
		return errors.Join(errs...)
	})
	return g.Wait()
}
