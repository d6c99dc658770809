package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/modelgate/modelgate/bootstrap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Recompile whenever a model definition changes",
	Long: `Watch the model directory and rebuild the schema artifact on every
change. Each rebuild uses a fresh registry, so sealing stays one-way.
A failed rebuild keeps the previous artifact and reports the full error set.

With metrics enabled and a listen address configured, a Prometheus endpoint
is served at /metrics.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := bootstrap.New(cfg)
	if err != nil {
		return err
	}

	watcher, err := bootstrap.NewWatcher(cfg.Models.Dir, app.Artifact, app.Logger, app.Metrics)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	if cfg.Metrics.Enabled && cfg.Metrics.Listen != "" {
		go serveMetrics(cfg.Metrics.Listen, app)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	app.Logger.Info().Msg("shutting down")
	return nil
}

func serveMetrics(addr string, app *bootstrap.App) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	app.Logger.Info().Str("addr", addr).Msg("serving metrics")
	if err := http.ListenAndServe(addr, mux); err != nil {
		app.Logger.Error().Err(err).Msg("metrics listener failed")
	}
}
