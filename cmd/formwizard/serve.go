package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/metrics"
	"github.com/goliatone/go-formwizard/internal/server"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/renderers/vanilla"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Serves the wizard page, the JSON validation API, the OpenAPI document and Prometheus metrics.`,
		RunE:  runServe,
	}
	flags := cmd.Flags()
	flags.String("addr", "", "Address to listen on")
	flags.Float64("rate", 0, "POST requests per second before answering 429 (0 disables)")
	flags.Int("burst", 0, "Rate limiter burst size")
	flags.String("theme", "", "Theme name exposed to templates")
	flags.String("theme-variant", "", "Theme variant exposed to templates")
	flags.String("theme-stylesheet", "", "Stylesheet URL replacing the bundled one")
	flags.StringSlice("theme-var", nil, "CSS variable as name=value (repeatable)")
	return cmd
}

func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr, _ = flags.GetString("addr")
	}
	if flags.Changed("rate") {
		cfg.Rate, _ = flags.GetFloat64("rate")
	}
	if flags.Changed("burst") {
		cfg.Burst, _ = flags.GetInt("burst")
	}
	if flags.Changed("theme") {
		cfg.Theme.Name, _ = flags.GetString("theme")
	}
	if flags.Changed("theme-variant") {
		cfg.Theme.Variant, _ = flags.GetString("theme-variant")
	}
	if flags.Changed("theme-stylesheet") {
		cfg.Theme.Stylesheet, _ = flags.GetString("theme-stylesheet")
	}
	pairs, _ := flags.GetStringSlice("theme-var")
	vars, err := config.ParseCSSVars(pairs)
	if err != nil {
		return err
	}
	if vars != nil {
		cfg.Theme.CSSVars = vars
	}
	if cfg.Theme.Stylesheet == "" {
		cfg.Theme.Stylesheet = "/assets/" + vanilla.StylesheetName
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, &cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.New(reg)
	if err != nil {
		return err
	}

	wizardOpts := []wizard.Option{
		wizard.WithObserver(collector),
		wizard.WithSink(wizard.NewLogSink(logger)),
	}
	if !cfg.AllowBack {
		wizardOpts = append(wizardOpts, wizard.WithBackDisabled())
	}
	orch, err := buildOrchestrator(cfg, logger,
		orchestrator.WithWizardOptions(wizardOpts...),
		orchestrator.WithTheme(cfg.Theme.RendererConfig()),
	)
	if err != nil {
		return err
	}

	srv, err := server.New(orch,
		server.WithLogger(logger),
		server.WithGatherer(reg),
		server.WithRateLimit(cfg.Rate, cfg.Burst),
		server.WithVersion(version),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", "addr", cfg.Addr, "validator", cfg.Validator, "allow_back", cfg.AllowBack)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown did not complete", "err", err)
		return httpServer.Close()
	}
	logger.Info("server stopped")
	return nil
}
