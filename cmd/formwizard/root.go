package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/config"
	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/formdef"
	"github.com/goliatone/go-formwizard/pkg/model"
	"github.com/goliatone/go-formwizard/pkg/orchestrator"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "formwizard",
		Short:         "Three-step account wizard",
		Long:          `formwizard walks a user through credentials, profile and links, validating each step before moving on.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log format (auto, text, json)")
	flags.String("definition", "", "Copy overlay file (YAML or JSON) applied to the form")
	flags.String("validator", "", "Step validator (rules or schema)")
	flags.Bool("no-back", false, "Disable back navigation")

	root.AddCommand(newServeCmd(), newPromptCmd(), newValidateCmd(), newSchemaCmd())
	return root
}

// loadConfig merges defaults, FORMWIZARD_* variables and explicitly set flags.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.FromEnv(config.Default(), nil)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.LogFormat, _ = flags.GetString("log-format")
	}
	if flags.Changed("definition") {
		cfg.Definition, _ = flags.GetString("definition")
	}
	if flags.Changed("validator") {
		cfg.Validator, _ = flags.GetString("validator")
	}
	if flags.Changed("no-back") {
		noBack, _ := flags.GetBool("no-back")
		cfg.AllowBack = !noBack
	}
	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level, cfg.LogFormat, cmd.ErrOrStderr())
}

// orchestratorOptions turns the shared settings into orchestrator options.
func orchestratorOptions(cfg config.Config, logger *slog.Logger) ([]orchestrator.Option, error) {
	factory, err := orchestrator.ValidatorFor(cfg.Validator)
	if err != nil {
		return nil, err
	}
	opts := []orchestrator.Option{
		orchestrator.WithValidatorFactory(factory),
		orchestrator.WithLogger(logger),
	}
	if cfg.Definition != "" {
		overlay, err := formdef.LoadFile(cfg.Definition)
		if err != nil {
			return nil, err
		}
		opts = append(opts, orchestrator.WithDecorators(overlay))
	}
	return opts, nil
}

func buildOrchestrator(cfg config.Config, logger *slog.Logger, extra ...orchestrator.Option) (*orchestrator.Orchestrator, error) {
	opts, err := orchestratorOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	orch := orchestrator.New(append(opts, extra...)...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch, nil
}

func formFor(cfg config.Config) (model.FormModel, error) {
	orch, err := buildOrchestrator(cfg, logging.NewNop())
	if err != nil {
		return model.FormModel{}, fmt.Errorf("load form: %w", err)
	}
	return orch.Form(), nil
}
