package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/pkg/orchestrator"
	"github.com/goliatone/go-formwizard/pkg/renderers/tui"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newPromptCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Run the wizard in the terminal",
		Long:  `Prompts each step in turn and writes the submitted values as JSON to stdout or --output.`,
		RunE:  runPrompt,
	}
	cmd.Flags().StringP("output", "o", "", "File receiving the submitted JSON (stdout if empty)")
	return cmd
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return errors.New("prompt: stdin is not a terminal")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("prompt: %w", err)
		}
		defer f.Close()
		out = f
	}

	wizardOpts := []wizard.Option{wizard.WithSink(wizard.NewWriterSink(out))}
	if !cfg.AllowBack {
		wizardOpts = append(wizardOpts, wizard.WithBackDisabled())
	}
	orch, err := buildOrchestrator(cfg, logger, orchestrator.WithWizardOptions(wizardOpts...))
	if err != nil {
		return err
	}

	runner, err := tui.NewRunner(orch.Wizard(), orch.Form(),
		tui.WithPromptDriver(tui.NewSurveyDriver(cmd.ErrOrStderr())),
		tui.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	_, err = runner.Run(cmd.Context())
	return err
}
