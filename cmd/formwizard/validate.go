package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formwizard/internal/logging"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

var errValidationFailed = errors.New("validation failed")

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate stored values against a step",
		Long:  `Reads a JSON object of field values and prints the accepted values and error map for the step. Exits non-zero when the step fails.`,
		RunE:  runValidate,
	}
	cmd.Flags().Int("step", 0, "Zero-based step index")
	cmd.Flags().String("values", "-", "JSON file with field values (- for stdin)")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	step, _ := cmd.Flags().GetInt("step")
	source, _ := cmd.Flags().GetString("values")

	data, err := readInput(cmd, source)
	if err != nil {
		return err
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("validate: parse %s: %w", source, err)
	}
	values, err := wizard.DecodeValues(raw)
	if err != nil {
		return err
	}

	orch, err := buildOrchestrator(cfg, logging.NewNop())
	if err != nil {
		return err
	}
	result, err := orch.Wizard().Validator().Validate(wizard.StepIndex(step), values)
	if err != nil {
		return err
	}

	errs := result.Errors
	if errs == nil {
		errs = wizard.ErrorMap{}
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"accepted": result.Accepted, "errors": errs}); err != nil {
		return err
	}
	if !result.Passed() {
		for _, msg := range errs.Messages(orch.Form().FieldNames()) {
			fmt.Fprintln(cmd.ErrOrStderr(), msg)
		}
		return errValidationFailed
	}
	return nil
}

func readInput(cmd *cobra.Command, source string) ([]byte, error) {
	if source == "" || source == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return data, nil
}
