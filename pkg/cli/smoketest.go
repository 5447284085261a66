/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/header"
	"github.com/NVIDIA/mlready/pkg/runner"
)

//go:embed templates/smoke_train.py.tmpl
var smokeTrainTemplate string

// smokeTestSteps is the number of LoRA training steps the generated
// script performs. Two steps exercise both the first backward pass and
// an optimizer update on accumulated state.
const smokeTestSteps = 2

// passMarker is printed by the generated script after a clean run.
const passMarker = "SMOKE TEST PASSED"

// smokeTemplateData feeds the smoke training script template.
type smokeTemplateData struct {
	Version   string
	Timestamp string
	ModelRef  string
	Steps     int
}

func smokeTestCmd() *cli.Command {
	return &cli.Command{
		Name:                  "smoke-test",
		EnableShellCompletion: true,
		Usage:                 "Run a minimal LoRA fine-tuning pass to verify the environment",
		Description: fmt.Sprintf(`Generate a tiny LoRA fine-tuning script for a supported model and run
it with the configured Python interpreter. The script loads the model,
attaches LoRA adapters, and performs a couple of training steps, which
exercises the driver, CUDA kernels, and the full ML library stack in a
way the individual probes cannot.

The test downloads model weights on first use and can take several
minutes; it is bounded by a %s timeout.

Supported models: %s (see 'mlready models').

# Examples

Smoke test with the default model:
  mlready smoke-test

Smoke test a specific model, keeping the generated script:
  mlready smoke-test --model gpt2 --keep`,
			defaults.SmokeTestTimeout,
			strings.Join(catalog.ModelAliases(), ", ")),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "model",
				Aliases: []string{"m"},
				Value:   "tinyllama",
				Usage: fmt.Sprintf("Model to fine-tune (supported values: %s)",
					strings.Join(catalog.ModelAliases(), ", ")),
			},
			&cli.BoolFlag{
				Name:  "keep",
				Usage: "Keep the generated training script instead of deleting it",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: defaults.SmokeTestTimeout,
				Usage: "Deadline for the training run",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, export.FormatTable)
			if err != nil {
				return err
			}

			model, err := catalog.LookupModel(cmd.String("model"))
			if err != nil {
				return err
			}

			exec := &command.ExecRunner{Timeout: cmd.Duration("timeout")}
			result := runSmokeTest(ctx, exec, cfg.Python.Interpreter, model, cmd.Bool("keep"))

			report := diagnostic.NewReport()
			report.Init(header.KindReport, runner.APIVersion, version)
			report.Results = []diagnostic.Result{result}
			report.Summary = diagnostic.Summarize(report.Results)

			ser := export.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)
			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to serialize: %w", err)
			}

			if report.HasCritical() {
				return fmt.Errorf("smoke test failed: run 'mlready diagnose' for details")
			}
			return nil
		},
	}
}

// runSmokeTest renders the training script and executes it, folding every
// failure mode into a single diagnostic result.
func runSmokeTest(ctx context.Context, runner command.Runner, python string,
	model *catalog.Model, keep bool) diagnostic.Result {

	fail := func(detail, fix, diag string) diagnostic.Result {
		return diagnostic.Result{
			Name:     "smoke_test",
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, detail),
			Severity: diagnostic.SeverityCritical,
			Fix:      fix,
			Details:  diag,
		}
	}

	script, err := renderSmokeScript(model)
	if err != nil {
		return fail("Cannot generate training script",
			"Run diagnostics again or check logs", err.Error())
	}

	dir, err := os.MkdirTemp("", "mlready-smoke-*")
	if err != nil {
		return fail("Cannot create working directory",
			"Check free space and permissions on the temp directory", err.Error())
	}
	if !keep {
		defer os.RemoveAll(dir)
	}

	scriptPath := filepath.Join(dir, "smoke_train.py")
	if err := os.WriteFile(scriptPath, []byte(script), 0o644); err != nil {
		return fail("Cannot write training script",
			"Check free space and permissions on the temp directory", err.Error())
	}
	if keep {
		slog.Info("keeping generated training script", "path", scriptPath)
	}

	slog.Info("running LoRA smoke test",
		"model", model.Alias,
		"ref", model.Ref,
		"script", scriptPath)

	start := time.Now()
	out, err := runner.Run(ctx, python, scriptPath)
	elapsed := time.Since(start).Round(time.Second)
	if err != nil {
		return fail("Training run error",
			fmt.Sprintf("Verify %s is installed and re-run 'mlready diagnose'", python),
			err.Error())
	}
	if !out.Success() || !strings.Contains(out.Stdout, passMarker) {
		return fail(fmt.Sprintf("LoRA training failed for %s", model.Alias),
			"Run 'mlready diagnose' to identify the failing component",
			lastLines(out.Stderr, 5))
	}

	return diagnostic.Result{
		Name: "smoke_test",
		Status: diagnostic.StatusOf(diagnostic.TokenPass,
			fmt.Sprintf("LoRA fine-tuning of %s completed in %s", model.Alias, elapsed)),
		Severity: diagnostic.SeverityInfo,
		Fix:      "None needed",
	}
}

// renderSmokeScript fills the training script template for the model.
func renderSmokeScript(model *catalog.Model) (string, error) {
	tmpl, err := template.New("smoke_train.py").Parse(smokeTrainTemplate)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = tmpl.Execute(&sb, smokeTemplateData{
		Version:   version,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		ModelRef:  model.Ref,
		Steps:     smokeTestSteps,
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}

// lastLines returns up to n trailing non-empty lines of s.
func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}
