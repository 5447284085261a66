/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/probe"
	"github.com/NVIDIA/mlready/pkg/runner"
)

func diagnoseCmd() *cli.Command {
	return &cli.Command{
		Name:                  "diagnose",
		EnableShellCompletion: true,
		Usage:                 "Diagnose machine readiness for LLM fine-tuning",
		Description: `Run independent readiness probes against the current host and render
the findings:
  - NVIDIA driver and CUDA version (nvidia-smi)
  - PyTorch installation and CUDA availability
  - ML library versions (transformers, peft, trl, datasets, accelerate)
  - GPU memory headroom
  - Disk space headroom on the model cache volume
  - Model hub reachability

The full probe set (--full) adds the slower checks:
  - Docker GPU passthrough (runs a small CUDA container)
  - systemd service state (docker, nvidia-persistenced)

Probes run in parallel under a bounded worker pool; one failing probe
never hides the findings of the rest.

# Exit Code

By default the command exits non-zero when any critical finding is
present, so it can gate CI jobs and provisioning scripts. Use
--fail-on-critical=false to always exit zero on a completed run.

# Examples

Quick scan with terminal output:
  mlready diagnose

Full scan exporting an HTML report:
  mlready diagnose --full --output report.html

Machine-readable output for automation:
  mlready diagnose --format json --output report.json`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "full",
				Aliases: []string{"f"},
				Usage:   "Run the full probe set including Docker GPU passthrough",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of probes to run concurrently (0 = mode default)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "Overall deadline for the diagnostic run (0 = mode default)",
			},
			&cli.BoolFlag{
				Name:  "fail-on-critical",
				Value: true,
				Usage: "Exit with non-zero status when any critical finding is present",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, export.FormatTable)
			if err != nil {
				return err
			}

			full := cmd.Bool("full") || cfg.Diagnose.Full

			workers := int(cmd.Int("workers"))
			if workers == 0 {
				workers = cfg.Diagnose.Workers
			}
			timeout := cmd.Duration("timeout")
			if timeout == 0 {
				timeout = cfg.Diagnose.Timeout.Std()
			}

			ser := export.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			er := &runner.EnvironmentRunner{
				Version:    version,
				Factory:    probe.NewDefaultFactory(probeOptions()...),
				Serializer: ser,
				Full:       full,
				Workers:    workers,
				Timeout:    timeout,
			}

			report, err := er.Diagnose(ctx)
			if err != nil {
				return fmt.Errorf("diagnose failed: %w", err)
			}

			slog.Info("diagnose completed",
				"total", report.Summary.Total,
				"passed", report.Summary.Passed,
				"warnings", report.Summary.Warnings,
				"critical", report.Summary.Critical,
				"duration", report.Summary.Duration.Round(time.Millisecond).String())

			if cmd.Bool("fail-on-critical") && report.HasCritical() {
				return fmt.Errorf("%d critical finding(s): environment is not ready for fine-tuning",
					report.Summary.Critical)
			}

			return nil
		},
	}
}
