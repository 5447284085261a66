/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/header"
)

func renderCmd() *cli.Command {
	return &cli.Command{
		Name:                  "render",
		EnableShellCompletion: true,
		Usage:                 "Re-render a saved diagnostic report in another format",
		ArgsUsage:             "REPORT",
		Description: `Load a diagnostic report previously saved by 'diagnose --output' and
render it in another format, without re-running any probes. The input
must be a JSON or YAML report; it can be a local file path or an
http(s):// URL (e.g. a report published by a provisioning pipeline).

# Examples

Render a saved JSON report as a terminal table:
  mlready render report.json

Convert a report to HTML for sharing:
  mlready render report.json --output report.html

Render a report published by CI:
  mlready render https://ci.example.com/artifacts/report.json --format yaml`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.Args().First()
			if path == "" {
				return fmt.Errorf("a report path or URL is required")
			}

			outFormat, err := parseOutputFormat(cmd, export.FormatTable)
			if err != nil {
				return err
			}

			report, err := export.FromFile[diagnostic.Report](path)
			if err != nil {
				return fmt.Errorf("failed to load report: %w", err)
			}
			if report.Kind != header.KindReport {
				return fmt.Errorf("%s is not a diagnostic report (kind: %q)", path, report.Kind)
			}

			ser := export.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)

			if err := ser.Serialize(ctx, report); err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			return nil
		},
	}
}
