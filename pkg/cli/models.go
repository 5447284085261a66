/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/export"
)

func modelsCmd() *cli.Command {
	return &cli.Command{
		Name:                  "models",
		EnableShellCompletion: true,
		Usage:                 "List supported fine-tuning models",
		Description: `List the models supported by 'mlready dockerize' and 'mlready smoke-test'
with their hub references and minimum GPU memory requirements.

# Examples

Terminal listing:
  mlready models

Machine-readable listing:
  mlready models --format json`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := parseOutputFormat(cmd, export.FormatTable)
			if err != nil {
				return err
			}

			models := catalog.Models()

			// The generic flattened table does not read well for the
			// catalog; render the terminal listing directly.
			if outFormat == export.FormatTable && cmd.String("output") == "" {
				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MODEL\tHUB REFERENCE\tMIN GPU MEMORY")
				for _, m := range models {
					fmt.Fprintf(tw, "%s\t%s\t%d GiB\n", m.Alias, m.Ref, m.MinGPUMemoryGiB)
				}
				return tw.Flush()
			}

			ser := export.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer closeSerializer(ser)
			return ser.Serialize(ctx, models)
		},
	}
}
