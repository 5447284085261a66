/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/bundle"
	"github.com/NVIDIA/mlready/pkg/bundle/pyenv"
	"github.com/NVIDIA/mlready/pkg/catalog"
)

func fixCmd() *cli.Command {
	return &cli.Command{
		Name:                  "fix",
		EnableShellCompletion: true,
		Usage:                 "Generate environment setup files for a training stack",
		Description: `Generate the files that set up a Python environment matching a training
stack's package constraints:

Default (venv) output:
  - requirements.txt: pinned package constraints for the stack
  - setup_venv.sh: creates a virtual environment and installs requirements

Conda output (--conda):
  - requirements.txt: pinned package constraints for the stack
  - environment.yml: conda environment definition
  - setup_conda.sh: creates the conda environment

Run the generated setup script, then 'mlready diagnose' to verify the
environment.

# Examples

Generate venv setup for the default trl-peft stack:
  mlready fix --output ./env

Generate conda setup for the minimal stack:
  mlready fix --conda --stack minimal --output ./env`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "conda",
				Aliases: []string{"c"},
				Usage:   "Generate a conda environment file instead of venv scripts",
			},
			&cli.BoolFlag{
				Name:    "venv",
				Aliases: []string{"v"},
				Usage:   "Generate venv setup scripts (the default)",
			},
			&cli.StringFlag{
				Name:    "stack",
				Aliases: []string{"s"},
				Value:   catalog.DefaultStack,
				Usage: fmt.Sprintf("Training stack to pin (supported values: %s)",
					strings.Join(catalog.StackNames(), ", ")),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Output directory for the generated files",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Bool("conda") && cmd.Bool("venv") {
				return fmt.Errorf("--conda and --venv are mutually exclusive")
			}

			b, ok := bundle.Get(pyenv.Name, bundle.Config{Version: version, IncludeChecksums: true})
			if !ok {
				return fmt.Errorf("bundler %q not registered", pyenv.Name)
			}

			outDir := cmd.String("output")
			input := bundle.Input{
				Stack: cmd.String("stack"),
				Conda: cmd.Bool("conda"),
			}

			slog.Info("generating environment setup",
				"stack", input.Stack,
				"conda", input.Conda,
				"output", outDir)

			out, err := b.Make(ctx, input, outDir)
			if err != nil {
				return fmt.Errorf("fix failed: %w", err)
			}

			fmt.Printf("Generated %d file(s) in %s:\n", len(out.Files), outDir)
			for _, f := range out.FileNames() {
				fmt.Printf("  %s\n", f)
			}
			fmt.Println("\nRun the setup script, then 'mlready diagnose' to verify the environment.")

			return nil
		},
	}
}
