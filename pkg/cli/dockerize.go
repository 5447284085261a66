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
	"github.com/NVIDIA/mlready/pkg/bundle/dockerfile"
	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/oci"
)

func dockerizeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "dockerize",
		EnableShellCompletion: true,
		Usage:                 "Generate a container build context for fine-tuning a model",
		ArgsUsage:             "MODEL",
		Description: fmt.Sprintf(`Generate a production-ready container build context for fine-tuning a
supported model:

  - Dockerfile: CUDA base image, Python 3.10 venv, pinned packages,
    non-root user, HF_HOME cache volume
  - requirements.txt: the model's package pins
  - entrypoint.sh: container entrypoint
  - serve.py (--service): FastAPI inference service, EXPOSE %d

Supported models: %s (see 'mlready models' for details).

# Pushing Bundles

With --push the generated bundle is packaged as an OCI artifact and
pushed to a registry using docker credentials:

  mlready dockerize tinyllama --output ./ctx --push ghcr.io/acme/mlready-bundles:tinyllama

# Examples

Generate a build context for TinyLlama:
  mlready dockerize tinyllama --output ./tinyllama-ctx

Generate an inference service image context for Mistral 7B:
  mlready dockerize mistral-7b --service --output ./mistral-ctx

Build the image afterwards:
  docker build -t finetune-tinyllama ./tinyllama-ctx`, 8000,
			strings.Join(catalog.ModelAliases(), ", ")),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "service",
				Aliases: []string{"s"},
				Usage:   "Add a FastAPI inference service entrypoint to the image",
			},
			&cli.StringFlag{
				Name:  "base-image",
				Usage: "Override the CUDA base image",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   ".",
				Usage:   "Output directory for the build context",
			},
			&cli.StringFlag{
				Name:  "push",
				Usage: "Push the bundle as an OCI artifact to this reference (e.g., ghcr.io/org/repo:tag)",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP instead of HTTPS for the OCI registry (for local development)",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS certificate verification for the OCI registry",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			model := cmd.Args().First()
			if model == "" {
				return fmt.Errorf("a model argument is required (supported: %s)",
					strings.Join(catalog.ModelAliases(), ", "))
			}

			// Parse the push reference before doing any work.
			var ref *oci.Reference
			if target := cmd.String("push"); target != "" {
				parsed, err := oci.ParseReference(target)
				if err != nil {
					return fmt.Errorf("invalid --push reference: %w", err)
				}
				if parsed.Tag == "" {
					parsed = parsed.WithTag("latest")
				}
				ref = parsed
			}

			b, ok := bundle.Get(dockerfile.Name, bundle.Config{Version: version, IncludeChecksums: true})
			if !ok {
				return fmt.Errorf("bundler %q not registered", dockerfile.Name)
			}

			outDir := cmd.String("output")
			input := bundle.Input{
				Model:     model,
				Service:   cmd.Bool("service"),
				BaseImage: cmd.String("base-image"),
			}
			if input.BaseImage == "" {
				input.BaseImage = cfg.Docker.BaseImage
			}

			slog.Info("generating container build context",
				"model", model,
				"service", input.Service,
				"output", outDir)

			out, err := b.Make(ctx, input, outDir)
			if err != nil {
				return fmt.Errorf("dockerize failed: %w", err)
			}

			fmt.Printf("Generated %d file(s) in %s:\n", len(out.Files), outDir)
			for _, f := range out.FileNames() {
				fmt.Printf("  %s\n", f)
			}

			if ref != nil {
				result, err := oci.PushBundle(ctx, oci.PushConfig{
					SourceDir:   outDir,
					Reference:   ref,
					Version:     version,
					PlainHTTP:   cmd.Bool("plain-http"),
					InsecureTLS: cmd.Bool("insecure-tls"),
				})
				if err != nil {
					return fmt.Errorf("failed to push bundle: %w", err)
				}
				fmt.Printf("\nPushed %s\n  digest: %s\n", result.Reference, result.Digest)
				return nil
			}

			fmt.Printf("\nBuild the image with:\n  docker build -t finetune-%s %s\n", model, outDir)
			return nil
		},
	}
}
