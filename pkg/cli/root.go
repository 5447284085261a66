/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/config"
	"github.com/NVIDIA/mlready/pkg/logging"
)

const (
	name           = "mlready"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"

	// cfg is loaded once in the root Before hook and shared by all
	// command actions.
	cfg = config.Default()
)

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:                  name,
		Version:               version,
		EnableShellCompletion: true,
		Usage:                 "Diagnose and fix machine readiness for LLM fine-tuning",
		Description: `mlready probes GPU drivers, Python library versions, memory and disk
headroom, Docker GPU passthrough, and model hub reachability, then renders
the findings as a table, JSON, YAML, CSV, or HTML. It can also generate
Dockerfiles and environment setup scripts for supported models and stacks.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "Config file path (default: ./mlready.yaml, ~/.mlready/config.yaml)",
				Sources: cli.EnvVars(config.EnvConfigPath),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			loaded, err := config.Load(cmd.String("config"))
			if err != nil {
				return ctx, err
			}
			cfg = loaded

			level := cmd.String("log-level")
			if level == "" {
				level = cfg.Log.Level
			}
			logging.SetDefaultStructuredLoggerWithLevel(name, version, level)
			slog.Debug("starting",
				"name", name,
				"version", version,
				"commit", commit,
				"date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			diagnoseCmd(),
			fixCmd(),
			dockerizeCmd(),
			renderCmd(),
			modelsCmd(),
			smokeTestCmd(),
		},
	}
}

// Run executes the CLI with the given arguments. The context is wired to
// SIGINT/SIGTERM so a long probe run or smoke test can be interrupted.
func Run(ctx context.Context, args []string) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd().Run(ctx, args)
}
