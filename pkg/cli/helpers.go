/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/probe"
	"github.com/NVIDIA/mlready/pkg/retry"
)

// parseOutputFormat extracts and validates the output format from CLI flags.
// When --format is not set, the format is sniffed from the --output file
// extension, falling back to the given default for stdout.
func parseOutputFormat(cmd *cli.Command, fallback export.Format) (export.Format, error) {
	if !cmd.IsSet("format") {
		if path := cmd.String("output"); path != "" {
			return export.FormatFromPath(path), nil
		}
		return fallback, nil
	}
	outFormat := export.Format(cmd.String("format"))
	if outFormat.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q, valid formats are: %s",
			outFormat, strings.Join(export.SupportedFormats(), ", "))
	}
	return outFormat, nil
}

// closeSerializer releases file handles held by file-backed serializers.
func closeSerializer(s export.Serializer) {
	if closer, ok := s.(export.Closer); ok {
		if err := closer.Close(); err != nil {
			slog.Warn("failed to close serializer", "error", err)
		}
	}
}

// probeOptions maps the loaded config onto probe factory options.
func probeOptions() []probe.Option {
	policy := retry.Default()
	policy.Attempts = cfg.Network.Retries

	return []probe.Option{
		probe.WithPython(cfg.Python.Interpreter),
		probe.WithHubURL(cfg.Network.ProbeURL),
		probe.WithNetworkTimeout(cfg.Network.Timeout.Std()),
		probe.WithRetryPolicy(policy),
		probe.WithDockerImage(cfg.Docker.RuntimeImage),
		probe.WithGPUMemoryGiB(cfg.Thresholds.MinGPUMemoryGiB, cfg.Thresholds.RecommendedGPUMemoryGiB),
		probe.WithMinDiskGiB(cfg.Thresholds.MinDiskGiB),
	}
}
