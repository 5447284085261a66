// Package docker probes GPU passthrough into containers by running
// nvidia-smi inside a minimal CUDA image. This is the same path the
// generated fine-tuning Dockerfiles rely on, so a failure here predicts
// a failure there.
package docker

import (
	"context"
	"log/slog"
	"strings"

	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

const (
	dockerCommand = "docker"

	checkDockerGPU = "Docker GPU Support"

	toolkitFix = "Install nvidia-container-toolkit: https://docs.nvidia.com/datacenter/cloud-native/container-toolkit/install-guide.html"
)

// Probe runs the containerized GPU passthrough test.
type Probe struct {
	Runner command.Runner

	// Image is the CUDA base image used for the test.
	Image string
}

// Name implements the probe interface.
func (p *Probe) Name() string {
	return "docker"
}

// Probe executes nvidia-smi inside the configured image. A missing
// docker binary is a warning rather than a failure: fine-tuning outside
// containers still works, only the containerized workflow is blocked.
func (p *Probe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	if !p.Runner.LookPath(dockerCommand) {
		return []diagnostic.Result{{
			Name:     checkDockerGPU,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, "Docker not installed"),
			Severity: diagnostic.SeverityWarning,
			Fix:      "Install Docker for GPU containerization",
			Details:  "Container workflows unavailable, local fine-tuning still works",
		}}, nil
	}

	slog.Debug("running containerized GPU test", "image", p.Image)

	out, err := p.Runner.Run(ctx, dockerCommand, "run", "--rm", "--gpus", "all", p.Image, "nvidia-smi")
	if err != nil {
		// Timeouts and daemon hiccups are inconclusive, not failures.
		// The image pull alone can exceed the probe budget on slow links.
		return []diagnostic.Result{{
			Name:     checkDockerGPU,
			Status:   diagnostic.StatusOf(diagnostic.TokenInfo, "Docker GPU test skipped"),
			Severity: diagnostic.SeverityInfo,
			Fix:      "Test manually: docker run --rm --gpus all " + p.Image + " nvidia-smi",
			Details:  err.Error(),
		}}, nil
	}
	if !out.Success() {
		return []diagnostic.Result{{
			Name:     checkDockerGPU,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "GPU not accessible in Docker"),
			Severity: diagnostic.SeverityWarning,
			Fix:      toolkitFix,
			Details:  strings.TrimSpace(out.Stderr),
		}}, nil
	}

	return []diagnostic.Result{{
		Name:     checkDockerGPU,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, "nvidia-docker working"),
		Severity: diagnostic.SeverityInfo,
	}}, nil
}
