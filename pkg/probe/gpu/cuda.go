// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gpu

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/version"
)

const (
	nvidiaSMICommand = "nvidia-smi"

	checkDriver      = "NVIDIA GPU Driver"
	checkCUDAVersion = "CUDA Version"

	driverInstallFix = "Install NVIDIA drivers: https://www.nvidia.com/Download/index.aspx"
)

var (
	cudaVersionExp   = regexp.MustCompile(`CUDA Version: (\d+\.\d+)`)
	driverVersionExp = regexp.MustCompile(`Driver Version: (\d+\.\d+(?:\.\d+)?)`)
)

// CUDAProbe verifies that the NVIDIA driver responds and reports a CUDA
// runtime recent enough for the supported training stacks.
type CUDAProbe struct {
	Runner command.Runner

	// MinVersion is the CUDA version below which a warning is raised.
	// Empty disables the check.
	MinVersion string
}

// Name implements the probe interface.
func (p *CUDAProbe) Name() string {
	return "cuda"
}

// Probe runs nvidia-smi and parses the driver and CUDA versions from its
// banner. A missing binary or an unresponsive driver is a critical finding;
// an old CUDA runtime downgrades to a warning.
func (p *CUDAProbe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	slog.Debug("probing NVIDIA driver", "command", nvidiaSMICommand)

	if !p.Runner.LookPath(nvidiaSMICommand) {
		return []diagnostic.Result{{
			Name:     checkDriver,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "nvidia-smi not found"),
			Severity: diagnostic.SeverityCritical,
			Fix:      driverInstallFix,
		}}, nil
	}

	out, err := p.Runner.Run(ctx, nvidiaSMICommand)
	if err != nil {
		return []diagnostic.Result{{
			Name:     checkDriver,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "nvidia-smi error"),
			Severity: diagnostic.SeverityCritical,
			Fix:      "Install/reinstall NVIDIA drivers and reboot",
			Details:  err.Error(),
		}}, nil
	}
	if !out.Success() {
		return []diagnostic.Result{{
			Name:     checkDriver,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "nvidia-smi error"),
			Severity: diagnostic.SeverityCritical,
			Fix:      "Install/reinstall NVIDIA drivers and reboot",
			Details:  strings.TrimSpace(out.Stderr),
		}}, nil
	}

	// nvidia-smi can exit zero while printing a driver/library mismatch
	// message, so the banner itself is the signal.
	if !strings.Contains(out.Stdout, "Driver Version") {
		return []diagnostic.Result{{
			Name:     checkDriver,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "No GPU detected"),
			Severity: diagnostic.SeverityCritical,
			Fix:      "Check GPU installation and drivers",
		}}, nil
	}

	cudaVersion := "unknown"
	if m := cudaVersionExp.FindStringSubmatch(out.Stdout); m != nil {
		cudaVersion = m[1]
	}

	details := fmt.Sprintf("CUDA Version: %s", cudaVersion)
	if m := driverVersionExp.FindStringSubmatch(out.Stdout); m != nil {
		details = fmt.Sprintf("Driver Version: %s, CUDA Version: %s", m[1], cudaVersion)
	}

	results := []diagnostic.Result{{
		Name:     checkDriver,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, "CUDA "+cudaVersion),
		Severity: diagnostic.SeverityInfo,
		Details:  details,
	}}

	if p.belowMinimum(cudaVersion) {
		results = append(results, diagnostic.Result{
			Name:     checkCUDAVersion,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, fmt.Sprintf("Old version (%s)", cudaVersion)),
			Severity: diagnostic.SeverityWarning,
			Fix:      fmt.Sprintf("Upgrade the NVIDIA driver to one that bundles CUDA %s or newer", p.MinVersion),
			Details:  fmt.Sprintf("Current: %s, Required: >=%s", cudaVersion, p.MinVersion),
		})
	}

	return results, nil
}

// belowMinimum reports whether the parsed CUDA version is older than the
// configured minimum. Unparseable versions are never flagged since the
// PASS result already carries the raw string.
func (p *CUDAProbe) belowMinimum(cudaVersion string) bool {
	if p.MinVersion == "" {
		return false
	}
	actual, err := version.Parse(cudaVersion)
	if err != nil {
		return false
	}
	minimum, err := version.Parse(p.MinVersion)
	if err != nil {
		return false
	}
	return actual.Compare(minimum) < 0
}
