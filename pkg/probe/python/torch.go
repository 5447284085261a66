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

package python

import (
	"context"
	"fmt"
	"strings"

	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/version"
)

const (
	checkTorchInstall = "PyTorch Installation"
	checkTorchCUDA    = "PyTorch CUDA"
	checkTorchVersion = "PyTorch Version"

	pythonInstallFix = "Install Python 3: https://www.python.org/downloads/"
	torchInstallFix  = "pip install torch --index-url https://download.pytorch.org/whl/cu124"
)

// torchSnippet reports the interpreter-side view of PyTorch as one value
// per line. Statements are separated by newlines, never semicolons, so
// the snippet passes the argument guard.
const torchSnippet = `import torch
print(torch.__version__)
print(torch.cuda.is_available())
print(torch.version.cuda or "unknown")
print(torch.cuda.device_count())
print(torch.cuda.get_device_name(0) if torch.cuda.device_count() else "unknown")
`

// TorchProbe verifies that PyTorch is installed with working CUDA support.
// The check runs inside the target interpreter rather than this process,
// so it sees the same environment a training script would.
type TorchProbe struct {
	Runner command.Runner
	Python string

	// MinVersion is the PyTorch release below which a warning is raised.
	MinVersion string
}

// torchReport is the parsed snippet output.
type torchReport struct {
	Version       string
	CUDAAvailable bool
	CUDAVersion   string
	Devices       string
	DeviceName    string
}

// Name implements the probe interface.
func (p *TorchProbe) Name() string {
	return "torch"
}

// Probe runs the reporting snippet and grades the output. A host where
// torch imports but cannot see CUDA fails critically since every
// fine-tuning path here requires a GPU-enabled build.
func (p *TorchProbe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	if !p.Runner.LookPath(p.Python) {
		return []diagnostic.Result{{
			Name:     checkTorchInstall,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, p.Python+" not found"),
			Severity: diagnostic.SeverityCritical,
			Fix:      pythonInstallFix,
		}}, nil
	}

	out, err := p.Runner.Run(ctx, p.Python, "-c", torchSnippet)
	if err != nil {
		return []diagnostic.Result{checkErrorResult(checkTorchCUDA, err.Error())}, nil
	}
	if !out.Success() {
		if importFailed(out.Stderr, "torch") {
			return []diagnostic.Result{{
				Name:     checkTorchInstall,
				Status:   diagnostic.StatusOf(diagnostic.TokenFail, "Not installed"),
				Severity: diagnostic.SeverityCritical,
				Fix:      torchInstallFix,
			}}, nil
		}
		return []diagnostic.Result{checkErrorResult(checkTorchCUDA, strings.TrimSpace(out.Stderr))}, nil
	}

	report, err := parseTorchReport(out.Stdout)
	if err != nil {
		return []diagnostic.Result{checkErrorResult(checkTorchCUDA, err.Error())}, nil
	}

	if !report.CUDAAvailable {
		return []diagnostic.Result{{
			Name:     checkTorchCUDA,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "CUDA not available"),
			Severity: diagnostic.SeverityCritical,
			Fix:      torchInstallFix,
			Details:  fmt.Sprintf("PyTorch %s installed but CUDA not available", report.Version),
		}}, nil
	}

	results := []diagnostic.Result{{
		Name: checkTorchCUDA,
		Status: diagnostic.StatusOf(diagnostic.TokenPass,
			fmt.Sprintf("CUDA %s (%s GPU(s))", report.CUDAVersion, report.Devices)),
		Severity: diagnostic.SeverityInfo,
		Details:  fmt.Sprintf("PyTorch %s, Device: %s", report.Version, report.DeviceName),
	}}

	if p.belowMinimum(report.Version) {
		results = append(results, diagnostic.Result{
			Name:     checkTorchVersion,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, "Old version"),
			Severity: diagnostic.SeverityWarning,
			Fix:      fmt.Sprintf("Upgrade: pip install torch>=%s --index-url https://download.pytorch.org/whl/cu124", p.MinVersion),
			Details:  fmt.Sprintf("Current: %s, Recommended: >=%s", report.Version, p.MinVersion),
		})
	}

	return results, nil
}

func (p *TorchProbe) belowMinimum(torchVersion string) bool {
	if p.MinVersion == "" {
		return false
	}
	actual, err := version.Parse(torchVersion)
	if err != nil {
		return false
	}
	minimum, err := version.Parse(p.MinVersion)
	if err != nil {
		return false
	}
	return actual.Compare(minimum) < 0
}

// parseTorchReport maps the snippet's line-per-value output back into a
// struct. Wheel builds append local metadata ("2.4.0+cu124") which the
// version comparison tolerates.
func parseTorchReport(stdout string) (*torchReport, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) < 3 {
		return nil, fmt.Errorf("unexpected interpreter output: %q", strings.TrimSpace(stdout))
	}

	r := &torchReport{
		Version:       strings.TrimSpace(lines[0]),
		CUDAAvailable: strings.TrimSpace(lines[1]) == "True",
		CUDAVersion:   strings.TrimSpace(lines[2]),
		Devices:       "0",
		DeviceName:    "unknown",
	}
	if len(lines) > 3 {
		r.Devices = strings.TrimSpace(lines[3])
	}
	if len(lines) > 4 {
		r.DeviceName = strings.TrimSpace(lines[4])
	}

	if r.Version == "" {
		return nil, fmt.Errorf("interpreter reported empty torch version")
	}
	return r, nil
}

// importFailed reports whether stderr shows the named module missing, as
// opposed to some other interpreter fault.
func importFailed(stderr, module string) bool {
	return strings.Contains(stderr, "ModuleNotFoundError") &&
		strings.Contains(stderr, fmt.Sprintf("'%s'", module))
}

func checkErrorResult(name, detail string) diagnostic.Result {
	return diagnostic.Result{
		Name:     name,
		Status:   diagnostic.StatusOf(diagnostic.TokenFail, "Check error"),
		Severity: diagnostic.SeverityCritical,
		Fix:      "Run diagnostics again or check logs",
		Details:  detail,
	}
}
