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
	"strconv"
	"strings"

	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

const (
	checkGPUMemory = "GPU Memory"

	memoryQueryFlag  = "--query-gpu=name,memory.total"
	memoryFormatFlag = "--format=csv,noheader,nounits"
)

// MemoryProbe reports per-GPU memory capacity against the fine-tuning
// thresholds. Cards below the floor get QLoRA guidance rather than a
// hard failure since 4-bit quantization still fits 7B models in 6 GiB.
type MemoryProbe struct {
	Runner command.Runner

	// MinGiB and RecommendedGiB override the memory thresholds.
	// Zero uses the package defaults.
	MinGiB         int
	RecommendedGiB int
}

// Name implements the probe interface.
func (p *MemoryProbe) Name() string {
	return "gpumem"
}

// Probe queries nvidia-smi for GPU names and memory sizes. Hosts without
// a GPU produce a single informational result; the cuda probe already
// raises the critical finding so this one never duplicates it.
func (p *MemoryProbe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	if !p.Runner.LookPath(nvidiaSMICommand) {
		return []diagnostic.Result{noGPUResult()}, nil
	}

	out, err := p.Runner.Run(ctx, nvidiaSMICommand, memoryQueryFlag, memoryFormatFlag)
	if err != nil {
		return []diagnostic.Result{memoryQueryError(err.Error())}, nil
	}
	if !out.Success() {
		return []diagnostic.Result{memoryQueryError(strings.TrimSpace(out.Stderr))}, nil
	}

	results := p.parseMemoryReport(out.Stdout)
	if len(results) == 0 {
		return []diagnostic.Result{noGPUResult()}, nil
	}
	return results, nil
}

func (p *MemoryProbe) minGiB() int {
	if p.MinGiB > 0 {
		return p.MinGiB
	}
	return defaults.MinGPUMemoryGiB
}

func (p *MemoryProbe) recommendedGiB() int {
	if p.RecommendedGiB > 0 {
		return p.RecommendedGiB
	}
	return defaults.RecommendedGPUMemoryGiB
}

func noGPUResult() diagnostic.Result {
	return diagnostic.Result{
		Name:     checkGPUMemory,
		Status:   diagnostic.StatusOf(diagnostic.TokenInfo, "No GPU detected"),
		Severity: diagnostic.SeverityInfo,
	}
}

func memoryQueryError(detail string) diagnostic.Result {
	return diagnostic.Result{
		Name:     checkGPUMemory,
		Status:   diagnostic.StatusOf(diagnostic.TokenFail, "nvidia-smi query error"),
		Severity: diagnostic.SeverityWarning,
		Fix:      "Check GPU access",
		Details:  detail,
	}
}

// parseMemoryReport converts "name, total-MiB" CSV lines into one finding
// per GPU. Malformed lines are skipped.
func (p *MemoryProbe) parseMemoryReport(stdout string) []diagnostic.Result {
	var results []diagnostic.Result
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, totalGiB, err := parseMemoryLine(line)
		if err != nil {
			slog.Debug("skipping unparseable nvidia-smi line", "line", line, "error", err)
			continue
		}

		results = append(results, p.memoryResult(name, totalGiB))
	}
	return results
}

// parseMemoryLine splits a single "name, total" CSV record and converts
// the MiB figure to GiB.
func parseMemoryLine(line string) (string, float64, error) {
	idx := strings.LastIndex(line, ",")
	if idx < 0 {
		return "", 0, fmt.Errorf("no separator in %q", line)
	}

	name := strings.TrimSpace(line[:idx])
	mib, err := strconv.ParseFloat(strings.TrimSpace(line[idx+1:]), 64)
	if err != nil {
		return "", 0, fmt.Errorf("memory figure in %q: %w", line, err)
	}

	return name, mib / 1024.0, nil
}

func (p *MemoryProbe) memoryResult(name string, totalGiB float64) diagnostic.Result {
	details := fmt.Sprintf("Device: %s, Total: %.1fGB", name, totalGiB)

	if totalGiB < float64(p.minGiB()) {
		return diagnostic.Result{
			Name:     checkGPUMemory,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, fmt.Sprintf("Low memory (%.1fGB)", totalGiB)),
			Severity: diagnostic.SeverityWarning,
			Fix:      "Use QLoRA 4-bit quantization or a smaller model",
			Details:  details,
		}
	}

	if totalGiB >= float64(p.recommendedGiB()) {
		details += ", comfortable for LoRA fine-tuning"
	}

	return diagnostic.Result{
		Name:     checkGPUMemory,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, fmt.Sprintf("%.1fGB", totalGiB)),
		Severity: diagnostic.SeverityInfo,
		Details:  details,
	}
}
