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

// Package runner executes fine-tuning readiness probes against a host.
//
// # Overview
//
// The runner package orchestrates parallel execution of independent probes
// (GPU driver, PyTorch, ML libraries, disk, network, and optionally Docker
// and systemd units) and produces a structured report that can be serialized
// for operators or machines.
//
// # Core Types
//
// Runner: Interface for diagnostic execution
//
//	type Runner interface {
//	    Diagnose(ctx context.Context) (*diagnostic.Report, error)
//	}
//
// EnvironmentRunner: Production implementation that probes the current host
//
//	type EnvironmentRunner struct {
//	    Version    string             // Tool version for the report header
//	    Factory    probe.Factory      // Probe factory (optional)
//	    Serializer export.Serializer  // Output serializer (optional)
//	    Full       bool               // Full probe set instead of core
//	    Workers    int                // Pool size (optional)
//	    Timeout    time.Duration      // Run budget (optional)
//	}
//
// # Usage
//
// Basic run with defaults (core probes, stdout JSON):
//
//	r := &runner.EnvironmentRunner{Version: "v1.0.0"}
//	report, err := r.Diagnose(context.Background())
//	if err != nil {
//	    log.Fatalf("diagnose failed: %v", err)
//	}
//	if report.HasCritical() {
//	    os.Exit(1)
//	}
//
// Custom probe factory:
//
//	factory := probe.NewDefaultFactory(
//	    probe.WithPython("python3.11"),
//	)
//	r := &runner.EnvironmentRunner{Version: "v1.0.0", Factory: factory}
//
// # Parallel Execution
//
// Probes run concurrently under an errgroup with a bounded worker pool
// (3 workers for the core set, 4 for the full set, overridable via
// Workers). The whole run is bounded by a timeout (60s core, 120s full).
// Findings are assembled in probe registration order regardless of
// completion order, so reports are stable across runs.
//
// # Failure Semantics
//
// A probe that returns an error does not abort the run. The error is
// folded into the report as a critical "FAIL - Check error" finding and
// the remaining probes continue. Diagnose itself fails only when the
// report cannot be serialized.
//
// # Observability
//
// The runner exports Prometheus metrics:
//   - mlready_diagnose_duration_seconds: Total run time
//   - mlready_diagnose_runs_total{status}: Run attempts by outcome
//   - mlready_diagnose_probe_duration_seconds{probe}: Per-probe timing
//   - mlready_diagnose_results: Finding count of the last run
//
// # Integration
//
// The runner is invoked by:
//   - pkg/cli - diagnose command
//   - pkg/server - /v1/diagnostics endpoint
//
// It depends on:
//   - pkg/probe - Probe implementations
//   - pkg/diagnostic - Report structures
//   - pkg/export - Output formatting
package runner
