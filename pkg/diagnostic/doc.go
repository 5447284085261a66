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

// Package diagnostic defines the result records produced by environment
// probes and the report envelope that groups them.
//
// # Core Types
//
// The package is built around flat, immutable findings:
//   - Token: outcome marker embedded at the front of every status
//     (PASS, FAIL, WARN, INFO)
//   - Severity: operator-facing weight (critical, warning, info)
//   - Result: one finding with check name, status, severity, and fix
//   - Report: header-wrapped collection of findings plus a Summary
//
// # Creating Findings
//
// Probes compose findings with StatusOf and return them fully populated:
//
//	diagnostic.Result{
//	    Name:     "CUDA Driver",
//	    Status:   diagnostic.StatusOf(diagnostic.TokenPass, "CUDA 12.4, driver 550.54.15"),
//	    Severity: diagnostic.SeverityInfo,
//	}
//
// # Summaries
//
// Summarize aggregates findings the way operators read them: Passed counts
// PASS tokens, while Warnings and Critical count severities of the
// remaining findings.
//
//	summary := diagnostic.Summarize(report.Results)
//	if report.HasCritical() {
//	    os.Exit(1)
//	}
//
// Results carry JSON and YAML tags and serialize through pkg/export.
package diagnostic
