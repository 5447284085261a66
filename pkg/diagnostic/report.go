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

package diagnostic

import (
	"time"

	"github.com/NVIDIA/mlready/pkg/header"
)

// Report is the complete outcome of one diagnostic run.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// Node is the hostname of the machine that was diagnosed.
	Node string `json:"node,omitempty" yaml:"node,omitempty"`

	// Mode is the probe set that ran ("core" or "full").
	Mode string `json:"mode,omitempty" yaml:"mode,omitempty"`

	// Results contains per-check findings in probe registration order.
	Results []Result `json:"results" yaml:"results"`

	// Summary contains aggregate statistics over Results.
	Summary Summary `json:"summary" yaml:"summary"`
}

// Summary contains aggregate statistics about a diagnostic run.
type Summary struct {
	// Total is the number of findings produced.
	Total int `json:"total" yaml:"total"`

	// Passed is the count of findings whose status token is PASS.
	Passed int `json:"passed" yaml:"passed"`

	// Warnings is the count of findings with warning severity.
	Warnings int `json:"warnings" yaml:"warnings"`

	// Critical is the count of findings with critical severity.
	Critical int `json:"critical" yaml:"critical"`

	// Duration is how long the diagnostic run took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// Summarize computes aggregate statistics over a list of findings.
// Passed counts outcome tokens; Warnings and Critical count severities,
// so a FAIL finding with warning severity lands in Warnings.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.Passed() {
			s.Passed++
			continue
		}
		switch r.Severity {
		case SeverityCritical:
			s.Critical++
		case SeverityWarning:
			s.Warnings++
		case SeverityInfo:
			// informational findings count only toward Total
		}
	}
	return s
}

// NewReport creates a new Report with initialized slices.
func NewReport() *Report {
	return &Report{
		Results: make([]Result, 0),
	}
}

// HasCritical reports whether any finding in the report has critical severity
// and did not pass. Used to drive the process exit code.
func (r *Report) HasCritical() bool {
	for _, res := range r.Results {
		if res.Severity == SeverityCritical && !res.Passed() {
			return true
		}
	}
	return false
}

// Finding retrieves a result by check name, returning nil if not found.
func (r *Report) Finding(name string) *Result {
	for i := range r.Results {
		if r.Results[i].Name == name {
			return &r.Results[i]
		}
	}
	return nil
}
