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
	"fmt"
	"strings"
)

// Severity represents how much a finding should worry the operator.
type Severity string

const (
	// SeverityCritical indicates the environment cannot run fine-tuning
	// workloads until the finding is addressed.
	SeverityCritical Severity = "critical"

	// SeverityWarning indicates degraded or risky conditions that allow
	// workloads to run with reduced capability.
	SeverityWarning Severity = "warning"

	// SeverityInfo indicates an informational finding with no action required.
	SeverityInfo Severity = "info"
)

// Severities is the list of all supported severities.
var Severities = []Severity{
	SeverityCritical,
	SeverityWarning,
	SeverityInfo,
}

// String returns the string representation of the Severity.
func (s Severity) String() string {
	return string(s)
}

// IsValid checks if the severity is one of the supported values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityCritical, SeverityWarning, SeverityInfo:
		return true
	default:
		return false
	}
}

// Rank returns a sortable weight for the severity. Higher means more severe.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityWarning:
		return 2
	case SeverityInfo:
		return 1
	default:
		return 0
	}
}

// ParseSeverity parses a string into a Severity.
// Returns the Severity and true if parsing succeeds, or empty Severity and false otherwise.
func ParseSeverity(s string) (Severity, bool) {
	for _, sev := range Severities {
		if string(sev) == s {
			return sev, true
		}
	}
	return "", false
}

// Token is the leading outcome marker embedded in every Result status.
type Token string

const (
	// TokenPass indicates the check found the environment ready.
	TokenPass Token = "PASS"

	// TokenFail indicates the check found a blocking problem.
	TokenFail Token = "FAIL"

	// TokenWarn indicates the check found a non-blocking problem.
	TokenWarn Token = "WARN"

	// TokenInfo indicates the check produced an informational note.
	TokenInfo Token = "INFO"
)

// String returns the string representation of the Token.
func (t Token) String() string {
	return string(t)
}

// StatusOf composes a status string from an outcome token and a short detail.
// StatusOf(TokenPass, "CUDA 12.4 detected") yields "PASS - CUDA 12.4 detected".
// An empty detail yields the bare token.
func StatusOf(token Token, detail string) string {
	if detail == "" {
		return string(token)
	}
	return fmt.Sprintf("%s - %s", token, detail)
}

// Result is a single immutable diagnostic finding. Results are value
// records: probes create them fully populated and nothing mutates them
// afterwards.
type Result struct {
	// Name identifies the check that produced this finding (e.g., "CUDA Driver").
	Name string `json:"check" yaml:"check"`

	// Status is the outcome line, always starting with a Token
	// (e.g., "PASS - CUDA 12.4, driver 550.54.15").
	Status string `json:"status" yaml:"status"`

	// Severity is how much the finding matters when it is not a pass.
	Severity Severity `json:"severity" yaml:"severity"`

	// Fix is the suggested remediation, empty when nothing needs doing.
	Fix string `json:"fix" yaml:"fix"`

	// Details carries optional supporting output (raw tool output, versions).
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

// Token extracts the leading outcome token from the result status.
// Statuses that do not start with a known token are treated as INFO.
func (r Result) Token() Token {
	status := r.Status
	if i := strings.Index(status, " "); i > 0 {
		status = status[:i]
	}
	switch Token(status) {
	case TokenPass, TokenFail, TokenWarn, TokenInfo:
		return Token(status)
	default:
		return TokenInfo
	}
}

// Passed reports whether the result represents a passing check.
func (r Result) Passed() bool {
	return r.Token() == TokenPass
}
