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

// Package constraint parses and evaluates version constraint expressions.
//
// Expressions come in two forms: pip-style requirements that carry a
// package name ("transformers>=4.44.0"), and bare expressions used for
// threshold checks (">= 12.1", "ubuntu"). Comparison operators trigger
// version-aware comparison via pkg/version; exact and inequality
// operators fall back to string comparison when either side does not
// parse as a version.
package constraint

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/mlready/pkg/errors"
	"github.com/NVIDIA/mlready/pkg/version"
)

// Operator represents a comparison operator in constraint expressions.
type Operator string

const (
	// OperatorGTE represents ">=" (greater than or equal).
	OperatorGTE Operator = ">="

	// OperatorLTE represents "<=" (less than or equal).
	OperatorLTE Operator = "<="

	// OperatorGT represents ">" (greater than).
	OperatorGT Operator = ">"

	// OperatorLT represents "<" (less than).
	OperatorLT Operator = "<"

	// OperatorEQ represents "==" (exact match).
	OperatorEQ Operator = "=="

	// OperatorNE represents "!=" (not equal).
	OperatorNE Operator = "!="

	// OperatorExact represents no operator (exact string match).
	OperatorExact Operator = ""
)

// Constraint represents a parsed constraint expression.
type Constraint struct {
	// Name is the requirement name for pip-style expressions
	// ("transformers>=4.44.0"). Empty for bare expressions.
	Name string

	// Operator is the comparison operator (or empty for exact match).
	Operator Operator

	// Value is the expected value after the operator.
	Value string

	// IsVersionComparison indicates if this should be treated as a version comparison.
	IsVersionComparison bool
}

// Parse parses a constraint expression.
// Examples:
//   - "transformers>=4.44.0" -> {Name: "transformers", Operator: ">=", Value: "4.44.0"}
//   - ">= 12.1" -> {Operator: ">=", Value: "12.1", IsVersionComparison: true}
//   - "ubuntu" -> {Operator: "", Value: "ubuntu"}
func Parse(expr string) (*Constraint, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "constraint expression cannot be empty")
	}

	c := &Constraint{}

	// Find the earliest operator occurrence. Longer operators are checked
	// first so ">=" is not split into ">" plus "=".
	operators := []Operator{OperatorGTE, OperatorLTE, OperatorNE, OperatorEQ, OperatorGT, OperatorLT}
	opIdx := -1
	for _, op := range operators {
		idx := strings.Index(expr, string(op))
		if idx >= 0 && (opIdx == -1 || idx < opIdx) {
			opIdx = idx
			c.Operator = op
		}
	}

	if opIdx == -1 {
		// No operator found, treat as exact match
		c.Operator = OperatorExact
		c.Value = expr
	} else {
		c.Name = strings.TrimSpace(expr[:opIdx])
		c.Value = strings.TrimSpace(expr[opIdx+len(c.Operator):])
	}

	if c.Value == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "constraint value cannot be empty after operator")
	}

	if c.Name != "" && !validRequirementName(c.Name) {
		return nil, errors.NewWithContext(errors.ErrCodeInvalidInput,
			"invalid requirement name", map[string]any{"name": c.Name})
	}

	// Comparison operators always imply version comparison; equality
	// operators only when the value looks like a version.
	if c.Operator != OperatorExact && c.Operator != OperatorEQ && c.Operator != OperatorNE {
		c.IsVersionComparison = true
	} else if looksLikeVersion(c.Value) {
		c.IsVersionComparison = true
	}

	return c, nil
}

// MustParse parses a constraint expression and panics on failure.
// It returns a value so static tables can hold constraints directly.
// Intended for static tables and tests.
func MustParse(expr string) Constraint {
	c, err := Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("MustParse: %v", err))
	}
	return *c
}

// validRequirementName reports whether s is a plausible package name
// (letters, digits, dot, underscore, hyphen).
func validRequirementName(s string) bool {
	for _, c := range s {
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// looksLikeVersion returns true if the value appears to be a version string.
func looksLikeVersion(s string) bool {
	s = strings.TrimPrefix(s, "v")
	if len(s) == 0 {
		return false
	}
	// Must contain a digit and at least one dot
	hasDigit := false
	hasDot := false
	for _, c := range s {
		if c >= '0' && c <= '9' {
			hasDigit = true
		}
		if c == '.' {
			hasDot = true
		}
	}
	return hasDigit && hasDot
}

// Evaluate evaluates the constraint against an actual value.
// Returns true if the constraint is satisfied, false otherwise.
func (c Constraint) Evaluate(actual string) (bool, error) {
	actual = strings.TrimSpace(actual)

	switch c.Operator {
	case OperatorExact:
		// Exact string match (case-sensitive)
		return actual == c.Value, nil

	case OperatorEQ:
		// Explicit equality - try version comparison first, fall back to string
		if c.IsVersionComparison {
			expectedVer, err := version.Parse(c.Value)
			if err == nil {
				actualVer, err := version.Parse(actual)
				if err == nil {
					return expectedVer.Equals(actualVer), nil
				}
			}
		}
		return actual == c.Value, nil

	case OperatorNE:
		// Not equal - try version comparison first, fall back to string
		if c.IsVersionComparison {
			expectedVer, err := version.Parse(c.Value)
			if err == nil {
				actualVer, err := version.Parse(actual)
				if err == nil {
					return !expectedVer.Equals(actualVer), nil
				}
			}
		}
		return actual != c.Value, nil

	case OperatorGTE, OperatorGT, OperatorLTE, OperatorLT:
		// Version comparison required
		expectedVer, err := version.Parse(c.Value)
		if err != nil {
			return false, errors.WrapWithContext(errors.ErrCodeInvalidInput,
				"cannot parse expected version", err, map[string]any{"version": c.Value})
		}

		actualVer, err := version.Parse(actual)
		if err != nil {
			return false, errors.WrapWithContext(errors.ErrCodeInvalidInput,
				"cannot parse actual version", err, map[string]any{"version": actual})
		}

		cmp := actualVer.Compare(expectedVer)

		//nolint:exhaustive // Only comparison operators reach this point; EQ, NE, Exact are handled above
		switch c.Operator {
		case OperatorGTE:
			return cmp >= 0, nil
		case OperatorGT:
			return cmp > 0, nil
		case OperatorLTE:
			return cmp <= 0, nil
		case OperatorLT:
			return cmp < 0, nil
		default:
			// This shouldn't happen as this case only handles comparison operators
			return false, errors.NewWithContext(errors.ErrCodeInternal,
				"unexpected operator in version comparison", map[string]any{"operator": c.Operator})
		}
	default:
		return false, errors.NewWithContext(errors.ErrCodeInvalidInput,
			"unknown operator", map[string]any{"operator": c.Operator})
	}
}

// String returns a string representation of the constraint.
// Named requirements render pip-style without spaces ("torch>=2.4.0");
// bare expressions keep the "operator value" form.
func (c Constraint) String() string {
	if c.Name != "" {
		return fmt.Sprintf("%s%s%s", c.Name, c.Operator, c.Value)
	}
	if c.Operator == OperatorExact {
		return c.Value
	}
	return fmt.Sprintf("%s %s", c.Operator, c.Value)
}
