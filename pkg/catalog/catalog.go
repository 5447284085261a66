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

// Package catalog holds the static tables of supported models and training
// stacks that drive diagnostics and artifact generation.
package catalog

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/NVIDIA/mlready/pkg/constraint"
	"github.com/NVIDIA/mlready/pkg/errors"
)

// MaxSuggestionDistance is the largest edit distance still offered as a
// "did you mean" candidate for a mistyped model alias.
const MaxSuggestionDistance = 3

// maxAliasLength bounds user-supplied model aliases.
const maxAliasLength = 100

var validAlias = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Model describes a supported fine-tuning target.
type Model struct {
	// Alias is the short name accepted on the command line (e.g., "tinyllama").
	Alias string `json:"alias" yaml:"alias"`

	// Ref is the full hub reference (e.g., "TinyLlama/TinyLlama-1.1B-Chat-v1.0").
	Ref string `json:"ref" yaml:"ref"`

	// MinGPUMemoryGiB is the smallest VRAM that fine-tunes this model with LoRA.
	MinGPUMemoryGiB int `json:"minGpuMemoryGiB" yaml:"minGpuMemoryGiB"`

	// Packages are the pip requirement pins baked into generated artifacts.
	Packages []string `json:"packages" yaml:"packages"`
}

// Stack describes a named set of Python package requirements.
type Stack struct {
	// Name identifies the stack (e.g., "trl-peft").
	Name string `json:"name" yaml:"name"`

	// Packages are the version constraints checked by the library probe and
	// rendered into requirements files.
	Packages []constraint.Constraint `json:"packages" yaml:"packages"`
}

// models is ordered; listing commands preserve this order.
var models = []Model{
	{
		Alias:           "tinyllama",
		Ref:             "TinyLlama/TinyLlama-1.1B-Chat-v1.0",
		MinGPUMemoryGiB: 8,
		Packages: []string{
			"torch>=2.4.0",
			"transformers>=4.44.0",
			"peft>=0.12.0",
			"trl>=0.9.0",
			"datasets>=2.20.0",
			"accelerate>=1.0.0",
		},
	},
	{
		Alias:           "gpt2",
		Ref:             "gpt2",
		MinGPUMemoryGiB: 8,
		Packages: []string{
			"torch>=2.4.0",
			"transformers>=4.44.0",
			"datasets>=2.20.0",
			"accelerate>=1.0.0",
		},
	},
	{
		Alias:           "mistral-7b",
		Ref:             "mistralai/Mistral-7B-v0.1",
		MinGPUMemoryGiB: 16,
		Packages: []string{
			"torch>=2.4.0",
			"transformers>=4.44.0",
			"peft>=0.12.0",
			"trl>=0.9.0",
			"datasets>=2.20.0",
			"accelerate>=1.0.0",
			"bitsandbytes>=0.43.0",
		},
	},
}

// stacks is ordered; trl-peft is the default.
var stacks = []Stack{
	{
		Name: "trl-peft",
		Packages: []constraint.Constraint{
			constraint.MustParse("torch>=2.4.0"),
			constraint.MustParse("transformers>=4.44.0"),
			constraint.MustParse("peft>=0.12.0"),
			constraint.MustParse("trl>=0.9.0"),
			constraint.MustParse("datasets>=2.20.0"),
			constraint.MustParse("accelerate>=1.0.0"),
			constraint.MustParse("bitsandbytes>=0.43.0"),
		},
	},
	{
		Name: "minimal",
		Packages: []constraint.Constraint{
			constraint.MustParse("torch>=2.4.0"),
			constraint.MustParse("transformers>=4.44.0"),
		},
	},
}

// DefaultStack is the stack assumed when none is named.
const DefaultStack = "trl-peft"

// Models returns all supported models in catalog order.
func Models() []Model {
	out := make([]Model, len(models))
	copy(out, models)
	return out
}

// Stacks returns all supported stacks in catalog order.
func Stacks() []Stack {
	out := make([]Stack, len(stacks))
	copy(out, stacks)
	return out
}

// LookupModel finds a model by alias. Aliases are matched case-insensitively
// after validation. Unknown aliases produce an error that names the nearest
// catalog entry when one is close enough.
func LookupModel(alias string) (*Model, error) {
	normalized, err := ValidateModelAlias(alias)
	if err != nil {
		return nil, err
	}
	for i := range models {
		if models[i].Alias == normalized {
			m := models[i]
			return &m, nil
		}
	}
	if suggestion := SuggestModel(normalized); suggestion != "" {
		return nil, errors.New(errors.ErrCodeNotFound,
			fmt.Sprintf("unknown model %q (did you mean %q?)", normalized, suggestion))
	}
	return nil, errors.New(errors.ErrCodeNotFound,
		fmt.Sprintf("unknown model %q (supported: %s)", normalized, strings.Join(ModelAliases(), ", ")))
}

// LookupStack finds a stack by name.
func LookupStack(name string) (*Stack, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range stacks {
		if stacks[i].Name == normalized {
			s := stacks[i]
			return &s, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound,
		fmt.Sprintf("unknown stack %q (supported: %s)", name, strings.Join(StackNames(), ", ")))
}

// ModelAliases returns the aliases of all supported models in catalog order.
func ModelAliases() []string {
	aliases := make([]string, len(models))
	for i, m := range models {
		aliases[i] = m.Alias
	}
	return aliases
}

// StackNames returns the names of all supported stacks in catalog order.
func StackNames() []string {
	names := make([]string, len(stacks))
	for i, s := range stacks {
		names[i] = s.Name
	}
	return names
}

// SuggestModel returns the catalog alias nearest to the given one, or an
// empty string when nothing is within MaxSuggestionDistance edits.
func SuggestModel(alias string) string {
	best := ""
	bestDist := MaxSuggestionDistance + 1
	for _, m := range models {
		if d := levenshtein.ComputeDistance(alias, m.Alias); d < bestDist {
			best = m.Alias
			bestDist = d
		}
	}
	return best
}

// ValidateModelAlias checks that an alias contains only letters, digits,
// dots, underscores, and hyphens, and returns it lowercased.
func ValidateModelAlias(alias string) (string, error) {
	trimmed := strings.TrimSpace(alias)
	if trimmed == "" {
		return "", errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("model name cannot be empty (supported: %s)", strings.Join(ModelAliases(), ", ")))
	}
	if len(trimmed) > maxAliasLength {
		return "", errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("model name too long: %d chars (maximum: %d)", len(trimmed), maxAliasLength))
	}
	if !validAlias.MatchString(trimmed) {
		return "", errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid model name %q: only letters, numbers, dots, underscores, and hyphens are allowed", trimmed))
	}
	return strings.ToLower(trimmed), nil
}
