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

package catalog

import (
	"strings"
	"testing"

	"github.com/NVIDIA/mlready/pkg/errors"
)

func TestLookupModel(t *testing.T) {
	tests := []struct {
		name        string
		alias       string
		wantRef     string
		expectError bool
	}{
		{"tinyllama", "tinyllama", "TinyLlama/TinyLlama-1.1B-Chat-v1.0", false},
		{"gpt2", "gpt2", "gpt2", false},
		{"mistral", "mistral-7b", "mistralai/Mistral-7B-v0.1", false},
		{"case insensitive", "TinyLlama", "TinyLlama/TinyLlama-1.1B-Chat-v1.0", false},
		{"surrounding space", " gpt2 ", "gpt2", false},
		{"unknown", "llama-unknown", "", true},
		{"empty", "", "", true},
		{"invalid chars", "model name!", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := LookupModel(tt.alias)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if m.Ref != tt.wantRef {
				t.Errorf("ref = %q, want %q", m.Ref, tt.wantRef)
			}
			if len(m.Packages) == 0 {
				t.Error("expected model to carry package pins")
			}
		})
	}
}

func TestLookupModel_Suggestion(t *testing.T) {
	_, err := LookupModel("tinylama")
	if err == nil {
		t.Fatal("expected error for mistyped alias")
	}
	if !strings.Contains(err.Error(), `did you mean "tinyllama"`) {
		t.Errorf("error should suggest tinyllama, got: %v", err)
	}
	if code := errors.CodeOf(err); code != errors.ErrCodeNotFound {
		t.Errorf("error code = %v, want %v", code, errors.ErrCodeNotFound)
	}
}

func TestLookupStack(t *testing.T) {
	s, err := LookupStack("trl-peft")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Packages) != 7 {
		t.Errorf("trl-peft packages = %d, want 7", len(s.Packages))
	}

	minimal, err := LookupStack("MINIMAL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(minimal.Packages) != 2 {
		t.Errorf("minimal packages = %d, want 2", len(minimal.Packages))
	}

	if _, err := LookupStack("mega"); err == nil {
		t.Error("expected error for unknown stack")
	}
}

func TestSuggestModel(t *testing.T) {
	tests := []struct {
		name  string
		alias string
		want  string
	}{
		{"one edit", "tinyllma", "tinyllama"},
		{"transposed", "gpt-2", "gpt2"},
		{"missing suffix", "mistral-7", "mistral-7b"},
		{"too far", "stable-diffusion-xl", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuggestModel(tt.alias); got != tt.want {
				t.Errorf("SuggestModel(%q) = %q, want %q", tt.alias, got, tt.want)
			}
		})
	}
}

func TestValidateModelAlias(t *testing.T) {
	tests := []struct {
		name        string
		alias       string
		want        string
		expectError bool
	}{
		{"simple", "gpt2", "gpt2", false},
		{"lowercased", "Mistral-7B", "mistral-7b", false},
		{"dots and underscores", "my_model.v2", "my_model.v2", false},
		{"empty", "", "", true},
		{"spaces inside", "my model", "", true},
		{"shell chars", "model;rm", "", true},
		{"too long", strings.Repeat("a", 101), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateModelAlias(tt.alias)
			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ValidateModelAlias(%q) = %q, want %q", tt.alias, got, tt.want)
			}
		})
	}
}

func TestCatalogOrder(t *testing.T) {
	aliases := ModelAliases()
	want := []string{"tinyllama", "gpt2", "mistral-7b"}
	if len(aliases) != len(want) {
		t.Fatalf("aliases = %v, want %v", aliases, want)
	}
	for i := range want {
		if aliases[i] != want[i] {
			t.Errorf("aliases[%d] = %q, want %q", i, aliases[i], want[i])
		}
	}

	names := StackNames()
	if len(names) != 2 || names[0] != "trl-peft" || names[1] != "minimal" {
		t.Errorf("stack names = %v, want [trl-peft minimal]", names)
	}
}

func TestModelsReturnsCopy(t *testing.T) {
	m := Models()
	m[0].Alias = "mutated"
	if models[0].Alias == "mutated" {
		t.Error("Models() must return a copy of the catalog")
	}
}
