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

package version

import (
	"errors"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      Version
		wantError error
	}{
		{
			name:  "cuda style two components",
			input: "12.4",
			want:  Version{Major: 12, Minor: 4, Precision: 2},
		},
		{
			name:  "full release",
			input: "2.4.0",
			want:  Version{Major: 2, Minor: 4, Patch: 0, Precision: 3},
		},
		{
			name:  "v prefix",
			input: "v1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3, Precision: 3},
		},
		{
			name:  "driver version",
			input: "550.54.15",
			want:  Version{Major: 550, Minor: 54, Patch: 15, Precision: 3},
		},
		{
			name:  "torch wheel with local metadata",
			input: "2.4.0+cu124",
			want:  Version{Major: 2, Minor: 4, Patch: 0, Precision: 3, Extras: "+cu124"},
		},
		{
			name:  "python dev release",
			input: "4.45.0.dev0",
			want:  Version{Major: 4, Minor: 45, Patch: 0, Precision: 3, Extras: ".dev0"},
		},
		{
			name:  "pre-release suffix",
			input: "0.12.0-rc1",
			want:  Version{Major: 0, Minor: 12, Patch: 0, Precision: 3, Extras: "-rc1"},
		},
		{
			name:  "major only",
			input: "12",
			want:  Version{Major: 12, Precision: 1},
		},
		{
			name:      "empty",
			input:     "",
			wantError: ErrEmptyVersion,
		},
		{
			name:      "non numeric",
			input:     "a.b.c",
			wantError: ErrNonNumeric,
		},
		{
			name:      "trailing dot",
			input:     "1.2.",
			wantError: ErrNonNumeric,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantError != nil {
				if !errors.Is(err, tt.wantError) {
					t.Fatalf("Parse(%q) error = %v, want %v", tt.input, err, tt.wantError)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestEqualsOrNewer(t *testing.T) {
	tests := []struct {
		name  string
		v     string
		other string
		want  bool
	}{
		{"equal full", "2.4.0", "2.4.0", true},
		{"newer patch", "2.4.1", "2.4.0", true},
		{"older patch", "2.4.0", "2.4.1", false},
		{"newer minor", "12.4", "12.1", true},
		{"older minor", "12.1", "12.4", false},
		{"cuda precision two vs three", "12.4", "12.4.1", true},
		{"newer major", "13.0", "12.4", true},
		{"torch metadata ignored", "2.4.0+cu124", "2.4.0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParse(tt.v)
			other := MustParse(tt.other)
			if got := v.EqualsOrNewer(other); got != tt.want {
				t.Errorf("%s.EqualsOrNewer(%s) = %v, want %v", tt.v, tt.other, got, tt.want)
			}
		})
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name  string
		v     string
		other string
		want  bool
	}{
		{"equal is not newer", "2.4.0", "2.4.0", false},
		{"newer patch", "2.4.1", "2.4.0", true},
		{"same minor at precision two", "12.4", "12.4.9", false},
		{"newer major", "13", "12", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParse(tt.v)
			other := MustParse(tt.other)
			if got := v.IsNewer(other); got != tt.want {
				t.Errorf("%s.IsNewer(%s) = %v, want %v", tt.v, tt.other, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name  string
		v     string
		other string
		want  int
	}{
		{"less", "2.3.9", "2.4.0", -1},
		{"equal", "4.44.0", "4.44.0", 0},
		{"greater", "4.45.0", "4.44.0", 1},
		{"mixed precision equal", "12.4", "12.4.1", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := MustParse(tt.v)
			other := MustParse(tt.other)
			if got := v.Compare(other); got != tt.want {
				t.Errorf("%s.Compare(%s) = %d, want %d", tt.v, tt.other, got, tt.want)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"12.4", "12.4"},
		{"2.4.0", "2.4.0"},
		{"12", "12"},
		{"2.4.0+cu124", "2.4.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("not-a-version")
}
