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

package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/mlready/pkg/errors"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"simple command", []string{"nvidia-smi"}, false},
		{"command with args", []string{"nvidia-smi", "--query-gpu=name", "--format=csv"}, false},
		{"python snippet", []string{"python3", "-c", "import torch; print(torch.__version__)"}, false},
		{"empty list", []string{}, true},
		{"empty command", []string{"  "}, true},
		{"semicolon injection", []string{"echo", "a; rm -rf /"}, true},
		{"and chain", []string{"echo", "a && b"}, true},
		{"or chain", []string{"echo", "a || b"}, true},
		{"backtick", []string{"echo", "`id`"}, true},
		{"subshell", []string{"echo", "$(id)"}, true},
		{"redirect out", []string{"echo", "x > /etc/passwd"}, true},
		{"redirect in", []string{"cat", "< secret"}, true},
		{"pipe", []string{"ps", "aux | grep x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Sanitize(tt.args)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateTimeout(t *testing.T) {
	tests := []struct {
		name        string
		timeout     time.Duration
		expectError bool
	}{
		{"default", 30 * time.Second, false},
		{"minimum", time.Second, false},
		{"maximum", 3600 * time.Second, false},
		{"too small", 500 * time.Millisecond, true},
		{"zero", 0, true},
		{"too large", 2 * time.Hour, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTimeout(tt.timeout)
			if tt.expectError && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestExecRunner_Run(t *testing.T) {
	r := NewExecRunner()
	ctx := context.Background()

	t.Run("captures stdout", func(t *testing.T) {
		if !r.LookPath("true") {
			t.Skip("true not available")
		}
		out, err := r.Run(ctx, "true")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !out.Success() {
			t.Errorf("exit code = %d, want 0", out.Code)
		}
	})

	t.Run("non-zero exit is not an error", func(t *testing.T) {
		if !r.LookPath("false") {
			t.Skip("false not available")
		}
		out, err := r.Run(ctx, "false")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Success() {
			t.Error("expected non-zero exit code")
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := r.Run(ctx, "mlready-no-such-binary")
		if err == nil {
			t.Fatal("expected error for missing binary")
		}
		if code := errors.CodeOf(err); code != errors.ErrCodeNotFound {
			t.Errorf("error code = %v, want %v", code, errors.ErrCodeNotFound)
		}
	})

	t.Run("rejected argument", func(t *testing.T) {
		_, err := r.Run(ctx, "echo", "x; y")
		if err == nil {
			t.Fatal("expected error for dangerous argument")
		}
		if code := errors.CodeOf(err); code != errors.ErrCodeInvalidInput {
			t.Errorf("error code = %v, want %v", code, errors.ErrCodeInvalidInput)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		if !r.LookPath("sleep") {
			t.Skip("sleep not available")
		}
		quick := &ExecRunner{Timeout: time.Second}
		start := time.Now()
		_, err := quick.Run(ctx, "sleep", "5")
		if err == nil {
			t.Fatal("expected timeout error")
		}
		if code := errors.CodeOf(err); code != errors.ErrCodeTimeout {
			t.Errorf("error code = %v, want %v", code, errors.ErrCodeTimeout)
		}
		if elapsed := time.Since(start); elapsed > 3*time.Second {
			t.Errorf("command was not killed promptly, took %s", elapsed)
		}
	})

	t.Run("echo output", func(t *testing.T) {
		if !r.LookPath("echo") {
			t.Skip("echo not available")
		}
		out, err := r.Run(ctx, "echo", "hello")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := strings.TrimSpace(out.Stdout); got != "hello" {
			t.Errorf("stdout = %q, want %q", got, "hello")
		}
	})
}

func TestExecRunner_LookPath(t *testing.T) {
	r := NewExecRunner()
	if r.LookPath("mlready-no-such-binary") {
		t.Error("expected LookPath to fail for a missing binary")
	}
}
