/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

// fakeRunner returns canned output so the smoke test can be exercised
// without a Python environment.
type fakeRunner struct {
	out     command.Output
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (command.Output, error) {
	f.gotName = name
	f.gotArgs = args
	return f.out, f.err
}

func (f *fakeRunner) LookPath(_ string) bool { return true }

func mustModel(t *testing.T, alias string) *catalog.Model {
	t.Helper()
	m, err := catalog.LookupModel(alias)
	if err != nil {
		t.Fatalf("LookupModel(%q) error = %v", alias, err)
	}
	return m
}

func TestRunSmokeTestPass(t *testing.T) {
	runner := &fakeRunner{out: command.Output{Stdout: "step 1: loss=2.3\nSMOKE TEST PASSED\n"}}

	result := runSmokeTest(context.Background(), runner, "python3", mustModel(t, "tinyllama"), false)

	if result.Token() != diagnostic.TokenPass {
		t.Fatalf("Token() = %s, want PASS (status %q)", result.Token(), result.Status)
	}
	if result.Severity != diagnostic.SeverityInfo {
		t.Errorf("Severity = %s, want info", result.Severity)
	}
	if runner.gotName != "python3" {
		t.Errorf("interpreter = %s, want python3", runner.gotName)
	}
	if len(runner.gotArgs) != 1 || !strings.HasSuffix(runner.gotArgs[0], "smoke_train.py") {
		t.Errorf("args = %v, want a single smoke_train.py path", runner.gotArgs)
	}
}

func TestRunSmokeTestTrainingFailure(t *testing.T) {
	runner := &fakeRunner{out: command.Output{
		Code:   1,
		Stderr: "Traceback (most recent call last):\nRuntimeError: CUDA out of memory",
	}}

	result := runSmokeTest(context.Background(), runner, "python3", mustModel(t, "gpt2"), false)

	if result.Token() != diagnostic.TokenFail {
		t.Fatalf("Token() = %s, want FAIL", result.Token())
	}
	if result.Severity != diagnostic.SeverityCritical {
		t.Errorf("Severity = %s, want critical", result.Severity)
	}
	if !strings.Contains(result.Details, "CUDA out of memory") {
		t.Errorf("Details = %q, want trailing stderr lines", result.Details)
	}
}

func TestRunSmokeTestRunnerError(t *testing.T) {
	runner := &fakeRunner{err: errors.New("python3: command not found")}

	result := runSmokeTest(context.Background(), runner, "python3", mustModel(t, "tinyllama"), false)

	if result.Token() != diagnostic.TokenFail {
		t.Fatalf("Token() = %s, want FAIL", result.Token())
	}
	if !strings.Contains(result.Details, "command not found") {
		t.Errorf("Details = %q, want the runner error", result.Details)
	}
}

func TestRunSmokeTestMissingPassMarker(t *testing.T) {
	// A zero exit without the marker means the script was cut short.
	runner := &fakeRunner{out: command.Output{Stdout: "loading model\n"}}

	result := runSmokeTest(context.Background(), runner, "python3", mustModel(t, "tinyllama"), false)

	if result.Token() != diagnostic.TokenFail {
		t.Fatalf("Token() = %s, want FAIL", result.Token())
	}
}

func TestRenderSmokeScript(t *testing.T) {
	model := mustModel(t, "mistral-7b")

	script, err := renderSmokeScript(model)
	if err != nil {
		t.Fatalf("renderSmokeScript() error = %v", err)
	}

	if !strings.Contains(script, model.Ref) {
		t.Errorf("script does not reference %q", model.Ref)
	}
	if !strings.Contains(script, passMarker) {
		t.Errorf("script does not print the pass marker")
	}
	if strings.Contains(script, "{{") {
		t.Errorf("script contains unexpanded template actions")
	}
}

func TestLastLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short input unchanged", "a\nb", 5, "a\nb"},
		{"truncates to n", "a\nb\nc\nd", 2, "c\nd"},
		{"trims trailing newline", "a\nb\n", 2, "a\nb"},
		{"empty input", "", 3, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := lastLines(tt.in, tt.n); got != tt.want {
				t.Errorf("lastLines() = %q, want %q", got, tt.want)
			}
		})
	}
}
