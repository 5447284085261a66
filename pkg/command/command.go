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

// Package command runs external tools like nvidia-smi, python3, and docker
// with argument sanitization and bounded execution time. Commands run via
// argv, never through a shell.
package command

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/errors"
)

// Timeout bounds for a single command invocation.
const (
	MinTimeout = 1 * time.Second
	MaxTimeout = 3600 * time.Second
)

// dangerousPatterns are shell operators rejected in arguments. Execution
// never involves a shell, so these only appear when config-sourced values
// attempt injection.
var dangerousPatterns = []string{";", "&&", "||", "`", "$(", "<", ">", "|"}

// Output captures the result of a completed command.
type Output struct {
	// Stdout is the captured standard output.
	Stdout string

	// Stderr is the captured standard error.
	Stderr string

	// Code is the process exit code. Zero means success.
	Code int
}

// Success reports whether the command exited with code zero.
func (o Output) Success() bool {
	return o.Code == 0
}

// Runner executes external commands. Probes depend on this interface so
// tests can substitute canned outputs.
type Runner interface {
	// Run executes name with args and returns captured output. A non-zero
	// exit code is reported through Output.Code, not an error; errors are
	// reserved for rejected input, missing binaries, and timeouts.
	Run(ctx context.Context, name string, args ...string) (Output, error)

	// LookPath reports whether name resolves to an executable in PATH.
	LookPath(name string) bool
}

// ExecRunner runs commands with os/exec under a per-invocation timeout.
type ExecRunner struct {
	// Timeout bounds each invocation. Zero means defaults.CommandTimeout.
	Timeout time.Duration
}

// NewExecRunner creates an ExecRunner with the default timeout.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{Timeout: defaults.CommandTimeout}
}

// Run executes name with args and captures its output.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (Output, error) {
	if err := Sanitize(append([]string{name}, args...)); err != nil {
		return Output{}, err
	}

	timeout := r.Timeout
	if timeout == 0 {
		timeout = defaults.CommandTimeout
	}
	if err := ValidateTimeout(timeout); err != nil {
		return Output{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	out := Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return out, errors.WrapWithContext(errors.ErrCodeTimeout,
				fmt.Sprintf("command timed out after %s", timeout),
				ctx.Err(),
				map[string]any{"command": name})
		}
		var exitErr *exec.ExitError
		if stderrors.As(err, &exitErr) {
			out.Code = exitErr.ExitCode()
			slog.Debug("command exited non-zero",
				slog.String("command", name),
				slog.Int("code", out.Code),
				slog.Duration("duration", elapsed))
			return out, nil
		}
		if stderrors.Is(err, exec.ErrNotFound) {
			return out, errors.Wrap(errors.ErrCodeNotFound,
				fmt.Sprintf("command not found: %s", name), err)
		}
		return out, errors.Wrap(errors.ErrCodeCommand,
			fmt.Sprintf("failed to execute %s", name), err)
	}

	slog.Debug("command completed",
		slog.String("command", name),
		slog.Duration("duration", elapsed))
	return out, nil
}

// LookPath reports whether name resolves to an executable in PATH.
func (r *ExecRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// Sanitize rejects command arguments containing shell operators.
func Sanitize(args []string) error {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return errors.New(errors.ErrCodeInvalidInput, "command cannot be empty")
	}
	for _, arg := range args {
		for _, pattern := range dangerousPatterns {
			if strings.Contains(arg, pattern) {
				return errors.NewWithContext(errors.ErrCodeInvalidInput,
					fmt.Sprintf("dangerous pattern %q in command argument", pattern),
					map[string]any{"argument": arg})
			}
		}
	}
	return nil
}

// ValidateTimeout checks that a timeout falls within the allowed bounds.
func ValidateTimeout(timeout time.Duration) error {
	if timeout < MinTimeout {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("timeout too small: %s (minimum: %s)", timeout, MinTimeout))
	}
	if timeout > MaxTimeout {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("timeout too large: %s (maximum: %s)", timeout, MaxTimeout))
	}
	return nil
}
