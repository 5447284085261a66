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

// Package pyenv generates local Python environment fixes for a package
// stack: pinned requirements plus a venv setup script, or a conda
// environment file with its own setup script.
package pyenv

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/NVIDIA/mlready/pkg/bundle"
	"github.com/NVIDIA/mlready/pkg/bundle/checksum"
	"github.com/NVIDIA/mlready/pkg/bundle/internal"
	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/errors"
)

// Name identifies this bundler in the registry.
const Name = "pyenv"

const (
	// envName is the conda environment name written into environment.yml.
	envName = "mlready"

	// pythonVersion is the interpreter pinned in conda environments.
	pythonVersion = "3.10"
)

// Bundler generates Python environment bundles for package stacks.
type Bundler struct {
	cfg bundle.Config
}

// New creates a new pyenv bundler instance.
func New(cfg bundle.Config) *Bundler {
	return &Bundler{cfg: cfg}
}

// Name returns the registry name of this bundler.
func (b *Bundler) Name() string {
	return Name
}

// templateData feeds the environment and setup script templates.
type templateData struct {
	Version       string
	Timestamp     string
	Stack         string
	EnvName       string
	Python        string
	PythonVersion string
	Packages      []string
}

// Make generates the Python environment bundle for the stack named in the
// input. With Conda set the bundle holds environment.yml and setup_conda.sh;
// otherwise requirements.txt pairs with setup_venv.sh.
func (b *Bundler) Make(ctx context.Context, input bundle.Input, dir string) (*bundle.Output, error) {
	start := time.Now()

	if err := input.Validate(); err != nil {
		return nil, err
	}

	stackName := input.Stack
	if stackName == "" {
		stackName = catalog.DefaultStack
	}
	stack, err := catalog.LookupStack(stackName)
	if err != nil {
		return nil, err
	}

	packages := make([]string, len(stack.Packages))
	for i, c := range stack.Packages {
		packages[i] = c.String()
	}

	slog.Debug("generating python environment bundle",
		"stack", stack.Name,
		"conda", input.Conda,
		"output_dir", dir,
	)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle,
			"failed to create bundle directory", err)
	}

	data := templateData{
		Version:       b.cfg.Version,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		Stack:         stack.Name,
		EnvName:       envName,
		Python:        defaults.PythonInterpreter,
		PythonVersion: pythonVersion,
		Packages:      packages,
	}

	var builder internal.Builder

	if err := builder.GenerateFromTemplate(ctx, GetTemplate, "requirements.txt",
		filepath.Join(dir, "requirements.txt"), data, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate requirements", err)
	}

	setupScript := "setup_venv.sh"
	if input.Conda {
		setupScript = "setup_conda.sh"
		if err := builder.GenerateFromTemplate(ctx, GetTemplate, "environment.yml",
			filepath.Join(dir, "environment.yml"), data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate conda environment", err)
		}
	}

	scriptPath := filepath.Join(dir, setupScript)
	if err := builder.GenerateFromTemplate(ctx, GetTemplate, setupScript,
		scriptPath, data, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate setup script", err)
	}
	if err := builder.MakeExecutable(scriptPath); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to finalize setup script", err)
	}

	files := builder.Files
	if b.cfg.IncludeChecksums {
		if err := checksum.Generate(ctx, dir, files); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate checksums", err)
		}
		files = append(files, checksum.Path(dir))
	}

	out := bundle.NewOutput(Name, b.cfg.Version)
	out.Stack = stack.Name
	if err := out.AddFiles(ctx, dir, files); err != nil {
		return nil, err
	}
	out.Duration = time.Since(start)

	if _, err := out.WriteManifest(dir); err != nil {
		return nil, err
	}

	slog.Info("python environment bundle generated",
		"stack", stack.Name,
		"files", len(out.Files),
		"size_bytes", out.TotalSize,
		"duration", out.Duration.Round(time.Millisecond),
	)

	return out, nil
}
