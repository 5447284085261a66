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

// Package bundle generates fine-tuning artifacts from the model and stack
// catalogs. Each bundler renders a family of templates into an output
// directory and records what it wrote in a bundle.yaml manifest.
package bundle

import (
	"context"
	"fmt"
	"time"

	"github.com/distribution/reference"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/errors"
	"github.com/NVIDIA/mlready/pkg/header"
)

// APIVersion is the schema version stamped into bundle manifests.
const APIVersion = "mlready/v1"

// Bundler defines the interface for generating artifact bundles.
// Implementations render templates into the given directory.
type Bundler interface {
	// Name identifies the bundler (e.g., "dockerfile").
	Name() string

	// Make generates the bundle in the specified directory.
	// Returns an Output describing the generated files.
	Make(ctx context.Context, input Input, dir string) (*Output, error)
}

// Config carries cross-bundler settings.
type Config struct {
	// Version is the tool version stamped into manifests and file headers.
	Version string

	// IncludeChecksums controls generation of the checksums.txt file.
	IncludeChecksums bool
}

// DefaultConfig returns the config used when none is provided.
func DefaultConfig() Config {
	return Config{
		Version:          "dev",
		IncludeChecksums: true,
	}
}

// Input describes what to generate.
type Input struct {
	// Model is the catalog alias of the fine-tuning target (e.g., "tinyllama").
	// Required by the dockerfile bundler; ignored by pyenv.
	Model string

	// Stack names the package stack to pin. Empty means catalog.DefaultStack.
	Stack string

	// Service adds an inference service entrypoint to container bundles.
	Service bool

	// BaseImage overrides the default CUDA base image.
	BaseImage string

	// Conda switches the pyenv bundler from venv scripts to a conda
	// environment file.
	Conda bool

	// Labels are extra image labels merged over the generated OCI set.
	Labels map[string]string
}

// Validate checks the input against the catalogs and the image reference
// grammar. Fields that are empty are left for the bundler to default.
func (in Input) Validate() error {
	if in.Model != "" {
		if _, err := catalog.LookupModel(in.Model); err != nil {
			return err
		}
	}
	if in.Stack != "" {
		if _, err := catalog.LookupStack(in.Stack); err != nil {
			return err
		}
	}
	if in.BaseImage != "" {
		if _, err := reference.ParseNormalizedNamed(in.BaseImage); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput,
				fmt.Sprintf("invalid base image %q", in.BaseImage), err)
		}
	}
	return nil
}

// File records one generated artifact.
type File struct {
	// Path is relative to the bundle directory.
	Path string `json:"path" yaml:"path"`

	// SHA256 is the hex digest of the file content.
	SHA256 string `json:"sha256" yaml:"sha256"`

	// Size is the file size in bytes.
	Size int64 `json:"size" yaml:"size"`
}

// Output is the manifest of a bundle run, serialized as bundle.yaml
// alongside the generated files.
type Output struct {
	header.Header `json:",inline" yaml:",inline"`

	// Bundler names the generator that produced this bundle.
	Bundler string `json:"bundler" yaml:"bundler"`

	// Model is the catalog alias the bundle targets, when model-specific.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// Stack is the package stack the bundle pins, when stack-specific.
	Stack string `json:"stack,omitempty" yaml:"stack,omitempty"`

	// Files lists the generated artifacts with their checksums.
	Files []File `json:"files" yaml:"files"`

	// TotalSize is the combined size in bytes of all generated files.
	TotalSize int64 `json:"totalSizeBytes" yaml:"totalSizeBytes"`

	// Duration is the time taken to generate the bundle.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewOutput creates a manifest for the named bundler with an initialized
// header.
func NewOutput(bundlerName, version string) *Output {
	out := &Output{
		Bundler: bundlerName,
		Files:   make([]File, 0),
	}
	out.Init(header.KindBundle, APIVersion, version)
	return out
}

// FileNames returns the relative paths of all recorded files.
func (o *Output) FileNames() []string {
	names := make([]string, len(o.Files))
	for i, f := range o.Files {
		names[i] = f.Path
	}
	return names
}
