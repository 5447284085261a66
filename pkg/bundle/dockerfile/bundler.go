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

// Package dockerfile generates container build contexts for fine-tuning a
// catalog model: a Dockerfile on a CUDA base image, pinned requirements,
// an entrypoint script, and optionally an inference service stub.
package dockerfile

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	"github.com/NVIDIA/mlready/pkg/bundle"
	"github.com/NVIDIA/mlready/pkg/bundle/checksum"
	"github.com/NVIDIA/mlready/pkg/bundle/internal"
	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/errors"
)

// Name identifies this bundler in the registry.
const Name = "dockerfile"

// servePort is the port the generated inference service listens on.
const servePort = 8000

// servicePackages are appended to the model pins when Service is set.
var servicePackages = []string{
	"fastapi>=0.110.0",
	"uvicorn>=0.30.0",
}

// Bundler generates Dockerfile bundles for catalog models.
type Bundler struct {
	cfg bundle.Config
}

// New creates a new dockerfile bundler instance.
func New(cfg bundle.Config) *Bundler {
	return &Bundler{cfg: cfg}
}

// Name returns the registry name of this bundler.
func (b *Bundler) Name() string {
	return Name
}

// label is a rendered LABEL instruction pair.
type label struct {
	Key   string
	Value string
}

// templateData feeds the Dockerfile, entrypoint, and serve templates.
type templateData struct {
	Version    string
	Timestamp  string
	BaseImage  string
	ModelAlias string
	ModelRef   string
	Service    bool
	Port       int
	Labels     []label
}

// requirementsData feeds the requirements template.
type requirementsData struct {
	Version   string
	Timestamp string
	Source    string
	Packages  []string
}

// Make generates the container build context for the model named in the
// input. The bundle contains Dockerfile, requirements.txt, entrypoint.sh,
// serve.py when Service is set, and the checksum and manifest files.
func (b *Bundler) Make(ctx context.Context, input bundle.Input, dir string) (*bundle.Output, error) {
	start := time.Now()

	if input.Model == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"a model is required for dockerfile bundles (see mlready models)")
	}
	if err := input.Validate(); err != nil {
		return nil, err
	}

	model, err := catalog.LookupModel(input.Model)
	if err != nil {
		return nil, err
	}

	baseImage := input.BaseImage
	if baseImage == "" {
		baseImage = defaults.DockerBaseImage
	}

	slog.Debug("generating dockerfile bundle",
		"model", model.Alias,
		"base_image", baseImage,
		"service", input.Service,
		"output_dir", dir,
	)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle,
			"failed to create bundle directory", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	data := templateData{
		Version:    b.cfg.Version,
		Timestamp:  now,
		BaseImage:  baseImage,
		ModelAlias: model.Alias,
		ModelRef:   model.Ref,
		Service:    input.Service,
		Port:       servePort,
		Labels:     buildLabels(b.cfg.Version, input.Labels, model, baseImage, now),
	}

	packages := make([]string, 0, len(model.Packages)+len(servicePackages))
	packages = append(packages, model.Packages...)
	if input.Service {
		packages = append(packages, servicePackages...)
	}

	var builder internal.Builder

	reqData := requirementsData{
		Version:   b.cfg.Version,
		Timestamp: now,
		Source:    fmt.Sprintf("Model: %s (%s)", model.Alias, model.Ref),
		Packages:  packages,
	}
	if err := builder.GenerateFromTemplate(ctx, GetTemplate, "requirements.txt",
		filepath.Join(dir, "requirements.txt"), reqData, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate requirements", err)
	}

	if err := builder.GenerateFromTemplate(ctx, GetTemplate, "Dockerfile",
		filepath.Join(dir, "Dockerfile"), data, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate Dockerfile", err)
	}

	entrypointPath := filepath.Join(dir, "entrypoint.sh")
	if err := builder.GenerateFromTemplate(ctx, GetTemplate, "entrypoint.sh",
		entrypointPath, data, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate entrypoint", err)
	}
	if err := builder.MakeExecutable(entrypointPath); err != nil {
		return nil, errors.Wrap(errors.ErrCodeBundle, "failed to finalize entrypoint", err)
	}

	if input.Service {
		if err := builder.GenerateFromTemplate(ctx, GetTemplate, "serve.py",
			filepath.Join(dir, "serve.py"), data, 0o644); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate service stub", err)
		}
	}

	files := builder.Files
	if b.cfg.IncludeChecksums {
		if err := checksum.Generate(ctx, dir, files); err != nil {
			return nil, errors.Wrap(errors.ErrCodeBundle, "failed to generate checksums", err)
		}
		files = append(files, checksum.Path(dir))
	}

	out := bundle.NewOutput(Name, b.cfg.Version)
	out.Model = model.Alias
	if err := out.AddFiles(ctx, dir, files); err != nil {
		return nil, err
	}
	out.Duration = time.Since(start)

	if _, err := out.WriteManifest(dir); err != nil {
		return nil, err
	}

	slog.Info("dockerfile bundle generated",
		"model", model.Alias,
		"files", len(out.Files),
		"size_bytes", out.TotalSize,
		"duration", out.Duration.Round(time.Millisecond),
	)

	return out, nil
}

// buildLabels assembles the OCI image labels, letting user labels override
// the generated set. Results are sorted by key for stable rendering.
func buildLabels(version string, userLabels map[string]string, model *catalog.Model, baseImage, created string) []label {
	m := map[string]string{
		ociv1.AnnotationCreated:       created,
		ociv1.AnnotationTitle:         "mlready-" + model.Alias,
		ociv1.AnnotationDescription:   "Fine-tuning environment for " + model.Ref,
		ociv1.AnnotationVersion:       version,
		ociv1.AnnotationVendor:        "NVIDIA",
		ociv1.AnnotationBaseImageName: baseImage,
	}
	for k, v := range userLabels {
		m[k] = v
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	labels := make([]label, 0, len(keys))
	for _, k := range keys {
		labels = append(labels, label{Key: k, Value: m[k]})
	}
	return labels
}
