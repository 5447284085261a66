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

package oci

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"

	apperrors "github.com/NVIDIA/mlready/pkg/errors"
)

// URIScheme is an optional URI scheme accepted on push targets
// (e.g., "oci://ghcr.io/org/repo:tag").
const URIScheme = "oci://"

// Reference is a parsed OCI registry reference.
type Reference struct {
	// Registry is the OCI registry host (e.g., "ghcr.io", "localhost:5000").
	Registry string
	// Repository is the image repository path (e.g., "nvidia/mlready-bundles").
	Repository string
	// Tag is the image tag (e.g., "v1.0.0").
	// Empty string means no tag was specified; caller should apply a default.
	Tag string
}

// ParseReference parses a push target string into its registry components.
// The target may optionally carry the oci:// scheme; short references are
// normalized the way Docker does (e.g., "org/repo" resolves to docker.io).
//
// If no tag is specified, Tag will be empty; the caller is responsible for
// applying a default (e.g., the CLI version).
func ParseReference(target string) (*Reference, error) {
	target = strings.TrimPrefix(target, URIScheme)
	if target == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "registry reference is required")
	}

	ref, err := reference.ParseNormalizedNamed(target)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("invalid registry reference %q", target), err)
	}

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// String returns the Docker-style image reference
// ("registry/repository:tag", or without the tag if empty).
func (r *Reference) String() string {
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the specified tag.
func (r *Reference) WithTag(tag string) *Reference {
	return &Reference{
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}

// PushConfig configures the bundle push workflow.
type PushConfig struct {
	// SourceDir is the bundle directory to push.
	SourceDir string
	// Reference is the parsed OCI registry reference.
	Reference *Reference
	// Version is used for OCI annotations (org.opencontainers.image.version).
	Version string
	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool
	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool
	// Annotations are additional manifest annotations to include.
	// If nil, default mlready annotations will be used.
	Annotations map[string]string
}

// PushBundle pushes a bundle directory to a registry with standard
// mlready manifest annotations. It is the high-level entry point used
// by `mlready dockerize --push`.
func PushBundle(ctx context.Context, cfg PushConfig) (*PushResult, error) {
	if cfg.Reference == nil {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "registry reference is required to push a bundle")
	}
	if cfg.Reference.Tag == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "tag is required to push a bundle")
	}

	annotations := cfg.Annotations
	if annotations == nil {
		annotations = map[string]string{
			ociv1.AnnotationVersion: cfg.Version,
			ociv1.AnnotationVendor:  "NVIDIA",
			ociv1.AnnotationTitle:   "mlready bundle",
			ociv1.AnnotationSource:  "https://github.com/NVIDIA/mlready",
		}
	}

	slog.Info("pushing bundle to OCI registry",
		"registry", cfg.Reference.Registry,
		"repository", cfg.Reference.Repository,
		"tag", cfg.Reference.Tag,
	)

	result, err := Push(ctx, PushOptions{
		SourceDir:   cfg.SourceDir,
		Registry:    cfg.Reference.Registry,
		Repository:  cfg.Reference.Repository,
		Tag:         cfg.Reference.Tag,
		PlainHTTP:   cfg.PlainHTTP,
		InsecureTLS: cfg.InsecureTLS,
		Annotations: annotations,
	})
	if err != nil {
		return nil, err
	}

	slog.Info("bundle pushed",
		"reference", result.Reference,
		"digest", result.Digest,
	)

	return result, nil
}
