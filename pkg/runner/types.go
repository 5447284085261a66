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

package runner

import (
	"context"
	"time"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/probe"
)

const (
	// APIVersion is the schema version stamped on every report.
	APIVersion = "mlready/v1"

	// ModeCore runs the fast probe set suitable for every invocation.
	ModeCore = "core"

	// ModeFull adds the slower container and service probes.
	ModeFull = "full"
)

// Runner defines the interface for executing a diagnostic run.
// Implementations coordinate a set of probes and produce a report
// describing fine-tuning readiness of the environment.
type Runner interface {
	Diagnose(ctx context.Context) (*diagnostic.Report, error)
}

// EnvironmentRunner runs readiness probes against the current host.
// It coordinates independent probes in parallel with a bounded worker
// pool, assembles their findings into a report in probe registration
// order, and serializes the result.
type EnvironmentRunner struct {
	// Version is the tool version recorded in the report header.
	Version string

	// Factory is the probe factory to use. If nil, the default factory is used.
	Factory probe.Factory

	// Serializer is the serializer for output. If nil, a stdout JSON serializer is used.
	Serializer export.Serializer

	// Full selects the full probe set instead of the core one.
	Full bool

	// Workers bounds probe concurrency. Zero selects the mode default.
	Workers int

	// Timeout bounds the whole run. Zero selects the mode default.
	Timeout time.Duration
}
