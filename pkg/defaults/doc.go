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

// Package defaults provides centralized configuration constants for mlready.
//
// This package defines timeout values, retry parameters, readiness
// thresholds, and other configuration defaults used across the codebase.
// Centralizing these values ensures consistency and makes tuning easier.
//
// # Categories
//
// Constants are organized by concern:
//
//   - Probe timeouts: For external commands and network reachability
//   - Worker pool sizing: For the parallel probe runner
//   - Retry parameters: For transient network failures
//   - Server timeouts: For the HTTP daemon configuration
//   - Readiness thresholds: GPU memory, disk headroom, component versions
//   - Container defaults: Images used by probes and generated artifacts
//
// # Usage
//
// Import and use constants directly:
//
//	import "github.com/NVIDIA/mlready/pkg/defaults"
//
//	ctx, cancel := context.WithTimeout(ctx, defaults.CommandTimeout)
//	defer cancel()
//
// # Timeout Guidelines
//
// When choosing timeout values:
//
//   - Probe commands: 30s default, respects parent context deadline
//   - Network probes: 5s per attempt, retried with backoff
//   - Diagnostic runs: 60s core, 120s with the Docker passthrough test
//   - Server shutdown: 30s for graceful shutdown
package defaults
