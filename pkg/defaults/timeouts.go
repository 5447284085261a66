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

package defaults

import "time"

// Probe timeouts for diagnostic operations.
const (
	// CommandTimeout is the default timeout for external commands
	// invoked by probes (nvidia-smi, python, docker info).
	// Probes should respect parent context deadlines when shorter.
	CommandTimeout = 30 * time.Second

	// DockerProbeTimeout is the timeout for the containerized GPU
	// passthrough test, which may pull a small image layer.
	DockerProbeTimeout = 30 * time.Second

	// NetworkProbeTimeout is the per-attempt timeout for hub
	// reachability requests.
	NetworkProbeTimeout = 5 * time.Second

	// DiagnoseTimeout is the overall deadline for a core diagnostic run.
	DiagnoseTimeout = 60 * time.Second

	// FullDiagnoseTimeout is the overall deadline for a full diagnostic
	// run, which adds the containerized Docker test.
	FullDiagnoseTimeout = 120 * time.Second

	// SmokeTestTimeout bounds the generated LoRA training smoke test.
	SmokeTestTimeout = 600 * time.Second
)

// Worker pool sizing for the parallel probe runner.
const (
	// CoreWorkers is the pool size for a core diagnostic run.
	CoreWorkers = 3

	// FullWorkers is the pool size for a full diagnostic run.
	FullWorkers = 4
)

// Retry parameters for network operations.
const (
	// RetryAttempts is the default number of attempts for retried calls.
	RetryAttempts = 3

	// RetryDelay is the initial backoff delay between attempts.
	RetryDelay = 1 * time.Second

	// RetryBackoff is the multiplier applied to the delay after each
	// failed attempt.
	RetryBackoff = 2.0

	// RetryMaxDelay caps the backoff delay growth.
	RetryMaxDelay = 30 * time.Second
)

// Server timeouts for HTTP server configuration.
const (
	// ServerReadTimeout is the maximum duration for reading request headers.
	ServerReadTimeout = 10 * time.Second

	// ServerReadHeaderTimeout prevents slow header attacks.
	ServerReadHeaderTimeout = 5 * time.Second

	// ServerWriteTimeout is the maximum duration for writing a response.
	// Longer than a full diagnostic run so on-demand runs can complete.
	ServerWriteTimeout = 150 * time.Second

	// ServerIdleTimeout is the maximum duration to wait for the next request.
	ServerIdleTimeout = 120 * time.Second

	// ServerShutdownTimeout is the maximum duration for graceful shutdown.
	ServerShutdownTimeout = 30 * time.Second
)

// HTTP client timeouts for outbound requests.
const (
	// HTTPClientTimeout is the default total timeout for HTTP requests.
	HTTPClientTimeout = 30 * time.Second

	// HTTPConnectTimeout is the timeout for establishing connections.
	HTTPConnectTimeout = 5 * time.Second

	// HTTPTLSHandshakeTimeout is the timeout for TLS handshake.
	HTTPTLSHandshakeTimeout = 5 * time.Second

	// HTTPIdleConnTimeout is the timeout for idle connections in the pool.
	HTTPIdleConnTimeout = 90 * time.Second

	// HTTPKeepAlive is the keep-alive period for established connections.
	HTTPKeepAlive = 30 * time.Second
)
