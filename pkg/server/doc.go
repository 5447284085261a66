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

// Package server implements the HTTP server hosting the environment
// readiness API.
//
// The server is application agnostic: handlers are injected by route
// path and the package supplies the operational surface around them.
//
// # Architecture
//
// The server implements a stateless HTTP API with the following key components:
//
//   - Rate limiting using token bucket algorithm (golang.org/x/time/rate)
//   - Request ID tracking for distributed tracing
//   - API version negotiation via Accept header
//   - Prometheus metrics for requests, latency, and saturation
//   - Panic recovery for resilience
//   - Graceful shutdown handling
//   - Health and readiness probes for Kubernetes
//
// # Usage
//
// Basic server startup:
//
//	s := server.New(
//	    server.WithName("mlready-api-server"),
//	    server.WithVersion("1.0.0"),
//	    server.WithHandler(map[string]http.HandlerFunc{
//	        "/v1/diagnostics": handleDiagnostics,
//	    }),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	if err := s.Run(ctx); err != nil {
//	    panic(err)
//	}
//
// # System Endpoints
//
// GET /healthz - Health check (for liveness probe)
//
//	Always returns 200 OK with {"status": "healthy", "timestamp": "..."}
//
// GET /readyz - Readiness check (for readiness probe)
//
//	Returns 200 when the server accepts traffic, 503 while starting up
//	or draining during shutdown.
//
// GET /version - Server name, version, and API version
//
// GET /metrics - Prometheus metrics
//
// System endpoints bypass the middleware chain; injected application
// handlers get the full chain (metrics, version negotiation, request ID,
// panic recovery, rate limiting, request logging).
//
// # Configuration
//
// Defaults come from parseConfig and can be overridden per server with
// functional options, or via environment variables:
//
//	PORT                      listen port (default 8080)
//	SHUTDOWN_TIMEOUT_SECONDS  graceful shutdown budget (default 30)
package server
