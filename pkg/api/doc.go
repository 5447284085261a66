// Package api provides the HTTP API layer for the environment readiness
// service.
//
// This package acts as a thin wrapper around the reusable pkg/server package,
// configuring it with application-specific routes and handlers. It exposes
// diagnostic runs and the model catalog via REST API. Note: the API server
// does not support remediation bundle generation or smoke tests; use the CLI
// for these operations.
//
// # Usage
//
// To start the API server:
//
//	package main
//
//	import (
//	    "log"
//	    "github.com/NVIDIA/mlready/pkg/api"
//	)
//
//	func main() {
//	    if err := api.Serve(); err != nil {
//	        log.Fatalf("server error: %v", err)
//	    }
//	}
//
// # Architecture
//
// The API layer is responsible for:
//   - Configuring structured logging with application name and version
//   - Setting up route handlers (e.g., /v1/diagnostics)
//   - Delegating server lifecycle management to pkg/server
//
// The pkg/server package handles:
//   - HTTP server setup and graceful shutdown
//   - Middleware (rate limiting, logging, metrics, panic recovery)
//   - Health and readiness endpoints
//   - Prometheus metrics
//
// # Endpoints
//
// Application Endpoints (with rate limiting):
//   - GET /v1/diagnostics - Run readiness probes and return the report
//     (?full=true selects the full probe set)
//   - GET /v1/models - List the known model catalog and training stacks
//
// System Endpoints (no rate limiting):
//   - GET /healthz - Health check (liveness probe)
//   - GET /readyz  - Readiness check
//   - GET /version - Server name, version, and API version
//   - GET /metrics - Prometheus metrics
//
// # Configuration
//
// The server reads PORT and SHUTDOWN_TIMEOUT_SECONDS from the environment;
// everything else uses the pkg/server defaults.
package api
