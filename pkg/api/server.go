package api

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/logging"
	"github.com/NVIDIA/mlready/pkg/probe"
	"github.com/NVIDIA/mlready/pkg/runner"
	"github.com/NVIDIA/mlready/pkg/server"
)

const (
	name           = "mlready-api-server"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags to reflect actual version info
	// e.g., -X "github.com/NVIDIA/mlready/pkg/api.version=1.0.0"
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Serve starts the API server and blocks until shutdown.
// It configures logging, sets up routes, and handles graceful shutdown.
// Returns an error if the server fails to start or encounters a fatal error.
func Serve() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.SetDefaultStructuredLogger(name, version)
	slog.Info("starting",
		"name", name,
		"version", version,
		"commit", commit,
		"date", date,
	)

	// Setup diagnostics handler
	h := runner.NewHandler(version, probe.NewDefaultFactory())

	r := map[string]http.HandlerFunc{
		"/v1/diagnostics": h.HandleDiagnostics,
		"/v1/models":      catalog.HandleModels,
	}

	// Create and run server
	s := server.New(
		server.WithName(name),
		server.WithVersion(version),
		server.WithHandler(r),
	)

	if err := s.Run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		return err
	}

	return nil
}
