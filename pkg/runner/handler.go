package runner

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/probe"
)

// Handler serves diagnostic runs over HTTP.
type Handler struct {
	// Version is the tool version stamped on report headers.
	Version string

	// Factory builds the probes for each run. If nil, the default
	// factory is used.
	Factory probe.Factory
}

// NewHandler creates a diagnostics handler with the given version and
// probe factory.
func NewHandler(version string, factory probe.Factory) *Handler {
	return &Handler{
		Version: version,
		Factory: factory,
	}
}

// HandleDiagnostics handles GET /v1/diagnostics. The optional full query
// parameter selects the full probe set (?full=true); the default is the
// core set. Each request gets its own run so concurrent requests never
// share probe state.
func (h *Handler) HandleDiagnostics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	full := false
	if v := r.URL.Query().Get("full"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			slog.Error("invalid full parameter", "value", v)
			http.Error(w, fmt.Sprintf("Bad Request: invalid full parameter %q", v), http.StatusBadRequest)
			return
		}
		full = parsed
	}

	er := &EnvironmentRunner{
		Version: h.Version,
		Factory: h.Factory,
		// The report goes out as the HTTP response body, not through
		// the run's own serializer.
		Serializer: export.NewWriter(export.FormatJSON, io.Discard),
		Full:       full,
	}

	report, err := er.Diagnose(r.Context())
	if err != nil {
		slog.Error("diagnostic run failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	export.RespondJSON(w, http.StatusOK, report)
}
