package runner

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/export"
	"github.com/NVIDIA/mlready/pkg/header"
	"github.com/NVIDIA/mlready/pkg/probe"
	"github.com/NVIDIA/mlready/pkg/probe/osinfo"

	"golang.org/x/sync/errgroup"
)

// Diagnose runs the configured probe set and serializes the resulting report.
// Probes run in parallel under a bounded worker pool and a run-wide timeout.
// A probe that returns an error is recorded as a critical finding rather than
// aborting the run, so one broken probe never hides the rest of the results.
func (r *EnvironmentRunner) Diagnose(ctx context.Context) (*diagnostic.Report, error) {
	if r.Factory == nil {
		r.Factory = probe.NewDefaultFactory()
	}

	mode := ModeCore
	probes := probe.Core(r.Factory)
	if r.Full {
		mode = ModeFull
		probes = probe.Full(r.Factory)
	}
	workers, timeout := runBudget(r.Full, r.Workers, r.Timeout)

	slog.Debug("starting diagnostic run",
		slog.String("mode", mode),
		slog.Int("probes", len(probes)),
		slog.Int("workers", workers),
		slog.Duration("timeout", timeout))

	// Track overall run duration
	start := time.Now()
	defer func() {
		diagnoseRunDuration.Observe(time.Since(start).Seconds())
	}()

	// The run timeout covers probing only. Serialization below uses the
	// caller's ctx so a fully collected report is never cut off while
	// being written.
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Per-probe slots keep report order stable regardless of which
	// probe finishes first.
	slots := make([][]diagnostic.Result, len(probes))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(runCtx)
	g.SetLimit(workers)

	for i, p := range probes {
		g.Go(func() error {
			probeStart := time.Now()
			defer func() {
				diagnoseProbeDuration.WithLabelValues(p.Name()).Observe(time.Since(probeStart).Seconds())
			}()

			slog.Debug("running probe", slog.String("probe", p.Name()))
			results, err := p.Probe(gctx)
			if err != nil {
				slog.Error("probe failed",
					slog.String("probe", p.Name()),
					slog.String("error", err.Error()))
				results = []diagnostic.Result{probeFailure(p.Name(), err)}
			}

			mu.Lock()
			slots[i] = results
			mu.Unlock()
			return nil
		})
	}

	// Probe errors are folded into findings above, so Wait only fails on
	// faults in the pool itself.
	if err := g.Wait(); err != nil {
		diagnoseRunsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to run probes: %w", err)
	}

	report := diagnostic.NewReport()
	report.Init(header.KindReport, APIVersion, r.Version)
	report.Mode = mode
	for _, results := range slots {
		report.Results = append(report.Results, results...)
	}

	host := osinfo.Gather()
	report.Node = host.Hostname
	report.Metadata["os"] = host.OS
	report.Metadata["arch"] = host.Arch
	if host.Kernel != "" {
		report.Metadata["kernel"] = host.Kernel
	}

	report.Summary = diagnostic.Summarize(report.Results)
	report.Summary.Duration = time.Since(start)

	diagnoseRunsTotal.WithLabelValues("success").Inc()
	diagnoseResultCount.Set(float64(len(report.Results)))

	slog.Debug("diagnostic run complete",
		slog.Int("total", report.Summary.Total),
		slog.Int("passed", report.Summary.Passed),
		slog.Int("warnings", report.Summary.Warnings),
		slog.Int("critical", report.Summary.Critical))

	// Serialize output
	if r.Serializer == nil {
		r.Serializer = export.NewStdoutWriter(export.FormatJSON)
	}

	if err := r.Serializer.Serialize(ctx, report); err != nil {
		slog.Error("failed to serialize", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to serialize: %w", err)
	}

	return report, nil
}

// runBudget resolves the worker and timeout budget for a run. Zero or
// negative values select the defaults for the mode, which are larger for
// full runs because the container and service probes are slow.
func runBudget(full bool, workers int, timeout time.Duration) (int, time.Duration) {
	if workers <= 0 {
		if full {
			workers = defaults.FullWorkers
		} else {
			workers = defaults.CoreWorkers
		}
	}
	if timeout <= 0 {
		if full {
			timeout = defaults.FullDiagnoseTimeout
		} else {
			timeout = defaults.DiagnoseTimeout
		}
	}
	return workers, timeout
}

// probeFailure converts a probe-internal fault into a reportable finding.
func probeFailure(name string, err error) diagnostic.Result {
	return diagnostic.Result{
		Name:     name,
		Status:   diagnostic.StatusOf(diagnostic.TokenFail, "Check error"),
		Severity: diagnostic.SeverityCritical,
		Fix:      "Run diagnostics again or check logs",
		Details:  err.Error(),
	}
}
