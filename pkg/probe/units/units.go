package units

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/coreos/go-systemd/v22/dbus"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

const (
	checkUnits = "Systemd Services"

	// persistencedUnit keeps the GPU initialized between CUDA clients.
	// Without it every training run pays the device teardown and
	// re-init cost, so its state gets a warning token.
	persistencedUnit = "nvidia-persistenced.service"
)

// Conn is the slice of the systemd D-Bus connection the probe uses.
type Conn interface {
	GetUnitPropertiesContext(ctx context.Context, unit string) (map[string]interface{}, error)
	Close()
}

// Probe reports the state of service units relevant to containerized
// fine-tuning.
type Probe struct {
	// Services are the units to inspect.
	Services []string

	// Connect stands in for the systemd connection in tests.
	Connect func(ctx context.Context) (Conn, error)
}

func systemdConnect(ctx context.Context) (Conn, error) {
	return dbus.NewSystemdConnectionContext(ctx)
}

// Name implements the probe interface.
func (p *Probe) Name() string {
	return "units"
}

// Probe reads unit properties over D-Bus. Hosts without systemd, or
// without permission to talk to it, get a single informational finding
// rather than an error: service state is advisory here.
func (p *Probe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	connect := p.Connect
	if connect == nil {
		connect = systemdConnect
	}

	conn, err := connect(ctx)
	if err != nil {
		slog.Debug("systemd not reachable", "error", err)
		return []diagnostic.Result{{
			Name:     checkUnits,
			Status:   diagnostic.StatusOf(diagnostic.TokenInfo, "systemd not available"),
			Severity: diagnostic.SeverityInfo,
			Details:  err.Error(),
		}}, nil
	}
	defer conn.Close()

	services := p.Services
	if len(services) == 0 {
		services = []string{"docker.service", persistencedUnit}
	}

	results := make([]diagnostic.Result, 0, len(services))
	for _, unit := range services {
		props, err := conn.GetUnitPropertiesContext(ctx, unit)
		if err != nil {
			results = append(results, diagnostic.Result{
				Name:     unit,
				Status:   diagnostic.StatusOf(diagnostic.TokenInfo, "State unknown"),
				Severity: diagnostic.SeverityInfo,
				Details:  err.Error(),
			})
			continue
		}
		results = append(results, unitResult(unit, props))
	}

	return results, nil
}

// unitResult grades one unit's properties. Everything is informational
// severity: the docker and network probes own the actionable findings,
// this one explains the service side of what they saw.
func unitResult(unit string, props map[string]interface{}) diagnostic.Result {
	active := propString(props, "ActiveState")
	details := fmt.Sprintf("ActiveState: %s, SubState: %s", active, propString(props, "SubState"))

	if unit == persistencedUnit && active != "active" {
		return diagnostic.Result{
			Name:     unit,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, "Not running"),
			Severity: diagnostic.SeverityInfo,
			Fix:      "systemctl enable --now nvidia-persistenced",
			Details:  details,
		}
	}

	return diagnostic.Result{
		Name:     unit,
		Status:   diagnostic.StatusOf(diagnostic.TokenInfo, active),
		Severity: diagnostic.SeverityInfo,
		Details:  details,
	}
}

func propString(props map[string]interface{}, key string) string {
	if v, ok := props[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return "unknown"
}
