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
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/header"
	"github.com/NVIDIA/mlready/pkg/probe"
)

func TestEnvironmentRunner_Diagnose(t *testing.T) {
	t.Run("core mode keeps registration order", func(t *testing.T) {
		sink := &mockSerializer{}
		r := &EnvironmentRunner{
			Version:    "1.0.0",
			Factory:    &mockFactory{},
			Serializer: sink,
		}

		report, err := r.Diagnose(context.Background())
		if err != nil {
			t.Fatalf("Diagnose() error = %v, want nil", err)
		}

		want := []string{"cuda", "torch", "pylib", "gpumem", "disk", "network"}
		if len(report.Results) != len(want) {
			t.Fatalf("Results length = %d, want %d", len(report.Results), len(want))
		}
		for i, name := range want {
			if report.Results[i].Name != name {
				t.Errorf("Results[%d].Name = %s, want %s", i, report.Results[i].Name, name)
			}
		}

		if report.Mode != ModeCore {
			t.Errorf("Mode = %s, want %s", report.Mode, ModeCore)
		}
		if report.Kind != header.KindReport {
			t.Errorf("Kind = %s, want %s", report.Kind, header.KindReport)
		}
		if report.APIVersion != APIVersion {
			t.Errorf("APIVersion = %s, want %s", report.APIVersion, APIVersion)
		}
		if report.Metadata["version"] != "1.0.0" {
			t.Errorf("Metadata[version] = %s, want 1.0.0", report.Metadata["version"])
		}

		if !sink.serialized {
			t.Error("report was not serialized")
		}
		if sink.data != report {
			t.Error("serialized payload is not the returned report")
		}
	})

	t.Run("full mode adds docker and units", func(t *testing.T) {
		r := &EnvironmentRunner{
			Version:    "1.0.0",
			Factory:    &mockFactory{},
			Serializer: &mockSerializer{},
			Full:       true,
		}

		report, err := r.Diagnose(context.Background())
		if err != nil {
			t.Fatalf("Diagnose() error = %v, want nil", err)
		}

		want := []string{"cuda", "torch", "pylib", "gpumem", "disk", "docker", "network", "units"}
		if len(report.Results) != len(want) {
			t.Fatalf("Results length = %d, want %d", len(report.Results), len(want))
		}
		for i, name := range want {
			if report.Results[i].Name != name {
				t.Errorf("Results[%d].Name = %s, want %s", i, report.Results[i].Name, name)
			}
		}

		if report.Mode != ModeFull {
			t.Errorf("Mode = %s, want %s", report.Mode, ModeFull)
		}
	})

	t.Run("probe error becomes a critical finding", func(t *testing.T) {
		factory := &mockFactory{
			errs: map[string]error{"cuda": fmt.Errorf("nvml panic")},
		}
		r := &EnvironmentRunner{
			Version:    "1.0.0",
			Factory:    factory,
			Serializer: &mockSerializer{},
		}

		report, err := r.Diagnose(context.Background())
		if err != nil {
			t.Fatalf("Diagnose() error = %v, want nil", err)
		}

		got := report.Results[0]
		if got.Name != "cuda" {
			t.Errorf("Name = %s, want cuda", got.Name)
		}
		if got.Status != "FAIL - Check error" {
			t.Errorf("Status = %s, want FAIL - Check error", got.Status)
		}
		if got.Severity != diagnostic.SeverityCritical {
			t.Errorf("Severity = %s, want %s", got.Severity, diagnostic.SeverityCritical)
		}
		if got.Details != "nvml panic" {
			t.Errorf("Details = %s, want nvml panic", got.Details)
		}

		if report.Summary.Critical != 1 {
			t.Errorf("Summary.Critical = %d, want 1", report.Summary.Critical)
		}
		if len(report.Results) != 6 {
			t.Errorf("Results length = %d, want 6 (remaining probes must still run)", len(report.Results))
		}
	})

	t.Run("multi-result probe keeps its slot", func(t *testing.T) {
		factory := &mockFactory{
			results: map[string][]diagnostic.Result{
				"pylib": {passResult("transformers"), passResult("peft")},
			},
		}
		r := &EnvironmentRunner{
			Version:    "1.0.0",
			Factory:    factory,
			Serializer: &mockSerializer{},
		}

		report, err := r.Diagnose(context.Background())
		if err != nil {
			t.Fatalf("Diagnose() error = %v, want nil", err)
		}

		want := []string{"cuda", "torch", "transformers", "peft", "gpumem", "disk", "network"}
		if len(report.Results) != len(want) {
			t.Fatalf("Results length = %d, want %d", len(report.Results), len(want))
		}
		for i, name := range want {
			if report.Results[i].Name != name {
				t.Errorf("Results[%d].Name = %s, want %s", i, report.Results[i].Name, name)
			}
		}
	})

	t.Run("run timeout degrades slow probes", func(t *testing.T) {
		factory := &mockFactory{
			delays: map[string]time.Duration{"cuda": 500 * time.Millisecond},
		}
		r := &EnvironmentRunner{
			Version:    "1.0.0",
			Factory:    factory,
			Serializer: &mockSerializer{},
			Timeout:    20 * time.Millisecond,
		}

		report, err := r.Diagnose(context.Background())
		if err != nil {
			t.Fatalf("Diagnose() error = %v, want nil", err)
		}

		got := report.Results[0]
		if got.Status != "FAIL - Check error" {
			t.Errorf("Status = %s, want FAIL - Check error", got.Status)
		}
		if !strings.Contains(got.Details, "context deadline exceeded") {
			t.Errorf("Details = %s, want deadline error", got.Details)
		}
	})

	t.Run("serializer failure fails the run", func(t *testing.T) {
		r := &EnvironmentRunner{
			Version:    "1.0.0",
			Factory:    &mockFactory{},
			Serializer: &mockSerializer{err: errors.New("disk full")},
		}

		report, err := r.Diagnose(context.Background())
		if err == nil {
			t.Error("Diagnose() should return error when serialization fails")
		}
		if report != nil {
			t.Error("report should be nil on serialization failure")
		}
	})
}

func TestEnvironmentRunner_Summary(t *testing.T) {
	factory := &mockFactory{
		results: map[string][]diagnostic.Result{
			"disk": {{
				Name:     "Disk Space",
				Status:   "WARN - Low space (10.0GB free)",
				Severity: diagnostic.SeverityWarning,
			}},
		},
	}
	r := &EnvironmentRunner{
		Version:    "1.0.0",
		Factory:    factory,
		Serializer: &mockSerializer{},
	}

	report, err := r.Diagnose(context.Background())
	if err != nil {
		t.Fatalf("Diagnose() error = %v, want nil", err)
	}

	if report.Summary.Total != 6 {
		t.Errorf("Summary.Total = %d, want 6", report.Summary.Total)
	}
	if report.Summary.Passed != 5 {
		t.Errorf("Summary.Passed = %d, want 5", report.Summary.Passed)
	}
	if report.Summary.Warnings != 1 {
		t.Errorf("Summary.Warnings = %d, want 1", report.Summary.Warnings)
	}
	if report.Summary.Duration <= 0 {
		t.Error("Summary.Duration should be positive")
	}
}

func TestEnvironmentRunner_NodeMetadata(t *testing.T) {
	r := &EnvironmentRunner{
		Version:    "1.0.0",
		Factory:    &mockFactory{},
		Serializer: &mockSerializer{},
	}

	report, err := r.Diagnose(context.Background())
	if err != nil {
		t.Fatalf("Diagnose() error = %v, want nil", err)
	}

	if report.Node == "" {
		t.Error("Node should carry the hostname")
	}
	if report.Metadata["os"] == "" {
		t.Error("Metadata[os] should be set")
	}
	if report.Metadata["arch"] == "" {
		t.Error("Metadata[arch] should be set")
	}
}

func TestRunBudget(t *testing.T) {
	tests := []struct {
		name        string
		full        bool
		workers     int
		timeout     time.Duration
		wantWorkers int
		wantTimeout time.Duration
	}{
		{
			name:        "core defaults",
			wantWorkers: defaults.CoreWorkers,
			wantTimeout: defaults.DiagnoseTimeout,
		},
		{
			name:        "full defaults exceed core",
			full:        true,
			wantWorkers: defaults.FullWorkers,
			wantTimeout: defaults.FullDiagnoseTimeout,
		},
		{
			name:        "explicit values win in full mode",
			full:        true,
			workers:     2,
			timeout:     90 * time.Second,
			wantWorkers: 2,
			wantTimeout: 90 * time.Second,
		},
		{
			name:        "negative values fall back",
			workers:     -1,
			timeout:     -time.Second,
			wantWorkers: defaults.CoreWorkers,
			wantTimeout: defaults.DiagnoseTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			workers, timeout := runBudget(tt.full, tt.workers, tt.timeout)
			if workers != tt.wantWorkers {
				t.Errorf("workers = %d, want %d", workers, tt.wantWorkers)
			}
			if timeout != tt.wantTimeout {
				t.Errorf("timeout = %v, want %v", timeout, tt.wantTimeout)
			}
		})
	}
}

func TestProbeFailure(t *testing.T) {
	got := probeFailure("docker", errors.New("exec: not started"))

	if got.Name != "docker" {
		t.Errorf("Name = %s, want docker", got.Name)
	}
	if got.Status != "FAIL - Check error" {
		t.Errorf("Status = %s, want FAIL - Check error", got.Status)
	}
	if got.Severity != diagnostic.SeverityCritical {
		t.Errorf("Severity = %s, want %s", got.Severity, diagnostic.SeverityCritical)
	}
	if got.Fix == "" {
		t.Error("Fix should not be empty")
	}
	if got.Details != "exec: not started" {
		t.Errorf("Details = %s, want exec: not started", got.Details)
	}
}

// Mock implementations for testing

func passResult(name string) diagnostic.Result {
	return diagnostic.Result{
		Name:     name,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, "OK"),
		Severity: diagnostic.SeverityInfo,
	}
}

type mockSerializer struct {
	serialized bool
	data       any
	err        error
}

func (m *mockSerializer) Serialize(ctx context.Context, data any) error {
	if m.err != nil {
		return m.err
	}
	m.serialized = true
	m.data = data
	return nil
}

type mockFactory struct {
	errs    map[string]error
	delays  map[string]time.Duration
	results map[string][]diagnostic.Result
}

func (m *mockFactory) stub(name string) probe.Probe {
	p := &stubProbe{
		name:  name,
		err:   m.errs[name],
		delay: m.delays[name],
	}
	if results, ok := m.results[name]; ok {
		p.results = results
	} else {
		p.results = []diagnostic.Result{passResult(name)}
	}
	return p
}

func (m *mockFactory) CreateCUDAProbe() probe.Probe      { return m.stub("cuda") }
func (m *mockFactory) CreateGPUMemoryProbe() probe.Probe { return m.stub("gpumem") }
func (m *mockFactory) CreateTorchProbe() probe.Probe     { return m.stub("torch") }
func (m *mockFactory) CreateLibraryProbe() probe.Probe   { return m.stub("pylib") }
func (m *mockFactory) CreateDiskProbe() probe.Probe      { return m.stub("disk") }
func (m *mockFactory) CreateDockerProbe() probe.Probe    { return m.stub("docker") }
func (m *mockFactory) CreateNetworkProbe() probe.Probe   { return m.stub("network") }
func (m *mockFactory) CreateUnitsProbe() probe.Probe     { return m.stub("units") }

type stubProbe struct {
	name    string
	results []diagnostic.Result
	err     error
	delay   time.Duration
}

func (p *stubProbe) Name() string { return p.name }

func (p *stubProbe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	if p.delay > 0 {
		select {
		case <-time.After(p.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.results, nil
}
