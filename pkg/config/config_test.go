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

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/mlready/pkg/defaults"
	apperrors "github.com/NVIDIA/mlready/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mlready.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	// Zero workers and timeout let each run pick its mode default, so
	// full runs keep their larger budget.
	if cfg.Diagnose.Workers != 0 {
		t.Errorf("Workers = %d, want 0 (mode default)", cfg.Diagnose.Workers)
	}
	if cfg.Diagnose.Timeout.Std() != 0 {
		t.Errorf("Timeout = %v, want 0 (mode default)", cfg.Diagnose.Timeout.Std())
	}
	if cfg.Thresholds.MinGPUMemoryGiB != defaults.MinGPUMemoryGiB {
		t.Errorf("MinGPUMemoryGiB = %d, want %d", cfg.Thresholds.MinGPUMemoryGiB, defaults.MinGPUMemoryGiB)
	}
	if cfg.Network.ProbeURL != defaults.HubProbeURL {
		t.Errorf("ProbeURL = %q, want %q", cfg.Network.ProbeURL, defaults.HubProbeURL)
	}
	if cfg.Python.Interpreter != defaults.PythonInterpreter {
		t.Errorf("Interpreter = %q, want %q", cfg.Python.Interpreter, defaults.PythonInterpreter)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config failed validation: %v", err)
	}
}

func TestLoad_NoFile(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Network.ProbeURL != defaults.HubProbeURL {
		t.Errorf("expected defaults without a config file, got probeUrl=%q", cfg.Network.ProbeURL)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
log:
  level: debug
diagnose:
  workers: 5
  timeout: 90s
  full: true
thresholds:
  minGpuMemoryGiB: 16
  recommendedGpuMemoryGiB: 24
network:
  probeUrl: https://hub.internal.example.com
python:
  interpreter: python3.11
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Diagnose.Workers != 5 {
		t.Errorf("Workers = %d, want 5", cfg.Diagnose.Workers)
	}
	if cfg.Diagnose.Timeout.Std() != 90*time.Second {
		t.Errorf("Timeout = %v, want 90s", cfg.Diagnose.Timeout.Std())
	}
	if !cfg.Diagnose.Full {
		t.Error("Full = false, want true")
	}
	if cfg.Thresholds.MinGPUMemoryGiB != 16 {
		t.Errorf("MinGPUMemoryGiB = %d, want 16", cfg.Thresholds.MinGPUMemoryGiB)
	}
	if cfg.Network.ProbeURL != "https://hub.internal.example.com" {
		t.Errorf("ProbeURL = %q", cfg.Network.ProbeURL)
	}
	if cfg.Python.Interpreter != "python3.11" {
		t.Errorf("Interpreter = %q, want python3.11", cfg.Python.Interpreter)
	}

	// Fields absent from the file keep their defaults.
	if cfg.Thresholds.MinDiskGiB != defaults.MinDiskGiB {
		t.Errorf("MinDiskGiB = %d, want default %d", cfg.Thresholds.MinDiskGiB, defaults.MinDiskGiB)
	}
	if cfg.Docker.BaseImage != defaults.DockerBaseImage {
		t.Errorf("BaseImage = %q, want default", cfg.Docker.BaseImage)
	}
	if cfg.Network.Timeout.Std() != defaults.NetworkProbeTimeout {
		t.Errorf("Network.Timeout = %v, want default", cfg.Network.Timeout.Std())
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing explicit path, got nil")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeConfig {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeConfig)
	}
}

func TestLoad_EnvVar(t *testing.T) {
	path := writeConfig(t, "diagnose:\n  workers: 7\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Diagnose.Workers != 7 {
		t.Errorf("Workers = %d, want 7 from %s file", cfg.Diagnose.Workers, EnvConfigPath)
	}
}

func TestLoad_EnvVarMissing(t *testing.T) {
	t.Setenv(EnvConfigPath, filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load("")
	if err == nil {
		t.Fatal("Load() expected error for missing env path, got nil")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeConfig {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeConfig)
	}
}

func TestLoad_FlagBeatsEnv(t *testing.T) {
	flagPath := writeConfig(t, "diagnose:\n  workers: 2\n")
	envPath := writeConfig(t, "diagnose:\n  workers: 9\n")
	t.Setenv(EnvConfigPath, envPath)

	cfg, err := Load(flagPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Diagnose.Workers != 2 {
		t.Errorf("Workers = %d, want 2 from the flag path", cfg.Diagnose.Workers)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "diagnose: [not a mapping\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected parse error, got nil")
	}
	if code := apperrors.CodeOf(err); code != apperrors.ErrCodeConfig {
		t.Errorf("error code = %q, want %q", code, apperrors.ErrCodeConfig)
	}
}

func TestLoad_InvalidDuration(t *testing.T) {
	path := writeConfig(t, "diagnose:\n  timeout: ninety\n")

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() expected duration error, got nil")
	}
	if !strings.Contains(err.Error(), "ninety") {
		t.Errorf("expected offending value in error, got %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults pass",
			mutate: func(_ *Config) {},
		},
		{
			name:   "zero workers selects mode default",
			mutate: func(c *Config) { c.Diagnose.Workers = 0 },
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Diagnose.Workers = -1 },
			wantErr: "workers",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Diagnose.Timeout = Duration(-time.Second) },
			wantErr: "timeout",
		},
		{
			name:    "zero disk floor",
			mutate:  func(c *Config) { c.Thresholds.MinDiskGiB = 0 },
			wantErr: "thresholds",
		},
		{
			name: "floor above recommendation",
			mutate: func(c *Config) {
				c.Thresholds.MinGPUMemoryGiB = 32
				c.Thresholds.RecommendedGPUMemoryGiB = 16
			},
			wantErr: "recommendedGpuMemoryGiB",
		},
		{
			name:    "empty probe url",
			mutate:  func(c *Config) { c.Network.ProbeURL = "" },
			wantErr: "probeUrl",
		},
		{
			name:    "zero retries",
			mutate:  func(c *Config) { c.Network.Retries = 0 },
			wantErr: "retries",
		},
		{
			name:    "empty interpreter",
			mutate:  func(c *Config) { c.Python.Interpreter = "" },
			wantErr: "interpreter",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestDuration_RoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)

	data, err := yaml.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if strings.TrimSpace(string(data)) != "1m30s" {
		t.Errorf("Marshal() = %q, want 1m30s", strings.TrimSpace(string(data)))
	}

	var back Duration
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if back != d {
		t.Errorf("round trip = %v, want %v", back.Std(), d.Std())
	}
}
