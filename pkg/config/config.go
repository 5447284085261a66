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
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/mlready/pkg/defaults"
	apperrors "github.com/NVIDIA/mlready/pkg/errors"
)

const (
	// EnvConfigPath names an explicit config file, overriding the
	// well-known locations but not the --config flag.
	EnvConfigPath = "MLREADY_CONFIG"

	// FileName is the config file looked up in the working directory.
	FileName = "mlready.yaml"
)

// Duration is a time.Duration that marshals to and from YAML strings
// like "30s" or "2m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string like \"30s\"")
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the mlready configuration.
type Config struct {
	Log        LogConfig        `yaml:"log"`
	Diagnose   DiagnoseConfig   `yaml:"diagnose"`
	Thresholds ThresholdsConfig `yaml:"thresholds"`
	Network    NetworkConfig    `yaml:"network"`
	Docker     DockerConfig     `yaml:"docker"`
	Python     PythonConfig     `yaml:"python"`
}

// LogConfig controls logging output.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	// Unrecognized values fall back to info.
	Level string `yaml:"level"`
}

// DiagnoseConfig controls the diagnostic run. Workers and Timeout left
// at zero select the per-mode defaults, which differ between core and
// full runs.
type DiagnoseConfig struct {
	// Workers bounds the number of probes running concurrently.
	// Zero selects the mode default.
	Workers int `yaml:"workers"`
	// Timeout caps the whole diagnostic run. Zero selects the mode default.
	Timeout Duration `yaml:"timeout"`
	// Full enables the slower container and service probes by default.
	Full bool `yaml:"full"`
}

// ThresholdsConfig sets the readiness floors.
type ThresholdsConfig struct {
	// MinGPUMemoryGiB is the per-GPU memory floor below which the
	// memory probe warns.
	MinGPUMemoryGiB int `yaml:"minGpuMemoryGiB"`
	// RecommendedGPUMemoryGiB is the comfortable LoRA fine-tuning level.
	RecommendedGPUMemoryGiB int `yaml:"recommendedGpuMemoryGiB"`
	// MinDiskGiB is the free-space floor for the model cache volume.
	MinDiskGiB int `yaml:"minDiskGiB"`
}

// NetworkConfig controls the hub reachability probe.
type NetworkConfig struct {
	// ProbeURL is the endpoint fetched to verify hub access.
	ProbeURL string `yaml:"probeUrl"`
	// Timeout caps each reachability attempt.
	Timeout Duration `yaml:"timeout"`
	// Retries is the number of attempts before the probe gives up.
	Retries int `yaml:"retries"`
}

// DockerConfig sets the container images used by probes and bundles.
type DockerConfig struct {
	// BaseImage is the CUDA development image for generated Dockerfiles.
	BaseImage string `yaml:"baseImage"`
	// RuntimeImage is the small CUDA image pulled by the passthrough probe.
	RuntimeImage string `yaml:"runtimeImage"`
}

// PythonConfig sets the interpreter probed for torch and libraries.
type PythonConfig struct {
	Interpreter string `yaml:"interpreter"`
}

// Default returns a Config populated from pkg/defaults.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		// Diagnose.Workers and Diagnose.Timeout stay zero so the runner
		// can pick the per-mode defaults.
		Diagnose: DiagnoseConfig{},
		Thresholds: ThresholdsConfig{
			MinGPUMemoryGiB:         defaults.MinGPUMemoryGiB,
			RecommendedGPUMemoryGiB: defaults.RecommendedGPUMemoryGiB,
			MinDiskGiB:              defaults.MinDiskGiB,
		},
		Network: NetworkConfig{
			ProbeURL: defaults.HubProbeURL,
			Timeout:  Duration(defaults.NetworkProbeTimeout),
			Retries:  defaults.RetryAttempts,
		},
		Docker: DockerConfig{
			BaseImage:    defaults.DockerBaseImage,
			RuntimeImage: defaults.DockerProbeImage,
		},
		Python: PythonConfig{Interpreter: defaults.PythonInterpreter},
	}
}

// Load reads the configuration, filling fields absent from the file with
// defaults. A nonexistent file in the well-known locations is fine; an
// explicit path (flag or $MLREADY_CONFIG) that does not exist is an error.
func Load(explicitPath string) (*Config, error) {
	cfg := Default()

	path, err := resolvePath(explicitPath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfig,
			fmt.Sprintf("failed to read config file %q", path), err)
	}

	// Unmarshal into the default-filled struct so unset fields keep
	// their defaults.
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeConfig,
			fmt.Sprintf("failed to parse config file %q", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("loaded config file", "path", path)
	return cfg, nil
}

// resolvePath picks the config file to load. Explicit paths must exist;
// well-known locations are optional.
func resolvePath(explicitPath string) (string, error) {
	if explicitPath != "" {
		if _, err := os.Stat(explicitPath); err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeConfig,
				fmt.Sprintf("config file %q not found", explicitPath), err)
		}
		return explicitPath, nil
	}

	if env := os.Getenv(EnvConfigPath); env != "" {
		if _, err := os.Stat(env); err != nil {
			return "", apperrors.Wrap(apperrors.ErrCodeConfig,
				fmt.Sprintf("config file %q from %s not found", env, EnvConfigPath), err)
		}
		return env, nil
	}

	for _, p := range wellKnownPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", nil
}

func wellKnownPaths() []string {
	paths := []string{FileName}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".mlready", "config.yaml"))
	}
	return paths
}

// Validate checks the configuration for values no diagnostic run could use.
func (c *Config) Validate() error {
	if c.Diagnose.Workers < 0 {
		return apperrors.New(apperrors.ErrCodeConfig, "diagnose.workers cannot be negative")
	}
	if c.Diagnose.Timeout < 0 {
		return apperrors.New(apperrors.ErrCodeConfig, "diagnose.timeout cannot be negative")
	}
	if c.Thresholds.MinGPUMemoryGiB < 1 || c.Thresholds.MinDiskGiB < 1 {
		return apperrors.New(apperrors.ErrCodeConfig, "thresholds must be at least 1 GiB")
	}
	if c.Thresholds.MinGPUMemoryGiB > c.Thresholds.RecommendedGPUMemoryGiB {
		return apperrors.New(apperrors.ErrCodeConfig,
			"thresholds.minGpuMemoryGiB cannot exceed thresholds.recommendedGpuMemoryGiB")
	}
	if c.Network.ProbeURL == "" {
		return apperrors.New(apperrors.ErrCodeConfig, "network.probeUrl cannot be empty")
	}
	if c.Network.Timeout <= 0 {
		return apperrors.New(apperrors.ErrCodeConfig, "network.timeout must be positive")
	}
	if c.Network.Retries < 1 {
		return apperrors.New(apperrors.ErrCodeConfig, "network.retries must be at least 1")
	}
	if c.Python.Interpreter == "" {
		return apperrors.New(apperrors.ErrCodeConfig, "python.interpreter cannot be empty")
	}
	return nil
}
