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

package probe

import (
	"context"
	"net/http"
	"time"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/probe/disk"
	"github.com/NVIDIA/mlready/pkg/probe/docker"
	"github.com/NVIDIA/mlready/pkg/probe/gpu"
	"github.com/NVIDIA/mlready/pkg/probe/network"
	"github.com/NVIDIA/mlready/pkg/probe/python"
	"github.com/NVIDIA/mlready/pkg/probe/units"
	"github.com/NVIDIA/mlready/pkg/retry"
)

// Probe checks one aspect of fine-tuning readiness.
type Probe interface {
	// Name is the short probe identifier used in logs and metrics.
	Name() string

	// Probe inspects the environment and returns findings. Expected failure
	// modes (missing binary, outdated library) are expressed as FAIL or WARN
	// results; a non-nil error is reserved for probe-internal faults.
	Probe(ctx context.Context) ([]diagnostic.Result, error)
}

// Factory creates probes with their dependencies.
// This interface enables dependency injection for testing.
type Factory interface {
	CreateCUDAProbe() Probe
	CreateGPUMemoryProbe() Probe
	CreateTorchProbe() Probe
	CreateLibraryProbe() Probe
	CreateDiskProbe() Probe
	CreateDockerProbe() Probe
	CreateNetworkProbe() Probe
	CreateUnitsProbe() Probe
}

// Option configures the DefaultFactory.
type Option func(*DefaultFactory)

// WithRunner sets the command runner used by probes that shell out.
func WithRunner(r command.Runner) Option {
	return func(f *DefaultFactory) {
		f.Runner = r
	}
}

// WithPython sets the Python interpreter probed for torch and libraries.
func WithPython(interpreter string) Option {
	return func(f *DefaultFactory) {
		f.Python = interpreter
	}
}

// WithStack sets the training stack whose package constraints are checked.
func WithStack(s *catalog.Stack) Option {
	return func(f *DefaultFactory) {
		f.Stack = s
	}
}

// WithCacheDir sets the model cache directory checked for disk headroom.
func WithCacheDir(dir string) Option {
	return func(f *DefaultFactory) {
		f.CacheDir = dir
	}
}

// WithHubURL sets the endpoint probed for hub reachability.
func WithHubURL(url string) Option {
	return func(f *DefaultFactory) {
		f.HubURL = url
	}
}

// WithHTTPClient sets the HTTP client used by the network probe.
func WithHTTPClient(c *http.Client) Option {
	return func(f *DefaultFactory) {
		f.HTTPClient = c
	}
}

// WithNetworkTimeout sets the per-attempt timeout of the reachability
// probe. Ignored when an explicit HTTP client is set.
func WithNetworkTimeout(d time.Duration) Option {
	return func(f *DefaultFactory) {
		f.NetworkTimeout = d
	}
}

// WithRetryPolicy sets the retry schedule of the reachability probe.
func WithRetryPolicy(p retry.Policy) Option {
	return func(f *DefaultFactory) {
		f.RetryPolicy = p
	}
}

// WithDockerImage sets the CUDA image used for the GPU passthrough test.
func WithDockerImage(image string) Option {
	return func(f *DefaultFactory) {
		f.DockerImage = image
	}
}

// WithServices sets the systemd units inspected by the units probe.
func WithServices(services []string) Option {
	return func(f *DefaultFactory) {
		f.Services = services
	}
}

// WithGPUMemoryGiB sets the GPU memory floor and comfort thresholds.
func WithGPUMemoryGiB(minGiB, recommendedGiB int) Option {
	return func(f *DefaultFactory) {
		f.MinGPUMemoryGiB = minGiB
		f.RecommendedGPUMemoryGiB = recommendedGiB
	}
}

// WithMinDiskGiB sets the free-space floor for the disk probe.
func WithMinDiskGiB(giB int) Option {
	return func(f *DefaultFactory) {
		f.MinDiskGiB = giB
	}
}

// DefaultFactory creates probes with production dependencies.
type DefaultFactory struct {
	Runner                  command.Runner
	Python                  string
	Stack                   *catalog.Stack
	CacheDir                string
	HubURL                  string
	HTTPClient              *http.Client
	NetworkTimeout          time.Duration
	RetryPolicy             retry.Policy
	DockerImage             string
	Services                []string
	MinGPUMemoryGiB         int
	RecommendedGPUMemoryGiB int
	MinDiskGiB              int
}

// NewDefaultFactory creates a factory with default settings.
func NewDefaultFactory(opts ...Option) *DefaultFactory {
	f := &DefaultFactory{
		Runner:         command.NewExecRunner(),
		Python:         defaults.PythonInterpreter,
		HubURL:         defaults.HubProbeURL,
		NetworkTimeout: defaults.NetworkProbeTimeout,
		RetryPolicy:    retry.Default(),
		DockerImage:    defaults.DockerProbeImage,
		Services: []string{
			"docker.service",
			"nvidia-persistenced.service",
		},
		MinGPUMemoryGiB:         defaults.MinGPUMemoryGiB,
		RecommendedGPUMemoryGiB: defaults.RecommendedGPUMemoryGiB,
		MinDiskGiB:              defaults.MinDiskGiB,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.Stack == nil {
		s, _ := catalog.LookupStack(catalog.DefaultStack)
		f.Stack = s
	}
	return f
}

// CreateCUDAProbe creates the NVIDIA driver and CUDA version probe.
func (f *DefaultFactory) CreateCUDAProbe() Probe {
	return &gpu.CUDAProbe{
		Runner:     f.Runner,
		MinVersion: defaults.MinCUDAVersion,
	}
}

// CreateGPUMemoryProbe creates the GPU memory headroom probe.
func (f *DefaultFactory) CreateGPUMemoryProbe() Probe {
	return &gpu.MemoryProbe{
		Runner:         f.Runner,
		MinGiB:         f.MinGPUMemoryGiB,
		RecommendedGiB: f.RecommendedGPUMemoryGiB,
	}
}

// CreateTorchProbe creates the PyTorch CUDA availability probe.
func (f *DefaultFactory) CreateTorchProbe() Probe {
	return &python.TorchProbe{
		Runner:     f.Runner,
		Python:     f.Python,
		MinVersion: defaults.MinTorchVersion,
	}
}

// CreateLibraryProbe creates the ML library version probe.
func (f *DefaultFactory) CreateLibraryProbe() Probe {
	return &python.LibraryProbe{
		Runner: f.Runner,
		Python: f.Python,
		Stack:  f.Stack,
	}
}

// CreateDiskProbe creates the model cache disk headroom probe.
func (f *DefaultFactory) CreateDiskProbe() Probe {
	return &disk.Probe{
		CacheDir: f.CacheDir,
		MinGiB:   f.MinDiskGiB,
	}
}

// CreateDockerProbe creates the Docker GPU passthrough probe.
func (f *DefaultFactory) CreateDockerProbe() Probe {
	return &docker.Probe{
		Runner: f.Runner,
		Image:  f.DockerImage,
	}
}

// CreateNetworkProbe creates the hub reachability probe.
func (f *DefaultFactory) CreateNetworkProbe() Probe {
	client := f.HTTPClient
	if client == nil && f.NetworkTimeout > 0 {
		client = &http.Client{Timeout: f.NetworkTimeout}
	}
	return &network.Probe{
		Client: client,
		URL:    f.HubURL,
		Policy: f.RetryPolicy,
	}
}

// CreateUnitsProbe creates the systemd unit state probe.
func (f *DefaultFactory) CreateUnitsProbe() Probe {
	return &units.Probe{
		Services: f.Services,
	}
}

// Core returns the probes that run on every diagnose invocation,
// in report order.
func Core(f Factory) []Probe {
	return []Probe{
		f.CreateCUDAProbe(),
		f.CreateTorchProbe(),
		f.CreateLibraryProbe(),
		f.CreateGPUMemoryProbe(),
		f.CreateDiskProbe(),
		f.CreateNetworkProbe(),
	}
}

// Full returns the core probes plus the slower container and service checks.
func Full(f Factory) []Probe {
	return []Probe{
		f.CreateCUDAProbe(),
		f.CreateTorchProbe(),
		f.CreateLibraryProbe(),
		f.CreateGPUMemoryProbe(),
		f.CreateDiskProbe(),
		f.CreateDockerProbe(),
		f.CreateNetworkProbe(),
		f.CreateUnitsProbe(),
	}
}
