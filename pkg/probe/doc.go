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

// Package probe defines the readiness checks and their factory.
//
// A Probe inspects one aspect of the host (driver, interpreter, disk,
// network, services) and returns findings as diagnostic results. Probes
// are independent of each other so the runner can execute them in
// parallel; ordering lives in the Core and Full lists, not in the
// probes.
//
// # Creating Probes
//
// Use the factory to create probes with production dependencies:
//
//	factory := probe.NewDefaultFactory(
//	    probe.WithPython("python3.11"),
//	    probe.WithCacheDir("/data/hf-cache"),
//	)
//	for _, p := range probe.Full(factory) {
//	    results, err := p.Probe(ctx)
//	    ...
//	}
//
// Options cover everything a test or an unusual host needs to override:
// the command runner, interpreter, training stack, cache directory, hub
// endpoint, HTTP client, probe image, and systemd units.
//
// # Failure Semantics
//
// Probes express expected failure modes (missing binary, outdated
// library, low disk) as FAIL/WARN/INFO results and return a nil error.
// A non-nil error means the probe itself broke; the runner logs it,
// synthesizes a FAIL finding, and keeps going.
//
// # Probe Sets
//
// Core covers the checks every invocation needs: driver, torch,
// libraries, GPU memory, disk, and hub reachability. Full adds the
// containerized GPU passthrough test, which may pull an image, and the
// systemd unit states.
package probe
