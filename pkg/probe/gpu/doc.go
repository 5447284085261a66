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

// Package gpu probes NVIDIA driver health and GPU memory capacity.
//
// Both probes shell out to nvidia-smi, the only interface that works
// uniformly across driver generations without linking NVML.
//
// # Driver Probe
//
// CUDAProbe runs plain nvidia-smi and parses the banner:
//
//	| NVIDIA-SMI 550.54.15    Driver Version: 550.54.15    CUDA Version: 12.4 |
//
// Findings:
//   - nvidia-smi missing from PATH: FAIL (critical) with driver install fix
//   - nvidia-smi errors out: FAIL (critical), driver and GPU cannot talk
//   - banner carries no "Driver Version": FAIL (critical), no GPU detected
//   - CUDA older than MinVersion: additional WARN with upgrade guidance
//   - otherwise: PASS naming the driver and CUDA versions
//
// # Memory Probe
//
// MemoryProbe uses query mode for machine-readable output:
//
//	nvidia-smi --query-gpu=name,memory.total --format=csv,noheader,nounits
//
// Each GPU becomes one finding. Cards under 8 GiB warn with QLoRA
// guidance; 16 GiB and up is noted as comfortable for LoRA fine-tuning.
// Hosts without a GPU get a single informational finding so the report
// always explains itself; the driver probe owns the critical signal.
//
// # Usage
//
//	p := &gpu.CUDAProbe{Runner: command.NewExecRunner(), MinVersion: "12.1"}
//	results, err := p.Probe(ctx)
//
// Command execution is bounded by the context deadline and the runner's
// own per-command timeout.
package gpu
