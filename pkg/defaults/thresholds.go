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

package defaults

// Readiness thresholds for fine-tuning workloads.
const (
	// MinGPUMemoryGiB is the floor below which fine-tuning requires
	// aggressive quantization (QLoRA with small batch sizes).
	MinGPUMemoryGiB = 8

	// RecommendedGPUMemoryGiB is the comfortable working set for LoRA
	// fine-tuning of 7B-class models.
	RecommendedGPUMemoryGiB = 16

	// MinDiskGiB is the free-space floor for the model cache volume.
	// Base model weights plus checkpoints for a 7B model exceed this
	// quickly.
	MinDiskGiB = 50
)

// Minimum and recommended component versions.
const (
	// MinCUDAVersion is the oldest CUDA runtime the supported training
	// stacks are built against.
	MinCUDAVersion = "12.1"

	// RecommendedCUDAVersion matches the default container base image.
	RecommendedCUDAVersion = "12.4"

	// MinTorchVersion is the oldest PyTorch release with stable
	// scaled-dot-product attention kernels used by the stacks.
	MinTorchVersion = "2.4.0"
)

// Network endpoints probed for reachability.
const (
	// HubProbeURL is the model hub endpoint used by the network probe.
	HubProbeURL = "https://huggingface.co"
)

// Container defaults for generated artifacts and the Docker probe.
const (
	// DockerProbeImage is the minimal CUDA image used to verify GPU
	// passthrough. The base tag keeps the pull small.
	DockerProbeImage = "nvidia/cuda:12.4.0-base-ubuntu22.04"

	// DockerBaseImage is the default base for generated Dockerfiles.
	// The devel tag carries the toolchain some pinned wheels compile
	// against.
	DockerBaseImage = "nvidia/cuda:12.4.0-devel-ubuntu22.04"

	// PythonInterpreter is the interpreter probed for the Python-side
	// checks and baked into generated artifacts.
	PythonInterpreter = "python3"
)
