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

// Package config loads the mlready configuration file.
//
// Configuration is optional: every field has a default from pkg/defaults,
// and a missing config file is not an error. When a file is present it is
// YAML, with sections mirroring the diagnostic surface:
//
//	log:
//	  level: debug
//	diagnose:
//	  workers: 4
//	  timeout: 90s
//	thresholds:
//	  minGpuMemoryGiB: 16
//	  minDiskGiB: 100
//	network:
//	  probeUrl: https://huggingface.co
//	docker:
//	  baseImage: nvidia/cuda:12.4.0-devel-ubuntu22.04
//	python:
//	  interpreter: python3.11
//
// # Search Order
//
// Load resolves the file in this order, first hit wins:
//
//  1. The explicit path (--config flag); must exist when given.
//  2. $MLREADY_CONFIG; must exist when set.
//  3. ./mlready.yaml
//  4. ~/.mlready/config.yaml
//
// Fields absent from the file keep their defaults, so a config file only
// needs the values it changes. diagnose.workers and diagnose.timeout
// default to zero, meaning each run picks the budget for its mode (core
// runs are smaller and faster than full runs).
package config
