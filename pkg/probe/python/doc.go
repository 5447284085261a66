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

// Package python probes the Python side of the training environment:
// PyTorch with CUDA support and the ML library stack.
//
// Both probes execute short reporting snippets inside the target
// interpreter via "python3 -c". Running in-process would report this
// binary's environment, not the one training scripts see, and would
// drag CPython linkage into a diagnostic tool. Snippets separate
// statements with newlines so they pass the command argument guard.
//
// # Torch Probe
//
// Prints torch version, CUDA availability, CUDA build version, device
// count, and device zero's name, one per line. Grading:
//   - interpreter missing: FAIL (critical)
//   - torch import fails: FAIL (critical) with the cu124 wheel install fix
//   - CUDA unavailable: FAIL (critical), CPU-only builds cannot fine-tune
//   - torch older than MinVersion: additional WARN
//   - otherwise: PASS naming CUDA version and GPU count
//
// # Library Probe
//
// Imports each stack package and prints "name=version" lines. Versions
// are graded against the stack's constraints (pkg/constraint). All
// constraints satisfied collapses into a single aggregate PASS; any
// missing or outdated package switches to per-package findings so the
// report names exactly what to install or upgrade. The torch constraint
// is skipped here because the torch probe owns that finding.
package python
