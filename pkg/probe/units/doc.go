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

// Package units reports systemd service state for the units that back
// containerized fine-tuning, by default docker.service and
// nvidia-persistenced.service.
//
// Unit properties are read over the system D-Bus
// (org.freedesktop.systemd1). The probe is advisory: findings are
// informational severity, with a warning token only when the
// persistence daemon is down since that silently slows every run.
// Hosts without systemd or without D-Bus access produce a single
// informational finding, never an error, so the probe is safe to keep
// in the full set on minimal and containerized hosts.
package units
