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

// Package osinfo identifies the host a report was produced on.
package osinfo

import (
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/mlready/pkg/probe/internal/file"
)

// Per freedesktop.org spec, /usr/lib/os-release is the fallback when
// /etc/os-release does not exist.
var releasePaths = []string{"/etc/os-release", "/usr/lib/os-release"}

// Info describes the host for report metadata.
type Info struct {
	Hostname string `json:"hostname" yaml:"hostname"`
	OS       string `json:"os" yaml:"os"`
	Kernel   string `json:"kernel,omitempty" yaml:"kernel,omitempty"`
	Arch     string `json:"arch" yaml:"arch"`
}

// Gather collects host identity best-effort. Fields that cannot be
// determined fall back to the runtime's view rather than failing; a
// report with a thin Node section is still a useful report.
func Gather() Info {
	info := Info{
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}

	if h, err := os.Hostname(); err == nil {
		info.Hostname = h
	}

	if name := releaseName(releasePaths); name != "" {
		info.OS = name
	}

	var uts unix.Utsname
	if err := unix.Uname(&uts); err == nil {
		info.Kernel = unix.ByteSliceToString(uts.Release[:])
		info.Arch = unix.ByteSliceToString(uts.Machine[:])
	} else {
		slog.Debug("uname unavailable", "error", err)
	}

	return info
}

// releaseName returns PRETTY_NAME (falling back to NAME) from the first
// readable os-release file.
func releaseName(paths []string) string {
	parser := file.NewParser(
		file.WithVTrimChars(`"'`),
		file.WithSkipEmptyValues(true),
	)

	for _, path := range paths {
		params, err := parser.GetMap(path)
		if err != nil {
			continue
		}
		if v := params["PRETTY_NAME"]; v != "" {
			return v
		}
		if v := params["NAME"]; v != "" {
			return v
		}
	}
	return ""
}
