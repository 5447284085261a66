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

// Package disk probes free space on the volume holding the HuggingFace
// model cache. Base weights plus checkpoints for a 7B model consume tens
// of gigabytes, so a nearly full cache volume fails fine-tuning runs
// late and expensively.
package disk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/NVIDIA/mlready/pkg/defaults"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

const (
	checkDiskSpace = "Disk Space"

	// hfHomeEnv relocates the cache the same way the hub libraries do.
	hfHomeEnv = "HF_HOME"
)

// Probe checks free space on the cache volume.
type Probe struct {
	// CacheDir overrides the HuggingFace cache location. Empty resolves
	// $HF_HOME, then ~/.cache/huggingface.
	CacheDir string

	// MinGiB overrides the free-space floor. Zero uses defaults.MinDiskGiB.
	MinGiB int

	// StatFS stands in for unix.Statfs in tests.
	StatFS func(path string, st *unix.Statfs_t) error
}

// Name implements the probe interface.
func (p *Probe) Name() string {
	return "disk"
}

// Probe resolves the cache directory and reads the filesystem stats of
// its parent volume. A missing cache directory is informational only:
// first-run hosts have nothing cached yet.
func (p *Probe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	dir := p.resolveCacheDir()
	if dir == "" {
		return []diagnostic.Result{manualCheckResult("cannot resolve home directory")}, nil
	}

	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return []diagnostic.Result{{
				Name:     checkDiskSpace,
				Status:   diagnostic.StatusOf(diagnostic.TokenInfo, "Cache dir not found"),
				Severity: diagnostic.SeverityInfo,
			}}, nil
		}
		return []diagnostic.Result{manualCheckResult(err.Error())}, nil
	}

	statfs := p.StatFS
	if statfs == nil {
		statfs = unix.Statfs
	}

	var st unix.Statfs_t
	if err := statfs(filepath.Dir(dir), &st); err != nil {
		return []diagnostic.Result{manualCheckResult(err.Error())}, nil
	}

	// Bavail excludes blocks reserved for root, matching what a user
	// process can actually write.
	freeBytes := uint64(st.Bsize) * st.Bavail
	freeGiB := float64(freeBytes) / (1 << 30)

	if freeGiB < float64(p.minGiB()) {
		return []diagnostic.Result{{
			Name:     checkDiskSpace,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, fmt.Sprintf("Low space (%.1fGB free)", freeGiB)),
			Severity: diagnostic.SeverityWarning,
			Fix:      fmt.Sprintf("Free up disk space (HF cache needs ~%dGB)", p.minGiB()),
			Details:  "Free: " + humanSize(freeBytes),
		}}, nil
	}

	return []diagnostic.Result{{
		Name:     checkDiskSpace,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, fmt.Sprintf("%.1fGB free", freeGiB)),
		Severity: diagnostic.SeverityInfo,
		Details:  "Free: " + humanSize(freeBytes),
	}}, nil
}

func (p *Probe) minGiB() int {
	if p.MinGiB > 0 {
		return p.MinGiB
	}
	return defaults.MinDiskGiB
}

func (p *Probe) resolveCacheDir() string {
	if p.CacheDir != "" {
		return p.CacheDir
	}
	if env := os.Getenv(hfHomeEnv); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cache", "huggingface")
}

func manualCheckResult(detail string) diagnostic.Result {
	return diagnostic.Result{
		Name:     checkDiskSpace,
		Status:   diagnostic.StatusOf(diagnostic.TokenWarn, "Cannot check disk space"),
		Severity: diagnostic.SeverityWarning,
		Fix:      "Check disk space manually",
		Details:  detail,
	}
}

// humanSize renders a byte count with binary-multiple units.
func humanSize(bytes uint64) string {
	size := float64(bytes)
	for _, unit := range []string{"B", "KB", "MB", "GB", "TB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.2f %s", size, unit)
		}
		size /= 1024.0
	}
	return fmt.Sprintf("%.2f PB", size)
}
