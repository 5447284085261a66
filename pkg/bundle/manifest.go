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

package bundle

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/mlready/pkg/bundle/checksum"
	"github.com/NVIDIA/mlready/pkg/errors"
)

// ManifestFileName is the standard name for bundle manifests.
const ManifestFileName = "bundle.yaml"

// AddFiles records the given files in the manifest with their checksums and
// sizes. Paths are stored relative to baseDir.
func (o *Output) AddFiles(ctx context.Context, baseDir string, paths []string) error {
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}

		digest, err := checksum.File(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeBundle, "failed to checksum bundle file", err)
		}

		info, err := os.Stat(p)
		if err != nil {
			return errors.Wrap(errors.ErrCodeBundle,
				fmt.Sprintf("failed to stat bundle file %s", p), err)
		}

		relPath, err := filepath.Rel(baseDir, p)
		if err != nil {
			relPath = p
		}

		o.Files = append(o.Files, File{
			Path:   relPath,
			SHA256: digest,
			Size:   info.Size(),
		})
		o.TotalSize += info.Size()
	}

	return nil
}

// WriteManifest serializes the manifest as bundle.yaml in dir and returns
// the written path. The manifest itself is not listed in Files.
func (o *Output) WriteManifest(dir string) (string, error) {
	data, err := yaml.Marshal(o)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeBundle, "failed to serialize bundle manifest", err)
	}

	path := filepath.Join(dir, ManifestFileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", errors.Wrap(errors.ErrCodeBundle, "failed to write bundle manifest", err)
	}

	slog.Debug("bundle manifest written",
		"path", path,
		"files", len(o.Files),
		"size_bytes", o.TotalSize,
	)

	return path, nil
}
