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

// Package export renders diagnostic reports and other resources to
// various output formats.
//
// The package supports five output formats:
//   - JSON: Machine-readable structured data with proper indentation
//   - YAML: Human-readable configuration format
//   - CSV: Spreadsheet-friendly rows, one per finding
//   - HTML: Self-contained report page for sharing
//   - Table: Terminal-friendly tabular output
//
// JSON and YAML accept any payload. CSV, HTML, and the report table are
// specific to diagnostic reports; other payloads fall back to a generic
// flattened table (CSV and HTML reject them with a structured error).
//
// Usage:
//
//	writer := export.NewWriter(export.FormatJSON, os.Stdout)
//	defer writer.Close() // Important: close to release file handles
//	if err := writer.Serialize(ctx, report); err != nil {
//	    log.Fatal(err)
//	}
//
// For HTTP responses:
//
//	export.RespondJSON(w, http.StatusOK, report)
package export

import "context"

// Serializer is an interface for writing resources to an output.
// Implementations serialize data to formats such as JSON, YAML, or HTML.
//
// The context parameter is used for cancellation and timeouts, relevant
// for implementations that perform slow I/O.
type Serializer interface {
	Serialize(ctx context.Context, v any) error
}

// Closer is an optional interface that Serializers can implement
// if they need to release resources (e.g., close file handles).
type Closer interface {
	Close() error
}
