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

package export

import (
	"encoding/csv"
	"fmt"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
	apperrors "github.com/NVIDIA/mlready/pkg/errors"
)

// csvHeader is the column order for report rows.
var csvHeader = []string{"Check", "Status", "Severity", "Fix", "Details"}

// asReport extracts a diagnostic report from a serialization payload.
func asReport(v any) (*diagnostic.Report, bool) {
	switch r := v.(type) {
	case *diagnostic.Report:
		return r, true
	case diagnostic.Report:
		return &r, true
	default:
		return nil, false
	}
}

func (w *Writer) serializeCSV(v any) error {
	report, ok := asReport(v)
	if !ok {
		return apperrors.New(apperrors.ErrCodeSerialization,
			fmt.Sprintf("csv output supports diagnostic reports only, got %T", v))
	}

	cw := csv.NewWriter(w.output)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range report.Results {
		row := []string{r.Name, r.Status, string(r.Severity), r.Fix, r.Details}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
