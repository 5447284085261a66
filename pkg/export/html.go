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
	_ "embed"
	"fmt"
	"html/template"
	"strings"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
	apperrors "github.com/NVIDIA/mlready/pkg/errors"
)

//go:embed report.html.tmpl
var reportPage string

var reportTemplate = template.Must(
	template.New("report").Funcs(template.FuncMap{
		"tokenClass": tokenClass,
	}).Parse(reportPage),
)

// tokenClass maps a finding to the CSS class of its table row.
func tokenClass(r diagnostic.Result) string {
	return strings.ToLower(r.Token().String())
}

func (w *Writer) serializeHTML(v any) error {
	report, ok := asReport(v)
	if !ok {
		return apperrors.New(apperrors.ErrCodeSerialization,
			fmt.Sprintf("html output supports diagnostic reports only, got %T", v))
	}

	if err := reportTemplate.Execute(w.output, report); err != nil {
		return fmt.Errorf("failed to render HTML report: %w", err)
	}
	return nil
}
