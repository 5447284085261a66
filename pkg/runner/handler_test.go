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

package runner

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

func TestHandleDiagnostics(t *testing.T) {
	t.Run("core run by default", func(t *testing.T) {
		h := NewHandler("1.0.0", &mockFactory{})

		req := httptest.NewRequest(http.MethodGet, "/v1/diagnostics", nil)
		rec := httptest.NewRecorder()

		h.HandleDiagnostics(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %s, want application/json", ct)
		}

		var report diagnostic.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		if report.Mode != ModeCore {
			t.Errorf("Mode = %s, want %s", report.Mode, ModeCore)
		}
		if report.APIVersion != APIVersion {
			t.Errorf("APIVersion = %s, want %s", report.APIVersion, APIVersion)
		}
		if report.Metadata["version"] != "1.0.0" {
			t.Errorf("metadata version = %s, want 1.0.0", report.Metadata["version"])
		}
		if len(report.Results) != 6 {
			t.Errorf("Results length = %d, want 6", len(report.Results))
		}
	})

	t.Run("full run via query parameter", func(t *testing.T) {
		h := NewHandler("1.0.0", &mockFactory{})

		req := httptest.NewRequest(http.MethodGet, "/v1/diagnostics?full=true", nil)
		rec := httptest.NewRecorder()

		h.HandleDiagnostics(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var report diagnostic.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		if report.Mode != ModeFull {
			t.Errorf("Mode = %s, want %s", report.Mode, ModeFull)
		}
		if len(report.Results) != 8 {
			t.Errorf("Results length = %d, want 8", len(report.Results))
		}
	})

	t.Run("invalid full parameter", func(t *testing.T) {
		h := NewHandler("1.0.0", &mockFactory{})

		req := httptest.NewRequest(http.MethodGet, "/v1/diagnostics?full=banana", nil)
		rec := httptest.NewRecorder()

		h.HandleDiagnostics(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("method not allowed", func(t *testing.T) {
		h := NewHandler("1.0.0", &mockFactory{})

		req := httptest.NewRequest(http.MethodPost, "/v1/diagnostics", nil)
		rec := httptest.NewRecorder()

		h.HandleDiagnostics(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
		if allow := rec.Header().Get("Allow"); allow != http.MethodGet {
			t.Errorf("Allow = %s, want GET", allow)
		}
	})

	t.Run("probe failure still returns a report", func(t *testing.T) {
		factory := &mockFactory{
			errs: map[string]error{"cuda": errors.New("nvidia-smi not found")},
		}
		h := NewHandler("1.0.0", factory)

		req := httptest.NewRequest(http.MethodGet, "/v1/diagnostics", nil)
		rec := httptest.NewRecorder()

		h.HandleDiagnostics(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var report diagnostic.Report
		if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
			t.Fatalf("failed to decode report: %v", err)
		}
		if report.Summary.Critical == 0 {
			t.Error("expected critical finding for broken probe")
		}
	})
}
