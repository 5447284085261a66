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

package catalog

import (
	"log/slog"
	"net/http"

	"github.com/NVIDIA/mlready/pkg/export"
)

// HandleModels handles GET /v1/models. It returns the known model
// catalog with hub references and minimum GPU memory requirements.
func HandleModels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		slog.Error("method not allowed", "method", r.Method)
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := struct {
		Models []Model `json:"models"`
		Stacks []Stack `json:"stacks"`
	}{
		Models: Models(),
		Stacks: Stacks(),
	}

	export.RespondJSON(w, http.StatusOK, resp)
}
