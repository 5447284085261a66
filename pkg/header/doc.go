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

// Package header provides the common resource envelope for mlready data
// structures.
//
// The Header type gives every serialized resource (diagnostic reports,
// artifact bundle manifests) a consistent Kubernetes-style preamble with
// Kind, APIVersion, and Metadata fields.
//
// # Usage
//
// Initialize a header on a freshly built report:
//
//	var r diagnostic.Report
//	r.Init(header.KindReport, "mlready/v1", version)
//
// Init populates Metadata with a unique id, an RFC3339 UTC timestamp, and
// the tool version:
//
//	{
//	  "kind": "Report",
//	  "apiVersion": "mlready/v1",
//	  "metadata": {
//	    "id": "8b9c6f3e-...",
//	    "timestamp": "2025-08-12T10:30:00Z",
//	    "version": "v1.0.0"
//	  }
//	}
//
// # API Versioning
//
// The APIVersion field enables evolution of data formats. Consumers should
// check APIVersion before parsing:
//
//	if h.APIVersion != "mlready/v1" {
//	    return fmt.Errorf("unsupported API version: %s", h.APIVersion)
//	}
package header
