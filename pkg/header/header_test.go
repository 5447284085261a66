package header

import (
	"testing"
	"time"
)

func TestInit(t *testing.T) {
	var h Header
	h.Init(KindReport, "mlready/v1", "v1.2.3")

	if h.Kind != KindReport {
		t.Errorf("expected kind %s, got %s", KindReport, h.Kind)
	}
	if h.APIVersion != "mlready/v1" {
		t.Errorf("expected apiVersion mlready/v1, got %s", h.APIVersion)
	}
	if h.Metadata["version"] != "v1.2.3" {
		t.Errorf("expected version metadata v1.2.3, got %q", h.Metadata["version"])
	}
	if h.Metadata["id"] == "" {
		t.Error("expected id metadata to be set")
	}
	if _, err := time.Parse(time.RFC3339, h.Metadata["timestamp"]); err != nil {
		t.Errorf("timestamp not RFC3339: %v", err)
	}
}

func TestInitWithoutVersion(t *testing.T) {
	var h Header
	h.Init(KindBundle, "mlready/v1", "")

	if _, ok := h.Metadata["version"]; ok {
		t.Error("version metadata should be omitted when empty")
	}
}

func TestKindIsValid(t *testing.T) {
	tests := []struct {
		kind  Kind
		valid bool
	}{
		{KindReport, true},
		{KindBundle, true},
		{Kind("Snapshot"), false},
		{Kind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.IsValid(); got != tt.valid {
				t.Errorf("Kind(%q).IsValid() = %v, want %v", tt.kind, got, tt.valid)
			}
		})
	}
}

func TestNewWithOptions(t *testing.T) {
	h := New(
		WithKind(KindReport),
		WithAPIVersion("mlready/v1"),
		WithMetadata("node", "gpu-node-1"),
	)

	if h.GetKind() != KindReport {
		t.Errorf("expected kind %s, got %s", KindReport, h.GetKind())
	}
	if h.GetMetadata()["node"] != "gpu-node-1" {
		t.Error("expected node metadata to be set")
	}
}
