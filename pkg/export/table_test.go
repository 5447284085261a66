package export

import (
	"bytes"
	"context"
	"reflect"
	"strings"
	"testing"
)

func TestWriter_SerializeReportTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	if err := writer.Serialize(context.Background(), testReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()

	if !strings.Contains(output, "CHECK") || !strings.Contains(output, "STATUS") {
		t.Error("expected column headers not found")
	}
	if !strings.Contains(output, "✓") {
		t.Error("expected pass glyph not found")
	}
	if !strings.Contains(output, "✗") {
		t.Error("expected fail glyph not found")
	}
	if !strings.Contains(output, "NVIDIA GPU Driver") {
		t.Error("expected check name not found")
	}
	if !strings.Contains(output, "3 checks: 1 passed, 1 warnings, 1 critical") {
		t.Errorf("expected summary line not found in:\n%s", output)
	}
	// Passing findings carry no fix text.
	if strings.Contains(output, "PASS - CUDA 12.4") && strings.Contains(output, "PASS - CUDA 12.4  pip") {
		t.Error("pass row should not render a fix")
	}
}

func TestWriter_SerializeFlatTable(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatTable, &buf)

	payload := struct {
		Name  string
		Count int
	}{Name: "tinyllama", Count: 2}

	if err := writer.Serialize(context.Background(), payload); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, "FIELD") || !strings.Contains(output, "VALUE") {
		t.Error("expected flat table header not found")
	}
	if !strings.Contains(output, "Name") || !strings.Contains(output, "tinyllama") {
		t.Error("expected flattened fields not found")
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"NVIDIA GPU Driver", "NVIDIA GPU Driver"},
		{"cuda", "CUDA"},
		{"cuda_driver", "CUDA Driver"},
		{"gpumem", "GPU Memory"},
		{"pylib", "ML Libraries"},
		{"torch", "PyTorch"},
		{"disk", "Disk"},
		{"docker-gpu", "Docker GPU"},
		{"units", "Units"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := displayName(tt.name); got != tt.want {
				t.Errorf("displayName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestFlattenValue(t *testing.T) {
	out := make(map[string]any)
	payload := map[string]any{
		"outer": struct {
			Inner []int
		}{Inner: []int{7}},
	}

	flattenValue(out, reflect.ValueOf(payload), "")

	if v, ok := out["outer.Inner.[0]"]; !ok || v != 7 {
		t.Errorf("flattened keys = %v", out)
	}
}
