package export

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
	"github.com/NVIDIA/mlready/pkg/header"
)

func testReport() *diagnostic.Report {
	r := diagnostic.NewReport()
	r.Init(header.KindReport, "mlready/v1", "1.0.0")
	r.Node = "gpu-box-01"
	r.Mode = "core"
	r.Results = []diagnostic.Result{
		{
			Name:     "NVIDIA GPU Driver",
			Status:   "PASS - CUDA 12.4",
			Severity: diagnostic.SeverityInfo,
			Details:  "Driver Version: 550.54.15, CUDA Version: 12.4",
		},
		{
			Name:     "PyTorch CUDA",
			Status:   "FAIL - CUDA not available",
			Severity: diagnostic.SeverityCritical,
			Fix:      "pip install torch --index-url https://download.pytorch.org/whl/cu124",
		},
		{
			Name:     "Disk Space",
			Status:   "WARN - Low space (12.3GB free)",
			Severity: diagnostic.SeverityWarning,
			Fix:      "Free up disk space (HF cache needs ~50GB)",
		},
	}
	r.Summary = diagnostic.Summarize(r.Results)
	r.Summary.Duration = 1234 * time.Millisecond
	return r
}

func TestWriter_SerializeJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatJSON, &buf)

	if err := writer.Serialize(context.Background(), testReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Verify it's valid JSON
	var result diagnostic.Report
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal JSON: %v", err)
	}

	if len(result.Results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(result.Results))
	}
	if result.Results[0].Name != "NVIDIA GPU Driver" {
		t.Errorf("Unexpected first result: %+v", result.Results[0])
	}
	if result.Node != "gpu-box-01" {
		t.Errorf("Node = %s, want gpu-box-01", result.Node)
	}
}

func TestWriter_SerializeYAML(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter(FormatYAML, &buf)

	if err := writer.Serialize(context.Background(), testReport()); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	// Verify it's valid YAML
	var result diagnostic.Report
	if err := yaml.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Failed to unmarshal YAML: %v", err)
	}

	if len(result.Results) != 3 {
		t.Errorf("Expected 3 results, got %d", len(result.Results))
	}
	if result.Summary.Critical != 1 {
		t.Errorf("Summary.Critical = %d, want 1", result.Summary.Critical)
	}
}

func TestWriter_UnknownFormatFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	writer := NewWriter("invalid", &buf)

	if writer == nil {
		t.Fatal("Expected non-nil writer with unknown format")
	}

	if err := writer.Serialize(context.Background(), testReport()); err != nil {
		t.Fatalf("Serialize should fall back to JSON: %v", err)
	}

	var result diagnostic.Report
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("Fallback output is not JSON: %v", err)
	}
}

func TestNewFileWriterOrStdout(t *testing.T) {
	t.Run("creates parent directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reports", "out.json")
		w := NewFileWriterOrStdout(FormatJSON, path)

		if err := w.Serialize(context.Background(), testReport()); err != nil {
			t.Fatalf("Serialize failed: %v", err)
		}
		if closer, ok := w.(Closer); ok {
			if err := closer.Close(); err != nil {
				t.Fatalf("Close failed: %v", err)
			}
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("output file not written: %v", err)
		}
		var result diagnostic.Report
		if err := json.Unmarshal(data, &result); err != nil {
			t.Fatalf("output file is not JSON: %v", err)
		}
	})

	t.Run("empty path uses stdout", func(t *testing.T) {
		w := NewFileWriterOrStdout(FormatJSON, "  ")
		if _, ok := w.(*Writer); !ok {
			t.Fatalf("expected *Writer, got %T", w)
		}
	})
}

func TestWriter_CloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	w := NewFileWriterOrStdout(FormatYAML, path)

	closer, ok := w.(Closer)
	if !ok {
		t.Fatalf("file writer should implement Closer")
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := closer.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"report.json", FormatJSON},
		{"report.yaml", FormatYAML},
		{"report.YML", FormatYAML},
		{"report.csv", FormatCSV},
		{"report.html", FormatHTML},
		{"report.htm", FormatHTML},
		{"report.txt", FormatTable},
		{"report.table", FormatTable},
		{"report.xml", FormatJSON},
		{"", FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FormatFromPath(tt.path); got != tt.want {
				t.Errorf("FormatFromPath(%q) = %s, want %s", tt.path, got, tt.want)
			}
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	formats := SupportedFormats()
	if len(formats) != 5 {
		t.Errorf("SupportedFormats() returned %d formats, want 5", len(formats))
	}
	for _, f := range formats {
		if Format(f).IsUnknown() {
			t.Errorf("supported format %q reports unknown", f)
		}
	}
}
