package internal

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testTemplates(name string) (string, bool) {
	templates := map[string]string{
		"greeting.txt": "hello {{ .Name }}\n",
		"broken.txt":   "hello {{ .Name",
	}
	tmpl, ok := templates[name]
	return tmpl, ok
}

func TestBuilder_WriteFile(t *testing.T) {
	var b Builder
	dir := t.TempDir()

	path := filepath.Join(dir, "artifact.txt")
	if err := b.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	if len(b.Files) != 1 || b.Files[0] != path {
		t.Errorf("Files = %v, want [%s]", b.Files, path)
	}
	if b.Size != 7 {
		t.Errorf("Size = %d, want 7", b.Size)
	}
}

func TestBuilder_GenerateFromTemplate(t *testing.T) {
	t.Run("renders and writes", func(t *testing.T) {
		var b Builder
		path := filepath.Join(t.TempDir(), "greeting.txt")

		err := b.GenerateFromTemplate(context.Background(), testTemplates,
			"greeting.txt", path, map[string]string{"Name": "world"}, 0o644)
		if err != nil {
			t.Fatalf("GenerateFromTemplate() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read output: %v", err)
		}
		if string(data) != "hello world\n" {
			t.Errorf("content = %q, want %q", string(data), "hello world\n")
		}
	})

	t.Run("missing template", func(t *testing.T) {
		var b Builder
		err := b.GenerateFromTemplate(context.Background(), testTemplates,
			"nonexistent", filepath.Join(t.TempDir(), "out"), nil, 0o644)
		if err == nil || !strings.Contains(err.Error(), "template not found") {
			t.Errorf("expected template not found error, got %v", err)
		}
	})

	t.Run("parse failure", func(t *testing.T) {
		var b Builder
		err := b.GenerateFromTemplate(context.Background(), testTemplates,
			"broken.txt", filepath.Join(t.TempDir(), "out"), nil, 0o644)
		if err == nil {
			t.Error("expected parse error for broken template")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var b Builder
		err := b.GenerateFromTemplate(ctx, testTemplates,
			"greeting.txt", filepath.Join(t.TempDir(), "out"), nil, 0o644)
		if err == nil {
			t.Error("expected error for cancelled context")
		}
	})
}

func TestBuilder_MakeExecutable(t *testing.T) {
	var b Builder
	path := filepath.Join(t.TempDir(), "script.sh")

	if err := b.WriteFile(path, []byte("#!/bin/bash\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := b.MakeExecutable(path); err != nil {
		t.Fatalf("MakeExecutable() error = %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode()&0o100 == 0 {
		t.Error("file should be executable")
	}
}
