// Package internal provides shared file generation helpers for bundler
// implementations.
package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

// TemplateFunc is a function that retrieves templates by name.
// Returns the template content and whether it was found.
type TemplateFunc func(name string) (string, bool)

// Builder accumulates the files written during a single bundle run.
//
// Thread-safety: Builder is intended for use by a single bundler execution.
// Do not share Builder instances between concurrent runs.
type Builder struct {
	// Files holds the absolute paths of everything written so far.
	Files []string

	// Size is the combined byte count of all written files.
	Size int64
}

// WriteFile writes content to a file and tracks it in the builder.
func (b *Builder) WriteFile(path string, content []byte, perm os.FileMode) error {
	if err := os.WriteFile(path, content, perm); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	b.Files = append(b.Files, path)
	b.Size += int64(len(content))

	slog.Debug("file written",
		"path", path,
		"size_bytes", len(content),
		"permissions", perm,
	)

	return nil
}

// RenderTemplate parses and executes a template with the given data.
func (b *Builder) RenderTemplate(tmplContent, name string, data any) (string, error) {
	tmpl, err := template.New(name).Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}

// GenerateFromTemplate retrieves a template by name, renders it, and writes
// the result to outputPath. This handles the common bundler pattern in one
// call:
//
//	err := b.GenerateFromTemplate(ctx, GetTemplate, "Dockerfile",
//	    filepath.Join(dir, "Dockerfile"), data, 0o644)
func (b *Builder) GenerateFromTemplate(ctx context.Context, getTemplate TemplateFunc,
	templateName, outputPath string, data any, perm os.FileMode) error {

	if err := CheckContext(ctx); err != nil {
		return err
	}

	tmpl, ok := getTemplate(templateName)
	if !ok {
		return fmt.Errorf("%s template not found", templateName)
	}

	content, err := b.RenderTemplate(tmpl, templateName, data)
	if err != nil {
		return err
	}

	return b.WriteFile(outputPath, []byte(content), perm)
}

// MakeExecutable sets the executable bits on a generated script.
// os.WriteFile permissions are masked by the umask, so scripts are
// chmod'ed explicitly after writing.
func (b *Builder) MakeExecutable(path string) error {
	if err := os.Chmod(path, 0o755); err != nil {
		return fmt.Errorf("failed to make %s executable: %w", filepath.Base(path), err)
	}

	slog.Debug("file made executable", "path", path)
	return nil
}

// CheckContext checks if the context has been canceled. Call this before
// each generation step to allow for graceful cancellation.
func CheckContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
