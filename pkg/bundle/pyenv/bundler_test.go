package pyenv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/mlready/pkg/bundle"
	"github.com/NVIDIA/mlready/pkg/errors"
)

func readBundleFile(t *testing.T, dir, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	require.NoError(t, err, "reading %s", name)
	return string(data)
}

func TestBundler_Make_Venv(t *testing.T) {
	b := New(bundle.Config{Version: "1.0.0", IncludeChecksums: true})
	dir := t.TempDir()

	out, err := b.Make(context.Background(), bundle.Input{}, dir)
	require.NoError(t, err)

	assert.Equal(t, Name, out.Bundler)
	assert.Equal(t, "trl-peft", out.Stack, "empty stack should default")
	assert.Equal(t, []string{
		"requirements.txt", "setup_venv.sh", "checksums.txt",
	}, out.FileNames())

	requirements := readBundleFile(t, dir, "requirements.txt")
	assert.Contains(t, requirements, "torch>=2.4.0")
	assert.Contains(t, requirements, "trl>=0.9.0")
	assert.Contains(t, requirements, "bitsandbytes>=0.43.0")

	script := readBundleFile(t, dir, "setup_venv.sh")
	assert.Contains(t, script, "python3 -m venv")
	assert.Contains(t, script, "pip install -r requirements.txt")

	info, err := os.Stat(filepath.Join(dir, "setup_venv.sh"))
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&0o100, "setup_venv.sh should be executable")

	assert.FileExists(t, filepath.Join(dir, bundle.ManifestFileName))
}

func TestBundler_Make_Conda(t *testing.T) {
	b := New(bundle.Config{Version: "1.0.0", IncludeChecksums: true})
	dir := t.TempDir()

	out, err := b.Make(context.Background(), bundle.Input{Stack: "trl-peft", Conda: true}, dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"requirements.txt", "environment.yml", "setup_conda.sh", "checksums.txt",
	}, out.FileNames())

	env := readBundleFile(t, dir, "environment.yml")
	assert.Contains(t, env, "name: mlready")
	assert.Contains(t, env, "python=3.10")
	assert.Contains(t, env, "- torch>=2.4.0")
	assert.Contains(t, env, "- conda-forge")

	script := readBundleFile(t, dir, "setup_conda.sh")
	assert.Contains(t, script, "conda env create --file environment.yml")
	assert.Contains(t, script, "conda activate mlready")
}

func TestBundler_Make_MinimalStack(t *testing.T) {
	b := New(bundle.Config{Version: "1.0.0", IncludeChecksums: false})
	dir := t.TempDir()

	out, err := b.Make(context.Background(), bundle.Input{Stack: "minimal"}, dir)
	require.NoError(t, err)
	assert.Equal(t, "minimal", out.Stack)

	requirements := readBundleFile(t, dir, "requirements.txt")
	assert.Contains(t, requirements, "torch>=2.4.0")
	assert.Contains(t, requirements, "transformers>=4.44.0")
	assert.NotContains(t, requirements, "peft")
	assert.NotContains(t, requirements, "bitsandbytes")
}

func TestBundler_Make_UnknownStack(t *testing.T) {
	b := New(bundle.DefaultConfig())

	_, err := b.Make(context.Background(), bundle.Input{Stack: "everything"}, t.TempDir())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeNotFound, errors.CodeOf(err))
	assert.Contains(t, err.Error(), "trl-peft")
}

func TestGetTemplate(t *testing.T) {
	for _, name := range []string{"requirements.txt", "setup_venv.sh", "environment.yml", "setup_conda.sh"} {
		tmpl, ok := GetTemplate(name)
		assert.True(t, ok, "template %s not found", name)
		assert.NotEmpty(t, tmpl, "template %s is empty", name)
	}

	_, ok := GetTemplate("nonexistent")
	assert.False(t, ok)
}
