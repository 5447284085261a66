package dockerfile

import (
	_ "embed"
)

//go:embed templates/Dockerfile.tmpl
var dockerfileTemplate string

//go:embed templates/requirements.txt.tmpl
var requirementsTemplate string

//go:embed templates/entrypoint.sh.tmpl
var entrypointTemplate string

//go:embed templates/serve.py.tmpl
var serveTemplate string

// GetTemplate returns the named template content for bundle generation.
func GetTemplate(name string) (string, bool) {
	templates := map[string]string{
		"Dockerfile":       dockerfileTemplate,
		"requirements.txt": requirementsTemplate,
		"entrypoint.sh":    entrypointTemplate,
		"serve.py":         serveTemplate,
	}

	tmpl, ok := templates[name]
	return tmpl, ok
}
