package pyenv

import (
	_ "embed"
)

//go:embed templates/requirements.txt.tmpl
var requirementsTemplate string

//go:embed templates/setup_venv.sh.tmpl
var setupVenvTemplate string

//go:embed templates/environment.yml.tmpl
var environmentTemplate string

//go:embed templates/setup_conda.sh.tmpl
var setupCondaTemplate string

// GetTemplate returns the named template content for bundle generation.
func GetTemplate(name string) (string, bool) {
	templates := map[string]string{
		"requirements.txt": requirementsTemplate,
		"setup_venv.sh":    setupVenvTemplate,
		"environment.yml":  environmentTemplate,
		"setup_conda.sh":   setupCondaTemplate,
	}

	tmpl, ok := templates[name]
	return tmpl, ok
}
