package python

import (
	"context"
	"fmt"
	"strings"

	"github.com/NVIDIA/mlready/pkg/catalog"
	"github.com/NVIDIA/mlready/pkg/command"
	"github.com/NVIDIA/mlready/pkg/constraint"
	"github.com/NVIDIA/mlready/pkg/diagnostic"
	apperrors "github.com/NVIDIA/mlready/pkg/errors"
)

const (
	checkLibraries = "ML Libraries"

	// missingMarker is what the snippet prints for packages that fail
	// to import.
	missingMarker = "missing"
)

// LibraryProbe checks the training stack's Python packages against their
// version constraints in a single interpreter invocation.
type LibraryProbe struct {
	Runner command.Runner
	Python string
	Stack  *catalog.Stack
}

// Name implements the probe interface.
func (p *LibraryProbe) Name() string {
	return "pylib"
}

// Probe imports each stack package inside the target interpreter and
// grades the reported versions. When every constraint is satisfied the
// findings collapse into one aggregate PASS; any problem switches to
// per-package findings so the table shows exactly what to fix.
func (p *LibraryProbe) Probe(ctx context.Context) ([]diagnostic.Result, error) {
	if p.Stack == nil || len(p.Stack.Packages) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeProbe, "library probe requires a stack with packages")
	}

	// The torch probe owns the torch finding, including its CUDA state.
	libs := make([]constraint.Constraint, 0, len(p.Stack.Packages))
	for _, c := range p.Stack.Packages {
		if c.Name == "torch" {
			continue
		}
		libs = append(libs, c)
	}
	if len(libs) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeProbe, "library probe requires non-torch packages")
	}

	if !p.Runner.LookPath(p.Python) {
		return []diagnostic.Result{{
			Name:     checkLibraries,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, p.Python+" not found"),
			Severity: diagnostic.SeverityCritical,
			Fix:      pythonInstallFix,
		}}, nil
	}

	names := make([]string, 0, len(libs))
	for _, c := range libs {
		names = append(names, c.Name)
	}

	out, err := p.Runner.Run(ctx, p.Python, "-c", buildImportSnippet(names))
	if err != nil {
		return []diagnostic.Result{checkErrorResult(checkLibraries, err.Error())}, nil
	}
	if !out.Success() {
		return []diagnostic.Result{checkErrorResult(checkLibraries, strings.TrimSpace(out.Stderr))}, nil
	}

	versions := parseImportReport(out.Stdout)

	results := make([]diagnostic.Result, 0, len(libs))
	satisfied := make([]string, 0, len(libs))
	problems := 0

	for _, c := range libs {
		r := gradeLibrary(c, versions[c.Name])
		if r.Token() != diagnostic.TokenPass {
			problems++
		} else {
			satisfied = append(satisfied, strings.TrimSpace(c.Name+" "+versions[c.Name]))
		}
		results = append(results, r)
	}

	if problems == 0 {
		return []diagnostic.Result{{
			Name:     checkLibraries,
			Status:   diagnostic.StatusOf(diagnostic.TokenPass, fmt.Sprintf("%d packages OK", len(libs))),
			Severity: diagnostic.SeverityInfo,
			Details:  strings.Join(satisfied, ", "),
		}}, nil
	}
	return results, nil
}

// gradeLibrary turns one package's reported version into a finding.
func gradeLibrary(c constraint.Constraint, actual string) diagnostic.Result {
	switch actual {
	case "", missingMarker:
		return diagnostic.Result{
			Name:     c.Name,
			Status:   diagnostic.StatusOf(diagnostic.TokenFail, "Not installed"),
			Severity: diagnostic.SeverityCritical,
			Fix:      "pip install " + c.String(),
		}
	case "unknown":
		// Package imports but carries no __version__. Installed is the
		// best this probe can attest to.
		return diagnostic.Result{
			Name:     c.Name,
			Status:   diagnostic.StatusOf(diagnostic.TokenPass, "Installed"),
			Severity: diagnostic.SeverityInfo,
		}
	}

	ok, err := c.Evaluate(actual)
	if err != nil {
		return diagnostic.Result{
			Name:     c.Name,
			Status:   diagnostic.StatusOf(diagnostic.TokenPass, "Installed"),
			Severity: diagnostic.SeverityInfo,
			Details:  "Version: " + actual,
		}
	}
	if !ok {
		return diagnostic.Result{
			Name:     c.Name,
			Status:   diagnostic.StatusOf(diagnostic.TokenWarn, fmt.Sprintf("Old version (%s)", actual)),
			Severity: diagnostic.SeverityWarning,
			Fix:      "pip install " + c.String(),
			Details:  fmt.Sprintf("Current: %s, Required: %s%s", actual, c.Operator, c.Value),
		}
	}

	return diagnostic.Result{
		Name:     c.Name,
		Status:   diagnostic.StatusOf(diagnostic.TokenPass, actual),
		Severity: diagnostic.SeverityInfo,
	}
}

// buildImportSnippet generates the interpreter snippet printing one
// "name=version" line per package, with "missing" for import failures.
// Package names come from the catalog and match its alias character set,
// so they embed safely in the list literal.
func buildImportSnippet(names []string) string {
	quoted := make([]string, 0, len(names))
	for _, n := range names {
		quoted = append(quoted, fmt.Sprintf("%q", n))
	}

	return fmt.Sprintf(`import importlib
for name in [%s]:
    try:
        m = importlib.import_module(name)
        print(name + "=" + str(getattr(m, "__version__", "unknown")))
    except Exception:
        print(name + "=%s")
`, strings.Join(quoted, ", "), missingMarker)
}

// parseImportReport maps "name=version" lines into a lookup table.
func parseImportReport(stdout string) map[string]string {
	versions := make(map[string]string)
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		versions[parts[0]] = strings.TrimSpace(parts[1])
	}
	return versions
}
