package export

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/NVIDIA/mlready/pkg/diagnostic"
)

const defaultValueKey = "value"

// acronyms keeps domain terms uppercase when expanding slug names.
var acronyms = map[string]string{
	"cuda":   "CUDA",
	"gpu":    "GPU",
	"gpumem": "GPU Memory",
	"pylib":  "ML Libraries",
	"torch":  "PyTorch",
	"ml":     "ML",
	"hf":     "HF",
	"smi":    "SMI",
	"nvidia": "NVIDIA",
	"api":    "API",
	"os":     "OS",
}

var titleCaser = cases.Title(language.English)

// displayName renders a check name for terminal output. Names that are
// already display-formed (they contain a space) pass through untouched;
// bare probe slugs from synthesized failure findings are expanded
// (e.g. "cuda_driver" -> "CUDA Driver").
func displayName(name string) string {
	if strings.Contains(name, " ") {
		return name
	}

	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if acronym, found := acronyms[strings.ToLower(part)]; found {
			out = append(out, acronym)
		} else {
			out = append(out, titleCaser.String(part))
		}
	}
	return strings.Join(out, " ")
}

// tokenGlyph marks the outcome in the leftmost table column.
func tokenGlyph(t diagnostic.Token) string {
	switch t {
	case diagnostic.TokenPass:
		return "✓"
	case diagnostic.TokenFail:
		return "✗"
	case diagnostic.TokenWarn:
		return "!"
	case diagnostic.TokenInfo:
		return "-"
	default:
		return "-"
	}
}

// serializeTable renders diagnostic reports as a findings table with a
// summary line. Any other payload falls back to a generic flattened
// field/value table.
func (w *Writer) serializeTable(v any) error {
	if report, ok := asReport(v); ok {
		return w.serializeReportTable(report)
	}
	return w.serializeFlatTable(v)
}

func (w *Writer) serializeReportTable(report *diagnostic.Report) error {
	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, " \tCHECK\tSTATUS\tFIX")
	for _, r := range report.Results {
		fix := r.Fix
		if r.Passed() {
			fix = ""
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			tokenGlyph(r.Token()), displayName(r.Name), r.Status, fix)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}

	s := report.Summary
	fmt.Fprintf(w.output, "\n%d checks: %d passed, %d warnings, %d critical (%s)\n",
		s.Total, s.Passed, s.Warnings, s.Critical, s.Duration.Round(time.Millisecond))
	return nil
}

func (w *Writer) serializeFlatTable(v any) error {
	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(v), "")
	if len(flat) == 0 {
		fmt.Fprintln(w.output, "<empty>")
		return nil
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := tabwriter.NewWriter(w.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	fmt.Fprintln(tw, "-----\t-----")
	for _, key := range keys {
		fmt.Fprintf(tw, "%s\t%v\n", key, flat[key])
	}
	return tw.Flush()
}

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	//nolint:exhaustive // We handle the common cases explicitly; all others go to default
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			key := joinKey(prefix, field.Name)
			flattenValue(out, val.Field(i), key)
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		if prefix == "" {
			prefix = defaultValueKey
		}
		out[prefix] = val.Interface()
	}
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
