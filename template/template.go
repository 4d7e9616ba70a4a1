// Package template renders result location templates such as
// "runs/{flow}/{task}-{index}.csv" against named parameters.
package template

import (
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"github.com/kbukum/resultkit/errors"
	"github.com/kbukum/resultkit/util"
)

const (
	startTag = "{"
	endTag   = "}"
)

// Render substitutes every {name} placeholder in tmpl with the string form of
// params[name] and normalizes directory separators to the host convention.
// A placeholder without a parameter fails with a TEMPLATE_RENDER error.
func Render(tmpl string, params map[string]any) (string, error) {
	t, err := parse(tmpl)
	if err != nil {
		return "", err
	}
	out, err := t.ExecuteFuncStringWithErr(func(w io.Writer, tag string) (int, error) {
		name := strings.TrimSpace(tag)
		v, ok := params[name]
		if !ok {
			return 0, errors.TemplateRender(name)
		}
		return io.WriteString(w, formatParam(v))
	})
	if err != nil {
		return "", err
	}
	return NormalizeSeparators(out), nil
}

// formatParam renders a parameter value. Floats always carry a fraction or
// an exponent so that 2.0 renders as "2.0" rather than "2".
func formatParam(v any) string {
	switch x := v.(type) {
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	}
	return fmt.Sprint(v)
}

func formatFloat(f float64, bits int) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, bits)
	}
	s := strconv.FormatFloat(f, 'f', -1, bits)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Placeholders returns the distinct placeholder names of tmpl in order of
// first appearance.
func Placeholders(tmpl string) ([]string, error) {
	t, err := parse(tmpl)
	if err != nil {
		return nil, err
	}
	var names []string
	_, err = t.ExecuteFuncStringWithErr(func(_ io.Writer, tag string) (int, error) {
		names = append(names, strings.TrimSpace(tag))
		return 0, nil
	})
	if err != nil {
		return nil, err
	}
	return util.Unique(names), nil
}

// NormalizeSeparators rewrites both '/' and '\' to the host path separator.
func NormalizeSeparators(p string) string {
	return filepath.FromSlash(strings.ReplaceAll(p, `\`, "/"))
}

func parse(tmpl string) (*fasttemplate.Template, error) {
	t, err := fasttemplate.NewTemplate(tmpl, startTag, endTag)
	if err != nil {
		return nil, errors.New(errors.ErrCodeTemplateRender,
			fmt.Sprintf("malformed location template %q", tmpl)).WithCause(err)
	}
	return t, nil
}
