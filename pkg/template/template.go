// Package template renders the canned report templates of the demo workflows.
package template

import (
	"fmt"
	"strings"
	"text/template"
	"time"
	"unicode/utf8"
)

// Funcs is the function map available to every report template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
		"lower": strings.ToLower,
		"rule": func(width int) string {
			return strings.Repeat("=", width)
		},
		"truncate": Truncate,
		"add": func(a, b int) int {
			return a + b
		},
		"mul": func(a, b int) int {
			return a * b
		},
		"div": func(a float64, b int) float64 {
			if b == 0 {
				return 0
			}

			return a / float64(b)
		},
		"pct": func(part, whole int) float64 {
			if whole == 0 {
				return 0
			}

			return float64(part) / float64(whole) * 100
		},
		"datetime": func(layout string, t time.Time) string {
			return t.Format(layout)
		},
		"enabled": func(on bool) string {
			if on {
				return "Enabled"
			}

			return "Disabled"
		},
		"orDefault": func(fallback string, values ...string) string {
			for _, value := range values {
				if strings.TrimSpace(value) != "" {
					return value
				}
			}

			return fallback
		},
	}
}

// Parse compiles a named template with the report function map.
func Parse(name, text string) (*template.Template, error) {
	tmpl, err := template.New(name).Option("missingkey=error").Funcs(Funcs()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	return tmpl, nil
}

// Must is Parse that panics, for templates compiled into the binary.
func Must(name, text string) *template.Template {
	tmpl, err := Parse(name, text)
	if err != nil {
		panic(err)
	}

	return tmpl
}

// Execute renders tmpl against data.
func Execute(tmpl *template.Template, data any) (string, error) {
	var buf strings.Builder

	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("failed to execute template '%s': %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

// Render parses and executes templateStr in one step.
func Render(templateStr string, data any) (string, error) {
	tmpl, err := Parse("report", templateStr)
	if err != nil {
		return "", err
	}

	return Execute(tmpl, data)
}

// Truncate shortens s to limit characters, appending "..." when anything was cut.
func Truncate(limit int, s string) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)

	return string(runes[:limit]) + "..."
}
