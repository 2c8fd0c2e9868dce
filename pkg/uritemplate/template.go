// Package uritemplate resolves concrete resource URIs against declared
// templates with {placeholder} segments and extracts the placeholder values.
package uritemplate

import (
	"fmt"
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Template is a compiled URI template. Matching is anchored on both ends:
// literal text before and after a placeholder must appear exactly, so a
// placeholder can never silently swallow a trailing static suffix.
type Template struct {
	raw     string
	names   []string
	pattern *regexp.Regexp
}

// Compile converts a declared URI template into a matcher. Every
// {placeholder} segment becomes a greedy, non-empty capture; literal
// segments match exactly. A template with no placeholders is an error;
// literal URIs belong in the direct lookup path, not the template scan.
func Compile(raw string) (*Template, error) {
	locs := placeholderPattern.FindAllStringSubmatchIndex(raw, -1)
	if len(locs) == 0 {
		return nil, fmt.Errorf("template %q has no placeholders", raw)
	}

	var names []string
	var pattern strings.Builder
	pattern.WriteString("^")

	last := 0
	for _, loc := range locs {
		pattern.WriteString(regexp.QuoteMeta(raw[last:loc[0]]))
		name := raw[loc[2]:loc[3]]
		for _, seen := range names {
			if seen == name {
				return nil, fmt.Errorf("template %q repeats placeholder %q", raw, name)
			}
		}
		names = append(names, name)
		pattern.WriteString("(.+)")
		last = loc[1]
	}
	pattern.WriteString(regexp.QuoteMeta(raw[last:]))
	pattern.WriteString("$")

	re, err := regexp.Compile(pattern.String())
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", raw, err)
	}

	return &Template{raw: raw, names: names, pattern: re}, nil
}

// MustCompile is Compile for templates known valid at build time.
func MustCompile(raw string) *Template {
	t, err := Compile(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// Match reports whether uri matches the template end-to-end. On a match it
// returns the captured substrings positionally, in placeholder order.
func (t *Template) Match(uri string) ([]string, bool) {
	m := t.pattern.FindStringSubmatch(uri)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}

// Names returns the placeholder names in declaration order.
func (t *Template) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Raw returns the template string as declared.
func (t *Template) Raw() string {
	return t.raw
}

// Params zips the captured values with the placeholder names.
func (t *Template) Params(captures []string) map[string]string {
	params := make(map[string]string, len(t.names))
	for i, name := range t.names {
		if i < len(captures) {
			params[name] = captures[i]
		}
	}
	return params
}
