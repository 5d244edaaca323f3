package template

import (
	"regexp"
	"strings"
)

var (
	placeholderPattern  = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)
	pathVariablePattern = regexp.MustCompile(`/:([^/?#]+)`)
)

// Diagnostic reports placeholder patterns that cannot be safely normalized.
type Diagnostic struct {
	Placeholder string
	Reason      string
}

// dynamicVariables maps source dynamic variables onto RestClient system variables.
var dynamicVariables = map[string]string{
	"$guid":         "$guid",
	"$randomuuid":   "$guid",
	"$timestamp":    "$timestamp",
	"$isotimestamp": "$datetime iso8601",
	"$randomint":    "$randomInt 0 1000",
}

// RewritePathVariables rewrites every `:name` path segment into `{{name}}`.
// A segment ends at the next `/`, the query or fragment delimiter, or the end of input.
func RewritePathVariables(input string) string {
	return pathVariablePattern.ReplaceAllString(input, "/{{${1}}}")
}

// Normalize rewrites source placeholders into RestClient-compatible variables.
func Normalize(input string) string {
	normalized, _ := NormalizeDetailed(input)
	return normalized
}

// NormalizeDetailed rewrites placeholders and reports unsupported forms.
// Plain variables share the same syntax and are left untouched.
func NormalizeDetailed(input string) (string, []Diagnostic) {
	matches := placeholderPattern.FindAllStringSubmatchIndex(input, -1)
	if len(matches) == 0 {
		return input, nil
	}

	var diagnostics []Diagnostic
	var builder strings.Builder
	builder.Grow(len(input))

	last := 0
	for _, match := range matches {
		start, end := match[0], match[1]
		innerStart, innerEnd := match[2], match[3]

		builder.WriteString(input[last:start])

		inner := strings.TrimSpace(input[innerStart:innerEnd])
		normalized, reason := normalizeInner(inner)
		if normalized == "" {
			builder.WriteString(input[start:end])
		} else {
			builder.WriteString(normalized)
		}

		if reason != "" {
			diagnostics = append(diagnostics, Diagnostic{
				Placeholder: input[start:end],
				Reason:      reason,
			})
		}

		last = end
	}

	builder.WriteString(input[last:])
	return builder.String(), diagnostics
}

// normalizeInner returns the replacement placeholder, or "" to keep the source text.
func normalizeInner(inner string) (string, string) {
	if !strings.HasPrefix(inner, "$") {
		return "", ""
	}

	if mapped, ok := dynamicVariables[strings.ToLower(inner)]; ok {
		return "{{" + mapped + "}}", ""
	}

	return "", "unsupported dynamic variable"
}
