package requestmap

import (
	"net/url"
	"strings"

	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/pm/template"
	"github.com/jacoelho/pm2http/internal/restclient/model"
)

// convertURL rewrites path variables and moves query parameters out of the raw URL.
// The structured query list is used only when the raw URL carries no query of its own.
func convertURL(value *ast.URLValue) (string, model.KeyValues, error) {
	if value == nil || value.Raw == nil {
		return "", nil, missingField("url", "url not present")
	}

	raw := template.RewritePathVariables(*value.Raw)

	var explicit model.KeyValues
	if value.Structured && !strings.Contains(raw, "?") {
		for _, param := range value.Query {
			if param.Disabled {
				continue
			}
			entry := model.KeyValue{Key: param.Key}
			if param.Value != nil {
				entry.Value = *param.Value
			}
			explicit = append(explicit, entry)
		}
	}

	base, query := ExtractQuery(raw, explicit)
	return base, query, nil
}

// ExtractQuery truncates url at the first '?' and appends the decoded
// query pairs to existing, in order. Repeated keys stay separate entries.
// A URL without '?' is returned unchanged with existing as the query.
func ExtractQuery(raw string, existing model.KeyValues) (string, model.KeyValues) {
	query := append(model.KeyValues(nil), existing...)

	index := strings.IndexByte(raw, '?')
	if index < 0 {
		return raw, query
	}

	base := raw[:index]
	rawQuery := raw[index+1:]
	if fragment := strings.IndexByte(rawQuery, '#'); fragment >= 0 {
		rawQuery = rawQuery[:fragment]
	}

	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		query = append(query, model.KeyValue{
			Key:   decodeQueryComponent(key),
			Value: decodeQueryComponent(value),
		})
	}

	return base, query
}

func decodeQueryComponent(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}
