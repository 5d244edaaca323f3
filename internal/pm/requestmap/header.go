package requestmap

import (
	"fmt"
	"strings"

	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/restclient/model"
)

func convertHeaders(value *ast.HeaderValue) (model.KeyValues, error) {
	if value == nil {
		return nil, nil
	}
	if value.Line != nil {
		return headerFromLine(*value.Line)
	}

	var headers model.KeyValues
	for _, header := range value.Entries {
		if header.Disabled || strings.TrimSpace(header.Key) == "" {
			continue
		}
		headers = append(headers, model.KeyValue{Key: header.Key, Value: header.Value})
	}

	return headers, nil
}

// headerFromLine splits "Name: value" on the first colon.
func headerFromLine(line string) (model.KeyValues, error) {
	name, value, found := strings.Cut(line, ":")
	if !found || strings.TrimSpace(name) == "" {
		return nil, invalidValue("header", fmt.Sprintf("could not parse header %s", line))
	}

	return model.KeyValues{{
		Key:   strings.TrimSpace(name),
		Value: strings.TrimLeft(value, " \t"),
	}}, nil
}

// mergeHeaders appends extra entries whose names are not already set.
func mergeHeaders(headers, extra model.KeyValues) model.KeyValues {
	for _, header := range extra {
		if headers.HasFold(header.Key) {
			continue
		}
		headers = append(headers, header)
	}
	return headers
}
