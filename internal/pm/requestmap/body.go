package requestmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/theory/jsonpath"

	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/restclient/model"
)

var (
	graphQLQueryPath     = mustParsePath("$.query")
	graphQLVariablesPath = mustParsePath("$.variables")
)

var rawLanguageContentTypes = map[string]string{
	"json":       "application/json",
	"xml":        "application/xml",
	"html":       "text/html",
	"text":       "text/plain",
	"javascript": "application/javascript",
}

func mustParsePath(expr string) *jsonpath.Path {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		panic(fmt.Sprintf("parse jsonpath %q: %v", expr, err))
	}
	return path
}

func convertBody(body *ast.Body) (model.Body, error) {
	if body == nil || body.Disabled {
		return model.EmptyBody{}, nil
	}
	if body.Mode == nil {
		return rawBody(body.Raw, body.Options)
	}

	mode := strings.ToLower(strings.TrimSpace(*body.Mode))
	switch mode {
	case "raw":
		return rawBody(body.Raw, body.Options)
	case "file":
		return fileBody(body.File)
	case "formdata":
		return formDataBody(body.FormData)
	case "graphql":
		return graphQLBody(body.GraphQL)
	case "urlencoded":
		return urlEncodedBody(body.URLEncoded)
	default:
		return nil, unsupported("body.mode", fmt.Sprintf("body mode %s not supported", mode))
	}
}

func rawBody(raw *string, options *ast.BodyOptions) (model.Body, error) {
	if raw == nil {
		return nil, missingField("body.raw", "raw body not provided")
	}

	body := model.RawBody{Text: *raw}
	if options != nil && options.Raw != nil {
		body.ContentType = rawLanguageContentTypes[strings.ToLower(options.Raw.Language)]
	}

	return body, nil
}

func fileBody(file *ast.BodyFile) (model.Body, error) {
	if file == nil {
		return nil, missingField("body.file", "file specification not present")
	}

	switch {
	case file.Src != nil && file.Content == nil:
		return model.FileBody{Path: *file.Src}, nil
	case file.Content != nil && file.Src == nil:
		return rawBody(file.Content, nil)
	default:
		return nil, ambiguous("body.file", "invalid file specification: exactly one of src or content is required")
	}
}

func formDataBody(params []ast.FormParam) (model.Body, error) {
	var fields []model.FormField
	for _, param := range params {
		if param.Disabled {
			continue
		}

		field, err := formField(param)
		if err != nil {
			return nil, err
		}
		fields = append(fields, field)
	}

	if len(fields) == 0 {
		return nil, emptyAfterFiltering("body.formdata", "form data not specified")
	}

	return model.FormDataBody{Fields: fields}, nil
}

func formField(param ast.FormParam) (model.FormField, error) {
	field := model.FormField{Name: param.Key}
	if param.ContentType != nil {
		field.ContentType = *param.ContentType
	}

	kind := "text"
	if param.Type != nil {
		kind = *param.Type
	}

	fieldPath := fmt.Sprintf("body.formdata[%s]", param.Key)
	switch kind {
	case "text":
		if param.Value == nil {
			return model.FormField{}, missingField(fieldPath+".value", "value for form data parameter of type text not specified")
		}
		field.Value = model.TextValue(*param.Value)
	case "file":
		if param.Src == nil || len(param.Src.Files) == 0 {
			return model.FormField{}, missingField(fieldPath+".src", "src field for parameter of type file not provided")
		}
		field.Value = model.FileValue(param.Src.Files...)
	default:
		return model.FormField{}, unsupported(fieldPath+".type", fmt.Sprintf("form data parameter of type %s not supported", kind))
	}

	return field, nil
}

func graphQLBody(payload json.RawMessage) (model.Body, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, missingField("body.graphql", "graphql specification not present")
	}

	var document any
	if err := json.Unmarshal(trimmed, &document); err != nil {
		return nil, invalidValue("body.graphql", fmt.Sprintf("could not decode graphql specification: %v", err))
	}

	queries := graphQLQueryPath.Select(document)
	if len(queries) == 0 {
		return nil, missingField("body.graphql.query", "graphql query not present")
	}
	query, ok := queries[0].(string)
	if !ok {
		return nil, invalidValue("body.graphql.query", "graphql query is not a string")
	}

	body := model.GraphQLBody{Query: query}
	if variables := graphQLVariablesPath.Select(document); len(variables) > 0 {
		if text, ok := variables[0].(string); ok {
			body.Variables = &text
		}
	}

	return body, nil
}

func urlEncodedBody(params []ast.URLEncodedParam) (model.Body, error) {
	var values model.KeyValues
	for _, param := range params {
		if param.Disabled {
			continue
		}
		entry := model.KeyValue{Key: param.Key}
		if param.Value != nil {
			entry.Value = *param.Value
		}
		values = append(values, entry)
	}

	if len(values) == 0 {
		return nil, emptyAfterFiltering("body.urlencoded", "url encoded parameters not specified")
	}

	return model.URLEncodedBody{Params: values}, nil
}
