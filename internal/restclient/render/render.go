package render

import (
	"net/url"
	"path"
	"strings"

	"github.com/jacoelho/pm2http/internal/restclient/model"
)

const (
	// Separator starts every request block.
	Separator   = "#####"
	httpVersion = "http/1.1"
	queryIndent = "    "
)

// Document renders file-level variables followed by one block per request.
// Blocks are separated by a blank line. Output depends only on the input.
func Document(variables model.KeyValues, requests []model.Request) string {
	var builder strings.Builder

	for _, variable := range variables {
		builder.WriteString("@")
		builder.WriteString(variable.Key)
		builder.WriteString(" = ")
		builder.WriteString(variable.Value)
		builder.WriteString("\n")
	}
	if len(variables) > 0 && len(requests) > 0 {
		builder.WriteString("\n")
	}

	for i, request := range requests {
		if i > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(Request(request))
	}

	return builder.String()
}

// Request renders one request block, newline-terminated.
func Request(request model.Request) string {
	var builder strings.Builder

	builder.WriteString(Separator)
	builder.WriteString("\n# @name ")
	builder.WriteString(request.Name)
	builder.WriteString("\n\n")

	writeRequestLine(&builder, request)

	for _, header := range request.Headers {
		builder.WriteString(header.Key)
		builder.WriteString(": ")
		builder.WriteString(header.Value)
		builder.WriteString("\n")
	}

	if body := Body(request.Body); body != "" {
		builder.WriteString("\n")
		builder.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			builder.WriteString("\n")
		}
	}

	return builder.String()
}

// writeRequestLine emits the method and URL, with query parameters as
// continuation lines. The HTTP version always ends the last line.
func writeRequestLine(builder *strings.Builder, request model.Request) {
	builder.WriteString(request.Method.String())
	builder.WriteString(" ")
	builder.WriteString(request.URL)

	for i, param := range request.Query {
		builder.WriteString("\n")
		builder.WriteString(queryIndent)
		if i == 0 {
			builder.WriteString("?")
		} else {
			builder.WriteString("&")
		}
		builder.WriteString(encodeFormComponentPreserveTemplates(param.Key))
		builder.WriteString("=")
		builder.WriteString(encodeFormComponentPreserveTemplates(param.Value))
	}

	builder.WriteString(" ")
	builder.WriteString(httpVersion)
	builder.WriteString("\n")
}

// Body renders the body section text, or "" for an empty body.
func Body(body model.Body) string {
	switch b := body.(type) {
	case model.RawBody:
		return b.Text
	case model.FileBody:
		return "< " + b.Path
	case model.URLEncodedBody:
		parts := make([]string, 0, len(b.Params))
		for _, param := range b.Params {
			parts = append(parts, encodeFormComponentPreserveTemplates(param.Key)+"="+encodeFormComponentPreserveTemplates(param.Value))
		}
		return strings.Join(parts, "\n&")
	case model.GraphQLBody:
		if b.Variables == nil || strings.TrimSpace(*b.Variables) == "" {
			return b.Query
		}
		return b.Query + "\n\n" + *b.Variables
	case model.FormDataBody:
		return formData(b)
	default:
		return ""
	}
}

func formData(body model.FormDataBody) string {
	var builder strings.Builder
	delimiter := "--" + model.FormDataBoundary

	writePart := func(field model.FormField, file string) {
		builder.WriteString(delimiter)
		builder.WriteString("\nContent-Disposition: form-data; name=\"")
		builder.WriteString(field.Name)
		builder.WriteString("\"")
		if file != "" {
			builder.WriteString("; filename=\"")
			builder.WriteString(path.Base(file))
			builder.WriteString("\"")
		}
		builder.WriteString("\n")
		if field.ContentType != "" {
			builder.WriteString("Content-Type: ")
			builder.WriteString(field.ContentType)
			builder.WriteString("\n")
		}
		builder.WriteString("\n")
		if file != "" {
			builder.WriteString("< ")
			builder.WriteString(file)
		} else {
			builder.WriteString(field.Value.Text)
		}
		builder.WriteString("\n")
	}

	for _, field := range body.Fields {
		if !field.Value.IsFile() {
			writePart(field, "")
			continue
		}
		for _, file := range field.Value.Files {
			writePart(field, file)
		}
	}

	builder.WriteString(delimiter)
	builder.WriteString("--\n")

	return builder.String()
}

// encodeFormComponentPreserveTemplates query-escapes input while leaving
// {{...}} placeholders intact.
func encodeFormComponentPreserveTemplates(input string) string {
	if input == "" {
		return ""
	}

	var builder strings.Builder
	remaining := input
	for len(remaining) > 0 {
		start := strings.Index(remaining, "{{")
		if start < 0 {
			builder.WriteString(url.QueryEscape(remaining))
			break
		}

		builder.WriteString(url.QueryEscape(remaining[:start]))
		remaining = remaining[start:]

		end := strings.Index(remaining, "}}")
		if end < 0 {
			builder.WriteString(url.QueryEscape(remaining))
			break
		}

		end += len("}}")
		builder.WriteString(remaining[:end])
		remaining = remaining[end:]
	}

	return builder.String()
}
