package model

import (
	"fmt"
	"strings"
)

// MissingFieldsError lists every required request field that was not supplied.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("request missing required fields: %s", strings.Join(e.Fields, ", "))
}

// Request is one RestClient request block.
type Request struct {
	Name    string
	Method  Method
	URL     string
	Headers KeyValues
	Query   KeyValues
	Body    Body
}

// NewRequest validates required fields and returns an immutable request record.
// A nil body becomes EmptyBody.
func NewRequest(name string, method Method, url string, headers, query KeyValues, body Body) (Request, error) {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if method == "" {
		missing = append(missing, "method")
	}
	if url == "" {
		missing = append(missing, "url")
	}
	if len(missing) > 0 {
		return Request{}, &MissingFieldsError{Fields: missing}
	}

	if body == nil {
		body = EmptyBody{}
	}

	return Request{
		Name:    name,
		Method:  method,
		URL:     url,
		Headers: append(KeyValues(nil), headers...),
		Query:   append(KeyValues(nil), query...),
		Body:    body,
	}, nil
}
