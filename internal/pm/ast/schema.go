package ast

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var schemaVersionPattern = regexp.MustCompile(`/collection/(v\d+\.\d+\.\d+)/`)

// SupportedVersion is the only collection schema version the converter accepts.
const SupportedVersion = "v2.1.0"

// Collection is the top-level collection export format.
type Collection struct {
	Info     Info       `json:"info"`
	Item     []Item     `json:"item"`
	Event    []Event    `json:"event"`
	Variable []Variable `json:"variable"`
	Auth     *Auth      `json:"auth"`
}

// Info carries collection metadata.
type Info struct {
	PostmanID string `json:"_postman_id"`
	Name      string `json:"name"`
	Schema    string `json:"schema"`
}

// Version extracts the schema version tag (for example "v2.1.0") from the schema URL.
func (i Info) Version() string {
	matches := schemaVersionPattern.FindStringSubmatch(i.Schema)
	if len(matches) != 2 {
		return ""
	}
	return matches[1]
}

// Item is either a folder (non-empty item list) or a request leaf.
type Item struct {
	Name    string        `json:"name"`
	Item    []Item        `json:"item"`
	Request *RequestValue `json:"request"`
	Event   []Event       `json:"event"`
	Auth    *Auth         `json:"auth"`
}

// RequestValue supports both the bare URL string and the structured request forms.
type RequestValue struct {
	URL  string
	Spec *Request
}

func (r *RequestValue) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode request string: %w", err)
		}
		*r = RequestValue{URL: raw}
		return nil
	}

	var spec Request
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("decode request object: %w", err)
	}
	*r = RequestValue{Spec: &spec}

	return nil
}

// Request defines a structured source HTTP request. Pointer fields are nil when absent.
type Request struct {
	Method *string      `json:"method"`
	URL    *URLValue    `json:"url"`
	Header *HeaderValue `json:"header"`
	Body   *Body        `json:"body"`
	Auth   *Auth        `json:"auth"`
}

// URLValue supports both string and object URL input forms.
type URLValue struct {
	Raw        *string
	Query      []QueryParam
	Structured bool
}

// URLObject is the structured URL representation.
type URLObject struct {
	Raw   *string      `json:"raw"`
	Query []QueryParam `json:"query"`
}

func (u *URLValue) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return fmt.Errorf("decode URL string: %w", err)
		}
		*u = URLValue{Raw: &raw}
		return nil
	}

	var object URLObject
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("decode URL object: %w", err)
	}
	*u = URLValue{Raw: object.Raw, Query: object.Query, Structured: true}

	return nil
}

// QueryParam defines a URL query parameter.
type QueryParam struct {
	Key      string  `json:"key"`
	Value    *string `json:"value"`
	Disabled bool    `json:"disabled"`
}

// HeaderValue supports both the header list and the single header string forms.
type HeaderValue struct {
	Entries []Header
	Line    *string
}

func (h *HeaderValue) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var line string
		if err := json.Unmarshal(data, &line); err != nil {
			return fmt.Errorf("decode header string: %w", err)
		}
		*h = HeaderValue{Line: &line}
		return nil
	}

	var entries []Header
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("decode header list: %w", err)
	}
	*h = HeaderValue{Entries: entries}

	return nil
}

// Header defines a request header.
type Header struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}

// Body defines supported request body forms.
type Body struct {
	Mode       *string           `json:"mode"`
	Disabled   bool              `json:"disabled"`
	Raw        *string           `json:"raw"`
	File       *BodyFile         `json:"file"`
	FormData   []FormParam       `json:"formdata"`
	URLEncoded []URLEncodedParam `json:"urlencoded"`
	GraphQL    json.RawMessage   `json:"graphql"`
	Options    *BodyOptions      `json:"options"`
}

// BodyFile defines file-mode body input metadata.
type BodyFile struct {
	Src     *string `json:"src"`
	Content *string `json:"content"`
}

// BodyOptions carries editor hints for the body.
type BodyOptions struct {
	Raw *RawOptions `json:"raw"`
}

// RawOptions describes the raw body language.
type RawOptions struct {
	Language string `json:"language"`
}

// FormParam is one multipart form-data entry.
type FormParam struct {
	Key         string      `json:"key"`
	Value       *string     `json:"value"`
	Type        *string     `json:"type"`
	Src         *FileSource `json:"src"`
	ContentType *string     `json:"contentType"`
	Disabled    bool        `json:"disabled"`
}

// FileSource accepts a single file name or a list of file names.
type FileSource struct {
	Files []string
}

func (f *FileSource) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var file string
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("decode file source: %w", err)
		}
		*f = FileSource{Files: []string{file}}
		return nil
	}

	var files []string
	if err := json.Unmarshal(data, &files); err != nil {
		return fmt.Errorf("decode file source list: %w", err)
	}
	*f = FileSource{Files: files}

	return nil
}

// URLEncodedParam is one application/x-www-form-urlencoded entry.
type URLEncodedParam struct {
	Key      string  `json:"key"`
	Value    *string `json:"value"`
	Disabled bool    `json:"disabled"`
}

// Auth is a request, folder or collection authentication definition.
type Auth struct {
	Type   string      `json:"type"`
	Bearer []AuthParam `json:"bearer"`
	Basic  []AuthParam `json:"basic"`
	APIKey []AuthParam `json:"apikey"`
}

// Param returns the named attribute for the active auth type.
func (a Auth) Param(key string) (string, bool) {
	var params []AuthParam
	switch a.Type {
	case "bearer":
		params = a.Bearer
	case "basic":
		params = a.Basic
	case "apikey":
		params = a.APIKey
	}

	for _, param := range params {
		if param.Key == key {
			return param.String(), true
		}
	}
	return "", false
}

// AuthParam is one auth attribute; values may be any JSON scalar.
type AuthParam struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

func (p AuthParam) String() string {
	return scalarString(p.Value)
}

// Variable is a collection-level variable.
type Variable struct {
	Key      string `json:"key"`
	Value    any    `json:"value"`
	Disabled bool   `json:"disabled"`
}

func (v Variable) String() string {
	return scalarString(v.Value)
}

// Event represents request scripts/hooks.
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

// Script holds executable source lines.
type Script struct {
	Exec Lines `json:"exec"`
}

// Lines accepts a single string or a list of strings.
type Lines []string

func (l *Lines) UnmarshalJSON(data []byte) error {
	if isJSONString(data) {
		var line string
		if err := json.Unmarshal(data, &line); err != nil {
			return fmt.Errorf("decode script line: %w", err)
		}
		*l = Lines{line}
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return fmt.Errorf("decode script lines: %w", err)
	}
	*l = lines

	return nil
}

// HasCode reports whether any line holds non-whitespace content.
func (l Lines) HasCode() bool {
	for _, line := range l {
		if strings.TrimSpace(line) != "" {
			return true
		}
	}
	return false
}

func isJSONString(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func scalarString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(encoded)
	}
}
