package ast

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

const schemaV210 = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

func TestParse(t *testing.T) {
	t.Parallel()

	input := `
{
  "info": {
    "_postman_id": "2a1c9c1e-3f0a-4c55-9c1b-7b0c0e5f2a10",
    "name": "Sample",
    "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
  },
  "variable": [{"key": "host", "value": "localhost"}, {"key": "port", "value": 8080}],
  "item": [
    {
      "name": "Get user",
      "request": "https://api.example.com/users/:id"
    },
    {
      "name": "Users",
      "item": [
        {
          "name": "Create user",
          "request": {
            "method": "POST",
            "url": {
              "raw": "https://api.example.com/users",
              "query": [{"key": "expand", "value": "true"}]
            },
            "header": "Content-Type: application/json",
            "body": {"mode": "raw", "raw": "{}"}
          }
        },
        {
          "name": "Upload",
          "request": {
            "method": "PUT",
            "url": "https://api.example.com/upload",
            "header": [{"key": "X-Trace", "value": "1", "disabled": true}],
            "body": {
              "mode": "formdata",
              "formdata": [
                {"key": "one", "type": "file", "src": "a.png"},
                {"key": "many", "type": "file", "src": ["b.png", "c.png"]},
                {"key": "none", "type": "file", "src": null}
              ]
            }
          }
        }
      ]
    }
  ]
}
`

	collection, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if collection.Info.Version() != SupportedVersion {
		t.Fatalf("Version() = %q", collection.Info.Version())
	}
	if got := collection.Info.ID().String(); got != "2a1c9c1e-3f0a-4c55-9c1b-7b0c0e5f2a10" {
		t.Fatalf("ID() = %s", got)
	}
	if len(collection.Variable) != 2 || collection.Variable[1].String() != "8080" {
		t.Fatalf("variables = %#v", collection.Variable)
	}

	bare := collection.Item[0].Request
	if bare == nil || bare.Spec != nil || bare.URL != "https://api.example.com/users/:id" {
		t.Fatalf("bare request = %#v", bare)
	}

	create := collection.Item[1].Item[0].Request.Spec
	if create == nil {
		t.Fatal("expected structured request")
	}
	if create.URL == nil || !create.URL.Structured || *create.URL.Raw != "https://api.example.com/users" {
		t.Fatalf("url = %#v", create.URL)
	}
	if create.Header == nil || create.Header.Line == nil || *create.Header.Line != "Content-Type: application/json" {
		t.Fatalf("header = %#v", create.Header)
	}

	upload := collection.Item[1].Item[1].Request.Spec
	if len(upload.Header.Entries) != 1 || !upload.Header.Entries[0].Disabled {
		t.Fatalf("header entries = %#v", upload.Header.Entries)
	}
	formData := upload.Body.FormData
	if !reflect.DeepEqual(formData[0].Src.Files, []string{"a.png"}) {
		t.Fatalf("single src = %#v", formData[0].Src)
	}
	if !reflect.DeepEqual(formData[1].Src.Files, []string{"b.png", "c.png"}) {
		t.Fatalf("multi src = %#v", formData[1].Src)
	}
	if formData[2].Src != nil {
		t.Fatalf("null src = %#v", formData[2].Src)
	}
}

func TestParseDistinguishesAbsentAndEmptyFields(t *testing.T) {
	t.Parallel()

	input := `{
  "info": {"name": "c", "schema": "` + schemaV210 + `"},
  "item": [
    {"name": "a", "request": {"url": {"host": ["x"]}, "body": {"mode": "file", "file": {"content": ""}}}}
  ]
}`

	collection, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	spec := collection.Item[0].Request.Spec
	if spec.Method != nil {
		t.Fatalf("Method = %q, want absent", *spec.Method)
	}
	if spec.URL.Raw != nil {
		t.Fatalf("URL.Raw = %q, want absent", *spec.URL.Raw)
	}
	if spec.Header != nil {
		t.Fatalf("Header = %#v, want absent", spec.Header)
	}
	if spec.Body.File.Src != nil {
		t.Fatal("expected absent file src")
	}
	if spec.Body.File.Content == nil || *spec.Body.File.Content != "" {
		t.Fatalf("file content = %#v, want present empty string", spec.Body.File.Content)
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "malformed json", input: `{"info":`, want: ErrDecode},
		{name: "missing schema", input: `{"info": {"name": "c"}, "item": []}`, want: ErrUnsupportedVersion},
		{name: "v2.0.0", input: `{"info": {"name": "c", "schema": "https://schema.getpostman.com/json/collection/v2.0.0/collection.json"}, "item": []}`, want: ErrUnsupportedVersion},
		{name: "v1 layout", input: `{"id": "x", "name": "c", "requests": []}`, want: ErrUnsupportedVersion},
		{name: "missing items", input: `{"info": {"name": "c", "schema": "` + schemaV210 + `"}}`, want: ErrInvalidCollection},
		{name: "item without name", input: `{"info": {"name": "c", "schema": "` + schemaV210 + `"}, "item": [{"request": "http://x"}]}`, want: ErrInvalidCollection},
		{name: "numeric method", input: `{"info": {"name": "c", "schema": "` + schemaV210 + `"}, "item": [{"name": "a", "request": {"method": 1}}]}`, want: ErrInvalidCollection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(strings.NewReader(tt.input))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnsupportedVersionNamesVersion(t *testing.T) {
	t.Parallel()

	input := `{"info": {"name": "c", "schema": "https://schema.getpostman.com/json/collection/v2.0.0/collection.json"}, "item": []}`
	_, err := Parse(strings.NewReader(input))
	if err == nil || !strings.Contains(err.Error(), "v2.0.0") {
		t.Fatalf("error = %v, want version in message", err)
	}
}

func TestInfoIDFallsBackToNameBasedUUID(t *testing.T) {
	t.Parallel()

	info := Info{Name: "Sample", Schema: schemaV210, PostmanID: "not-a-uuid"}
	first := info.ID()
	second := info.ID()
	if first != second {
		t.Fatalf("ID() not stable: %s != %s", first, second)
	}
	if first.Version() != uuid.Version(5) {
		t.Fatalf("ID() version = %d, want 5", first.Version())
	}
}

func TestAuthParam(t *testing.T) {
	t.Parallel()

	auth := Auth{
		Type:   "basic",
		Basic:  []AuthParam{{Key: "username", Value: "alice"}, {Key: "password", Value: "secret"}},
		Bearer: []AuthParam{{Key: "token", Value: "ignored"}},
	}

	if got, ok := auth.Param("username"); !ok || got != "alice" {
		t.Fatalf("Param(username) = %q, %v", got, ok)
	}
	if _, ok := auth.Param("token"); ok {
		t.Fatal("expected bearer params to be ignored for basic auth")
	}
}
