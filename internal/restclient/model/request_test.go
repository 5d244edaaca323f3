package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestNewRequestDefaultsBody(t *testing.T) {
	t.Parallel()

	request, err := NewRequest("users", MethodGet, "https://api.example.com/users", nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	if _, ok := request.Body.(EmptyBody); !ok {
		t.Fatalf("Body = %#v, want EmptyBody", request.Body)
	}
}

func TestNewRequestListsAllMissingFields(t *testing.T) {
	t.Parallel()

	_, err := NewRequest("", "", "", nil, nil, nil)

	var missing *MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("error = %v, want *MissingFieldsError", err)
	}
	if !reflect.DeepEqual(missing.Fields, []string{"name", "method", "url"}) {
		t.Fatalf("Fields = %#v", missing.Fields)
	}
}

func TestNewRequestCopiesSlices(t *testing.T) {
	t.Parallel()

	headers := KeyValues{{Key: "Accept", Value: "application/json"}}
	request, err := NewRequest("users", MethodGet, "https://api.example.com/users", headers, nil, nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}

	headers[0].Value = "text/plain"
	if got, _ := request.Headers.Get("Accept"); got != "application/json" {
		t.Fatalf("Accept = %q, record was mutated through caller slice", got)
	}
}

func TestKeyValuesGetFold(t *testing.T) {
	t.Parallel()

	values := KeyValues{
		{Key: "content-type", Value: "text/plain"},
		{Key: "Content-Type", Value: "application/json"},
	}

	got, ok := values.GetFold("CONTENT-TYPE")
	if !ok || got != "application/json" {
		t.Fatalf("GetFold() = %q, %v", got, ok)
	}
	if values.HasFold("Accept") {
		t.Fatal("expected Accept to be absent")
	}
}

func TestBodyImpliedHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body Body
		want KeyValues
	}{
		{name: "empty", body: EmptyBody{}, want: nil},
		{name: "raw without type", body: RawBody{Text: "x"}, want: nil},
		{name: "raw json", body: RawBody{Text: "{}", ContentType: "application/json"}, want: KeyValues{{Key: "Content-Type", Value: "application/json"}}},
		{name: "file", body: FileBody{Path: "a.bin"}, want: nil},
		{name: "urlencoded", body: URLEncodedBody{}, want: KeyValues{{Key: "Content-Type", Value: "application/x-www-form-urlencoded"}}},
		{name: "formdata", body: FormDataBody{}, want: KeyValues{{Key: "Content-Type", Value: "multipart/form-data; boundary=" + FormDataBoundary}}},
		{name: "graphql", body: GraphQLBody{Query: "{ a }"}, want: KeyValues{{Key: "X-Request-Type", Value: "GraphQL"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.body.ImpliedHeaders(); !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ImpliedHeaders() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
