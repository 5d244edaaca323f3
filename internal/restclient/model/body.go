package model

// FormDataBoundary separates multipart parts in rendered form-data bodies.
// It is fixed so repeated conversions produce identical output.
const FormDataBoundary = "----PM2HTTPFormBoundary7MA4YWxkTrZu0gW"

// BodyKind names the body variant.
type BodyKind string

const (
	BodyKindEmpty      BodyKind = "empty"
	BodyKindRaw        BodyKind = "raw"
	BodyKindFile       BodyKind = "file"
	BodyKindFormData   BodyKind = "formdata"
	BodyKindGraphQL    BodyKind = "graphql"
	BodyKindURLEncoded BodyKind = "urlencoded"
)

// Body is a request body. The set of implementations is closed.
type Body interface {
	Kind() BodyKind
	// ImpliedHeaders lists headers the body needs when the request does not set them.
	ImpliedHeaders() KeyValues
	isBody()
}

// EmptyBody is the absence of a request body.
type EmptyBody struct{}

// RawBody carries literal body text.
type RawBody struct {
	Text string
	// ContentType is derived from the source language hint, if any.
	ContentType string
}

// FileBody references a file whose content becomes the body.
type FileBody struct {
	Path string
}

// FormDataBody is a multipart/form-data body.
type FormDataBody struct {
	Fields []FormField
}

// GraphQLBody carries a GraphQL document and optional variables JSON text.
type GraphQLBody struct {
	Query     string
	Variables *string
}

// URLEncodedBody is an application/x-www-form-urlencoded body.
type URLEncodedBody struct {
	Params KeyValues
}

// FormField is one multipart part.
type FormField struct {
	Name        string
	ContentType string
	Value       FormValue
}

// FormValue is either inline text or one or more file references.
type FormValue struct {
	Text  string
	Files []string
}

// IsFile reports whether the value references files.
func (v FormValue) IsFile() bool {
	return len(v.Files) > 0
}

// TextValue builds an inline text form value.
func TextValue(text string) FormValue {
	return FormValue{Text: text}
}

// FileValue builds a file-reference form value.
func FileValue(files ...string) FormValue {
	return FormValue{Files: append([]string(nil), files...)}
}

func (EmptyBody) Kind() BodyKind      { return BodyKindEmpty }
func (RawBody) Kind() BodyKind        { return BodyKindRaw }
func (FileBody) Kind() BodyKind       { return BodyKindFile }
func (FormDataBody) Kind() BodyKind   { return BodyKindFormData }
func (GraphQLBody) Kind() BodyKind    { return BodyKindGraphQL }
func (URLEncodedBody) Kind() BodyKind { return BodyKindURLEncoded }

func (EmptyBody) ImpliedHeaders() KeyValues { return nil }
func (FileBody) ImpliedHeaders() KeyValues  { return nil }

func (b RawBody) ImpliedHeaders() KeyValues {
	if b.ContentType == "" {
		return nil
	}
	return KeyValues{{Key: "Content-Type", Value: b.ContentType}}
}

func (FormDataBody) ImpliedHeaders() KeyValues {
	return KeyValues{{Key: "Content-Type", Value: "multipart/form-data; boundary=" + FormDataBoundary}}
}

func (GraphQLBody) ImpliedHeaders() KeyValues {
	return KeyValues{{Key: "X-Request-Type", Value: "GraphQL"}}
}

func (URLEncodedBody) ImpliedHeaders() KeyValues {
	return KeyValues{{Key: "Content-Type", Value: "application/x-www-form-urlencoded"}}
}

func (EmptyBody) isBody()      {}
func (RawBody) isBody()        {}
func (FileBody) isBody()       {}
func (FormDataBody) isBody()   {}
func (GraphQLBody) isBody()    {}
func (URLEncodedBody) isBody() {}
