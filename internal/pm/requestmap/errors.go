package requestmap

import (
	"errors"

	"github.com/jacoelho/pm2http/internal/pm/diagnostics"
	"github.com/jacoelho/pm2http/internal/pm/report"
)

// Failure kinds. Every *Error unwraps to exactly one of these.
var (
	ErrMissingField = errors.New("missing required field")
	ErrInvalidValue = errors.New("invalid value")
	ErrAmbiguous    = errors.New("ambiguous specification")
	ErrEmpty        = errors.New("empty after filtering")
	ErrUnsupported  = errors.New("unsupported variant")
	ErrStructural   = errors.New("invalid request shape")
)

var errorKinds = map[diagnostics.Code]error{
	diagnostics.CodeMissingField:           ErrMissingField,
	diagnostics.CodeInvalidValue:           ErrInvalidValue,
	diagnostics.CodeAmbiguousSpecification: ErrAmbiguous,
	diagnostics.CodeEmptyAfterFiltering:    ErrEmpty,
	diagnostics.CodeUnsupportedVariant:     ErrUnsupported,
	diagnostics.CodeInvalidRequestShape:    ErrStructural,
}

// Error describes why one request could not be converted.
type Error struct {
	Code    diagnostics.Code
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return errorKinds[e.Code]
}

// Issue converts the error into a report diagnostic.
func (e *Error) Issue() report.Issue {
	return diagnostics.NewIssue(e.Code, e.Message)
}

func missingField(field, message string) *Error {
	return &Error{Code: diagnostics.CodeMissingField, Field: field, Message: message}
}

func invalidValue(field, message string) *Error {
	return &Error{Code: diagnostics.CodeInvalidValue, Field: field, Message: message}
}

func ambiguous(field, message string) *Error {
	return &Error{Code: diagnostics.CodeAmbiguousSpecification, Field: field, Message: message}
}

func emptyAfterFiltering(field, message string) *Error {
	return &Error{Code: diagnostics.CodeEmptyAfterFiltering, Field: field, Message: message}
}

func unsupported(field, message string) *Error {
	return &Error{Code: diagnostics.CodeUnsupportedVariant, Field: field, Message: message}
}

func structural(field, message string) *Error {
	return &Error{Code: diagnostics.CodeInvalidRequestShape, Field: field, Message: message}
}
