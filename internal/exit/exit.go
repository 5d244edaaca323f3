package exit

import (
	"fmt"
	"io"
)

// Process exit codes.
const (
	CodeSuccess = 0
	CodeFailure = 1
)

// Result holds the output destination and exit code for program termination.
type Result struct {
	Output   io.Writer
	ExitCode int
	Message  string
}

// Print writes the result message to the configured output destination.
func (r *Result) Print() {
	if r.Message == "" {
		return
	}
	fmt.Fprint(r.Output, r.Message)
}

// Success creates a silent result with exit code 0.
func Success(w io.Writer) *Result {
	return &Result{Output: w, ExitCode: CodeSuccess}
}

// Errorf creates a failure result with a formatted message and exit code 1.
func Errorf(w io.Writer, format string, a ...any) *Result {
	return &Result{
		Output:   w,
		ExitCode: CodeFailure,
		Message:  fmt.Sprintf(format, a...),
	}
}

// Skipped reports requests left out of the output. Under strict mode any
// skipped request fails the run.
func Skipped(w io.Writer, skipped int, strict bool) *Result {
	if skipped == 0 || !strict {
		return Success(w)
	}
	return Errorf(w, "Error: %d request(s) could not be converted\n", skipped)
}
