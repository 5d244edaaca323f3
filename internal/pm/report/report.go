package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/jacoelho/pm2http/internal/pm/diagnostics"
)

// Format determines how summaries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a report format name. Empty selects text.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON, FormatYAML:
		return Format(value), nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", value)
	}
}

// IssueCode classifies conversion failures and limitations.
type IssueCode = diagnostics.Code

const (
	CodeMissingField                   = diagnostics.CodeMissingField
	CodeInvalidValue                   = diagnostics.CodeInvalidValue
	CodeAmbiguousSpecification         = diagnostics.CodeAmbiguousSpecification
	CodeEmptyAfterFiltering            = diagnostics.CodeEmptyAfterFiltering
	CodeUnsupportedVariant             = diagnostics.CodeUnsupportedVariant
	CodeInvalidRequestShape            = diagnostics.CodeInvalidRequestShape
	CodeAuthNotMapped                  = diagnostics.CodeAuthNotMapped
	CodeScriptNotMapped                = diagnostics.CodeScriptNotMapped
	CodeTemplatePlaceholderUnsupported = diagnostics.CodeTemplatePlaceholderUnsupported
)

// Issue captures a specific conversion warning/error.
type Issue = diagnostics.Issue

// HasErrors reports whether any issue is error-severity.
func HasErrors(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Severity == diagnostics.SeverityError {
			return true
		}
	}

	return false
}

// RequestResult is the per-request conversion outcome.
type RequestResult struct {
	SourcePath string  `json:"source_path" yaml:"source_path"`
	Name       string  `json:"name,omitempty" yaml:"name,omitempty"`
	Converted  bool    `json:"converted" yaml:"converted"`
	Issues     []Issue `json:"issues,omitempty" yaml:"issues,omitempty"`
}

// Summary aggregates outcomes across the full collection conversion.
type Summary struct {
	CollectionName string            `json:"collection_name,omitempty" yaml:"collection_name,omitempty"`
	CollectionID   string            `json:"collection_id,omitempty" yaml:"collection_id,omitempty"`
	OutputPath     string            `json:"output_path,omitempty" yaml:"output_path,omitempty"`
	Total          int               `json:"total" yaml:"total"`
	Converted      int               `json:"converted" yaml:"converted"`
	Partial        int               `json:"partial" yaml:"partial"`
	Skipped        int               `json:"skipped" yaml:"skipped"`
	ByCode         map[IssueCode]int `json:"by_code,omitempty" yaml:"by_code,omitempty"`
	Requests       []RequestResult   `json:"requests,omitempty" yaml:"requests,omitempty"`
}

// HasErrors reports whether the summary contains any error-severity issue.
func (s Summary) HasErrors() bool {
	for _, request := range s.Requests {
		if HasErrors(request.Issues) {
			return true
		}
	}

	return false
}

// Add records one request result into the summary.
func (s *Summary) Add(result RequestResult) {
	s.Total++
	if s.ByCode == nil {
		s.ByCode = make(map[IssueCode]int)
	}

	for _, issue := range result.Issues {
		s.ByCode[issue.Code]++
	}

	s.Requests = append(s.Requests, result)

	switch {
	case !result.Converted:
		s.Skipped++
	case len(result.Issues) > 0:
		s.Partial++
	default:
		s.Converted++
	}
}

// Hints returns follow-up guidance ranked by how often each code occurred.
func (s Summary) Hints() []string {
	hintsByCode := map[IssueCode]string{
		CodeAuthNotMapped:                  "Define Authorization headers manually for auth types without a direct header mapping.",
		CodeScriptNotMapped:                "Port pre-request and test scripts by hand; RestClient files carry no script runtime.",
		CodeTemplatePlaceholderUnsupported: "Replace unsupported dynamic variables with RestClient system variables such as {{$guid}} or {{$timestamp}}.",
		CodeUnsupportedVariant:             "Rewrite unsupported body modes or form-data part types as raw bodies.",
		CodeAmbiguousSpecification:         "Keep exactly one of src or content on file bodies.",
	}

	type pair struct {
		code  IssueCode
		count int
	}
	var ranked []pair
	for code, count := range s.ByCode {
		if _, ok := hintsByCode[code]; !ok {
			continue
		}
		ranked = append(ranked, pair{code: code, count: count})
	}

	slices.SortFunc(ranked, func(a, b pair) int {
		if a.count == b.count {
			if a.code < b.code {
				return -1
			}
			if a.code > b.code {
				return 1
			}
			return 0
		}
		if a.count > b.count {
			return -1
		}
		return 1
	})

	hints := make([]string, 0, len(ranked))
	for _, entry := range ranked {
		hints = append(hints, hintsByCode[entry.code])
	}

	return hints
}

// Write prints the summary in the requested format.
func (s Summary) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(s)
	case FormatYAML:
		data, err := yaml.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode yaml summary: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatText, "":
		return s.writeText(w)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func (s Summary) writeText(w io.Writer) error {
	writef := func(format string, args ...any) error {
		if _, err := fmt.Fprintf(w, format, args...); err != nil {
			return err
		}
		return nil
	}

	title := "Collection conversion summary"
	if s.CollectionName != "" {
		title += ": " + s.CollectionName
	}
	if err := writef("%s\n", title); err != nil {
		return err
	}
	if s.OutputPath != "" {
		if err := writef("  output: %s\n", s.OutputPath); err != nil {
			return err
		}
	}
	if err := writef("  total requests: %d\n", s.Total); err != nil {
		return err
	}
	if err := writef("  converted: %d\n", s.Converted); err != nil {
		return err
	}
	if err := writef("  partial: %d\n", s.Partial); err != nil {
		return err
	}
	if err := writef("  skipped: %d\n", s.Skipped); err != nil {
		return err
	}

	if len(s.ByCode) > 0 {
		if err := writef("\nIssues by code:\n"); err != nil {
			return err
		}
		codes := make([]IssueCode, 0, len(s.ByCode))
		for code := range s.ByCode {
			codes = append(codes, code)
		}
		slices.Sort(codes)
		for _, code := range codes {
			if err := writef("  - %s: %d\n", code, s.ByCode[code]); err != nil {
				return err
			}
		}
	}

	hints := s.Hints()
	if len(hints) > 0 {
		if err := writef("\nNext steps:\n"); err != nil {
			return err
		}
		for _, hint := range hints {
			if err := writef("  - %s\n", hint); err != nil {
				return err
			}
		}
	}

	return nil
}
