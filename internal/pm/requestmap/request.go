package requestmap

import (
	"errors"
	"fmt"

	"github.com/jacoelho/pm2http/internal/pm/ast"
	"github.com/jacoelho/pm2http/internal/pm/diagnostics"
	"github.com/jacoelho/pm2http/internal/pm/normalize"
	"github.com/jacoelho/pm2http/internal/pm/report"
	"github.com/jacoelho/pm2http/internal/pm/template"
	"github.com/jacoelho/pm2http/internal/restclient/model"
)

// Result contains the conversion outcome for one source request.
// Exactly one of Request and Err is meaningful.
type Result struct {
	Request model.Request
	Err     error
	Issues  []report.Issue
}

// Converted reports whether the request mapped successfully.
func (r Result) Converted() bool {
	return r.Err == nil
}

func failed(err error) Result {
	result := Result{Err: err}

	var mapErr *Error
	if errors.As(err, &mapErr) {
		result.Issues = []report.Issue{mapErr.Issue()}
	}

	return result
}

// Request converts one leaf node into a request record. Checks run in the
// order url, method, headers, body and the first failure wins.
func Request(node normalize.RequestNode) Result {
	value := node.Item.Request
	if value == nil {
		return failed(structural("request", "request not present"))
	}

	var (
		method  model.Method
		url     string
		headers model.KeyValues
		query   model.KeyValues
		body    model.Body = model.EmptyBody{}
	)

	if value.Spec == nil {
		method = model.MethodGet
		url, query = ExtractQuery(template.RewritePathVariables(value.URL), nil)
	} else {
		spec := value.Spec

		var err error
		url, query, err = convertURL(spec.URL)
		if err != nil {
			return failed(err)
		}

		method, err = convertMethod(spec.Method)
		if err != nil {
			return failed(err)
		}

		headers, err = convertHeaders(spec.Header)
		if err != nil {
			return failed(err)
		}

		body, err = convertBody(spec.Body)
		if err != nil {
			return failed(err)
		}
	}

	var issues []report.Issue

	headers = mergeHeaders(headers, body.ImpliedHeaders())

	var authIssues []report.Issue
	headers, query, authIssues = applyAuth(node.Auth, headers, query)
	issues = append(issues, authIssues...)

	url, urlIssues := normalizeWithIssues(url, "url")
	issues = append(issues, urlIssues...)

	headers, headerIssues := normalizeKeyValues(headers, "header")
	issues = append(issues, headerIssues...)

	query, queryIssues := normalizeKeyValues(query, "query")
	issues = append(issues, queryIssues...)

	body, bodyIssues := normalizeBody(body)
	issues = append(issues, bodyIssues...)

	issues = append(issues, scriptIssues(node.Events)...)

	request, err := model.NewRequest(node.Name, method, url, headers, query, body)
	if err != nil {
		var missing *model.MissingFieldsError
		if errors.As(err, &missing) {
			return failed(missingField(missing.Fields[0], err.Error()))
		}
		return failed(err)
	}

	return Result{Request: request, Issues: issues}
}

func convertMethod(value *string) (model.Method, error) {
	if value == nil {
		return "", missingField("method", "method not present")
	}

	method, err := model.ParseMethod(*value)
	if err != nil {
		return "", invalidValue("method", fmt.Sprintf("invalid method: %s", *value))
	}

	return method, nil
}

func scriptIssues(events []ast.Event) []report.Issue {
	var issues []report.Issue
	seen := make(map[string]bool)
	for _, event := range events {
		if !event.Script.Exec.HasCode() || seen[event.Listen] {
			continue
		}
		seen[event.Listen] = true
		issues = append(issues, diagnostics.NewIssue(
			report.CodeScriptNotMapped,
			fmt.Sprintf("%s script was not mapped; RestClient files have no script runtime", event.Listen),
		))
	}
	return issues
}

func normalizeWithIssues(value string, field string) (string, []report.Issue) {
	normalized, tmplDiagnostics := template.NormalizeDetailed(value)
	return normalized, templateDiagnosticsToIssues(field, tmplDiagnostics)
}

func templateDiagnosticsToIssues(field string, tmplDiagnostics []template.Diagnostic) []report.Issue {
	if len(tmplDiagnostics) == 0 {
		return nil
	}

	issues := make([]report.Issue, 0, len(tmplDiagnostics))
	for _, diagnostic := range tmplDiagnostics {
		issues = append(issues, diagnostics.NewIssue(
			report.CodeTemplatePlaceholderUnsupported,
			fmt.Sprintf("unsupported template placeholder in %s: %s (%s)", field, diagnostic.Placeholder, diagnostic.Reason),
		))
	}

	return issues
}

func normalizeKeyValues(entries model.KeyValues, field string) (model.KeyValues, []report.Issue) {
	if len(entries) == 0 {
		return entries, nil
	}

	var issues []report.Issue
	out := make(model.KeyValues, 0, len(entries))
	for _, entry := range entries {
		value, valueIssues := normalizeWithIssues(entry.Value, fmt.Sprintf("%s[%s]", field, entry.Key))
		issues = append(issues, valueIssues...)
		out = append(out, model.KeyValue{Key: entry.Key, Value: value})
	}

	return out, issues
}

func normalizeBody(body model.Body) (model.Body, []report.Issue) {
	switch b := body.(type) {
	case model.RawBody:
		text, issues := normalizeWithIssues(b.Text, "body")
		b.Text = text
		return b, issues
	case model.FileBody:
		path, issues := normalizeWithIssues(b.Path, "body.file")
		b.Path = path
		return b, issues
	case model.URLEncodedBody:
		params, issues := normalizeKeyValues(b.Params, "body.urlencoded")
		b.Params = params
		return b, issues
	case model.FormDataBody:
		var issues []report.Issue
		fields := make([]model.FormField, 0, len(b.Fields))
		for _, field := range b.Fields {
			if !field.Value.IsFile() {
				text, textIssues := normalizeWithIssues(field.Value.Text, fmt.Sprintf("body.formdata[%s]", field.Name))
				issues = append(issues, textIssues...)
				field.Value = model.TextValue(text)
			}
			fields = append(fields, field)
		}
		b.Fields = fields
		return b, issues
	case model.GraphQLBody:
		if b.Variables == nil {
			return b, nil
		}
		variables, issues := normalizeWithIssues(*b.Variables, "body.graphql.variables")
		b.Variables = &variables
		return b, issues
	default:
		return body, nil
	}
}
