package diagnostics

// Code classifies conversion failures and limitations.
type Code string

const (
	CodeMissingField                   Code = "missing_required_field"
	CodeInvalidValue                   Code = "invalid_value"
	CodeAmbiguousSpecification         Code = "ambiguous_specification"
	CodeEmptyAfterFiltering            Code = "empty_after_filtering"
	CodeUnsupportedVariant             Code = "unsupported_variant"
	CodeInvalidRequestShape            Code = "invalid_request_shape"
	CodeAuthNotMapped                  Code = "auth_not_mapped"
	CodeScriptNotMapped                Code = "script_not_mapped"
	CodeTemplatePlaceholderUnsupported Code = "template_placeholder_unsupported"
)

// Stage identifies the conversion pipeline stage where a diagnostic was raised.
type Stage string

const (
	StageNormalize  Stage = "normalize"
	StageRequestMap Stage = "requestmap"
	StageFiles      Stage = "files"
)

// Severity indicates diagnostic impact.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Definition is canonical metadata for one diagnostic code.
type Definition struct {
	Code            Code
	DefaultStage    Stage
	DefaultSeverity Severity
}

var definitions = map[Code]Definition{
	CodeMissingField: {
		Code:            CodeMissingField,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityError,
	},
	CodeInvalidValue: {
		Code:            CodeInvalidValue,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityError,
	},
	CodeAmbiguousSpecification: {
		Code:            CodeAmbiguousSpecification,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityError,
	},
	CodeEmptyAfterFiltering: {
		Code:            CodeEmptyAfterFiltering,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityError,
	},
	CodeUnsupportedVariant: {
		Code:            CodeUnsupportedVariant,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityError,
	},
	CodeInvalidRequestShape: {
		Code:            CodeInvalidRequestShape,
		DefaultStage:    StageNormalize,
		DefaultSeverity: SeverityError,
	},
	CodeAuthNotMapped: {
		Code:            CodeAuthNotMapped,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityWarning,
	},
	CodeScriptNotMapped: {
		Code:            CodeScriptNotMapped,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityWarning,
	},
	CodeTemplatePlaceholderUnsupported: {
		Code:            CodeTemplatePlaceholderUnsupported,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityWarning,
	},
}

// DefinitionFor resolves canonical metadata for a diagnostic code.
func DefinitionFor(code Code) Definition {
	if definition, ok := definitions[code]; ok {
		return definition
	}

	return Definition{
		Code:            code,
		DefaultStage:    StageRequestMap,
		DefaultSeverity: SeverityWarning,
	}
}

// Issue is a single conversion diagnostic.
type Issue struct {
	Code     Code     `json:"code" yaml:"code"`
	Stage    Stage    `json:"stage,omitempty" yaml:"stage,omitempty"`
	Path     string   `json:"path,omitempty" yaml:"path,omitempty"`
	Severity Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
	Message  string   `json:"message" yaml:"message"`
}

// NewIssue builds an issue using the code's default stage and severity.
func NewIssue(code Code, message string) Issue {
	definition := DefinitionFor(code)
	return Issue{
		Code:     code,
		Stage:    definition.DefaultStage,
		Severity: definition.DefaultSeverity,
		Message:  message,
	}
}
