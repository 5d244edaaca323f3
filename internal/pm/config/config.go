package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/jacoelho/pm2http/internal/logging"
	"github.com/jacoelho/pm2http/internal/pm/report"
)

// Option keys shared by flags, environment variables and config files.
const (
	KeyConfig      = "config"
	KeyPostmanFile = "postman-file"
	KeyOutputFile  = "output-file"
	KeyReport      = "report"
	KeyDryRun      = "dry-run"
	KeyDiff        = "diff"
	KeyStrict      = "strict"
	KeyLogLevel    = "log-level"
	KeyLogFormat   = "log-format"
)

const (
	// EnvPrefix namespaces environment overrides, e.g. PM2HTTP_POSTMAN_FILE.
	EnvPrefix = "PM2HTTP"
	// DefaultPostmanFile is read when no input is given.
	DefaultPostmanFile = "input.json"
)

var (
	ErrMissingInput        = errors.New("--postman-file is required")
	ErrOutputIsInput       = errors.New("--output-file must differ from --postman-file")
	ErrInvalidReportFormat = errors.New("--report must be one of: text, json, yaml")
	ErrInvalidLogging      = errors.New("invalid logging options")
)

// Config defines resolved options for one conversion run.
type Config struct {
	InputFile    string
	OutputFile   string
	ReportFormat report.Format
	DryRun       bool
	Diff         bool
	Strict       bool
	LogLevel     string
	LogFormat    string
}

// RegisterFlags adds every conversion option to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(KeyConfig, "", "Config file with option overrides (json, yaml or toml)")
	fs.StringP(KeyPostmanFile, "f", DefaultPostmanFile, "Path to the source collection JSON file")
	fs.StringP(KeyOutputFile, "o", "", "Output .http file (default: input path with the last .json replaced by .http)")
	fs.String(KeyReport, string(report.FormatText), "Report format: text, json or yaml")
	fs.Bool(KeyDryRun, false, "Convert without writing the output file")
	fs.Bool(KeyDiff, false, "Print a unified diff against the existing output instead of writing")
	fs.Bool(KeyStrict, false, "Exit with an error when any request fails to convert")
	fs.String(KeyLogLevel, "warn", "Log level: debug, info, warn or error")
	fs.String(KeyLogFormat, string(logging.FormatText), "Log format: text or json")
}

// NewViper binds fs, PM2HTTP_* environment variables and the optional config file.
// Flags set on the command line take precedence over every other source.
func NewViper(fs *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if configFile := v.GetString(KeyConfig); configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", configFile, err)
		}
	}

	return v, nil
}

// Load resolves and validates options from v.
func Load(v *viper.Viper) (*Config, error) {
	input := strings.TrimSpace(v.GetString(KeyPostmanFile))
	if input == "" {
		return nil, ErrMissingInput
	}
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("input file not accessible: %w", err)
	}

	output := strings.TrimSpace(v.GetString(KeyOutputFile))
	if output == "" {
		output = DefaultOutputFile(input)
	}
	if filepath.Clean(output) == filepath.Clean(input) {
		return nil, ErrOutputIsInput
	}

	reportFormat, err := report.ParseFormat(strings.ToLower(strings.TrimSpace(v.GetString(KeyReport))))
	if err != nil {
		return nil, fmt.Errorf("%w, got: %s", ErrInvalidReportFormat, v.GetString(KeyReport))
	}

	logLevel := v.GetString(KeyLogLevel)
	logFormat := v.GetString(KeyLogFormat)
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLogging, err)
	}
	if _, err := logging.ParseFormat(logFormat); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLogging, err)
	}

	return &Config{
		InputFile:    input,
		OutputFile:   output,
		ReportFormat: reportFormat,
		DryRun:       v.GetBool(KeyDryRun),
		Diff:         v.GetBool(KeyDiff),
		Strict:       v.GetBool(KeyStrict),
		LogLevel:     logLevel,
		LogFormat:    logFormat,
	}, nil
}

// DefaultOutputFile replaces only the last ".json" in input with ".http".
// Inputs without ".json" get ".http" appended.
func DefaultOutputFile(input string) string {
	index := strings.LastIndex(input, ".json")
	if index < 0 {
		return input + ".http"
	}
	return input[:index] + ".http" + input[index+len(".json"):]
}
