package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	KeyInputEncoding            = "input.encoding"
	KeyInputDelimiter           = "input.delimiter"
	KeyExportDir                = "export.dir"
	KeyExportFormat             = "export.format"
	KeyResolverQuestionFallback = "resolver.question_fallback"
	KeyServePort                = "serve.port"
	KeyServeAllowedOrigins      = "serve.allowed_origins"
	KeyServeSessionTTL          = "serve.session_ttl"
	KeyServeMaxUploadMB         = "serve.max_upload_mb"
	KeyServeAllowPathLoad       = "serve.allow_path_load"
	KeyLogLevel                 = "log.level"
)

type Config struct {
	Input    InputConfig    `mapstructure:"input" yaml:"input"`
	Export   ExportConfig   `mapstructure:"export" yaml:"export"`
	Resolver ResolverConfig `mapstructure:"resolver" yaml:"resolver"`
	Serve    ServeConfig    `mapstructure:"serve" yaml:"serve"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
}

type InputConfig struct {
	Encoding  string `mapstructure:"encoding" yaml:"encoding" validate:"required,oneof=utf-8 utf8 shift_jis sjis cp932"`
	Delimiter string `mapstructure:"delimiter" yaml:"delimiter" validate:"required"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir" yaml:"dir" validate:"required"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=txt csv excel"`
}

type ResolverConfig struct {
	QuestionFallback string `mapstructure:"question_fallback" yaml:"question_fallback" validate:"required,oneof=suffix exact"`
}

type ServeConfig struct {
	Port           int           `mapstructure:"port" yaml:"port" validate:"min=1,max=65535"`
	AllowedOrigins []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	SessionTTL     time.Duration `mapstructure:"session_ttl" yaml:"session_ttl" validate:"min=0"`
	MaxUploadMB    int64         `mapstructure:"max_upload_mb" yaml:"max_upload_mb" validate:"min=1"`
	AllowPathLoad  bool          `mapstructure:"allow_path_load" yaml:"allow_path_load"`
}

type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c InputConfig) DelimiterRune() rune {
	if c.Delimiter == `\t` {
		return '\t'
	}
	r, _ := utf8.DecodeRuneInString(c.Delimiter)
	return r
}

// PathLoadEnabled reports whether the web UI may read files from a server-side
// path. It is always off once cross-origin requests are allowed.
func (c ServeConfig) PathLoadEnabled() bool {
	return c.AllowPathLoad && len(c.AllowedOrigins) == 0
}

// SlogLevel maps log.level onto a slog.Level.
func (c LogConfig) SlogLevel() slog.Level {
	switch strings.ToLower(c.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetDefaults sets default values if not provided
func SetDefaults() {
	setDefaults(viper.GetViper())
}

// LoadAndValidate loads config from Viper and validates it
func LoadAndValidate() (*Config, error) {
	return loadAndValidateFromViper(viper.GetViper())
}

// ValidateYAMLContent validates configuration from raw YAML content.
func ValidateYAMLContent(content []byte) (*Config, error) {
	local := viper.New()
	setDefaults(local)
	local.SetConfigType("yaml")
	if err := local.ReadConfig(bytes.NewReader(content)); err != nil {
		return nil, fmt.Errorf("read config content: %w", err)
	}
	return loadAndValidateFromViper(local)
}

// ExampleYAML returns the default configuration template.
func ExampleYAML() string {
	return `# quizdb configuration
input:
  # utf-8 (a leading BOM is accepted) or shift_jis
  encoding: "utf-8"
  delimiter: ","

export:
  dir: "."
  # txt | csv | excel
  format: "csv"

resolver:
  # suffix: any header ending in 問題文 can supply the question text
  # exact:  only a header that is exactly 問題文 after whitespace removal
  question_fallback: "suffix"

serve:
  port: 8501
  allowed_origins: []
  session_ttl: "2h"
  max_upload_mb: 32
  # let the page load a file by server path; ignored when allowed_origins is set
  allow_path_load: true

log:
  level: "info"
`
}

func loadAndValidateFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Input.Encoding = strings.ToLower(strings.TrimSpace(cfg.Input.Encoding))
	cfg.Export.Format = strings.ToLower(strings.TrimSpace(cfg.Export.Format))
	cfg.Resolver.QuestionFallback = strings.ToLower(strings.TrimSpace(cfg.Resolver.QuestionFallback))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))

	var problems []Problem
	if err := newValidator().Struct(cfg); err != nil {
		var fieldErrors validator.ValidationErrors
		if !errors.As(err, &fieldErrors) {
			return nil, fmt.Errorf("validation failed: %w", err)
		}
		for _, fieldError := range fieldErrors {
			problems = append(problems, problemFromFieldError(fieldError))
		}
	}
	if problem, ok := checkDelimiter(cfg.Input.Delimiter); !ok {
		problems = append(problems, problem)
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyInputEncoding, "utf-8")
	v.SetDefault(KeyInputDelimiter, ",")
	v.SetDefault(KeyExportDir, ".")
	v.SetDefault(KeyExportFormat, "csv")
	v.SetDefault(KeyResolverQuestionFallback, "suffix")
	v.SetDefault(KeyServePort, 8501)
	v.SetDefault(KeyServeAllowedOrigins, []string{})
	v.SetDefault(KeyServeSessionTTL, 2*time.Hour)
	v.SetDefault(KeyServeMaxUploadMB, 32)
	v.SetDefault(KeyServeAllowPathLoad, true)
	v.SetDefault(KeyLogLevel, "info")
}

func checkDelimiter(value string) (Problem, bool) {
	problem := Problem{Key: KeyInputDelimiter, Value: value}
	if value == `\t` {
		return problem, true
	}
	if utf8.RuneCountInString(value) != 1 {
		problem.Message = "must be a single character or \\t"
		return problem, false
	}
	switch value {
	case "\"", "\r", "\n":
		problem.Message = "must not be a quote or line break"
		return problem, false
	}
	return problem, true
}
