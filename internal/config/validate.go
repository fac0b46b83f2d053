package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todue/internal/kv"
	"github.com/nibzard/todue/internal/utils"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "todue.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("load config schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // dotted path to the offending key
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateFile decodes a TOML config file generically and checks it against
// the embedded schema. It returns every violation found.
func ValidateFile(path string) ([]error, error) {
	var raw map[string]interface{}
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, err
	}
	return validateRaw(raw)
}

func validateRaw(raw map[string]interface{}) ([]error, error) {
	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}

	// Round-trip through JSON so the validator sees plain JSON types.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("marshal config for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal config for validation: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		var errs []error
		collectSchemaErrors(&errs, err)
		return errs, nil
	}
	return nil, nil
}

func collectSchemaErrors(errs *[]error, err error) {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		*errs = append(*errs, err)
		return
	}
	if len(ve.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: utils.JSONPointerToPath(ve.InstanceLocation),
			Err:  fmt.Errorf("%s", ve.Message),
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(errs, cause)
	}
}

// Validate checks values that may have come from env vars or flags, which
// bypass the schema.
func (c *Config) Validate() error {
	switch utils.NormalizeName(c.PrefBackend) {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendMemory:
	default:
		return &ValidationError{Path: "pref_backend", Err: fmt.Errorf("unknown backend %q", c.PrefBackend)}
	}
	if c.SweepInterval <= 0 {
		return &ValidationError{Path: "sweep_interval", Err: fmt.Errorf("must be positive, got %s", c.SweepInterval)}
	}
	if strings.TrimSpace(c.DateFormat) == "" {
		return &ValidationError{Path: "date_format", Err: fmt.Errorf("must not be empty")}
	}
	switch utils.NormalizeName(c.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("unknown format %q", c.LogFormat)}
	}
	return nil
}
