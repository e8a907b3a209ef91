// internal/common/validation/schema.go
package validation

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"

	"personality-workers/internal/common/errors"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ValidationResult lists every violation found in one document.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Validator holds the compiled input schemas, keyed by task type.
type Validator struct {
	schemas map[string]*gojsonschema.Schema
}

// New compiles every embedded schema.
func New() (*Validator, error) {
	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	v := &Validator{schemas: make(map[string]*gojsonschema.Schema, len(entries))}
	for _, e := range entries {
		data, err := schemaFS.ReadFile(path.Join("schemas", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read schema %s: %w", e.Name(), err)
		}
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
		if err != nil {
			return nil, fmt.Errorf("invalid schema %s: %w", e.Name(), err)
		}
		v.schemas[strings.TrimSuffix(e.Name(), ".json")] = schema
	}
	return v, nil
}

// MustNew is New for process start-up; the schemas are compiled into the
// binary, so a failure is a programming error.
func MustNew() *Validator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Names lists the known schema names in order.
func (v *Validator) Names() []string {
	names := make([]string, 0, len(v.schemas))
	for n := range v.schemas {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Check validates a Go value (map or struct) against the named schema.
func (v *Validator) Check(name string, input interface{}) (*ValidationResult, error) {
	return v.check(name, gojsonschema.NewGoLoader(input))
}

// CheckJSON validates a raw JSON document, such as job variables.
func (v *Validator) CheckJSON(name, document string) (*ValidationResult, error) {
	return v.check(name, gojsonschema.NewStringLoader(document))
}

func (v *Validator) check(name string, doc gojsonschema.JSONLoader) (*ValidationResult, error) {
	schema, ok := v.schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown schema %q", name)
	}

	result, err := schema.Validate(doc)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return out, nil
}

// Validate returns an INPUT_VALIDATION_FAILED error when input does not
// satisfy the named schema.
func (v *Validator) Validate(name string, input interface{}) error {
	res, err := v.Check(name, input)
	return asError(res, err)
}

// ValidateJSON is Validate for a raw JSON document.
func (v *Validator) ValidateJSON(name, document string) error {
	res, err := v.CheckJSON(name, document)
	return asError(res, err)
}

func asError(res *ValidationResult, err error) error {
	if err != nil {
		return errors.NewInputValidationError(err.Error())
	}
	if res.Valid {
		return nil
	}
	return errors.NewInputValidationError(res.Summary()).
		WithMetadata("violations", res.Errors)
}

// Summary joins the violations into one line.
func (r *ValidationResult) Summary() string {
	parts := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		parts[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return strings.Join(parts, "; ")
}

// Raw returns the embedded JSON document for the named schema.
func Raw(name string) ([]byte, error) {
	data, err := schemaFS.ReadFile(path.Join("schemas", name+".json"))
	if err != nil {
		return nil, fmt.Errorf("unknown schema %q", name)
	}
	return data, nil
}
