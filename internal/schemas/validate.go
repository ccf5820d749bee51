// Package schemas provides JSON Schema validation for the artifacts written by af_prep.
package schemas

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	root "github.com/jonathan/af-prep/schemas"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Validator checks documents against one compiled schema.
type Validator struct {
	name   string
	schema *gojsonschema.Schema
}

// The job descriptor schema is compiled once from the embedded bytes on first use.
var (
	jobDescriptorOnce      sync.Once
	jobDescriptorValidator *Validator
	jobDescriptorErr       error
)

// JobDescriptorValidator returns the validator for the embedded job descriptor schema.
func JobDescriptorValidator() (*Validator, error) {
	jobDescriptorOnce.Do(func() {
		schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(root.JobDescriptor))
		if err != nil {
			jobDescriptorErr = &SchemaLoadError{
				Path:    root.JobDescriptorFile,
				Message: "embedded schema does not compile",
				Cause:   err,
			}
			return
		}
		jobDescriptorValidator = &Validator{name: "job descriptor", schema: schema}
	})
	return jobDescriptorValidator, jobDescriptorErr
}

// LoadSchemaFile compiles the JSON Schema at path. Relative $refs resolve against its directory.
func LoadSchemaFile(path string) (*Validator, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "failed to resolve schema path", Cause: err}
	}
	if _, err := os.Stat(absPath); err != nil {
		return nil, &SchemaLoadError{Path: absPath, Message: "schema file not found", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewReferenceLoader("file://" + filepath.ToSlash(absPath)))
	if err != nil {
		return nil, &SchemaLoadError{Path: absPath, Message: "schema does not compile", Cause: err}
	}
	return &Validator{name: filepath.Base(absPath), schema: schema}, nil
}

// Validate checks serialized document bytes.
func (v *Validator) Validate(data []byte) error {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", v.name, err)
	}
	return toValidationError(result)
}

// ValidateFile reads a document from disk and validates it.
func (v *Validator) ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return v.Validate(data)
}

// ValidateJobDescriptor validates serialized job descriptor bytes against the embedded schema.
func ValidateJobDescriptor(data []byte) error {
	v, err := JobDescriptorValidator()
	if err != nil {
		return err
	}
	return v.Validate(data)
}

// toValidationError returns nil for a valid result.
func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
