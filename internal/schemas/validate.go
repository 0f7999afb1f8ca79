// Package schemas validates untrusted structured data, chiefly language-model output,
// against JSON Schemas.
package schemas

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed classification.schema.json
var classificationSchema string

var classification = sync.OnceValues(func() (*Validator, error) {
	return Compile(classificationSchema)
})

// FieldError is one violation, keyed by its JSON path ("(root)" for the document itself).
type FieldError struct {
	Field   string
	Message string
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	parts := make([]string, len(ve.Errors))
	for i, fe := range ve.Errors {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "schema violations: " + strings.Join(parts, "; ")
}

// Fields returns the distinct violating paths in report order.
func (ve *ValidationError) Fields() []string {
	seen := make(map[string]bool, len(ve.Errors))
	var out []string
	for _, fe := range ve.Errors {
		if !seen[fe.Field] {
			seen[fe.Field] = true
			out = append(out, fe.Field)
		}
	}
	return out
}

// DocumentError means the document could not be read as JSON at all.
type DocumentError struct {
	Cause error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document is not JSON: %v", e.Cause)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// Validator checks documents against one compiled schema. It is safe for concurrent use.
type Validator struct {
	schema *gojsonschema.Schema
}

// Compile parses a schema once for repeated validation.
func Compile(schema string) (*Validator, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: s}, nil
}

// Validate returns nil, a *DocumentError, or a *ValidationError.
func (v *Validator) Validate(document string) error {
	result, err := v.schema.Validate(gojsonschema.NewStringLoader(document))
	if err != nil {
		return &DocumentError{Cause: err}
	}
	if result.Valid() {
		return nil
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}

// ClassificationSchema returns the embedded schema for classifier responses.
func ClassificationSchema() string {
	return classificationSchema
}

// ValidateClassification checks a classifier response against the embedded schema.
// Any missing field, wrong type or out-of-range confidence is a *ValidationError;
// text that is not JSON at all is a *DocumentError.
func ValidateClassification(document string) error {
	v, err := classification()
	if err != nil {
		return err
	}
	return v.Validate(document)
}
