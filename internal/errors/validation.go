package errors

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError collects messages per field
type ValidationError struct {
	Fields map[string][]string `json:"fields"`
}

// Error lists the failing fields in name order
func (v *ValidationError) Error() string {
	if len(v.Fields) == 0 {
		return "validation failed"
	}

	names := make([]string, 0, len(v.Fields))
	for name := range v.Fields {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, strings.Join(v.Fields[name], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ValidationBuilder accumulates field errors and builds an InvalidArgument error
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	return vb.Build()
type ValidationBuilder struct {
	fields map[string][]string
}

// NewValidationBuilder creates an empty builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: make(map[string][]string)}
}

// Field records a message for a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf records a formatted message for a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField records that a field is required
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// HasErrors reports whether any field failed
func (vb *ValidationBuilder) HasErrors() bool {
	return len(vb.fields) > 0
}

// Build returns nil when nothing failed, otherwise an InvalidArgument *Error
// whose "validation_errors" metadata holds the field messages
func (vb *ValidationBuilder) Build() error {
	if !vb.HasErrors() {
		return nil
	}
	verr := &ValidationError{Fields: vb.fields}
	return InvalidArgument(verr.Error()).WithMeta("validation_errors", verr.Fields)
}

// ValidateRequired records a required error when value is blank
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateNotNil records a required error when present is false
func ValidateNotNil(field string, present bool, vb *ValidationBuilder) {
	if !present {
		vb.RequiredField(field)
	}
}

// ValidateRange records an error when value is outside [minValue, maxValue]
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidateEnum records an error when value is not one of allowed
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	if slices.Contains(allowed, value) {
		return
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}
