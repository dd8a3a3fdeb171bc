// Package app provides the action execution engine and application
// services that orchestrate domain logic.
package app

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors recognized by the default classifier.
var (
	// ErrNotFound marks a missing resource (maps to the not_found
	// category).
	ErrNotFound = errors.New("not found")

	// ErrForbidden marks an authorization failure (maps to the
	// authorization category).
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthenticated marks a request with no valid principal (maps
	// to the authorization category).
	ErrUnauthenticated = errors.New("authentication required")

	// ErrNoService is returned when an action without a configured
	// service is executed. Configs are not validated at build time, so
	// this is the call-site failure.
	ErrNoService = errors.New("no service configured")
)

// ValidationError carries field-level validation errors (maps to the
// validation category).
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError creates an empty validation error.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

// ValidationErrorFrom wraps an existing field-error map.
func ValidationErrorFrom(fields map[string][]string) *ValidationError {
	if fields == nil {
		fields = make(map[string][]string)
	}
	return &ValidationError{Fields: fields}
}

// Add appends a message for a field and returns the error for chaining.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields[field] = append(e.Fields[field], message)
	return e
}

// Any reports whether at least one field error is present.
func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}

// Error summarizes the field errors in a stable order.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	var parts []string
	for _, f := range fields {
		for _, msg := range e.Fields[f] {
			parts = append(parts, fmt.Sprintf("%s %s", f, msg))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
