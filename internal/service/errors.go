package service

import (
	"errors"
	"sort"
	"strings"
)

// ErrInvalidCredentials is returned by Login for unknown users and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ValidationError carries field-level input problems.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// fieldErrors accumulates problems while a request is checked.
type fieldErrors map[string]string

func (f fieldErrors) add(field, message string) {
	if _, exists := f[field]; !exists {
		f[field] = message
	}
}

func (f fieldErrors) err() error {
	if len(f) == 0 {
		return nil
	}
	return &ValidationError{Fields: map[string]string(f)}
}

func invalidField(field, message string) error {
	return &ValidationError{Fields: map[string]string{field: message}}
}
