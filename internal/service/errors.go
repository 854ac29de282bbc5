package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound signals an invalid identifier in a request path.
var ErrNotFound = errors.New("not found")

// ErrForbidden signals an attempt to act on another user's resource.
var ErrForbidden = errors.New("forbidden")

// ValidationError reports per-field failures detected before any mutation
// is committed. Domain-rule violations (self-referential actions, duplicate
// friend requests, incomplete profiles) use the same kind regardless of
// where the check lives.
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
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

// AsValidation unwraps err into a ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}
