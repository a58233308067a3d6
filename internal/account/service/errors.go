package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrAccountExists    = errors.New("account already exists")
	ErrAccountNotFound  = errors.New("account not found")
	ErrEmailTaken       = errors.New("email is already registered")
	ErrInvalidChallenge = errors.New("invalid_challenge")
	ErrInvalidSignature = errors.New("invalid_signature")
	ErrClientNotFound   = errors.New("client not found")
)

// ValidationError collects per-field problems with a request.
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
	return strings.Join(parts, "; ")
}

// invalid returns a ValidationError for errs, or nil if errs is empty.
func invalid(errs map[string]string) error {
	if len(errs) == 0 {
		return nil
	}
	return &ValidationError{Fields: errs}
}
