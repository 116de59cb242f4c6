package services

import (
	"sort"
	"strings"
)

// CondolenceServiceError is a classified failure of the condolence workflow.
type CondolenceServiceError string

func (e CondolenceServiceError) Error() string { return string(e) }

const (
	ErrNoActiveObituary      CondolenceServiceError = "no active obituary found"
	ErrCondolenceNotFound    CondolenceServiceError = "condolence not found"
	ErrCondolencePersistence CondolenceServiceError = "condolence could not be saved"
	ErrCondolenceApproval    CondolenceServiceError = "condolence could not be approved"
)

// MemorialServiceError is a classified failure of the read path.
type MemorialServiceError string

func (e MemorialServiceError) Error() string { return string(e) }

const (
	ErrMemorialLoadFailed MemorialServiceError = "memorial could not be loaded"
	ErrGalleryUnavailable MemorialServiceError = "photos could not be loaded"
)

// ValidationError carries every failing input field with its message.
type ValidationError struct {
	Fields map[string]string
	order  []string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	if _, exists := e.Fields[field]; exists {
		return
	}
	e.Fields[field] = msg
	e.order = append(e.order, field)
}

// FieldNames returns the failing fields in declaration order.
func (e *ValidationError) FieldNames() []string {
	if len(e.order) == len(e.Fields) {
		return append([]string(nil), e.order...)
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *ValidationError) Error() string {
	names := e.FieldNames()
	msgs := make([]string, 0, len(names))
	for _, name := range names {
		msgs = append(msgs, e.Fields[name])
	}
	return "Please check your input: " + strings.Join(msgs, ", ")
}
