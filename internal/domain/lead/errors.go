package lead

import (
	"errors"
	"fmt"
	"strings"
)

// ErrRecordNotFound indicates the requested analysis is not in the history store.
var ErrRecordNotFound = errors.New("analysis record not found")

// ParseError: the provider reply was not valid JSON. The raw reply is kept
// out of the message so it never leaks to API consumers.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("provider reply is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaError: the reply parsed as JSON but is missing required keys or
// carries wrongly-typed values. Fields lists every offender found.
type SchemaError struct {
	Fields []string
}

func (e *SchemaError) Error() string {
	return "provider reply missing or malformed fields: " + strings.Join(e.Fields, ", ")
}

// RenderError: document generation failed. Independent of pipeline errors
// and never invalidates an already-saved record.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("report generation failed: %v", e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }
