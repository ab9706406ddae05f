package style

import (
	"errors"
	"fmt"
)

// ErrNotFound is wrapped by the error returned when the document path does not
// resolve to a readable file.
var ErrNotFound = errors.New("style config not found")

// ParseError reports a document that is not well-formed in its declared format.
type ParseError struct {
	Path   string
	Format Format
	Err    error
}

func (e *ParseError) Error() string {
	if e.Format == FormatUnknown {
		return fmt.Sprintf("parse error: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("parse error: %s (%s): %v", e.Path, e.Format, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError reports a well-formed document that does not match the expected shape.
// Field is the offending field in document notation, e.g. "darkMode",
// "contentPaths[1]" or "plugins[0].name". The document root is "$".
type SchemaError struct {
	Field  string
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error: %s", e.Reason)
}

func schemaErrorf(field string, format string, args ...any) *SchemaError {
	return &SchemaError{
		Field:  field,
		Reason: fmt.Sprintf(format, args...),
	}
}
