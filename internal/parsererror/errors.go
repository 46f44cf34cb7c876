// Package parsererror defines the typed errors returned while reading
// contribution files and command-line input.
package parsererror

import "fmt"

// ParseError represents a field that could not be converted to its target type
type ParseError struct {
	Parser string
	Row    int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
			e.Parser, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected layout (unreadable CSV, missing required columns).
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
	Err            error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

func (e *InvalidFormatError) Unwrap() error {
	return e.Err
}

// UsageError is returned when the command line does not have the expected shape.
// Its message is the usage text shown to the operator.
type UsageError struct {
	Usage string
}

func (e *UsageError) Error() string {
	return e.Usage
}
