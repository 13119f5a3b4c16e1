// Package parsererror defines the typed errors surfaced by the spending
// engine: malformed input records, invalid configuration and unreadable
// input files.
package parsererror

import "fmt"

// ParseError reports a malformed transaction record. Row is the 1-based
// index of the record among the data records (header excluded), Line the
// 1-based line of the source file the record starts on. Either is 0 when
// unknown.
type ParseError struct {
	Source string
	Row    int
	Line   int
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0:
		return fmt.Sprintf("%s: line %d: failed to parse %s='%s': %v",
			e.Source, e.Line, e.Field, e.Value, e.Err)
	case e.Row > 0:
		return fmt.Sprintf("%s: record %d: failed to parse %s='%s': %v",
			e.Source, e.Row, e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Source, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConfigError reports a configuration value rejected before processing.
type ConfigError struct {
	Key    string
	Value  interface{}
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration %s=%v: %s", e.Key, e.Value, e.Reason)
}

// ValidationError reports an input file that does not have the expected shape.
type ValidationError struct {
	FilePath string
	Reason   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.FilePath, e.Reason)
}
