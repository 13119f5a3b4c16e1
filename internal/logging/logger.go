// Package logging provides the structured logging abstraction used by the
// spending engine and the CLI. Components depend on the Logger interface and
// never on logrus directly.
package logging

// Logger is the structured logger handed to every component.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// WithError returns a child logger carrying err.
	WithError(err error) Logger
	// WithField returns a child logger carrying one extra field.
	WithField(key string, value interface{}) Logger
	// WithFields returns a child logger carrying the given fields.
	WithFields(fields ...Field) Logger
}

// Field is a key-value pair attached to a log entry.
type Field struct {
	Key   string
	Value interface{}
}

// F is shorthand for building a Field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}
