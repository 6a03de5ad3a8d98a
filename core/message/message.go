// Package message defines the diagnostics record threaded alongside
// rendered output. Producers create messages, consumers concatenate them
// in document order; nothing in between interprets their content.
package message

import "fmt"

// Severity grades a message.
type Severity int

const (
	Deprecation Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Deprecation:
		return "deprecation"
	case Warning:
		return "warning"
	case Error:
		return "error"
	}
	return "unknown"
}

// Message is one diagnostic produced while parsing or rendering a
// document. Line refers to the source document, 1-based.
type Message struct {
	Severity Severity
	Line     int
	Text     string
}

func (m Message) String() string {
	return fmt.Sprintf("%s: line %d: %s", m.Severity, m.Line, m.Text)
}

// Deprecationf creates a deprecation notice for the given source line.
func Deprecationf(line int, format string, v ...interface{}) Message {
	return Message{Severity: Deprecation, Line: line, Text: fmt.Sprintf(format, v...)}
}

// Warningf creates a warning for the given source line.
func Warningf(line int, format string, v ...interface{}) Message {
	return Message{Severity: Warning, Line: line, Text: fmt.Sprintf(format, v...)}
}

// Errorf creates an error-grade message for the given source line.
func Errorf(line int, format string, v ...interface{}) Message {
	return Message{Severity: Error, Line: line, Text: fmt.Sprintf(format, v...)}
}
