// Package core defines the log event model consumed by formatters and sinks:
// events, levels, properties and the four property value kinds.
package core

import "io"

// LogEventSink outputs log events to a destination.
type LogEventSink interface {
	// Emit writes the log event to the sink's destination.
	Emit(event *LogEvent)

	// Close releases any resources held by the sink.
	Close() error
}

// TextFormatter writes a textual representation of a log event.
type TextFormatter interface {
	// Format writes the event to output.
	Format(event *LogEvent, output io.Writer) error
}
