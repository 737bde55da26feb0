package core

import "time"

// LogEvent represents a single log event with all its properties.
type LogEvent struct {
	// Timestamp is when the event occurred. Its location carries the offset.
	Timestamp time.Time

	// Level is the severity of the event.
	Level LogEventLevel

	// MessageTemplate is the original message template with placeholders.
	MessageTemplate string

	// Properties holds the event's properties in insertion order. Names are unique.
	Properties []*LogEventProperty

	// Exception associated with the event, if any.
	Exception error
}

// NewLogEvent creates a log event. Properties sharing a name collapse into
// one entry that keeps the first position and the last value.
func NewLogEvent(timestamp time.Time, level LogEventLevel, exception error, messageTemplate string, properties ...*LogEventProperty) *LogEvent {
	event := &LogEvent{
		Timestamp:       timestamp,
		Level:           level,
		MessageTemplate: messageTemplate,
		Properties:      make([]*LogEventProperty, 0, len(properties)),
		Exception:       exception,
	}
	for _, property := range properties {
		if property != nil {
			event.AddOrUpdateProperty(property)
		}
	}
	return event
}

// Property returns the value of the named property.
func (e *LogEvent) Property(name string) (PropertyValue, bool) {
	if i := e.indexOf(name); i >= 0 {
		return e.Properties[i].Value, true
	}
	return nil, false
}

// PropertyMap returns the properties keyed by name.
func (e *LogEvent) PropertyMap() map[string]PropertyValue {
	m := make(map[string]PropertyValue, len(e.Properties))
	for _, p := range e.Properties {
		m[p.Name] = p.Value
	}
	return m
}

// AddPropertyIfAbsent adds a property to the event if it doesn't already exist.
func (e *LogEvent) AddPropertyIfAbsent(property *LogEventProperty) {
	if e.indexOf(property.Name) < 0 {
		e.Properties = append(e.Properties, property)
	}
}

// AddOrUpdateProperty adds or overwrites a property in the event.
func (e *LogEvent) AddOrUpdateProperty(property *LogEventProperty) {
	if i := e.indexOf(property.Name); i >= 0 {
		e.Properties[i] = property
		return
	}
	e.Properties = append(e.Properties, property)
}

// AddProperty adds or overwrites a property, converting value with NewPropertyValue.
func (e *LogEvent) AddProperty(name string, value any) {
	e.AddOrUpdateProperty(NewProperty(name, value))
}

func (e *LogEvent) indexOf(name string) int {
	for i, p := range e.Properties {
		if p.Name == name {
			return i
		}
	}
	return -1
}
