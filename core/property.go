package core

// LogEventProperty represents a single named property of a log event.
type LogEventProperty struct {
	// Name is the property name.
	Name string

	// Value is the property value.
	Value PropertyValue
}

// NewProperty creates a property, converting value with NewPropertyValue.
func NewProperty(name string, value any) *LogEventProperty {
	return &LogEventProperty{Name: name, Value: NewPropertyValue(value)}
}

// LogEventPropertyFactory creates log event properties.
type LogEventPropertyFactory interface {
	// CreateProperty creates a new log event property.
	CreateProperty(name string, value any) *LogEventProperty
}

// DefaultPropertyFactory creates properties with NewPropertyValue.
type DefaultPropertyFactory struct{}

// CreateProperty creates a new log event property.
func (DefaultPropertyFactory) CreateProperty(name string, value any) *LogEventProperty {
	return NewProperty(name, value)
}
