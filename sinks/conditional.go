package sinks

import (
	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/selflog"
)

// Predicate selects events.
type Predicate func(*core.LogEvent) bool

// ConditionalSink forwards only the events matching a predicate, for
// example to keep errors in a separate log4j file.
type ConditionalSink struct {
	predicate Predicate
	target    core.LogEventSink
	name      string
}

// NewConditionalSink creates a sink that forwards events matching predicate to target.
func NewConditionalSink(name string, predicate Predicate, target core.LogEventSink) *ConditionalSink {
	if predicate == nil {
		panic("predicate cannot be nil")
	}
	if target == nil {
		panic("target sink cannot be nil")
	}
	if name == "" {
		name = "unnamed"
	}
	return &ConditionalSink{predicate: predicate, target: target, name: name}
}

// Emit forwards the event when the predicate matches. A panicking predicate
// drops the event.
func (s *ConditionalSink) Emit(event *core.LogEvent) {
	if event != nil && s.matches(event) {
		s.target.Emit(event)
	}
}

func (s *ConditionalSink) matches(event *core.LogEvent) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			selflog.Printf("[conditional:%s] predicate panic: %v", s.name, r)
			ok = false
		}
	}()
	return s.predicate(event)
}

// Close closes the target sink.
func (s *ConditionalSink) Close() error {
	if err := s.target.Close(); err != nil {
		selflog.Printf("[conditional:%s] failed to close target sink: %v", s.name, err)
		return err
	}
	return nil
}

// LevelPredicate matches events at or above minLevel.
func LevelPredicate(minLevel core.LogEventLevel) Predicate {
	return func(event *core.LogEvent) bool {
		return event.Level >= minLevel
	}
}

// PropertyPredicate matches events carrying the named property.
func PropertyPredicate(propertyName string) Predicate {
	return func(event *core.LogEvent) bool {
		_, exists := event.Property(propertyName)
		return exists
	}
}

// SourceContextPredicate matches events whose SourceContext renders as sourceContext.
func SourceContextPredicate(sourceContext string) Predicate {
	return func(event *core.LogEvent) bool {
		value, exists := event.Property("SourceContext")
		return exists && core.RenderString(value, "l", core.InvariantCulture) == sourceContext
	}
}

// AndPredicate matches when every predicate matches.
func AndPredicate(predicates ...Predicate) Predicate {
	return func(event *core.LogEvent) bool {
		for _, p := range predicates {
			if !p(event) {
				return false
			}
		}
		return true
	}
}

// NotPredicate inverts a predicate.
func NotPredicate(predicate Predicate) Predicate {
	return func(event *core.LogEvent) bool {
		return !predicate(event)
	}
}
