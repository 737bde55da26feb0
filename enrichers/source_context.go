package enrichers

import (
	"github.com/willibrandon/mtlog-log4net/core"
)

// SourceContextPropertyName is written as the logger attribute by the formatter.
const SourceContextPropertyName = "SourceContext"

// SourceContextEnricher adds a fixed source context, typically a package or
// component name.
type SourceContextEnricher struct {
	sourceContext string
}

// NewSourceContextEnricher creates an enricher for the given source context.
func NewSourceContextEnricher(sourceContext string) *SourceContextEnricher {
	return &SourceContextEnricher{sourceContext: sourceContext}
}

// Enrich adds the source context unless the event already has one.
func (s *SourceContextEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	if s.sourceContext == "" {
		return
	}
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty(SourceContextPropertyName, s.sourceContext))
}

// Apply runs every enricher on event with the default property factory.
func Apply(event *core.LogEvent, enrichers ...core.LogEventEnricher) {
	factory := core.DefaultPropertyFactory{}
	for _, enricher := range enrichers {
		enricher.Enrich(event, factory)
	}
}

// Log4NetEnrichers returns the enrichers producing every property the
// formatter maps to a dedicated attribute or element.
func Log4NetEnrichers(sourceContext string) []core.LogEventEnricher {
	return []core.LogEventEnricher{
		NewSourceContextEnricher(sourceContext),
		NewThreadIdEnricher(),
		NewEnvironmentUserNameEnricher(),
		NewMachineNameEnricher(),
		NewProcessEnricher(),
	}
}
