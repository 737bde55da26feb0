package configuration

import (
	"go.uber.org/multierr"

	"github.com/willibrandon/mtlog-log4net/core"
)

// Pipeline is the configured chain of level filter, enrichers and sinks.
// It is itself a sink, so it can be nested or handed to code expecting one.
// A pipeline is immutable once built.
type Pipeline struct {
	minimumLevel core.LogEventLevel
	properties   []*core.LogEventProperty
	enrichers    []core.LogEventEnricher
	sinks        []core.LogEventSink
	factory      core.LogEventPropertyFactory
}

// IsEnabled reports whether events at level reach the sinks.
func (p *Pipeline) IsEnabled(level core.LogEventLevel) bool {
	return level >= p.minimumLevel
}

// MinimumLevel returns the configured minimum level.
func (p *Pipeline) MinimumLevel() core.LogEventLevel {
	return p.minimumLevel
}

// Sinks returns the configured sinks in declaration order.
func (p *Pipeline) Sinks() []core.LogEventSink {
	return p.sinks
}

// Emit runs the event through the pipeline stages.
func (p *Pipeline) Emit(event *core.LogEvent) {
	if event == nil || !p.IsEnabled(event.Level) {
		return
	}

	// Configured properties never overwrite event properties
	for _, property := range p.properties {
		event.AddPropertyIfAbsent(property)
	}

	for _, enricher := range p.enrichers {
		enricher.Enrich(event, p.factory)
	}

	for _, sink := range p.sinks {
		sink.Emit(event)
	}
}

// Close closes every sink and returns their combined errors.
func (p *Pipeline) Close() error {
	var err error
	for _, sink := range p.sinks {
		err = multierr.Append(err, sink.Close())
	}
	return err
}
