package configuration

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/enrichers"
	"github.com/willibrandon/mtlog-log4net/log4net"
	"github.com/willibrandon/mtlog-log4net/selflog"
	"github.com/willibrandon/mtlog-log4net/sinks"
)

// SinkFactory creates a sink writing events with formatter.
type SinkFactory func(args map[string]any, formatter core.TextFormatter) (core.LogEventSink, error)

// EnricherFactory creates an enricher from configuration.
type EnricherFactory func(args map[string]any) (core.LogEventEnricher, error)

// PipelineBuilder builds pipelines from configuration.
type PipelineBuilder struct {
	sinkFactories     map[string]SinkFactory
	enricherFactories map[string]EnricherFactory
}

// NewPipelineBuilder creates a new pipeline builder with the built-in sinks
// and enrichers registered.
func NewPipelineBuilder() *PipelineBuilder {
	b := &PipelineBuilder{
		sinkFactories:     make(map[string]SinkFactory),
		enricherFactories: make(map[string]EnricherFactory),
	}

	b.RegisterSink("Console", createConsoleSink)
	b.RegisterSink("File", createFileSink)
	b.RegisterSink("Memory", createMemorySink)

	b.RegisterEnricher("WithMachineName", createMachineNameEnricher)
	b.RegisterEnricher("WithThreadId", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewThreadIdEnricher(), nil
	})
	b.RegisterEnricher("WithProcess", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewProcessEnricher(), nil
	})
	b.RegisterEnricher("WithEnvironmentUserName", func(map[string]any) (core.LogEventEnricher, error) {
		return enrichers.NewEnvironmentUserNameEnricher(), nil
	})
	b.RegisterEnricher("WithSourceContext", createSourceContextEnricher)
	b.RegisterEnricher("WithEnvironment", createEnvironmentEnricher)

	return b
}

// RegisterSink registers a sink factory under name.
func (b *PipelineBuilder) RegisterSink(name string, factory SinkFactory) {
	b.sinkFactories[name] = factory
}

// RegisterEnricher registers an enricher factory under name.
func (b *PipelineBuilder) RegisterEnricher(name string, factory EnricherFactory) {
	b.enricherFactories[name] = factory
}

// Build creates a pipeline from configuration. An empty minimum level lets
// every event through. A sink's "restrictedToMinimumLevel" arg filters the
// events it receives. A sink whose args set "async" to true is wrapped in
// an AsyncSink sized by "bufferSize" with the "overflow" strategy (Block or
// Drop). Sinks already created are closed when a later step fails.
func (b *PipelineBuilder) Build(config *Configuration) (*Pipeline, error) {
	if config == nil {
		return nil, fmt.Errorf("configuration is nil")
	}
	cfg := config.Log4Net

	p := &Pipeline{
		minimumLevel: core.VerboseLevel,
		factory:      core.DefaultPropertyFactory{},
	}

	if cfg.MinimumLevel != "" {
		level, err := ParseLevel(cfg.MinimumLevel)
		if err != nil {
			return nil, fmt.Errorf("invalid minimum level: %w", err)
		}
		p.minimumLevel = level
	}

	formatter, err := log4net.NewFormatterFromSettings(cfg.Formatter)
	if err != nil {
		return nil, fmt.Errorf("invalid formatter settings: %w", err)
	}

	for _, sinkConfig := range cfg.WriteTo {
		sinkFormatter := formatter
		if sinkConfig.Formatter != nil {
			sinkFormatter, err = log4net.NewFormatterFromSettings(*sinkConfig.Formatter)
			if err != nil {
				p.Close()
				return nil, fmt.Errorf("invalid formatter settings for sink %s: %w", sinkConfig.Name, err)
			}
		}

		sink, err := b.createSink(sinkConfig, sinkFormatter)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to create sink %s: %w", sinkConfig.Name, err)
		}
		if levelName := GetString(sinkConfig.Args, "restrictedToMinimumLevel", ""); levelName != "" {
			level, err := ParseLevel(levelName)
			if err != nil {
				sink.Close()
				p.Close()
				return nil, fmt.Errorf("invalid minimum level for sink %s: %w", sinkConfig.Name, err)
			}
			sink = sinks.NewConditionalSink(sinkConfig.Name, sinks.LevelPredicate(level), sink)
		}
		if GetBool(sinkConfig.Args, "async", false) {
			sink = sinks.NewAsyncSink(sink, sinks.AsyncOptions{
				BufferSize:       GetInt(sinkConfig.Args, "bufferSize", 0),
				OverflowStrategy: overflowStrategy(GetString(sinkConfig.Args, "overflow", "")),
			})
		}
		p.sinks = append(p.sinks, sink)
	}

	for _, name := range cfg.Enrich {
		enricher, err := b.createEnricher(EnricherConfiguration{Name: name})
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to create enricher %s: %w", name, err)
		}
		p.enrichers = append(p.enrichers, enricher)
	}

	for _, enricherConfig := range cfg.EnrichWith {
		enricher, err := b.createEnricher(enricherConfig)
		if err != nil {
			p.Close()
			return nil, fmt.Errorf("failed to create enricher %s: %w", enricherConfig.Name, err)
		}
		p.enrichers = append(p.enrichers, enricher)
	}

	keys := make([]string, 0, len(cfg.Properties))
	for key := range cfg.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		p.properties = append(p.properties, core.NewProperty(key, cfg.Properties[key]))
	}

	return p, nil
}

func (b *PipelineBuilder) createSink(config SinkConfiguration, formatter core.TextFormatter) (core.LogEventSink, error) {
	factory, ok := b.sinkFactories[config.Name]
	if !ok {
		available := make([]string, 0, len(b.sinkFactories))
		for name := range b.sinkFactories {
			available = append(available, name)
		}
		slices.Sort(available)
		selflog.Printf("[configuration] unknown sink type '%s', available sinks: %s", config.Name, strings.Join(available, ", "))
		return nil, fmt.Errorf("unknown sink type: %s", config.Name)
	}
	return factory(config.Args, formatter)
}

func (b *PipelineBuilder) createEnricher(config EnricherConfiguration) (core.LogEventEnricher, error) {
	factory, ok := b.enricherFactories[config.Name]
	if !ok {
		selflog.Printf("[configuration] unknown enricher '%s'", config.Name)
		return nil, fmt.Errorf("unknown enricher type: %s", config.Name)
	}
	return factory(config.Args)
}

func overflowStrategy(name string) sinks.OverflowStrategy {
	switch strings.ToLower(name) {
	case "", "block":
		return sinks.OverflowBlock
	case "drop":
		return sinks.OverflowDrop
	default:
		selflog.Printf("[configuration] unknown overflow strategy '%s', using Block", name)
		return sinks.OverflowBlock
	}
}

// Sink factories

func createConsoleSink(args map[string]any, formatter core.TextFormatter) (core.LogEventSink, error) {
	return sinks.NewConsoleSink(formatter), nil
}

func createFileSink(args map[string]any, formatter core.TextFormatter) (core.LogEventSink, error) {
	path := GetString(args, "path", "")
	if path == "" {
		return nil, fmt.Errorf("file sink requires 'path' argument")
	}
	return sinks.NewFileSink(path, formatter)
}

func createMemorySink(args map[string]any, formatter core.TextFormatter) (core.LogEventSink, error) {
	return sinks.NewMemorySink(), nil
}

// Enricher factories

func createMachineNameEnricher(args map[string]any) (core.LogEventEnricher, error) {
	if name := GetString(args, "propertyName", ""); name != "" {
		return enrichers.NewMachineNameEnricherWithName(name), nil
	}
	return enrichers.NewMachineNameEnricher(), nil
}

func createSourceContextEnricher(args map[string]any) (core.LogEventEnricher, error) {
	sourceContext := GetString(args, "sourceContext", "")
	if sourceContext == "" {
		return nil, fmt.Errorf("WithSourceContext requires 'sourceContext' argument")
	}
	return enrichers.NewSourceContextEnricher(sourceContext), nil
}

func createEnvironmentEnricher(args map[string]any) (core.LogEventEnricher, error) {
	variable := GetString(args, "variable", "")
	if variable == "" {
		return nil, fmt.Errorf("WithEnvironment requires 'variable' argument")
	}
	property := GetString(args, "propertyName", variable)
	if GetBool(args, "cached", false) {
		return enrichers.NewEnvironmentEnricherCached(variable, property), nil
	}
	return enrichers.NewEnvironmentEnricher(variable, property), nil
}
