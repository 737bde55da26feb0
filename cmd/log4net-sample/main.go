// Command log4net-sample writes log4net or log4j XML events produced by
// concurrent workers, configured from flags or from a configuration file.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/willibrandon/mtlog-log4net/configuration"
	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/log4net"
	"github.com/willibrandon/mtlog-log4net/selflog"
	"github.com/willibrandon/mtlog-log4net/sinks"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "log4net-sample: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "log4net-sample"
	app.Usage = "Write sample events as log4net or log4j XML"
	app.Description = `Each producer emits a series of order events through the configured pipeline.
Without --config the formatter is configured from flags and events go to stdout or --output.`
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "JSON or YAML pipeline configuration file; formatter flags are ignored when set",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "File to append events to (defaults to stdout)",
		},
		&cli.BoolFlag{
			Name:  "log4j",
			Usage: "Use the log4j layout",
		},
		&cli.StringFlag{
			Name:  "cdata-mode",
			Usage: "Always, Never or IfNeeded",
		},
		&cli.StringFlag{
			Name:  "culture",
			Usage: "Culture used to format property values, e.g. fr-CH",
		},
		&cli.StringFlag{
			Name:  "indentation",
			Value: "  ",
			Usage: "Indentation made only of spaces or only of tabs; empty disables indentation",
		},
		&cli.StringFlag{
			Name:  "line-ending",
			Usage: "Line ending flags, e.g. \"CarriageReturn, LineFeed\"",
		},
		&cli.StringFlag{
			Name:  "source-context",
			Value: "Log4NetSample",
			Usage: "Logger name written on every event",
		},
		&cli.IntFlag{
			Name:    "producers",
			Aliases: []string{"p"},
			Value:   2,
			Usage:   "Number of concurrent producers",
		},
		&cli.IntFlag{
			Name:    "count",
			Aliases: []string{"n"},
			Value:   3,
			Usage:   "Events emitted by each producer",
		},
		&cli.BoolFlag{
			Name:  "debug",
			Usage: "Log diagnostics at debug level",
		},
	}
	app.Action = runSample
	return app
}

func runSample(c *cli.Context) error {
	logger := newDiagnosticLogger(c)
	defer func() { _ = logger.Sync() }()

	// Formatter and sink failures surface through the diagnostic logger
	selflog.EnableFunc(func(msg string) {
		logger.Warn(msg, zap.String("source", "selflog"))
	})
	defer selflog.Disable()

	pipeline, err := buildPipeline(c)
	if err != nil {
		return err
	}
	defer func() {
		if err := pipeline.Close(); err != nil {
			logger.Error("failed to close pipeline", zap.Error(err))
		}
	}()

	producers, count := c.Int("producers"), c.Int("count")
	if producers < 1 || count < 0 {
		return fmt.Errorf("producers must be positive and count non-negative")
	}

	g, ctx := errgroup.WithContext(c.Context)
	for i := 0; i < producers; i++ {
		producer := i + 1
		g.Go(func() error {
			for seq := 0; seq < count; seq++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				pipeline.Emit(orderEvent(producer, seq))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	logger.Debug("sample complete",
		zap.Int("producers", producers),
		zap.Int("events", producers*count),
		zap.Stringer("minimumLevel", pipeline.MinimumLevel()))
	return nil
}

// newDiagnosticLogger writes JSON diagnostics to the app's error writer.
func newDiagnosticLogger(c *cli.Context) *zap.Logger {
	level := zap.InfoLevel
	if c.Bool("debug") {
		level = zap.DebugLevel
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(c.App.ErrWriter), level))
}

func buildPipeline(c *cli.Context) (*configuration.Pipeline, error) {
	builder := configuration.NewPipelineBuilder()
	builder.RegisterSink("Console", func(_ map[string]any, formatter core.TextFormatter) (core.LogEventSink, error) {
		return sinks.NewWriterSink(c.App.Writer, formatter), nil
	})

	if path := c.String("config"); path != "" {
		config, err := configuration.LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		return builder.Build(config)
	}

	settings := log4net.Settings{
		FormatProvider:     c.String("culture"),
		CDataMode:          c.String("cdata-mode"),
		LineEnding:         c.String("line-ending"),
		Log4JCompatibility: c.Bool("log4j"),
	}
	if c.IsSet("indentation") {
		indentation := c.String("indentation")
		settings.Indentation = &indentation
	}

	sink := configuration.SinkConfiguration{Name: "Console"}
	if output := c.String("output"); output != "" {
		sink = configuration.SinkConfiguration{Name: "File", Args: map[string]any{"path": output}}
	}

	return builder.Build(&configuration.Configuration{Log4Net: configuration.PipelineConfiguration{
		Formatter: settings,
		WriteTo:   []configuration.SinkConfiguration{sink},
		Enrich:    []string{"WithThreadId", "WithEnvironmentUserName", "WithMachineName", "WithProcess"},
		EnrichWith: []configuration.EnricherConfiguration{
			{Name: "WithSourceContext", Args: map[string]any{"sourceContext": c.String("source-context")}},
		},
	}})
}
