// Package configuration builds a log4net event pipeline from JSON or YAML
// configuration documents.
//
// A document names the formatter settings, the sinks to write to and the
// enrichers to apply:
//
//	{
//	  "Log4Net": {
//	    "MinimumLevel": "Debug",
//	    "Formatter": { "cDataMode": "Always", "indentation": "\t" },
//	    "WriteTo": [
//	      { "Name": "Console" },
//	      { "Name": "File", "Args": { "path": "logs/app.xml" }, "Formatter": { "log4JCompatibility": true } }
//	    ],
//	    "Enrich": ["WithMachineName", "WithThreadId"]
//	  }
//	}
package configuration

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/log4net"
	"github.com/willibrandon/mtlog-log4net/selflog"
)

// PipelineConfiguration describes the formatter, sinks and enrichers.
type PipelineConfiguration struct {
	MinimumLevel string                  `json:"MinimumLevel,omitempty" yaml:"MinimumLevel,omitempty"`
	Formatter    log4net.Settings        `json:"Formatter,omitempty" yaml:"Formatter,omitempty"`
	WriteTo      []SinkConfiguration     `json:"WriteTo,omitempty" yaml:"WriteTo,omitempty"`
	Enrich       []string                `json:"Enrich,omitempty" yaml:"Enrich,omitempty"`
	EnrichWith   []EnricherConfiguration `json:"EnrichWith,omitempty" yaml:"EnrichWith,omitempty"`
	Properties   map[string]any          `json:"Properties,omitempty" yaml:"Properties,omitempty"`
}

// SinkConfiguration represents a sink configuration. Formatter, when set,
// replaces the pipeline formatter settings for this sink.
type SinkConfiguration struct {
	Name      string            `json:"Name" yaml:"Name"`
	Args      map[string]any    `json:"Args,omitempty" yaml:"Args,omitempty"`
	Formatter *log4net.Settings `json:"Formatter,omitempty" yaml:"Formatter,omitempty"`
}

// EnricherConfiguration represents an enricher with arguments.
type EnricherConfiguration struct {
	Name string         `json:"Name" yaml:"Name"`
	Args map[string]any `json:"Args,omitempty" yaml:"Args,omitempty"`
}

// Configuration is the root configuration object.
type Configuration struct {
	Log4Net PipelineConfiguration `json:"Log4Net" yaml:"Log4Net"`
}

// LoadFromFile loads configuration from a JSON or YAML file, chosen by extension.
func LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return LoadFromYAML(data)
	default:
		return LoadFromJSON(data)
	}
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (*Configuration, error) {
	var config Configuration
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &config, nil
}

// LoadFromYAML loads configuration from YAML data.
func LoadFromYAML(data []byte) (*Configuration, error) {
	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

// ParseLevel parses a log level string.
func ParseLevel(levelStr string) (core.LogEventLevel, error) {
	switch strings.ToLower(levelStr) {
	case "verbose", "vrb", "trace":
		return core.VerboseLevel, nil
	case "debug", "dbg":
		return core.DebugLevel, nil
	case "information", "info", "inf":
		return core.InformationLevel, nil
	case "warning", "warn", "wrn":
		return core.WarningLevel, nil
	case "error", "err":
		return core.ErrorLevel, nil
	case "fatal", "ftl":
		return core.FatalLevel, nil
	default:
		selflog.Printf("[configuration] unknown log level '%s', using Information", levelStr)
		return core.InformationLevel, fmt.Errorf("unknown log level: %s", levelStr)
	}
}

// GetString gets a string value from configuration args.
func GetString(args map[string]any, key string, defaultValue string) string {
	if v, ok := args[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		selflog.Printf("[configuration] expected string for '%s', got %T", key, v)
	}
	return defaultValue
}

// GetInt gets an int value from configuration args. JSON numbers decode as
// float64 and YAML numbers as int; numeric strings are parsed.
func GetInt(args map[string]any, key string, defaultValue int) int {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case float64:
			return int(val)
		case int:
			return val
		case string:
			if i, err := strconv.Atoi(val); err == nil {
				return i
			}
			selflog.Printf("[configuration] failed to parse '%s' as int for '%s'", val, key)
		default:
			selflog.Printf("[configuration] expected int for '%s', got %T", key, v)
		}
	}
	return defaultValue
}

// GetBool gets a bool value from configuration args.
func GetBool(args map[string]any, key string, defaultValue bool) bool {
	if v, ok := args[key]; ok {
		switch val := v.(type) {
		case bool:
			return val
		case string:
			if b, err := strconv.ParseBool(val); err == nil {
				return b
			}
			selflog.Printf("[configuration] failed to parse '%s' as bool for '%s'", val, key)
		default:
			selflog.Printf("[configuration] expected bool for '%s', got %T", key, v)
		}
	}
	return defaultValue
}
