package configuration

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/willibrandon/mtlog-log4net/log4net"
)

// CreatePipelineFromFile creates a pipeline from a JSON or YAML configuration file.
func CreatePipelineFromFile(filename string) (*Pipeline, error) {
	config, err := LoadFromFile(filename)
	if err != nil {
		return nil, err
	}
	return NewPipelineBuilder().Build(config)
}

// CreatePipelineFromJSON creates a pipeline from JSON configuration.
func CreatePipelineFromJSON(data []byte) (*Pipeline, error) {
	config, err := LoadFromJSON(data)
	if err != nil {
		return nil, err
	}
	return NewPipelineBuilder().Build(config)
}

// CreatePipelineFromYAML creates a pipeline from YAML configuration.
func CreatePipelineFromYAML(data []byte) (*Pipeline, error) {
	config, err := LoadFromYAML(data)
	if err != nil {
		return nil, err
	}
	return NewPipelineBuilder().Build(config)
}

// CreatePipelineFromEnvironment loads log4net.json (or log4net.yaml) from dir
// and overlays log4net.{environment}.json when present. The environment is
// read from LOG4NET_ENVIRONMENT and defaults to Production.
func CreatePipelineFromEnvironment(dir string) (*Pipeline, error) {
	config, err := LoadFromEnvironment(dir)
	if err != nil {
		return nil, err
	}
	return NewPipelineBuilder().Build(config)
}

// LoadFromEnvironment loads the base configuration and its environment overlay.
func LoadFromEnvironment(dir string) (*Configuration, error) {
	environment := os.Getenv("LOG4NET_ENVIRONMENT")
	if environment == "" {
		environment = "Production"
	}

	base, err := loadFirst(dir, "log4net")
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, fmt.Errorf("no log4net configuration found in %s", dir)
	}

	overlay, err := loadFirst(dir, "log4net."+environment)
	if err != nil {
		return nil, err
	}
	if overlay != nil {
		mergeConfiguration(base, overlay)
	}
	return base, nil
}

// loadFirst loads the first existing name.json, name.yaml or name.yml.
// A nil configuration means none exists.
func loadFirst(dir, name string) (*Configuration, error) {
	for _, ext := range []string{".json", ".yaml", ".yml"} {
		filename := filepath.Join(dir, name+ext)
		if _, err := os.Stat(filename); err != nil {
			continue
		}
		config, err := LoadFromFile(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", filename, err)
		}
		return config, nil
	}
	return nil, nil
}

// mergeConfiguration merges source into target. Non-empty source sections
// replace the corresponding target sections; properties merge by key.
func mergeConfiguration(target, source *Configuration) {
	src := &source.Log4Net
	dst := &target.Log4Net

	if src.MinimumLevel != "" {
		dst.MinimumLevel = src.MinimumLevel
	}

	if src.Formatter != (log4net.Settings{}) {
		dst.Formatter = src.Formatter
	}

	if len(src.WriteTo) > 0 {
		dst.WriteTo = src.WriteTo
	}

	if len(src.Enrich) > 0 {
		dst.Enrich = src.Enrich
	}

	if len(src.EnrichWith) > 0 {
		dst.EnrichWith = src.EnrichWith
	}

	if len(src.Properties) > 0 {
		if dst.Properties == nil {
			dst.Properties = make(map[string]any, len(src.Properties))
		}
		for k, v := range src.Properties {
			dst.Properties[k] = v
		}
	}
}
