package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/log4net"
	"github.com/willibrandon/mtlog-log4net/sinks"
	"github.com/willibrandon/mtlog-log4net/testutil"
)

func newEvent(level core.LogEventLevel) *core.LogEvent {
	timestamp := time.Date(2003, 1, 4, 15, 9, 26, 535_000_000, time.FixedZone("", 3600))
	return core.NewLogEvent(timestamp, level, nil, "Hello from Serilog")
}

func memorySink(t *testing.T, p *Pipeline, index int) *sinks.MemorySink {
	t.Helper()
	sink, ok := p.Sinks()[index].(*sinks.MemorySink)
	if !ok {
		t.Fatalf("expected *sinks.MemorySink, got %T", p.Sinks()[index])
	}
	return sink
}

func mustSettings(t *testing.T, data string) log4net.Settings {
	t.Helper()
	var settings log4net.Settings
	testutil.AssertNoError(t, json.Unmarshal([]byte(data), &settings), "settings")
	return settings
}

func ptr[T any](v T) *T {
	return &v
}

func TestLoadFromJSON(t *testing.T) {
	data := []byte(`{
		"Log4Net": {
			"MinimumLevel": "Debug",
			"Formatter": { "cDataMode": "Always", "nullText": "(null)", "indentation": "\t" },
			"WriteTo": [
				{ "Name": "Console" },
				{ "Name": "File", "Args": { "path": "logs/app.xml" }, "Formatter": { "log4JCompatibility": true } }
			],
			"Enrich": ["WithMachineName", "WithThreadId"],
			"EnrichWith": [{ "Name": "WithSourceContext", "Args": { "sourceContext": "MyApp" } }],
			"Properties": { "Application": "Orders" }
		}
	}`)

	config, err := LoadFromJSON(data)
	testutil.AssertNoError(t, err, "LoadFromJSON")

	cfg := config.Log4Net
	testutil.AssertEqual(t, cfg.MinimumLevel, "Debug", "minimum level")
	testutil.AssertEqual(t, cfg.Formatter.CDataMode, "Always", "cdata mode")
	testutil.AssertEqual(t, *cfg.Formatter.NullText, "(null)", "null text")
	testutil.AssertEqual(t, *cfg.Formatter.Indentation, "\t", "indentation")
	testutil.AssertEqual(t, len(cfg.WriteTo), 2, "sinks")
	testutil.AssertEqual(t, cfg.WriteTo[1].Args["path"].(string), "logs/app.xml", "file path")
	testutil.AssertEqual(t, cfg.WriteTo[1].Formatter.Log4JCompatibility, true, "sink formatter")
	if cfg.WriteTo[0].Formatter != nil {
		t.Error("expected no formatter override for the console sink")
	}
	testutil.AssertContains(t, cfg.Enrich, "WithThreadId", "enrichers")
	testutil.AssertEqual(t, cfg.EnrichWith[0].Args["sourceContext"].(string), "MyApp", "source context")
	testutil.AssertEqual(t, cfg.Properties["Application"].(string), "Orders", "property")
}

func TestLoadFromYAML(t *testing.T) {
	data := []byte(`
Log4Net:
  MinimumLevel: Warning
  Formatter:
    lineEnding: CarriageReturn, LineFeed
    noXmlNamespace: true
    indentation: "    "
  WriteTo:
    - Name: Memory
  Properties:
    Retries: 3
`)

	config, err := LoadFromYAML(data)
	testutil.AssertNoError(t, err, "LoadFromYAML")

	cfg := config.Log4Net
	testutil.AssertEqual(t, cfg.MinimumLevel, "Warning", "minimum level")
	testutil.AssertEqual(t, cfg.Formatter.LineEnding, "CarriageReturn, LineFeed", "line ending")
	testutil.AssertEqual(t, cfg.Formatter.NoXmlNamespace, true, "no namespace")
	testutil.AssertEqual(t, *cfg.Formatter.Indentation, "    ", "indentation")
	testutil.AssertEqual(t, cfg.WriteTo[0].Name, "Memory", "sink")
	testutil.AssertEqual(t, GetInt(cfg.Properties, "Retries", 0), 3, "property")
}

func TestLoadErrors(t *testing.T) {
	if _, err := LoadFromJSON([]byte(`{`)); err == nil || !strings.Contains(err.Error(), "failed to parse JSON") {
		t.Errorf("expected JSON parse error, got %v", err)
	}
	if _, err := LoadFromYAML([]byte("Log4Net: [")); err == nil || !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("expected YAML parse error, got %v", err)
	}
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestLoadFromFileByExtension(t *testing.T) {
	dir := t.TempDir()
	yamlFile := filepath.Join(dir, "log4net.yml")
	testutil.AssertNoError(t, os.WriteFile(yamlFile, []byte("Log4Net:\n  MinimumLevel: Error\n"), 0o644), "WriteFile")
	jsonFile := filepath.Join(dir, "log4net.json")
	testutil.AssertNoError(t, os.WriteFile(jsonFile, []byte(`{"Log4Net":{"MinimumLevel":"Fatal"}}`), 0o644), "WriteFile")

	config, err := LoadFromFile(yamlFile)
	testutil.AssertNoError(t, err, "yaml")
	testutil.AssertEqual(t, config.Log4Net.MinimumLevel, "Error", "yaml level")

	config, err = LoadFromFile(jsonFile)
	testutil.AssertNoError(t, err, "json")
	testutil.AssertEqual(t, config.Log4Net.MinimumLevel, "Fatal", "json level")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  core.LogEventLevel
	}{
		{"Verbose", core.VerboseLevel},
		{"trace", core.VerboseLevel},
		{"DEBUG", core.DebugLevel},
		{"inf", core.InformationLevel},
		{"Information", core.InformationLevel},
		{"warn", core.WarningLevel},
		{"Error", core.ErrorLevel},
		{"ftl", core.FatalLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			testutil.AssertNoError(t, err, "ParseLevel")
			testutil.AssertEqual(t, got, tt.want, "level")
		})
	}

	if _, err := ParseLevel("chatty"); err == nil {
		t.Error("expected error for an unknown level")
	}
}

func TestGetHelpers(t *testing.T) {
	args := map[string]any{
		"name":     "value",
		"float":    float64(42),
		"int":      7,
		"numeric":  "12",
		"bool":     true,
		"boolText": "false",
	}

	testutil.AssertEqual(t, GetString(args, "name", ""), "value", "string")
	testutil.AssertEqual(t, GetString(args, "missing", "default"), "default", "string default")
	testutil.AssertEqual(t, GetString(args, "int", "default"), "default", "string mismatch")
	testutil.AssertEqual(t, GetInt(args, "float", 0), 42, "int from float")
	testutil.AssertEqual(t, GetInt(args, "int", 0), 7, "int")
	testutil.AssertEqual(t, GetInt(args, "numeric", 0), 12, "int from string")
	testutil.AssertEqual(t, GetInt(args, "name", 5), 5, "int default")
	testutil.AssertEqual(t, GetBool(args, "bool", false), true, "bool")
	testutil.AssertEqual(t, GetBool(args, "boolText", true), false, "bool from string")
	testutil.AssertEqual(t, GetBool(nil, "bool", true), true, "bool default")
}

func TestBuildPipeline(t *testing.T) {
	config := &Configuration{Log4Net: PipelineConfiguration{
		MinimumLevel: "Information",
		WriteTo:      []SinkConfiguration{{Name: "Memory"}},
		EnrichWith:   []EnricherConfiguration{{Name: "WithSourceContext", Args: map[string]any{"sourceContext": "MyApp"}}},
		Properties:   map[string]any{"Region": "eu", "Application": "Orders"},
	}}

	p, err := NewPipelineBuilder().Build(config)
	testutil.AssertNoError(t, err, "Build")
	defer p.Close()

	testutil.AssertEqual(t, p.MinimumLevel(), core.InformationLevel, "minimum level")
	testutil.AssertEqual(t, p.IsEnabled(core.DebugLevel), false, "debug disabled")

	p.Emit(newEvent(core.DebugLevel))
	event := newEvent(core.WarningLevel)
	event.AddProperty("Region", "us")
	p.Emit(event)
	p.Emit(nil)

	sink := memorySink(t, p, 0)
	testutil.AssertEqual(t, sink.Count(), 1, "events")

	got := sink.LastEvent()
	names := make([]string, 0, len(got.Properties))
	for _, property := range got.Properties {
		names = append(names, property.Name)
	}
	testutil.AssertEqual(t, strings.Join(names, ","), "Region,Application,SourceContext", "property order")

	region, _ := got.Property("Region")
	testutil.AssertEqual(t, core.RenderString(region, "l", core.InvariantCulture), "us", "event property wins")
}

func TestBuildPipelineDefaultsToVerbose(t *testing.T) {
	p, err := NewPipelineBuilder().Build(&Configuration{Log4Net: PipelineConfiguration{
		WriteTo: []SinkConfiguration{{Name: "Memory"}},
	}})
	testutil.AssertNoError(t, err, "Build")

	p.Emit(newEvent(core.VerboseLevel))
	testutil.AssertEqual(t, memorySink(t, p, 0).Count(), 1, "verbose event")
}

func TestBuildPipelineWritesXML(t *testing.T) {
	dir := t.TempDir()
	log4netFile := filepath.Join(dir, "log4net.xml")
	log4jFile := filepath.Join(dir, "nested", "log4j.xml")

	config := &Configuration{Log4Net: PipelineConfiguration{
		Formatter: mustSettings(t, `{"cDataMode":"Never"}`),
		WriteTo: []SinkConfiguration{
			{Name: "File", Args: map[string]any{"path": log4netFile}},
			{Name: "File", Args: map[string]any{"path": log4jFile}, Formatter: ptr(mustSettings(t, `{"log4JCompatibility":true}`))},
		},
	}}

	p, err := NewPipelineBuilder().Build(config)
	testutil.AssertNoError(t, err, "Build")
	p.Emit(newEvent(core.InformationLevel))
	testutil.AssertNoError(t, p.Close(), "Close")

	data, err := os.ReadFile(log4netFile)
	testutil.AssertNoError(t, err, "ReadFile")
	testutil.AssertOutputContains(t, string(data), `<log4net:event timestamp="2003-01-04T15:09:26.535+01:00" level="INFO"`)
	testutil.AssertOutputContains(t, string(data), "<log4net:message>Hello from Serilog</log4net:message>")

	data, err = os.ReadFile(log4jFile)
	testutil.AssertNoError(t, err, "ReadFile")
	testutil.AssertOutputContains(t, string(data), `<log4j:event timestamp="1041689366535" level="INFO">`)
	testutil.AssertOutputContains(t, string(data), "<![CDATA[Hello from Serilog]]>")
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		config *Configuration
		want   string
	}{
		{"nil configuration", nil, "configuration is nil"},
		{"unknown level", &Configuration{Log4Net: PipelineConfiguration{MinimumLevel: "Chatty"}}, "invalid minimum level"},
		{"invalid formatter", &Configuration{Log4Net: PipelineConfiguration{Formatter: mustSettings(t, `{"cDataMode":"Sometimes"}`)}}, "invalid formatter settings"},
		{"unknown sink", &Configuration{Log4Net: PipelineConfiguration{WriteTo: []SinkConfiguration{{Name: "Seq"}}}}, "unknown sink type: Seq"},
		{"file without path", &Configuration{Log4Net: PipelineConfiguration{WriteTo: []SinkConfiguration{{Name: "File"}}}}, "requires 'path'"},
		{"invalid sink formatter", &Configuration{Log4Net: PipelineConfiguration{WriteTo: []SinkConfiguration{
			{Name: "Memory", Formatter: ptr(mustSettings(t, `{"lineEnding":"Newline"}`))},
		}}}, "invalid formatter settings for sink Memory"},
		{"unknown enricher", &Configuration{Log4Net: PipelineConfiguration{Enrich: []string{"WithColor"}}}, "unknown enricher type: WithColor"},
		{"enricher without args", &Configuration{Log4Net: PipelineConfiguration{
			EnrichWith: []EnricherConfiguration{{Name: "WithEnvironment"}},
		}}, "requires 'variable'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewPipelineBuilder().Build(tt.config)
			if p != nil {
				t.Error("expected nil pipeline")
			}
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestRegisterSink(t *testing.T) {
	memory := sinks.NewMemorySink()
	builder := NewPipelineBuilder()
	builder.RegisterSink("Shared", func(args map[string]any, formatter core.TextFormatter) (core.LogEventSink, error) {
		return memory, nil
	})

	p, err := builder.Build(&Configuration{Log4Net: PipelineConfiguration{
		WriteTo: []SinkConfiguration{{Name: "Shared"}},
		EnrichWith: []EnricherConfiguration{
			{Name: "WithEnvironment", Args: map[string]any{"variable": "LOG4NET_TEST_TIER", "propertyName": "Tier"}},
		},
	}})
	testutil.AssertNoError(t, err, "Build")

	t.Setenv("LOG4NET_TEST_TIER", "gold")
	p.Emit(newEvent(core.InformationLevel))

	tier, ok := memory.LastEvent().Property("Tier")
	if !ok {
		t.Fatal("expected Tier property")
	}
	testutil.AssertEqual(t, core.RenderString(tier, "l", core.InvariantCulture), "gold", "tier")
}

func TestCreatePipelineFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	base := `{"Log4Net":{"MinimumLevel":"Debug","WriteTo":[{"Name":"Memory"}],"Properties":{"Application":"Orders"}}}`
	overlay := "Log4Net:\n  MinimumLevel: Error\n  Properties:\n    Stage: test\n"
	testutil.AssertNoError(t, os.WriteFile(filepath.Join(dir, "log4net.json"), []byte(base), 0o644), "base")
	testutil.AssertNoError(t, os.WriteFile(filepath.Join(dir, "log4net.Testing.yaml"), []byte(overlay), 0o644), "overlay")

	t.Setenv("LOG4NET_ENVIRONMENT", "Testing")
	config, err := LoadFromEnvironment(dir)
	testutil.AssertNoError(t, err, "LoadFromEnvironment")
	testutil.AssertEqual(t, config.Log4Net.MinimumLevel, "Error", "overlay level")
	testutil.AssertEqual(t, len(config.Log4Net.WriteTo), 1, "base sinks kept")
	testutil.AssertEqual(t, config.Log4Net.Properties["Application"].(string), "Orders", "base property")
	testutil.AssertEqual(t, config.Log4Net.Properties["Stage"].(string), "test", "overlay property")

	p, err := CreatePipelineFromEnvironment(dir)
	testutil.AssertNoError(t, err, "CreatePipelineFromEnvironment")
	testutil.AssertEqual(t, p.MinimumLevel(), core.ErrorLevel, "pipeline level")

	t.Setenv("LOG4NET_ENVIRONMENT", "")
	config, err = LoadFromEnvironment(dir)
	testutil.AssertNoError(t, err, "production")
	testutil.AssertEqual(t, config.Log4Net.MinimumLevel, "Debug", "production level")

	if _, err := LoadFromEnvironment(t.TempDir()); err == nil {
		t.Error("expected error for a directory without configuration")
	}
}

func TestCreatePipelineHelpers(t *testing.T) {
	p, err := CreatePipelineFromJSON([]byte(`{"Log4Net":{"WriteTo":[{"Name":"Memory"}]}}`))
	testutil.AssertNoError(t, err, "json")
	testutil.AssertEqual(t, len(p.Sinks()), 1, "json sinks")

	p, err = CreatePipelineFromYAML([]byte("Log4Net:\n  WriteTo:\n    - Name: Memory\n    - Name: Memory\n"))
	testutil.AssertNoError(t, err, "yaml")
	testutil.AssertEqual(t, len(p.Sinks()), 2, "yaml sinks")

	file := filepath.Join(t.TempDir(), "log4net.yaml")
	testutil.AssertNoError(t, os.WriteFile(file, []byte("Log4Net:\n  MinimumLevel: Fatal\n"), 0o644), "WriteFile")
	p, err = CreatePipelineFromFile(file)
	testutil.AssertNoError(t, err, "file")
	testutil.AssertEqual(t, p.MinimumLevel(), core.FatalLevel, "file level")

	if _, err := CreatePipelineFromJSON([]byte(`[`)); err == nil {
		t.Error("expected JSON error")
	}
}

func TestBuildAsyncSink(t *testing.T) {
	output := filepath.Join(t.TempDir(), "async.xml")
	p, err := CreatePipelineFromYAML([]byte("Log4Net:\n" +
		"  WriteTo:\n" +
		"    - Name: File\n" +
		"      Args:\n" +
		"        path: " + output + "\n" +
		"        async: true\n" +
		"        bufferSize: 16\n" +
		"        overflow: Drop\n"))
	testutil.AssertNoError(t, err, "CreatePipelineFromYAML")

	async, ok := p.Sinks()[0].(*sinks.AsyncSink)
	if !ok {
		t.Fatalf("expected *sinks.AsyncSink, got %T", p.Sinks()[0])
	}

	p.Emit(newEvent(core.InformationLevel))
	testutil.AssertNoError(t, p.Close(), "Close")
	testutil.AssertEqual(t, async.Processed(), uint64(1), "processed")

	data, err := os.ReadFile(output)
	testutil.AssertNoError(t, err, "ReadFile")
	testutil.AssertOutputContains(t, string(data), "<log4net:message>Hello from Serilog</log4net:message>")
}

func TestBuildRestrictedSink(t *testing.T) {
	p, err := CreatePipelineFromJSON([]byte(`{"Log4Net":{"WriteTo":[
		{"Name":"Memory"},
		{"Name":"Memory","Args":{"restrictedToMinimumLevel":"Error"}}
	]}}`))
	testutil.AssertNoError(t, err, "CreatePipelineFromJSON")

	if _, ok := p.Sinks()[1].(*sinks.ConditionalSink); !ok {
		t.Fatalf("expected *sinks.ConditionalSink, got %T", p.Sinks()[1])
	}

	p.Emit(newEvent(core.InformationLevel))
	p.Emit(newEvent(core.ErrorLevel))
	testutil.AssertEqual(t, memorySink(t, p, 0).Count(), 2, "unrestricted sink")

	_, err = CreatePipelineFromJSON([]byte(`{"Log4Net":{"WriteTo":[{"Name":"Memory","Args":{"restrictedToMinimumLevel":"Loud"}}]}}`))
	if err == nil || !strings.Contains(err.Error(), "invalid minimum level for sink Memory") {
		t.Errorf("expected restricted level error, got %v", err)
	}
}
