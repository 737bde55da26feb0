package log4net_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/log4net"
	"github.com/willibrandon/mtlog-log4net/testutil"
)

func assertArgumentError(t *testing.T, err error, param, message string) {
	t.Helper()
	testutil.AssertErrorIs(t, err, log4net.ErrInvalidArgument, param)
	var argErr *log4net.ArgumentError
	if !errors.As(err, &argErr) {
		t.Fatalf("expected *ArgumentError, got %T", err)
	}
	testutil.AssertEqual(t, argErr.Param, param, "param")
	if !strings.Contains(argErr.Message, message) {
		t.Errorf("expected message containing %q, got %q", message, argErr.Message)
	}
}

func TestDefaultOptions(t *testing.T) {
	options, err := log4net.NewOptionsBuilder().Build()
	testutil.AssertNoError(t, err, "Build")

	testutil.AssertEqual(t, options.CDataMode(), log4net.CDataIfNeeded, "cdata mode")
	testutil.AssertEqual(t, options.NewLine(), "\n", "new line")
	testutil.AssertEqual(t, options.Indent(), "  ", "indent")
	testutil.AssertEqual(t, options.Log4JCompatibility(), false, "log4j")
	testutil.AssertEqual(t, options.FormatProvider().IsInvariant(), true, "invariant culture")

	namespace, ok := options.XmlNamespace()
	testutil.AssertEqual(t, ok, true, "has namespace")
	testutil.AssertEqual(t, namespace, log4net.Log4NetNamespace, "namespace")

	_, ok = options.NullText()
	testutil.AssertEqual(t, ok, false, "null text")
}

func TestLog4JCompatibilityOptions(t *testing.T) {
	options, err := log4net.NewOptionsBuilder().UseLog4JCompatibility().Build()
	testutil.AssertNoError(t, err, "Build")

	testutil.AssertEqual(t, options.CDataMode(), log4net.CDataAlways, "cdata mode")
	testutil.AssertEqual(t, options.NewLine(), "\r\n", "new line")
	testutil.AssertEqual(t, options.Log4JCompatibility(), true, "log4j")
	namespace, _ := options.XmlNamespace()
	testutil.AssertEqual(t, namespace, log4net.Log4JNamespace, "namespace")
}

func TestLog4JCompatibilityFollowsNamespace(t *testing.T) {
	tests := []struct {
		name    string
		builder log4net.OptionsBuilder
		want    bool
	}{
		{name: "preset", builder: log4net.NewOptionsBuilder().UseLog4JCompatibility(), want: true},
		{name: "log4net namespace override", builder: log4net.NewOptionsBuilder().UseLog4JCompatibility().UseXmlNamespace(log4net.Log4NetNamespace), want: false},
		{name: "no namespace override", builder: log4net.NewOptionsBuilder().UseLog4JCompatibility().UseNoXmlNamespace(), want: false},
		{name: "preset then log4j namespace", builder: log4net.NewOptionsBuilder().UseLog4JCompatibility().UseXmlNamespace(log4net.Log4JNamespace), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, err := tt.builder.Build()
			testutil.AssertNoError(t, err, "Build")
			testutil.AssertEqual(t, options.Log4JCompatibility(), tt.want, "log4j")
		})
	}
}

func TestLog4JNamespaceImpliesCompatibility(t *testing.T) {
	options, err := log4net.NewOptionsBuilder().UseXmlNamespace(log4net.Log4JNamespace).Build()
	testutil.AssertNoError(t, err, "Build")
	testutil.AssertEqual(t, options.Log4JCompatibility(), true, "log4j")
}

func TestOptionsBuilderValueSemantics(t *testing.T) {
	base := log4net.NewOptionsBuilder()
	_ = base.UseNoIndentation().UseCDataMode(log4net.CDataNever).UseNullText("-")

	options, err := base.Build()
	testutil.AssertNoError(t, err, "Build")
	testutil.AssertEqual(t, options.Indent(), "  ", "indent")
	testutil.AssertEqual(t, options.CDataMode(), log4net.CDataIfNeeded, "cdata mode")
	_, ok := options.NullText()
	testutil.AssertEqual(t, ok, false, "null text")
}

func TestOptionsBuilderErrors(t *testing.T) {
	tests := []struct {
		name    string
		build   func(log4net.OptionsBuilder) log4net.OptionsBuilder
		param   string
		message string
	}{
		{
			name:    "nil property filter",
			build:   func(b log4net.OptionsBuilder) log4net.OptionsBuilder { return b.UsePropertyFilter(nil) },
			param:   "filterProperty",
			message: "The property filter can not be null.",
		},
		{
			name:    "nil exception formatter",
			build:   func(b log4net.OptionsBuilder) log4net.OptionsBuilder { return b.UseExceptionFormatter(nil) },
			param:   "formatException",
			message: "The exception formatter can not be null.",
		},
		{
			name:    "nil message formatter",
			build:   func(b log4net.OptionsBuilder) log4net.OptionsBuilder { return b.UseMessageFormatter(nil) },
			param:   "formatMessage",
			message: "The message formatter can not be null.",
		},
		{
			name:    "invalid line ending",
			build:   func(b log4net.OptionsBuilder) log4net.OptionsBuilder { return b.UseLineEnding(log4net.LineEnding(4)) },
			param:   "lineEnding",
			message: "The value of argument 'lineEnding' (4) is invalid for Enum type 'LineEnding'.",
		},
		{
			name:    "invalid cdata mode",
			build:   func(b log4net.OptionsBuilder) log4net.OptionsBuilder { return b.UseCDataMode(log4net.CDataMode(9)) },
			param:   "cDataMode",
			message: "(9)",
		},
		{
			name: "zero indentation settings",
			build: func(b log4net.OptionsBuilder) log4net.OptionsBuilder {
				return b.UseIndentationSettings(log4net.IndentationSettings{})
			},
			param:   "indentationSettings",
			message: "NewIndentationSettings",
		},
		{
			name: "first error wins",
			build: func(b log4net.OptionsBuilder) log4net.OptionsBuilder {
				return b.UsePropertyFilter(nil).UseExceptionFormatter(nil)
			},
			param:   "filterProperty",
			message: "The property filter can not be null.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, err := tt.build(log4net.NewOptionsBuilder()).Build()
			if options != nil {
				t.Error("expected nil options")
			}
			assertArgumentError(t, err, tt.param, tt.message)

			_, err = log4net.NewFormatter(tt.build)
			testutil.AssertErrorIs(t, err, log4net.ErrInvalidArgument, "NewFormatter")
		})
	}
}

func TestMustNewFormatterPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected a panic")
		}
	}()
	log4net.MustNewFormatter(func(b log4net.OptionsBuilder) log4net.OptionsBuilder {
		return b.UsePropertyFilter(nil)
	})
}

func TestNewFormatterWithOptions(t *testing.T) {
	options, err := log4net.NewOptionsBuilder().UseCDataMode(log4net.CDataNever).Build()
	testutil.AssertNoError(t, err, "Build")

	formatter := log4net.NewFormatterWithOptions(options)
	if formatter.Options() != options {
		t.Error("expected the formatter to keep the options")
	}

	defaults := log4net.NewFormatterWithOptions(nil)
	testutil.AssertEqual(t, defaults.Options().CDataMode(), log4net.CDataIfNeeded, "default cdata mode")
}

func TestIndentationSettings(t *testing.T) {
	tests := []struct {
		name        string
		indentation log4net.Indentation
		size        int
		want        string
		param       string
		message     string
	}{
		{name: "two spaces", indentation: log4net.Space, size: 2, want: "  "},
		{name: "four tabs", indentation: log4net.Tab, size: 4, want: "\t\t\t\t"},
		{name: "maximum", indentation: log4net.Space, size: 255, want: strings.Repeat(" ", 255)},
		{name: "zero size", indentation: log4net.Space, size: 0, param: "size", message: "between 1 and 255"},
		{name: "too large", indentation: log4net.Tab, size: 256, param: "size", message: "got 256"},
		{name: "invalid kind", indentation: log4net.Indentation(-1), size: 2, param: "indentation", message: "(-1)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings, err := log4net.NewIndentationSettings(tt.indentation, tt.size)
			if tt.param != "" {
				assertArgumentError(t, err, tt.param, tt.message)
				return
			}
			testutil.AssertNoError(t, err, "NewIndentationSettings")
			testutil.AssertEqual(t, settings.String(), tt.want, "indent string")
			testutil.AssertEqual(t, settings.Indentation(), tt.indentation, "indentation")
			testutil.AssertEqual(t, settings.Size(), tt.size, "size")
		})
	}
}

func TestLineEndingCharacters(t *testing.T) {
	tests := []struct {
		lineEnding log4net.LineEnding
		want       string
	}{
		{log4net.LineEndingNone, ""},
		{log4net.LineFeed, "\n"},
		{log4net.CarriageReturn, "\r"},
		{log4net.CarriageReturn | log4net.LineFeed, "\r\n"},
	}
	for _, tt := range tests {
		t.Run(tt.lineEnding.String(), func(t *testing.T) {
			got, err := tt.lineEnding.Characters()
			testutil.AssertNoError(t, err, "Characters")
			testutil.AssertEqual(t, got, tt.want, "characters")
		})
	}

	_, err := log4net.LineEnding(8).Characters()
	assertArgumentError(t, err, "lineEnding", "(8)")
}

func TestParseLineEnding(t *testing.T) {
	tests := []struct {
		input   string
		want    log4net.LineEnding
		wantErr bool
	}{
		{"None", log4net.LineEndingNone, false},
		{"LineFeed", log4net.LineFeed, false},
		{"carriagereturn", log4net.CarriageReturn, false},
		{"CarriageReturn, LineFeed", log4net.CarriageReturn | log4net.LineFeed, false},
		{"CRLF", log4net.CarriageReturn | log4net.LineFeed, false},
		{"LF", log4net.LineFeed, false},
		{"Newline", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := log4net.ParseLineEnding(tt.input)
			if tt.wantErr {
				testutil.AssertErrorIs(t, err, log4net.ErrInvalidArgument, "ParseLineEnding")
				return
			}
			testutil.AssertNoError(t, err, "ParseLineEnding")
			testutil.AssertEqual(t, got, tt.want, "line ending")
		})
	}
}

func TestParseCDataMode(t *testing.T) {
	for input, want := range map[string]log4net.CDataMode{
		"Always":   log4net.CDataAlways,
		"never":    log4net.CDataNever,
		"IFNEEDED": log4net.CDataIfNeeded,
	} {
		got, err := log4net.ParseCDataMode(input)
		testutil.AssertNoError(t, err, input)
		testutil.AssertEqual(t, got, want, input)
	}

	_, err := log4net.ParseCDataMode("Sometimes")
	assertArgumentError(t, err, "cDataMode", "Sometimes")
}

func TestUseFormatProvider(t *testing.T) {
	provider, err := core.ParseCulture("de-CH")
	testutil.AssertNoError(t, err, "ParseCulture")

	options, err := log4net.NewOptionsBuilder().UseFormatProvider(provider).Build()
	testutil.AssertNoError(t, err, "Build")
	testutil.AssertEqual(t, options.FormatProvider().Name(), "de-CH", "culture")
}
