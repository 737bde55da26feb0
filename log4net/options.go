package log4net

import (
	"fmt"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/internal/xmlwriter"
	"github.com/willibrandon/mtlog-log4net/parser"
	"github.com/willibrandon/mtlog-log4net/selflog"
)

// PropertyFilter decides whether a property is written in the properties
// element. A panicking filter is reported to the self log and the property
// is included.
type PropertyFilter func(event *core.LogEvent, propertyName string) bool

// MessageFormatter renders the content of the message element.
type MessageFormatter func(event *core.LogEvent, provider core.FormatProvider) string

// ExceptionFormatter renders the content of the exception element.
// Returning false omits the element.
type ExceptionFormatter func(err error) (string, bool)

// DefaultMessageFormatter renders the event's message template.
func DefaultMessageFormatter(event *core.LogEvent, provider core.FormatProvider) string {
	return parser.RenderMessage(event, provider)
}

// DefaultExceptionFormatter renders err with the %+v verb so that errors
// carrying stack traces include them.
func DefaultExceptionFormatter(err error) (string, bool) {
	return fmt.Sprintf("%+v", err), true
}

func includeAllProperties(*core.LogEvent, string) bool {
	return true
}

// OptionsBuilder collects formatter options. Every Use method returns a
// modified copy, so a builder can be shared and extended freely.
// Invalid arguments are recorded and reported by Build.
type OptionsBuilder struct {
	formatProvider  core.FormatProvider
	cDataMode       CDataMode
	namespace       *XmlNamespace
	lineEnding      LineEnding
	indentation     *IndentationSettings
	nullText        *string
	filterProperty  PropertyFilter
	formatMessage   MessageFormatter
	formatException ExceptionFormatter
	selfLog         selflog.Logger
	err             error
}

// NewOptionsBuilder returns a builder holding the default options: the
// log4net namespace, LF line endings, two-space indentation, CDataIfNeeded,
// no null text and the invariant culture.
func NewOptionsBuilder() OptionsBuilder {
	namespace := Log4NetNamespace
	indentation := IndentationSettings{indentation: Space, size: 2}
	return OptionsBuilder{
		formatProvider:  core.InvariantCulture,
		cDataMode:       CDataIfNeeded,
		namespace:       &namespace,
		lineEnding:      LineFeed,
		indentation:     &indentation,
		filterProperty:  includeAllProperties,
		formatMessage:   DefaultMessageFormatter,
		formatException: DefaultExceptionFormatter,
		selfLog:         selflog.Default(),
	}
}

// UseFormatProvider sets the culture used to render numbers and the message.
func (b OptionsBuilder) UseFormatProvider(provider core.FormatProvider) OptionsBuilder {
	b.formatProvider = provider
	return b
}

// UseCDataMode sets when CDATA sections are written.
func (b OptionsBuilder) UseCDataMode(mode CDataMode) OptionsBuilder {
	b.cDataMode = mode
	return b
}

// UseXmlNamespace qualifies every element with namespace.
func (b OptionsBuilder) UseXmlNamespace(namespace XmlNamespace) OptionsBuilder {
	b.namespace = &namespace
	return b
}

// UseNoXmlNamespace writes unqualified elements.
func (b OptionsBuilder) UseNoXmlNamespace() OptionsBuilder {
	b.namespace = nil
	return b
}

// UseLineEnding sets the characters written between indented elements and
// after each event.
func (b OptionsBuilder) UseLineEnding(lineEnding LineEnding) OptionsBuilder {
	b.lineEnding = lineEnding
	return b
}

// UseIndentationSettings indents nested elements with settings.
func (b OptionsBuilder) UseIndentationSettings(settings IndentationSettings) OptionsBuilder {
	if settings.size == 0 {
		return b.fail(&ArgumentError{
			Param:   "indentationSettings",
			Message: "The indentation settings must be created with NewIndentationSettings.",
		})
	}
	b.indentation = &settings
	return b
}

// UseNoIndentation writes each event on a single line.
func (b OptionsBuilder) UseNoIndentation() OptionsBuilder {
	b.indentation = nil
	return b
}

// UseNullText writes text in the value attribute of null properties.
func (b OptionsBuilder) UseNullText(text string) OptionsBuilder {
	b.nullText = &text
	return b
}

// UseNoNullText omits the value attribute of null properties.
func (b OptionsBuilder) UseNoNullText() OptionsBuilder {
	b.nullText = nil
	return b
}

// UsePropertyFilter sets the filter deciding which properties are written.
func (b OptionsBuilder) UsePropertyFilter(filter PropertyFilter) OptionsBuilder {
	if filter == nil {
		return b.fail(&ArgumentError{Param: "filterProperty", Message: "The property filter can not be null."})
	}
	b.filterProperty = filter
	return b
}

// UseMessageFormatter sets the function rendering the message element.
func (b OptionsBuilder) UseMessageFormatter(formatter MessageFormatter) OptionsBuilder {
	if formatter == nil {
		return b.fail(&ArgumentError{Param: "formatMessage", Message: "The message formatter can not be null."})
	}
	b.formatMessage = formatter
	return b
}

// UseExceptionFormatter sets the function rendering the exception element.
func (b OptionsBuilder) UseExceptionFormatter(formatter ExceptionFormatter) OptionsBuilder {
	if formatter == nil {
		return b.fail(&ArgumentError{Param: "formatException", Message: "The exception formatter can not be null."})
	}
	b.formatException = formatter
	return b
}

// UseSelfLog sets where recovered callback failures are reported.
// A nil logger restores the process-wide self log.
func (b OptionsBuilder) UseSelfLog(logger selflog.Logger) OptionsBuilder {
	if logger == nil {
		logger = selflog.Default()
	}
	b.selfLog = logger
	return b
}

// UseLog4JCompatibility switches to the log4j XML layout: CRLF line
// endings, the log4j namespace without its declaration, CDATA sections for
// every message and exception, millisecond timestamps, the TRACE level and
// a throwable element. Apply it before any override of those options.
// The layout follows the namespace: overriding it with any namespace other
// than log4j afterwards restores the log4net layout.
func (b OptionsBuilder) UseLog4JCompatibility() OptionsBuilder {
	namespace := Log4JNamespace
	b.lineEnding = CarriageReturn | LineFeed
	b.namespace = &namespace
	b.cDataMode = CDataAlways
	return b
}

func (b OptionsBuilder) fail(err error) OptionsBuilder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Build validates the options and derives the writer configuration.
func (b OptionsBuilder) Build() (*Options, error) {
	if b.err != nil {
		return nil, b.err
	}
	if !b.cDataMode.IsDefined() {
		return nil, invalidEnumError("cDataMode", int(b.cDataMode), "CDataMode")
	}
	newLine, err := b.lineEnding.Characters()
	if err != nil {
		return nil, err
	}

	o := &Options{
		formatProvider:  b.formatProvider,
		cDataMode:       b.cDataMode,
		newLine:         newLine,
		filterProperty:  b.filterProperty,
		formatMessage:   b.formatMessage,
		formatException: b.formatException,
		selfLog:         b.selfLog,
	}
	if b.namespace != nil {
		namespace := *b.namespace
		o.namespace = &namespace
	}
	if b.indentation != nil {
		o.indent = b.indentation.String()
	}
	if b.nullText != nil {
		text := *b.nullText
		o.nullText = &text
	}
	o.log4j = o.namespace != nil && o.namespace.Prefix == Log4JNamespace.Prefix
	return o, nil
}

// Options is the immutable configuration of a Formatter.
type Options struct {
	formatProvider  core.FormatProvider
	cDataMode       CDataMode
	namespace       *XmlNamespace
	newLine         string
	indent          string
	nullText        *string
	filterProperty  PropertyFilter
	formatMessage   MessageFormatter
	formatException ExceptionFormatter
	selfLog         selflog.Logger
	log4j           bool
}

// FormatProvider returns the culture used for rendering.
func (o *Options) FormatProvider() core.FormatProvider {
	return o.formatProvider
}

// CDataMode returns when CDATA sections are written.
func (o *Options) CDataMode() CDataMode {
	return o.cDataMode
}

// XmlNamespace returns the element namespace, if any.
func (o *Options) XmlNamespace() (XmlNamespace, bool) {
	if o.namespace == nil {
		return XmlNamespace{}, false
	}
	return *o.namespace, true
}

// NewLine returns the line ending characters.
func (o *Options) NewLine() string {
	return o.newLine
}

// Indent returns the indentation string, empty when indentation is off.
func (o *Options) Indent() string {
	return o.indent
}

// NullText returns the text written for null properties, if any.
func (o *Options) NullText() (string, bool) {
	if o.nullText == nil {
		return "", false
	}
	return *o.nullText, true
}

// Log4JCompatibility reports whether the log4j layout is produced.
func (o *Options) Log4JCompatibility() bool {
	return o.log4j
}

func (o *Options) writerSettings() xmlwriter.Settings {
	return xmlwriter.Settings{
		Indent:                    o.indent,
		NewLine:                   o.newLine,
		OmitNamespaceDeclarations: o.log4j,
	}
}
