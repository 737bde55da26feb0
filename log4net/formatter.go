// Package log4net formats log events as log4net or log4j XML event fragments.
//
// Each call to Format writes one event element followed by the configured
// line ending:
//
//	<log4net:event logger="App" timestamp="2003-01-04T15:09:26.535+01:00" level="INFO" xmlns:log4net="http://logging.apache.org/log4net/schemas/log4net-events-1.2/">
//	  <log4net:properties>
//	    <log4net:data name="log4net:HostName" value="web01" />
//	    <log4net:data name="UserId" value="123" />
//	  </log4net:properties>
//	  <log4net:message>User 123 logged in</log4net:message>
//	</log4net:event>
//
// A Formatter is immutable and safe for concurrent use.
package log4net

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/internal/xmlwriter"
)

// Property names with a dedicated place in the event element.
const (
	SourceContextPropertyName       = "SourceContext"
	MessagePropertyName             = "Message"
	ThreadIdPropertyName            = "ThreadId"
	EnvironmentUserNamePropertyName = "EnvironmentUserName"
	MachineNamePropertyName         = "MachineName"
	ProcessNamePropertyName         = "ProcessName"
)

// HostNamePropertyName is the data element name of the machine name.
const HostNamePropertyName = "log4net:HostName"

const log4NetTimestampLayout = "2006-01-02T15:04:05.9999999-07:00"

var reservedProperties = map[string]bool{
	SourceContextPropertyName:       true,
	MessagePropertyName:             true,
	ThreadIdPropertyName:            true,
	EnvironmentUserNamePropertyName: true,
	MachineNamePropertyName:         true,
	ProcessNamePropertyName:         true,
}

// Formatter writes log events as XML event fragments.
type Formatter struct {
	options *Options
	writers sync.Pool
}

// NewFormatter builds a formatter from the default options modified by opts.
func NewFormatter(opts ...func(OptionsBuilder) OptionsBuilder) (*Formatter, error) {
	builder := NewOptionsBuilder()
	for _, opt := range opts {
		builder = opt(builder)
	}
	options, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return NewFormatterWithOptions(options), nil
}

// MustNewFormatter is like NewFormatter but panics on error.
func MustNewFormatter(opts ...func(OptionsBuilder) OptionsBuilder) *Formatter {
	f, err := NewFormatter(opts...)
	if err != nil {
		panic(err)
	}
	return f
}

// NewFormatterWithOptions returns a formatter using options built earlier.
// A nil options uses the defaults.
func NewFormatterWithOptions(options *Options) *Formatter {
	if options == nil {
		options, _ = NewOptionsBuilder().Build()
	}
	f := &Formatter{options: options}
	f.writers.New = func() any {
		return xmlwriter.New(io.Discard, options.writerSettings())
	}
	return f
}

// Log4JFormatter returns a formatter producing the log4j XML layout.
func Log4JFormatter() *Formatter {
	return MustNewFormatter(OptionsBuilder.UseLog4JCompatibility)
}

// Options returns the formatter configuration.
func (f *Formatter) Options() *Options {
	return f.options
}

// Format writes event to output as one XML fragment followed by the line
// ending. Nothing is written when the event is rejected.
func (f *Formatter) Format(event *core.LogEvent, output io.Writer) error {
	if event == nil {
		return &ArgumentError{Param: "logEvent", Message: "The log event can not be nil."}
	}
	if isNilWriter(output) {
		return &ArgumentError{Param: "output", Message: "The output can not be nil."}
	}

	w := f.writers.Get().(*xmlwriter.Writer)
	defer func() {
		w.Reset(io.Discard)
		f.writers.Put(w)
	}()
	w.Reset(output)

	if err := f.writeEvent(event, xmlOutput{w: w, options: f.options}); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("log4net: failed to write event: %w", err)
	}
	if _, err := io.WriteString(output, f.options.newLine); err != nil {
		return fmt.Errorf("log4net: failed to write line ending: %w", err)
	}
	return nil
}

func (f *Formatter) writeEvent(event *core.LogEvent, out xmlOutput) error {
	level, err := f.level(event.Level)
	if err != nil {
		return err
	}

	out.startElement("event")
	f.writeEventAttribute(event, out, "logger", SourceContextPropertyName)
	out.attribute("timestamp", f.timestamp(event))
	out.attribute("level", level)
	f.writeEventAttribute(event, out, "thread", ThreadIdPropertyName)
	writeDomainAndUserName(event, out)

	machineName, hasMachineName := event.Property(MachineNamePropertyName)
	hasMachineName = hasMachineName && isNonNullScalar(machineName)
	if hasMachineName || hasRegularProperties(event) {
		f.writeProperties(event, out, machineName, hasMachineName)
	}

	out.writeContent("message", f.message(event))

	if event.Exception != nil {
		element := "exception"
		if f.options.log4j {
			element = "throwable"
		}
		if text, ok := f.exception(event.Exception); ok {
			out.writeContent(element, text)
		}
	}

	out.endElement()
	return nil
}

func (f *Formatter) timestamp(event *core.LogEvent) string {
	if f.options.log4j {
		return strconv.FormatInt(event.Timestamp.UnixMilli(), 10)
	}
	return event.Timestamp.Format(log4NetTimestampLayout)
}

// level maps the event level to the log4net or log4j level name.
func (f *Formatter) level(level core.LogEventLevel) (string, error) {
	switch level {
	case core.VerboseLevel:
		if f.options.log4j {
			return "TRACE", nil
		}
		return "VERBOSE", nil
	case core.DebugLevel:
		return "DEBUG", nil
	case core.InformationLevel:
		return "INFO", nil
	case core.WarningLevel:
		return "WARN", nil
	case core.ErrorLevel:
		return "ERROR", nil
	case core.FatalLevel:
		return "FATAL", nil
	default:
		return "", invalidEnumError("level", int(level), "LogEventLevel")
	}
}

// writeEventAttribute writes the attribute when the property is a non-null scalar.
func (f *Formatter) writeEventAttribute(event *core.LogEvent, out xmlOutput, attribute, property string) {
	if value, ok := event.Property(property); ok && isNonNullScalar(value) {
		out.attribute(attribute, f.options.renderValue(value))
	}
}

// writeDomainAndUserName splits a DOMAIN\user environment user name on the
// first backslash.
func writeDomainAndUserName(event *core.LogEvent, out xmlOutput) {
	value, ok := event.Property(EnvironmentUserNamePropertyName)
	if !ok {
		return
	}
	scalar, ok := value.(*core.ScalarValue)
	if !ok {
		return
	}
	userName, ok := scalar.Value.(string)
	if !ok {
		return
	}
	if domain, user, found := strings.Cut(userName, `\`); found {
		out.attribute("domain", domain)
		out.attribute("username", user)
	} else {
		out.attribute("username", userName)
	}
}

func (f *Formatter) writeProperties(event *core.LogEvent, out xmlOutput, machineName core.PropertyValue, hasMachineName bool) {
	out.startElement("properties")
	var entries []flatEntry
	if hasMachineName {
		entries = f.options.flatten(entries, HostNamePropertyName, machineName)
	}
	for _, property := range event.Properties {
		if reservedProperties[property.Name] || !f.includeProperty(event, property.Name) {
			continue
		}
		entries = f.options.flatten(entries, property.Name, property.Value)
	}
	for _, entry := range entries {
		out.writeData(entry)
	}
	out.endElement()
}

func (f *Formatter) includeProperty(event *core.LogEvent, name string) (include bool) {
	defer func() {
		if r := recover(); r != nil {
			f.options.selfLog.Printf("[log4net] An exception was thrown while filtering property '%s'. Including the property in the log4net event.\n%v", name, r)
			include = true
		}
	}()
	return f.options.filterProperty(event, name)
}

func (f *Formatter) message(event *core.LogEvent) (message string) {
	defer func() {
		if r := recover(); r != nil {
			f.options.selfLog.Printf("[log4net] An exception was thrown while formatting the message. Using the default message formatter.\n%v", r)
			message = f.defaultMessage(event)
		}
	}()
	return f.options.formatMessage(event, f.options.formatProvider)
}

// defaultMessage renders with DefaultMessageFormatter, falling back to the
// raw template when rendering fails too.
func (f *Formatter) defaultMessage(event *core.LogEvent) (message string) {
	defer func() {
		if r := recover(); r != nil {
			f.options.selfLog.Printf("[log4net] An exception was thrown by the default message formatter. Using the message template.\n%v", r)
			message = event.MessageTemplate
		}
	}()
	return DefaultMessageFormatter(event, f.options.formatProvider)
}

func (f *Formatter) exception(err error) (text string, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f.options.selfLog.Printf("[log4net] An exception was thrown while formatting an exception. Using the default exception formatter.\n%v", r)
			text, ok = err.Error(), true
		}
	}()
	return f.options.formatException(err)
}

// isNilWriter reports a nil output, including a nil pointer of the common
// writer types.
func isNilWriter(output io.Writer) bool {
	switch w := output.(type) {
	case nil:
		return true
	case *bytes.Buffer:
		return w == nil
	case *strings.Builder:
		return w == nil
	case *bufio.Writer:
		return w == nil
	case *os.File:
		return w == nil
	}
	return false
}

func isNonNullScalar(value core.PropertyValue) bool {
	scalar, ok := value.(*core.ScalarValue)
	return ok && scalar.Value != nil
}

func hasRegularProperties(event *core.LogEvent) bool {
	for _, property := range event.Properties {
		if !reservedProperties[property.Name] {
			return true
		}
	}
	return false
}
