// Package selflog reports problems the formatter, its sinks and the
// configuration loader recover from on their own: a panicking property
// filter, a sink that failed to write, a configuration value of the wrong
// type. Nothing is reported until an output is enabled.
//
// Route the process-wide output to stderr:
//
//	selflog.Enable(os.Stderr)
//	defer selflog.Disable()
//
// or to a callback:
//
//	selflog.EnableFunc(func(line string) { logger.Warn(line) })
//
// Writers shared between goroutines should be wrapped with Sync:
//
//	f, _ := os.Create("log4net-debug.log")
//	selflog.Enable(selflog.Sync(f))
//
// Components that accept a Logger can report to their own destination
// instead of the process-wide one:
//
//	log4net.NewFormatter(func(b log4net.OptionsBuilder) log4net.OptionsBuilder {
//	    return b.UseSelfLog(selflog.Func(func(line string) { t.Log(line) }))
//	})
//
// Every line starts with an RFC 3339 UTC timestamp followed by the message,
// which by convention names its component in brackets:
//
//	2025-01-29T15:30:45Z [file] write failed: disk full
//
// The LOG4NET_SELFLOG environment variable enables the process-wide output
// at startup: "stderr", "stdout" or a file path to append to.
package selflog

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Logger receives diagnostic messages.
type Logger interface {
	Printf(format string, args ...interface{})
}

// output is the process-wide destination; nil while disabled.
var output atomic.Pointer[func(line string)]

// Enable sends process-wide diagnostics to w. A nil w is ignored.
func Enable(w io.Writer) {
	if w == nil {
		return
	}
	EnableFunc(writeLine(w))
}

// EnableFunc sends each process-wide diagnostic line to fn. A nil fn is ignored.
func EnableFunc(fn func(line string)) {
	if fn == nil {
		return
	}
	output.Store(&fn)
}

// Disable stops process-wide diagnostics.
func Disable() {
	output.Store(nil)
}

// IsEnabled reports whether process-wide diagnostics are written. Callers
// can check it before computing expensive arguments.
func IsEnabled() bool {
	return output.Load() != nil
}

// Printf writes one process-wide diagnostic line. It does nothing, and
// does not format, while disabled.
func Printf(format string, args ...interface{}) {
	if fn := output.Load(); fn != nil {
		(*fn)(formatLine(format, args...))
	}
}

func formatLine(format string, args ...interface{}) string {
	return time.Now().UTC().Format(time.RFC3339) + " " + fmt.Sprintf(format, args...)
}

func writeLine(w io.Writer) func(string) {
	return func(line string) {
		fmt.Fprintln(w, line)
	}
}

type processLogger struct{}

func (processLogger) Printf(format string, args ...interface{}) {
	Printf(format, args...)
}

// Default returns the Logger writing to the process-wide output, as
// configured by Enable at the time of each call.
func Default() Logger {
	return processLogger{}
}

// Func is a Logger passing each timestamped line to the function.
type Func func(line string)

// Printf implements Logger.
func (f Func) Printf(format string, args ...interface{}) {
	f(formatLine(format, args...))
}

// Writer returns a Logger writing one line per message to w, independent
// of the process-wide output.
func Writer(w io.Writer) Logger {
	return Func(writeLine(w))
}

type discard struct{}

func (discard) Printf(string, ...interface{}) {}

// Discard drops every message.
var Discard Logger = discard{}

type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Sync serializes writes to w.
func Sync(w io.Writer) io.Writer {
	return &syncWriter{w: w}
}

func init() {
	switch dest := os.Getenv("LOG4NET_SELFLOG"); dest {
	case "":
	case "stderr":
		Enable(os.Stderr)
	case "stdout":
		Enable(os.Stdout)
	default:
		if f, err := os.OpenFile(dest, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			Enable(Sync(f))
		}
	}
}
