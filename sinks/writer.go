// Package sinks writes formatted log events to io.Writers and files.
package sinks

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/selflog"
)

// WriterSink formats each event and writes it to an io.Writer.
// An event is written in a single Write call, so fragments never interleave.
type WriterSink struct {
	output    io.Writer
	formatter core.TextFormatter
	mu        sync.Mutex
	buf       bytes.Buffer
}

// NewWriterSink creates a sink writing events formatted by formatter to output.
func NewWriterSink(output io.Writer, formatter core.TextFormatter) *WriterSink {
	return &WriterSink{
		output:    output,
		formatter: formatter,
	}
}

// NewConsoleSink creates a sink writing to standard output.
func NewConsoleSink(formatter core.TextFormatter) *WriterSink {
	return NewWriterSink(os.Stdout, formatter)
}

// Emit formats the event and writes it. Failures are reported to selflog.
func (ws *WriterSink) Emit(event *core.LogEvent) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	ws.buf.Reset()
	if err := ws.formatter.Format(event, &ws.buf); err != nil {
		selflog.Printf("[writer] failed to format event: %v", err)
		return
	}
	if _, err := ws.output.Write(ws.buf.Bytes()); err != nil {
		selflog.Printf("[writer] write failed: %v", err)
	}
}

// Close closes the output when it is an io.Closer other than stdout or stderr.
func (ws *WriterSink) Close() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.output == os.Stdout || ws.output == os.Stderr {
		return nil
	}
	if closer, ok := ws.output.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
