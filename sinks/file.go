package sinks

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/selflog"
)

// FileSink appends formatted log events to a file.
type FileSink struct {
	path      string
	formatter core.TextFormatter
	file      *os.File
	mu        sync.Mutex
	buf       bytes.Buffer
	isOpen    bool
}

// NewFileSink opens path for appending, creating missing directories.
func NewFileSink(path string, formatter core.TextFormatter) (*FileSink, error) {
	fs := &FileSink{
		path:      path,
		formatter: formatter,
	}

	if err := fs.open(); err != nil {
		return nil, err
	}

	return fs, nil
}

// Emit writes the log event to the file.
func (fs *FileSink) Emit(event *core.LogEvent) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.isOpen {
		return
	}

	fs.buf.Reset()
	if err := fs.formatter.Format(event, &fs.buf); err != nil {
		selflog.Printf("[file] failed to format event: %v (path=%s)", err, fs.path)
		return
	}
	if _, err := fs.file.Write(fs.buf.Bytes()); err != nil {
		selflog.Printf("[file] write failed: %v (path=%s)", err, fs.path)
	}
}

// Close flushes and closes the file.
func (fs *FileSink) Close() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if !fs.isOpen {
		return nil
	}

	fs.isOpen = false

	// Sync to ensure all data is written
	if err := fs.file.Sync(); err != nil {
		return fmt.Errorf("failed to sync log file: %w", err)
	}

	if err := fs.file.Close(); err != nil {
		return fmt.Errorf("failed to close log file: %w", err)
	}

	return nil
}

// Path returns the file path.
func (fs *FileSink) Path() string {
	return fs.path
}

// open creates or opens the log file.
func (fs *FileSink) open() error {
	// Ensure directory exists
	dir := filepath.Dir(fs.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	// Open file with append mode
	file, err := os.OpenFile(fs.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	fs.file = file
	fs.isOpen = true

	return nil
}
