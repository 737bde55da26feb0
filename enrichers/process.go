package enrichers

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/willibrandon/mtlog-log4net/core"
)

// ProcessEnricher adds the process ID and name to log events.
type ProcessEnricher struct {
	processID   int
	processName string
	once        sync.Once
}

// NewProcessEnricher creates a new process enricher.
func NewProcessEnricher() *ProcessEnricher {
	return &ProcessEnricher{}
}

// Enrich adds process information to the log event.
func (pe *ProcessEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	// Get process info once and cache it
	pe.once.Do(func() {
		pe.processID = os.Getpid()
		pe.processName = filepath.Base(os.Args[0])
	})

	event.AddPropertyIfAbsent(propertyFactory.CreateProperty("ProcessId", pe.processID))
	event.AddPropertyIfAbsent(propertyFactory.CreateProperty("ProcessName", pe.processName))
}
