package enrichers

import (
	"runtime"
	"strconv"

	"github.com/willibrandon/mtlog-log4net/core"
)

// ThreadIdPropertyName is written as the thread attribute by the formatter.
const ThreadIdPropertyName = "ThreadId"

// ThreadIdEnricher adds the current goroutine ID to log events.
// Note: Go doesn't expose goroutine IDs officially, so this uses a workaround.
type ThreadIdEnricher struct{}

// NewThreadIdEnricher creates a new thread ID enricher.
func NewThreadIdEnricher() *ThreadIdEnricher {
	return &ThreadIdEnricher{}
}

// Enrich adds the goroutine ID to the log event.
func (t *ThreadIdEnricher) Enrich(event *core.LogEvent, propertyFactory core.LogEventPropertyFactory) {
	if id, ok := goroutineID(); ok {
		event.AddPropertyIfAbsent(propertyFactory.CreateProperty(ThreadIdPropertyName, id))
	}
}

// goroutineID parses the ID from the "goroutine <id> [" stack header.
func goroutineID() (int, bool) {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	stack := string(buf[:n])

	const prefix = "goroutine "
	if len(stack) <= len(prefix) || stack[:len(prefix)] != prefix {
		return 0, false
	}
	for i := len(prefix); i < len(stack); i++ {
		if stack[i] == ' ' {
			id, err := strconv.Atoi(stack[len(prefix):i])
			return id, err == nil
		}
	}
	return 0, false
}
