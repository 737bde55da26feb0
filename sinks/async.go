package sinks

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/willibrandon/mtlog-log4net/core"
	"github.com/willibrandon/mtlog-log4net/selflog"
)

// OverflowStrategy defines what to do when the async buffer is full.
type OverflowStrategy int

const (
	// OverflowBlock blocks the caller until space is available.
	OverflowBlock OverflowStrategy = iota

	// OverflowDrop drops the newest event.
	OverflowDrop
)

// AsyncOptions configures the async sink wrapper.
type AsyncOptions struct {
	// BufferSize is the number of queued events. Defaults to 1000.
	BufferSize int

	// OverflowStrategy applies when the buffer is full.
	OverflowStrategy OverflowStrategy

	// ShutdownTimeout bounds how long Close waits for queued events. Defaults to 30s.
	ShutdownTimeout time.Duration
}

// AsyncSink moves formatting and I/O of the wrapped sink to a background
// goroutine. Events must not be modified after Emit.
type AsyncSink struct {
	wrapped core.LogEventSink
	options AsyncOptions
	events  chan *core.LogEvent
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	closing sync.Once

	// mu orders Emit against Close: Close marks the sink closed only once
	// no Emit is sending.
	mu     sync.RWMutex
	closed bool

	dropped   atomic.Uint64
	processed atomic.Uint64
}

// NewAsyncSink starts a worker emitting to wrapped.
func NewAsyncSink(wrapped core.LogEventSink, options AsyncOptions) *AsyncSink {
	if options.BufferSize <= 0 {
		options.BufferSize = 1000
	}
	if options.ShutdownTimeout <= 0 {
		options.ShutdownTimeout = 30 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	as := &AsyncSink{
		wrapped: wrapped,
		options: options,
		events:  make(chan *core.LogEvent, options.BufferSize),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	go as.worker()
	return as
}

// Emit queues the event.
func (as *AsyncSink) Emit(event *core.LogEvent) {
	as.mu.RLock()
	defer as.mu.RUnlock()

	if as.closed {
		as.drop("sink closed")
		return
	}

	select {
	case as.events <- event:
		return
	default:
	}

	if as.options.OverflowStrategy == OverflowDrop {
		as.drop("buffer full")
		return
	}

	select {
	case as.events <- event:
	case <-as.ctx.Done():
		as.drop("sink closed")
	}
}

// drop counts a dropped event, logging the first and every 1000th.
func (as *AsyncSink) drop(reason string) {
	dropped := as.dropped.Add(1)
	if dropped == 1 || dropped%1000 == 0 {
		selflog.Printf("[async] %s, dropped %d events total", reason, dropped)
	}
}

// Close drains queued events and closes the wrapped sink. Events still
// queued once the worker has stopped are counted as dropped.
func (as *AsyncSink) Close() error {
	var err error
	as.closing.Do(func() {
		as.cancel()
		as.mu.Lock()
		as.closed = true
		as.mu.Unlock()

		select {
		case <-as.done:
		case <-time.After(as.options.ShutdownTimeout):
			err = fmt.Errorf("timeout waiting for async sink to shut down")
			return
		}

	drain:
		for {
			select {
			case <-as.events:
				as.drop("queued after shutdown")
			default:
				break drain
			}
		}

		err = as.wrapped.Close()
	})
	return err
}

func (as *AsyncSink) worker() {
	defer close(as.done)

	for {
		select {
		case event := <-as.events:
			as.emit(event)
		case <-as.ctx.Done():
			for {
				select {
				case event := <-as.events:
					as.emit(event)
				default:
					return
				}
			}
		}
	}
}

func (as *AsyncSink) emit(event *core.LogEvent) {
	defer func() {
		if r := recover(); r != nil {
			selflog.Printf("[async] wrapped sink panic: %v", r)
		}
	}()

	as.wrapped.Emit(event)
	as.processed.Add(1)
}

// Processed returns the number of events handed to the wrapped sink.
func (as *AsyncSink) Processed() uint64 {
	return as.processed.Load()
}

// Dropped returns the number of events dropped on overflow or after Close.
func (as *AsyncSink) Dropped() uint64 {
	return as.dropped.Load()
}
