package audit

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

const DefaultQueueSize = 100

type Event struct {
	RequestID string
	Action    string
	Entity    string
	EntityID  *uint
	Metadata  any
}

// Sink stores one audit event.
type Sink interface {
	Write(ctx context.Context, ev Event) error
}

// Dispatcher hands events to a Sink from a single background worker. When
// the queue is full the event is dropped: auditing never blocks a request.
type Dispatcher struct {
	sink Sink
	log  *zap.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan Event
	done   chan struct{}
}

func NewDispatcher(sink Sink, size int, log *zap.Logger) *Dispatcher {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	d := &Dispatcher{
		sink:  sink,
		log:   log,
		queue: make(chan Event, size),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		if err := d.sink.Write(context.Background(), ev); err != nil {
			d.log.Warn("audit write failed",
				zap.String("action", ev.Action),
				zap.String("entity", ev.Entity),
				zap.Error(err),
			)
		}
	}
}

// Dispatch queues ev and reports whether it was accepted.
func (d *Dispatcher) Dispatch(ev Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	select {
	case d.queue <- ev:
		return true
	default:
		// cola llena
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
		return false
	}
}

// Close stops accepting events and waits until the queued ones are written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()
	<-d.done
}
