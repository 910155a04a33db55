package audit

import (
	"context"
	"sync"

	"github.com/BruksfildServices01/barbershop-backoffice/internal/logger"
)

type Event struct {
	UserID   *uint
	Action   string
	Entity   string
	EntityID *uint
	Metadata any
}

// Dispatcher writes audit events from a single background worker so that
// requests never wait on the audit table.
type Dispatcher struct {
	logger *Logger
	queue  chan Event
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(l *Logger) *Dispatcher {
	d := &Dispatcher{
		logger: l,
		queue:  make(chan Event, 100),
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)

	for ev := range d.queue {
		if err := d.logger.Log(context.Background(), ev); err != nil {
			logger.Get().WithError(err).
				WithField("action", ev.Action).
				Error("audit write failed")
		}
	}
}

// Dispatch enqueues ev. A full queue drops the event. Calling Dispatch on a
// nil Dispatcher is a no-op.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		logger.Get().WithField("action", ev.Action).Warn("audit queue full, dropping event")
	}
}

// Close stops accepting events and waits for the queue to drain.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	<-d.done
}
