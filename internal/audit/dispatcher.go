package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	defaultQueueSize = 256
	recordTimeout    = 2 * time.Second
)

// Dispatcher decouples audit persistence from request handling. Emit
// places entries on a bounded queue drained by a background goroutine;
// a full queue or a failing recorder only produces a local log line.
type Dispatcher struct {
	recorder Recorder
	logger   *slog.Logger

	mu     sync.Mutex
	queue  chan Entry
	closed bool
	done   chan struct{}
}

// NewDispatcher starts a dispatcher over the given recorder.
func NewDispatcher(recorder Recorder, logger *slog.Logger) *Dispatcher {
	return newDispatcher(recorder, logger, defaultQueueSize)
}

func newDispatcher(recorder Recorder, logger *slog.Logger, queueSize int) *Dispatcher {
	d := &Dispatcher{
		recorder: recorder,
		logger:   logger,
		queue:    make(chan Entry, queueSize),
		done:     make(chan struct{}),
	}
	go d.drain()
	return d
}

// Emit enqueues an entry without blocking the caller. Missing ID,
// timestamp, and origin address are filled in here so callers only
// supply domain fields.
func (d *Dispatcher) Emit(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.IPAddress == "" {
		entry.IPAddress = "127.0.0.1"
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		d.logger.Warn("audit entry after shutdown dropped", "phone", entry.Phone, "action", entry.Action)
		return
	}
	select {
	case d.queue <- entry:
	default:
		d.logger.Warn("audit queue full, entry dropped", "phone", entry.Phone, "action", entry.Action)
	}
}

// Close stops accepting entries and waits for the queue to flush.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()
	<-d.done
}

func (d *Dispatcher) drain() {
	defer close(d.done)
	for entry := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if err := d.recorder.Record(ctx, entry); err != nil {
			d.logger.Error("audit write failed", "phone", entry.Phone, "action", entry.Action, "error", err)
		}
		cancel()
	}
}
