package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/dialpass/dialpass/internal/logging"
)

func TestDispatcherDeliversEntries(t *testing.T) {
	recorder := NewMemoryRecorder()
	d := NewDispatcher(recorder, logging.Discard())

	d.Emit(Entry{Phone: "+15551234567", Action: ActionPhoneRegistered, Payload: map[string]any{"step": 1}})
	d.Emit(Entry{Phone: "+15551234567", Action: ActionCodeSent, Payload: map[string]any{"code_val": "482913"}})
	d.Close()

	entries := recorder.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Action != ActionPhoneRegistered || entries[1].Action != ActionCodeSent {
		t.Fatalf("entries delivered out of order: %v", entries)
	}
	if entries[0].ID == "" || entries[0].CreatedAt.IsZero() {
		t.Fatal("dispatcher must assign ID and timestamp")
	}
	if entries[0].IPAddress == "" {
		t.Fatal("dispatcher must default the origin address")
	}
}

type failingRecorder struct{}

func (failingRecorder) Record(context.Context, Entry) error {
	return errors.New("storage down")
}

func TestDispatcherIsolatesRecorderFailures(t *testing.T) {
	d := NewDispatcher(failingRecorder{}, logging.Discard())

	// Emit must not panic or surface the error.
	d.Emit(Entry{Phone: "+15551234567", Action: ActionInvalidCodeAttempt})
	d.Close()
}

type blockingRecorder struct {
	release chan struct{}
	seen    chan Entry
}

func (r *blockingRecorder) Record(_ context.Context, entry Entry) error {
	r.seen <- entry
	<-r.release
	return nil
}

func TestDispatcherDropsOnFullQueue(t *testing.T) {
	recorder := &blockingRecorder{release: make(chan struct{}), seen: make(chan Entry, 8)}
	d := newDispatcher(recorder, logging.Discard(), 1)

	// First entry occupies the drain goroutine, second fills the queue,
	// third must be dropped rather than block the caller.
	d.Emit(Entry{Action: ActionCodeSent, Payload: map[string]any{"n": 1}})
	<-recorder.seen
	d.Emit(Entry{Action: ActionCodeSent, Payload: map[string]any{"n": 2}})
	d.Emit(Entry{Action: ActionCodeSent, Payload: map[string]any{"n": 3}})

	close(recorder.release)
	d.Close()

	delivered := len(recorder.seen)
	if delivered != 1 {
		t.Fatalf("expected exactly one queued entry to survive, got %d", delivered)
	}
}

func TestDispatcherEmitAfterClose(t *testing.T) {
	recorder := NewMemoryRecorder()
	d := NewDispatcher(recorder, logging.Discard())
	d.Close()

	d.Emit(Entry{Phone: "+15551234567", Action: ActionCodeSent})
	if len(recorder.Entries()) != 0 {
		t.Fatal("entries emitted after close must be dropped")
	}
}
