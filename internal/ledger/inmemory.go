package ledger

import (
	"context"
	"sync"
	"time"
)

type inMemoryLedger struct {
	mu    sync.Mutex
	codes []*Code
}

// NewInMemory creates a concurrency-safe in-memory code ledger useful for
// unit tests and dev mode.
func NewInMemory() Ledger {
	return &inMemoryLedger{}
}

func (l *inMemoryLedger) Record(_ context.Context, code Code) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	c := code
	l.codes = append(l.codes, &c)
	return nil
}

// Consume scans in insertion order, which matches the earliest-created
// tie-break of the Postgres backend.
func (l *inMemoryLedger) Consume(_ context.Context, phone, value string, now time.Time) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, c := range l.codes {
		if c.Phone == phone && c.Value == value && c.Valid(now) {
			c.Used = true
			return true, nil
		}
	}
	return false, nil
}
