package ledger

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestInMemoryLedger_ConsumeMatchesAndMarksUsed(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	code := Code{ID: "c-1", Phone: "+15551234567", Value: "482913", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}
	if err := l.Record(ctx, code); err != nil {
		t.Fatalf("record: %v", err)
	}

	matched, err := l.Consume(ctx, "+15551234567", "482913", now)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if !matched {
		t.Fatal("expected valid code to match")
	}

	// Single use: the same code never redeems twice.
	matched, err = l.Consume(ctx, "+15551234567", "482913", now)
	if err != nil {
		t.Fatalf("second consume: %v", err)
	}
	if matched {
		t.Fatal("expected used code to be rejected")
	}
}

func TestInMemoryLedger_ExpiredCodeRejected(t *testing.T) {
	l := NewInMemory()
	now := time.Now().UTC()

	SeedCode(l, Code{ID: "c-1", Phone: "+15551234567", Value: "482913",
		CreatedAt: now.Add(-11 * time.Minute), ExpiresAt: now.Add(-time.Minute)})

	matched, err := l.Consume(context.Background(), "+15551234567", "482913", now)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if matched {
		t.Fatal("expected expired code to be rejected even with correct digits")
	}
}

func TestInMemoryLedger_EarliestMatchWins(t *testing.T) {
	l := NewInMemory()
	now := time.Now().UTC()

	// Two outstanding codes with the same value; the earlier one must be
	// the record that gets consumed.
	SeedCode(l, Code{ID: "old", Phone: "+15551234567", Value: "111111",
		CreatedAt: now.Add(-5 * time.Minute), ExpiresAt: now.Add(5 * time.Minute)})
	SeedCode(l, Code{ID: "new", Phone: "+15551234567", Value: "111111",
		CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)})

	matched, err := l.Consume(context.Background(), "+15551234567", "111111", now)
	if err != nil {
		t.Fatalf("consume: %v", err)
	}
	if !matched {
		t.Fatal("expected a match")
	}

	mem := l.(*inMemoryLedger)
	if !mem.codes[0].Used {
		t.Fatal("expected the earliest-created code to be consumed")
	}
	if mem.codes[1].Used {
		t.Fatal("expected the later code to remain outstanding")
	}
}

func TestInMemoryLedger_WrongPhoneOrValueRejected(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := l.Record(ctx, Code{ID: "c-1", Phone: "+15551234567", Value: "482913", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}); err != nil {
		t.Fatalf("record: %v", err)
	}

	if matched, _ := l.Consume(ctx, "+15550000000", "482913", now); matched {
		t.Fatal("expected mismatch for unknown phone")
	}
	if matched, _ := l.Consume(ctx, "+15551234567", "482914", now); matched {
		t.Fatal("expected mismatch for wrong code value")
	}
}

func TestInMemoryLedger_ConcurrentConsumeSingleWinner(t *testing.T) {
	l := NewInMemory()
	ctx := context.Background()
	now := time.Now().UTC()

	if err := l.Record(ctx, Code{ID: "c-1", Phone: "+15551234567", Value: "482913", CreatedAt: now, ExpiresAt: now.Add(10 * time.Minute)}); err != nil {
		t.Fatalf("record: %v", err)
	}

	const workers = 10
	var wg sync.WaitGroup
	results := make(chan bool, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			matched, err := l.Consume(ctx, "+15551234567", "482913", now)
			if err != nil {
				t.Errorf("consume: %v", err)
			}
			results <- matched
		}()
	}
	wg.Wait()
	close(results)

	winners := 0
	for matched := range results {
		if matched {
			winners++
		}
	}
	if winners != 1 {
		t.Fatalf("expected exactly one winner, got %d", winners)
	}
}
