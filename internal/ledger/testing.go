package ledger

// SeedCode is a test helper that appends a code with arbitrary timestamps
// when using the in-memory ledger, bypassing issuance.
func SeedCode(l Ledger, code Code) {
	if mem, ok := l.(*inMemoryLedger); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		c := code
		mem.codes = append(mem.codes, &c)
	}
}
