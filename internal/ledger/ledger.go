package ledger

import (
	"context"
	"time"
)

// Code is one issued verification code. Rows are insert-only except for
// the single used=false -> true transition performed by Consume; expired
// and consumed codes are retained as history.
type Code struct {
	ID        string
	Phone     string
	Value     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

// Valid reports whether the code can still be redeemed at the given time.
func (c Code) Valid(now time.Time) bool {
	return !c.Used && now.Before(c.ExpiresAt)
}

// Ledger defines the contract implemented by code-ledger backends (e.g. Postgres).
//
// Issuing a code never invalidates earlier codes for the same phone, so
// several redeemable codes may coexist. Consume resolves ties by taking
// the earliest-created match.
type Ledger interface {
	// Record appends a newly issued code.
	Record(ctx context.Context, code Code) error
	// Consume redeems the earliest unused, unexpired code matching phone
	// and value exactly, marking it used. The used flip is conditioned on
	// used=false at write time, so concurrent calls for the same code
	// yield exactly one true result.
	Consume(ctx context.Context, phone, value string, now time.Time) (bool, error)
}
