// Package audit provides the append-only trail of signup-flow actions.
// Writes are fire-and-forget: a failed or dropped audit entry never
// affects the operation that produced it.
package audit

import (
	"context"
	"time"
)

// Action tags recorded for each signup-flow step.
const (
	ActionPhoneRegistered      = "PHONE_REGISTERED"
	ActionCodeSent             = "CODE_SENT"
	ActionPhoneVerified        = "PHONE_VERIFIED"
	ActionInvalidCodeAttempt   = "INVALID_CODE_ATTEMPT"
	ActionRegistrationComplete = "REGISTRATION_COMPLETE"
)

// Entry is one immutable audit record.
type Entry struct {
	ID        string
	Phone     string
	Action    string
	Payload   map[string]any
	IPAddress string
	CreatedAt time.Time
}

// Recorder persists audit entries.
type Recorder interface {
	Record(ctx context.Context, entry Entry) error
}
