package signup

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dialpass/dialpass/internal/audit"
	"github.com/dialpass/dialpass/internal/identity"
	"github.com/dialpass/dialpass/internal/ledger"
	"github.com/dialpass/dialpass/internal/notification"
)

const defaultCodeTTL = 10 * time.Minute

// Service orchestrates the signup flow across the identity store and the
// code ledger, emitting audit entries for every significant action.
type Service struct {
	identities *identity.Service
	codes      ledger.Ledger
	trail      *audit.Dispatcher
	notifier   notification.Notifier
	codeTTL    time.Duration
}

// NewService constructs the signup service. A non-positive TTL falls back
// to the 10 minute default.
func NewService(identities *identity.Service, codes ledger.Ledger, trail *audit.Dispatcher, notifier notification.Notifier, codeTTL time.Duration) *Service {
	if codeTTL <= 0 {
		codeTTL = defaultCodeTTL
	}
	return &Service{identities: identities, codes: codes, trail: trail, notifier: notifier, codeTTL: codeTTL}
}

// RegisterInput captures a phone registration request.
type RegisterInput struct {
	FullPhone   string
	CountryCode string
	PhoneNumber string
	Origin      string
}

// RegisterPhone records a never-seen phone number as an unverified user.
// Re-registering a known phone succeeds without mutation, and the result
// does not reveal whether the phone already existed; only an actual
// creation leaves an audit entry.
func (s *Service) RegisterPhone(ctx context.Context, input RegisterInput) error {
	created, err := s.identities.EnsureRegistered(ctx, identity.Registration{
		FullPhone:   input.FullPhone,
		CountryCode: input.CountryCode,
		PhoneNumber: input.PhoneNumber,
	})
	if err != nil {
		return err
	}
	if created {
		s.trail.Emit(audit.Entry{
			Phone:     input.FullPhone,
			Action:    audit.ActionPhoneRegistered,
			Payload:   map[string]any{"step": 1},
			IPAddress: input.Origin,
		})
	}
	return nil
}

// IssueCode generates a fresh verification code for the phone, valid for
// the configured TTL. Earlier outstanding codes stay redeemable; each
// call appends an independent ledger record. The phone does not need to
// be registered first. The code is returned to the caller directly.
func (s *Service) IssueCode(ctx context.Context, fullPhone, origin string) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	now := time.Now().UTC()
	record := ledger.Code{
		ID:        uuid.NewString(),
		Phone:     fullPhone,
		Value:     code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.codeTTL),
	}
	if err := s.codes.Record(ctx, record); err != nil {
		return "", err
	}

	if s.notifier != nil {
		_ = s.notifier.Send(ctx, notification.Message{
			Kind:        notification.KindVerificationCode,
			Destination: fullPhone,
			Body:        fmt.Sprintf("Your verification code is %s", code),
		})
	}

	s.trail.Emit(audit.Entry{
		Phone:     fullPhone,
		Action:    audit.ActionCodeSent,
		Payload:   map[string]any{"code_val": code},
		IPAddress: origin,
	})

	return code, nil
}

// VerifyCode redeems a submitted code. On a match the code is consumed
// and the identity flagged verified; verifying a phone with no user row
// still succeeds as a zero-row update. A miss is a normal negative
// outcome, not an error, and is audited as an invalid attempt.
func (s *Service) VerifyCode(ctx context.Context, fullPhone, submitted, origin string) (bool, error) {
	matched, err := s.codes.Consume(ctx, fullPhone, submitted, time.Now().UTC())
	if err != nil {
		return false, err
	}

	if !matched {
		s.trail.Emit(audit.Entry{
			Phone:     fullPhone,
			Action:    audit.ActionInvalidCodeAttempt,
			Payload:   map[string]any{"code_entered": submitted},
			IPAddress: origin,
		})
		return false, nil
	}

	if err := s.identities.MarkVerified(ctx, fullPhone); err != nil {
		return false, err
	}

	s.trail.Emit(audit.Entry{
		Phone:     fullPhone,
		Action:    audit.ActionPhoneVerified,
		Payload:   map[string]any{"code_entered": submitted},
		IPAddress: origin,
	})

	return true, nil
}

// CompleteRegistration stores the display name and a bcrypt hash of the
// password for the phone. Verification beforehand is not required, and an
// unknown phone is a zero-row update rather than a failure.
func (s *Service) CompleteRegistration(ctx context.Context, fullPhone, fullName, password, origin string) error {
	if err := s.identities.CompleteProfile(ctx, fullPhone, fullName, password); err != nil {
		return err
	}

	s.trail.Emit(audit.Entry{
		Phone:     fullPhone,
		Action:    audit.ActionRegistrationComplete,
		Payload:   map[string]any{"name": fullName},
		IPAddress: origin,
	})

	return nil
}
