package identity

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ErrPhoneRequired rejects registrations without a full phone number.
var ErrPhoneRequired = errors.New("phone number is required")

// Service manages identity lifecycle.
type Service struct {
	repo       Repository
	bcryptCost int
}

// NewService creates a new identity service. A non-positive cost falls
// back to the bcrypt default.
func NewService(repo Repository, bcryptCost int) *Service {
	if bcryptCost <= 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{repo: repo, bcryptCost: bcryptCost}
}

// EnsureRegistered creates an unverified user for the phone if none
// exists yet. It reports whether a new user was created; re-registering
// a known phone is a no-op, not an error.
func (s *Service) EnsureRegistered(ctx context.Context, reg Registration) (bool, error) {
	if reg.FullPhone == "" {
		return false, ErrPhoneRequired
	}

	user := User{
		CountryCode: reg.CountryCode,
		PhoneNumber: reg.PhoneNumber,
		FullPhone:   reg.FullPhone,
		Verified:    false,
		CreatedAt:   time.Now().UTC(),
	}

	return s.repo.Create(ctx, user)
}

// MarkVerified records a successful code verification for the phone.
func (s *Service) MarkVerified(ctx context.Context, fullPhone string) error {
	return s.repo.MarkVerified(ctx, fullPhone)
}

// CompleteProfile hashes the plaintext password and stores it together
// with the display name. The plaintext never reaches the repository.
func (s *Service) CompleteProfile(ctx context.Context, fullPhone, fullName, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return err
	}
	return s.repo.SetProfile(ctx, fullPhone, fullName, hash)
}
