package identity

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestEnsureRegisteredIdempotent(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcrypt.MinCost)
	ctx := context.Background()

	reg := Registration{FullPhone: "+15551234567", CountryCode: "+1", PhoneNumber: "5551234567"}

	created, err := svc.EnsureRegistered(ctx, reg)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if !created {
		t.Fatal("expected first registration to create a user")
	}

	created, err = svc.EnsureRegistered(ctx, reg)
	if err != nil {
		t.Fatalf("re-register: %v", err)
	}
	if created {
		t.Fatal("expected second registration to be a no-op")
	}

	user, err := repo.FindByPhone(ctx, reg.FullPhone)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.Verified {
		t.Fatal("new users must start unverified")
	}
}

func TestEnsureRegisteredRequiresPhone(t *testing.T) {
	svc := NewService(NewMemoryRepository(), bcrypt.MinCost)

	if _, err := svc.EnsureRegistered(context.Background(), Registration{}); err != ErrPhoneRequired {
		t.Fatalf("expected ErrPhoneRequired, got %v", err)
	}
}

func TestCompleteProfileHashesPassword(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcrypt.MinCost)
	ctx := context.Background()

	if _, err := svc.EnsureRegistered(ctx, Registration{FullPhone: "+15551234567"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if err := svc.CompleteProfile(ctx, "+15551234567", "Jane Doe", "S3cret!"); err != nil {
		t.Fatalf("complete profile: %v", err)
	}

	user, err := repo.FindByPhone(ctx, "+15551234567")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if user.FullName != "Jane Doe" {
		t.Fatalf("expected name Jane Doe, got %q", user.FullName)
	}
	if string(user.PasswordHash) == "S3cret!" {
		t.Fatal("plaintext password must never be stored")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("S3cret!")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUpdatesOnUnknownPhoneAreNotFatal(t *testing.T) {
	repo := NewMemoryRepository()
	svc := NewService(repo, bcrypt.MinCost)
	ctx := context.Background()

	if err := svc.MarkVerified(ctx, "+10000000000"); err != nil {
		t.Fatalf("mark verified on unknown phone: %v", err)
	}
	if err := svc.CompleteProfile(ctx, "+10000000000", "Ghost", "pw"); err != nil {
		t.Fatalf("complete profile on unknown phone: %v", err)
	}
	if _, err := repo.FindByPhone(ctx, "+10000000000"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
