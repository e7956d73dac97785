package identity

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates no user exists for the requested phone number.
var ErrNotFound = errors.New("user not found")

// Repository persists users keyed by their full phone number.
type Repository interface {
	// Create inserts a new user unless the phone is already registered.
	// It reports whether a row was actually created.
	Create(ctx context.Context, user User) (bool, error)
	FindByPhone(ctx context.Context, fullPhone string) (User, error)
	// MarkVerified flips the verified flag. A phone with no user row is
	// a zero-row update, not an error.
	MarkVerified(ctx context.Context, fullPhone string) error
	// SetProfile stores the display name and password hash. A phone with
	// no user row is a zero-row update, not an error.
	SetProfile(ctx context.Context, fullPhone, fullName string, passwordHash []byte) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed identity repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new user row. The conflict target is the full phone,
// so concurrent registrations of the same number resolve to one row.
func (r *PostgresRepository) Create(ctx context.Context, user User) (bool, error) {
	cmd, err := r.db.Exec(ctx, `INSERT INTO users (country_code, phone_number, full_phone, verified, created_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (full_phone) DO NOTHING`,
		user.CountryCode, user.PhoneNumber, user.FullPhone, user.Verified, user.CreatedAt.UTC())
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

// FindByPhone fetches a user by full phone number.
func (r *PostgresRepository) FindByPhone(ctx context.Context, fullPhone string) (User, error) {
	row := r.db.QueryRow(ctx, `SELECT country_code, phone_number, full_phone, COALESCE(full_name, ''), password_hash, verified, created_at
        FROM users WHERE full_phone = $1`, fullPhone)
	var (
		user      User
		createdAt time.Time
	)
	if err := row.Scan(&user.CountryCode, &user.PhoneNumber, &user.FullPhone, &user.FullName, &user.PasswordHash, &user.Verified, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	user.CreatedAt = createdAt.UTC()
	return user, nil
}

// MarkVerified sets verified = true for the phone.
func (r *PostgresRepository) MarkVerified(ctx context.Context, fullPhone string) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET verified = TRUE WHERE full_phone = $1`, fullPhone)
	return err
}

// SetProfile stores the display name and password hash for the phone.
func (r *PostgresRepository) SetProfile(ctx context.Context, fullPhone, fullName string, passwordHash []byte) error {
	_, err := r.db.Exec(ctx, `UPDATE users SET full_name = $1, password_hash = $2 WHERE full_phone = $3`,
		fullName, passwordHash, fullPhone)
	return err
}
