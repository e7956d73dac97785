package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresLedger persists verification codes in PostgreSQL.
type PostgresLedger struct {
	db *pgxpool.Pool
}

// NewPostgresLedger constructs a Postgres-backed code ledger.
func NewPostgresLedger(db *pgxpool.Pool) *PostgresLedger {
	return &PostgresLedger{db: db}
}

// Record inserts a new verification code row.
func (l *PostgresLedger) Record(ctx context.Context, code Code) error {
	codeID, err := uuid.Parse(code.ID)
	if err != nil {
		return err
	}
	_, err = l.db.Exec(ctx, `INSERT INTO verification_codes (id, phone, code, created_at, expires_at, used)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		codeID, code.Phone, code.Value, code.CreatedAt.UTC(), code.ExpiresAt.UTC(), code.Used)
	return err
}

// Consume marks the earliest valid matching code as used. The outer
// used=false predicate makes the flip a compare-and-set: of two racing
// callers selecting the same row, only the first update affects it.
func (l *PostgresLedger) Consume(ctx context.Context, phone, value string, now time.Time) (bool, error) {
	const query = `
        UPDATE verification_codes SET used = TRUE
        WHERE id = (
            SELECT id FROM verification_codes
            WHERE phone = $1 AND code = $2 AND used = FALSE AND expires_at > $3
            ORDER BY created_at, id
            LIMIT 1
        )
        AND used = FALSE`
	cmd, err := l.db.Exec(ctx, query, phone, value, now.UTC())
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}
