package audit

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRecorder appends audit entries to the signup_audit table.
type PostgresRecorder struct {
	db *pgxpool.Pool
}

// NewPostgresRecorder builds a Postgres-backed audit recorder.
func NewPostgresRecorder(db *pgxpool.Pool) *PostgresRecorder {
	return &PostgresRecorder{db: db}
}

// Record inserts one audit row. Entries are never updated or deleted.
func (r *PostgresRecorder) Record(ctx context.Context, entry Entry) error {
	entryID, err := uuid.Parse(entry.ID)
	if err != nil {
		return err
	}
	payload := entry.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO signup_audit (id, phone, action, payload, ip_address, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
		entryID, entry.Phone, entry.Action, string(data), entry.IPAddress, entry.CreatedAt.UTC())
	return err
}
