package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/desertthunder/tubeflow/internal/models"
)

// SessionRepository implements [SessionStore] backed by SQLite.
type SessionRepository struct {
	db *sql.DB
}

var _ SessionStore = (*SessionRepository)(nil)

// NewSessionRepository creates a new [SessionRepository] with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Save persists the session id and its record in a single transaction.
//
// The record is JSON-encoded into the same row as the id so a reload can never
// observe one without the other. Saving an existing id updates the row in
// place and bumps its sequence so Load returns the most recent session.
func (r *SessionRepository) Save(ctx context.Context, session *models.UploadSession) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	record, err := json.Marshal(session.Record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	sequence, err := NextSequence(r.db, "sessions")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (id, sequence, record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sequence = excluded.sequence,
			record = excluded.record,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, session.ID, sequence, string(record), session.CreatedAt, session.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// Load retrieves the most recently saved session.
//
// Returns (nil, nil) when no session is persisted; absence is a normal
// condition, not an error.
func (r *SessionRepository) Load(ctx context.Context) (*models.UploadSession, error) {
	query := `
		SELECT id, record, created_at, updated_at
		FROM sessions
		ORDER BY sequence DESC
		LIMIT 1
	`

	var (
		id        string
		record    string
		createdAt time.Time
		updatedAt time.Time
	)

	err := r.db.QueryRowContext(ctx, query).Scan(&id, &record, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	session := &models.UploadSession{
		ID:        id,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if err := json.Unmarshal([]byte(record), &session.Record); err != nil {
		return nil, fmt.Errorf("failed to decode record: %w", err)
	}

	return session, nil
}

// Clear removes every persisted session row.
//
// A single statement, so the store can never end up with a stale id after its
// record is gone.
func (r *SessionRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions"); err != nil {
		return fmt.Errorf("failed to clear sessions: %w", err)
	}
	return nil
}
