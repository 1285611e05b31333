package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/desertthunder/tubeflow/internal/models"
)

// SessionStore is the persistence contract for the active upload session.
//
// Save writes the session id and its record as a single unit; Load returns
// (nil, nil) when nothing is persisted so callers start fresh; Clear removes
// every persisted session key. Implementations must never leave a dangling id
// without a record.
type SessionStore interface {
	Save(ctx context.Context, session *models.UploadSession) error
	Load(ctx context.Context) (*models.UploadSession, error)
	Clear(ctx context.Context) error
}

// NextSequence atomically increments and returns the next sequence number for the given table.
//
// Sequence numbers provide ordering for persisted entities (the most recently
// saved session wins on load). They are not exposed in CLI output.
func NextSequence(db *sql.DB, table string) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sequenceTable := table + "_sequence"

	_, err = tx.Exec(fmt.Sprintf("UPDATE %s SET value = value + 1 WHERE id = 1", sequenceTable))
	if err != nil {
		return 0, fmt.Errorf("failed to increment sequence: %w", err)
	}

	var sequence int
	err = tx.QueryRow(fmt.Sprintf("SELECT value FROM %s WHERE id = 1", sequenceTable)).Scan(&sequence)
	if err != nil {
		return 0, fmt.Errorf("failed to get sequence value: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit sequence transaction: %w", err)
	}

	return sequence, nil
}
