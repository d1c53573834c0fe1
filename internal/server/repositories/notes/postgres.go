// Package notes provides the PostgreSQL-backed repository for encrypted
// notes. Content columns always hold codec output, never plaintext.
package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/models"
)

// PostgresRepository implements note storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new note row.
func (r *PostgresRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (id, user_id, title, content, created, updated)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.db.ExecContext(ctx, query,
		note.ID, note.UserID, note.Title, note.Content, note.Created, note.Updated); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByUser returns the caller's notes ordered by updated ascending.
// Content is excluded; list responses carry metadata only.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	query := `
		SELECT id, user_id, title, created, updated FROM notes
		WHERE user_id = $1
		ORDER BY updated ASC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []*models.Note
	for rows.Next() {
		var item models.Note
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.Created, &item.Updated); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// Get returns the full note for (id, userID), or common.ErrorNotFound. A
// note owned by someone else is reported exactly like a missing one.
func (r *PostgresRepository) Get(ctx context.Context, id, userID string) (*models.Note, error) {
	query := `
		SELECT id, user_id, title, content, created, updated FROM notes
		WHERE id = $1 AND user_id = $2
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// GetByID returns the full note by id alone. Callers must authorize through
// some other channel (the share-link resolver's token lookup).
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	query := `
		SELECT id, user_id, title, content, created, updated FROM notes
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// UpdateContent overwrites the ciphertext and bumps updated. Last write
// wins; there is no version check. Returns the refreshed metadata.
func (r *PostgresRepository) UpdateContent(ctx context.Context, id, userID string, content []byte) (*models.Note, error) {
	query := `
		UPDATE notes SET content = $3, updated = $4
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, created, updated
	`
	note := &models.Note{}
	err := r.db.QueryRowContext(ctx, query, id, userID, content, time.Now().UTC()).Scan(
		&note.ID, &note.UserID, &note.Title, &note.Created, &note.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	note.Content = content
	return note, nil
}

// UpdateTitle renames a note without touching content or updated.
func (r *PostgresRepository) UpdateTitle(ctx context.Context, id, userID, title string) error {
	query := `
		UPDATE notes SET title = $3
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID, title)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffectedToNotFound(res)
}

// Delete removes a note. Share links and attachments cascade via FK.
func (r *PostgresRepository) Delete(ctx context.Context, id, userID string) error {
	query := `
		DELETE FROM notes
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffectedToNotFound(res)
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.Note, error) {
	note := &models.Note{}
	err := row.Scan(&note.ID, &note.UserID, &note.Title, &note.Content, &note.Created, &note.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return note, nil
}

func rowsAffectedToNotFound(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
