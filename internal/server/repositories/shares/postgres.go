// Package shares provides the PostgreSQL-backed repository for note share
// links. Only token hashes (passkeys) are ever stored; the raw token exists
// solely in the creation response.
package shares

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/models"
)

// PostgresRepository implements share-link storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new share link row.
func (r *PostgresRepository) Create(ctx context.Context, share *models.NoteShare) error {
	query := `
		INSERT INTO note_shares (id, user_id, note_id, passkey, password, title, anonymous, active, created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	if _, err := r.db.ExecContext(ctx, query,
		share.ID, share.UserID, share.NoteID, share.Passkey, share.Password,
		share.Title, share.Anonymous, share.Active, share.Created); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

// ListByNote returns the owner's share links for noteID, newest first.
func (r *PostgresRepository) ListByNote(ctx context.Context, noteID, userID string) ([]*models.NoteShare, error) {
	query := `
		SELECT id, user_id, note_id, password, title, anonymous, active, created
		FROM note_shares
		WHERE note_id = $1 AND user_id = $2
		ORDER BY created DESC
	`
	rows, err := r.db.QueryContext(ctx, query, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select share links: %w", err)
	}
	defer rows.Close()

	var result []*models.NoteShare
	for rows.Next() {
		var item models.NoteShare
		if err := rows.Scan(&item.ID, &item.UserID, &item.NoteID, &item.Password,
			&item.Title, &item.Anonymous, &item.Active, &item.Created); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// FindActiveByPasskey returns the active share link whose stored passkey
// matches. A disabled link and an unknown passkey produce the identical
// ErrorNotFound so a caller cannot tell them apart.
func (r *PostgresRepository) FindActiveByPasskey(ctx context.Context, passkey string) (*models.NoteShare, error) {
	query := `
		SELECT id, user_id, note_id, passkey, password, title, anonymous, active, created
		FROM note_shares
		WHERE passkey = $1 AND active = TRUE
	`
	share := &models.NoteShare{}
	err := r.db.QueryRowContext(ctx, query, passkey).Scan(
		&share.ID, &share.UserID, &share.NoteID, &share.Passkey, &share.Password,
		&share.Title, &share.Anonymous, &share.Active, &share.Created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return share, nil
}

// Disable deactivates a share link owned by userID. The update is
// idempotent: a second call affects the already-inactive row and still
// succeeds. Zero rows means no such owned link.
func (r *PostgresRepository) Disable(ctx context.Context, id, userID string) error {
	query := `
		UPDATE note_shares SET active = FALSE
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
