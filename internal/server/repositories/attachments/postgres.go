// Package attachments provides the PostgreSQL-backed repository for note
// attachment metadata. Attachment payloads live in object storage; only the
// storage key and upload state are tracked here.
package attachments

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, attachment *models.Attachment) error {
	query := `
		INSERT INTO attachments (note_id, user_id, file_name, size, storage_key, upload_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query,
		attachment.NoteID, attachment.UserID, attachment.FileName,
		attachment.Size, attachment.StorageKey, attachment.UploadStatus).Scan(&attachment.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, noteID, fileName string) (*models.Attachment, error) {
	query := `
		SELECT note_id, user_id, file_name, size, storage_key, upload_status, created_at
		FROM attachments
		WHERE note_id = $1 AND file_name = $2
	`
	attachment := &models.Attachment{}
	err := r.db.QueryRowContext(ctx, query, noteID, fileName).Scan(
		&attachment.NoteID, &attachment.UserID, &attachment.FileName,
		&attachment.Size, &attachment.StorageKey, &attachment.UploadStatus, &attachment.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return attachment, nil
}

func (r *PostgresRepository) ListByNote(ctx context.Context, noteID string) ([]*models.Attachment, error) {
	query := `
		SELECT note_id, user_id, file_name, size, storage_key, upload_status, created_at
		FROM attachments
		WHERE note_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to select attachments: %w", err)
	}
	defer rows.Close()

	var result []*models.Attachment
	for rows.Next() {
		var item models.Attachment
		if err := rows.Scan(&item.NoteID, &item.UserID, &item.FileName,
			&item.Size, &item.StorageKey, &item.UploadStatus, &item.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) MarkUploaded(ctx context.Context, noteID, fileName string) error {
	query := `
		UPDATE attachments SET upload_status = $3
		WHERE note_id = $1 AND file_name = $2
	`
	res, err := r.db.ExecContext(ctx, query, noteID, fileName, models.UploadCompleted)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffectedToNotFound(res)
}

func (r *PostgresRepository) Delete(ctx context.Context, noteID, fileName string) error {
	query := `
		DELETE FROM attachments
		WHERE note_id = $1 AND file_name = $2
	`
	res, err := r.db.ExecContext(ctx, query, noteID, fileName)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffectedToNotFound(res)
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

// isUniqueViolation reports whether err is the unique_violation error class
// raised when a note already has an attachment with the same file name.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
