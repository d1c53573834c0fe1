// Package expenses provides the PostgreSQL-backed repository for expense
// records and their tags.
package expenses

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

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, name, amount, date, repeat, repeat_interval)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, added_at
	`
	err := r.db.QueryRowContext(ctx, query,
		expense.UserID, expense.Name, expense.Amount, expense.Date,
		expense.Repeat, expense.RepeatInterval).Scan(&expense.ID, &expense.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return expense, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64, userID string) (*models.Expense, error) {
	query := `
		SELECT id, user_id, name, amount, date, repeat, repeat_interval, added_at FROM expenses
		WHERE id = $1 AND user_id = $2
	`
	expense := &models.Expense{}
	err := r.db.QueryRowContext(ctx, query, id, userID).Scan(
		&expense.ID, &expense.UserID, &expense.Name, &expense.Amount, &expense.Date,
		&expense.Repeat, &expense.RepeatInterval, &expense.AddedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return expense, nil
}

// ListRange returns expenses with their tags. Tags are fetched in a second
// query and attached in memory, which keeps both statements trivial.
func (r *PostgresRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Expense, error) {
	query := `
		SELECT id, user_id, name, amount, date, repeat, repeat_interval, added_at FROM expenses
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []*models.Expense
	byID := map[int64]*models.Expense{}
	for rows.Next() {
		var item models.Expense
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Date,
			&item.Repeat, &item.RepeatInterval, &item.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
		byID[item.ID] = &item
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return result, nil
	}

	tagQuery := `
		SELECT t.id, t.user_id, t.expense_id, t.name
		FROM expense_tags t
		JOIN expenses e ON e.id = t.expense_id
		WHERE t.user_id = $1 AND e.date BETWEEN $2 AND $3
	`
	tagRows, err := r.db.QueryContext(ctx, tagQuery, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select expense tags: %w", err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var tag models.ExpenseTag
		if err := tagRows.Scan(&tag.ID, &tag.UserID, &tag.ExpenseID, &tag.Name); err != nil {
			return nil, err
		}
		if e, ok := byID[tag.ExpenseID]; ok {
			e.Tags = append(e.Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, expense *models.Expense) error {
	query := `
		UPDATE expenses SET name = $3, amount = $4, date = $5, repeat = $6, repeat_interval = $7
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query,
		expense.ID, expense.UserID, expense.Name, expense.Amount, expense.Date,
		expense.Repeat, expense.RepeatInterval)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffectedToNotFound(res)
}

// Delete removes an expense; its tags cascade via FK.
func (r *PostgresRepository) Delete(ctx context.Context, id int64, userID string) error {
	query := `
		DELETE FROM expenses
		WHERE id = $1 AND user_id = $2
	`
	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return rowsAffectedToNotFound(res)
}

func (r *PostgresRepository) CreateTag(ctx context.Context, tag *models.ExpenseTag) (*models.ExpenseTag, error) {
	query := `
		INSERT INTO expense_tags (user_id, expense_id, name)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := r.db.QueryRowContext(ctx, query, tag.UserID, tag.ExpenseID, tag.Name).Scan(&tag.ID); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) FindTagByName(ctx context.Context, userID, name string) (*models.ExpenseTag, error) {
	query := `
		SELECT id, user_id, expense_id, name FROM expense_tags
		WHERE user_id = $1 AND name = $2
	`
	tag := &models.ExpenseTag{}
	err := r.db.QueryRowContext(ctx, query, userID, name).Scan(&tag.ID, &tag.UserID, &tag.ExpenseID, &tag.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return tag, nil
}

func (r *PostgresRepository) ListTags(ctx context.Context, userID string) ([]*models.ExpenseTag, error) {
	query := `
		SELECT id, user_id, expense_id, name FROM expense_tags
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to select expense tags: %w", err)
	}
	defer rows.Close()

	var result []*models.ExpenseTag
	for rows.Next() {
		var tag models.ExpenseTag
		if err := rows.Scan(&tag.ID, &tag.UserID, &tag.ExpenseID, &tag.Name); err != nil {
			return nil, err
		}
		result = append(result, &tag)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
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
