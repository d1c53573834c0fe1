// Package incomes provides the PostgreSQL-backed repository for income
// records.
package incomes

import (
	"context"
	"fmt"
	"time"

	"github.com/gauravjot/my-it-tools/internal/dbx"
	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, income *models.Income) (*models.Income, error) {
	query := `
		INSERT INTO incomes (user_id, name, amount, date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, added_at
	`
	err := r.db.QueryRowContext(ctx, query,
		income.UserID, income.Name, income.Amount, income.Date).Scan(&income.ID, &income.AddedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return income, nil
}

func (r *PostgresRepository) ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Income, error) {
	query := `
		SELECT id, user_id, name, amount, date, added_at FROM incomes
		WHERE user_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to select incomes: %w", err)
	}
	defer rows.Close()

	var result []*models.Income
	for rows.Next() {
		var item models.Income
		if err := rows.Scan(&item.ID, &item.UserID, &item.Name, &item.Amount, &item.Date, &item.AddedAt); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
