package incomes

import (
	"context"
	"time"

	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, income *models.Income) (*models.Income, error)
	// ListRange returns the caller's incomes with date in [from, to],
	// ordered by date descending.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Income, error)
}
