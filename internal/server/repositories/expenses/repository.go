package expenses

import (
	"context"
	"time"

	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, expense *models.Expense) (*models.Expense, error)
	// Get returns the owner's expense without tags attached.
	Get(ctx context.Context, id int64, userID string) (*models.Expense, error)
	// ListRange returns the caller's expenses with date in [from, to],
	// ordered by date descending, tags attached.
	ListRange(ctx context.Context, userID string, from, to time.Time) ([]*models.Expense, error)
	Update(ctx context.Context, expense *models.Expense) error
	Delete(ctx context.Context, id int64, userID string) error

	CreateTag(ctx context.Context, tag *models.ExpenseTag) (*models.ExpenseTag, error)
	// FindTagByName returns the caller's tag with that name, or
	// common.ErrorNotFound.
	FindTagByName(ctx context.Context, userID, name string) (*models.ExpenseTag, error)
	ListTags(ctx context.Context, userID string) ([]*models.ExpenseTag, error)
}
