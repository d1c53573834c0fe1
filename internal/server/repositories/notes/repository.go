package notes

import (
	"context"

	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, note *models.Note) error
	// ListByUser returns metadata only (no content), ordered by updated
	// ascending.
	ListByUser(ctx context.Context, userID string) ([]*models.Note, error)
	// Get returns the full note including ciphertext, scoped to its owner.
	Get(ctx context.Context, id, userID string) (*models.Note, error)
	// GetByID returns the full note without an owner scope. Used only by the
	// public share-link resolver, which authorizes by token instead.
	GetByID(ctx context.Context, id string) (*models.Note, error)
	UpdateContent(ctx context.Context, id, userID string, content []byte) (*models.Note, error)
	UpdateTitle(ctx context.Context, id, userID, title string) error
	Delete(ctx context.Context, id, userID string) error
}
