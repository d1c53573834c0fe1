package shares

import (
	"context"

	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, share *models.NoteShare) error
	// ListByNote returns the owner's share links for a note, ordered by
	// created descending.
	ListByNote(ctx context.Context, noteID, userID string) ([]*models.NoteShare, error)
	// FindActiveByPasskey looks up an active link by the hash of the raw
	// token. Inactive and missing links are the same ErrorNotFound.
	FindActiveByPasskey(ctx context.Context, passkey string) (*models.NoteShare, error)
	// Disable flips active to false. Disabling an already-inactive link is
	// not an error; there is no reactivation path.
	Disable(ctx context.Context, id, userID string) error
}
