package attachments

import (
	"context"

	"github.com/gauravjot/my-it-tools/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, attachment *models.Attachment) error
	Get(ctx context.Context, noteID, fileName string) (*models.Attachment, error)
	// ListByNote returns attachment metadata for a note, newest first.
	ListByNote(ctx context.Context, noteID string) ([]*models.Attachment, error)
	// MarkUploaded flips the upload status to completed once the client
	// confirms the object was written.
	MarkUploaded(ctx context.Context, noteID, fileName string) error
	Delete(ctx context.Context, noteID, fileName string) error
}
