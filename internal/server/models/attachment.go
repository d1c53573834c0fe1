package models

import "time"

// Attachment describes server-side metadata for a binary payload attached to
// a note. The payload itself lives in object storage; the server only tracks
// the storage key and upload state.
type Attachment struct {
	// NoteID links the attachment to its parent note.
	NoteID string
	// UserID is the owner of the attachment (the note's owner).
	UserID string
	// FileName is the client-supplied display name, unique per note.
	FileName string
	// Size is the declared payload size in bytes.
	Size int64
	// StorageKey is the object-storage key (path) of the blob.
	StorageKey string
	// UploadStatus tracks upload state ("pending" or "completed").
	UploadStatus string

	CreatedAt time.Time
}

const (
	UploadPending   = "pending"
	UploadCompleted = "completed"
)
