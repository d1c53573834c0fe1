package services

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/cryptox"
	"github.com/gauravjot/my-it-tools/internal/server/config"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/repomanager"
)

const (
	defaultNoteTitle = "Untitled"
	maxNoteTitleLen  = 100
)

// NoteSummary is the list-view shape: metadata only, no content.
type NoteSummary struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

// NoteResult is the single-note shape: summary plus decrypted content.
type NoteResult struct {
	NoteSummary
	Content json.RawMessage `json:"content"`
}

// NoteService stores note content encrypted at rest. Plaintext exists only in
// memory for the duration of a request; the repositories see codec output.
type NoteService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	codec       *cryptox.Codec
}

// NewNoteService constructs a NoteService around the process-wide codec.
func NewNoteService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) (*NoteService, error) {
	key, err := cfg.DecodeEncryptionKey()
	if err != nil {
		return nil, fmt.Errorf("invalid encryption key: %w", err)
	}
	codec, err := cryptox.NewCodec(key)
	if err != nil {
		return nil, fmt.Errorf("cannot initialize codec: %w", err)
	}
	return &NoteService{db: db, repomanager: m, codec: codec}, nil
}

// CreateNote encrypts the content and inserts a new note. The response echoes
// the plaintext content so the client need not re-fetch.
func (s *NoteService) CreateNote(ctx context.Context, userID, title string, content json.RawMessage) (*NoteResult, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	plaintext, err := canonicalContent(content)
	if err != nil {
		return nil, err
	}
	ciphertext, err := s.codec.Encrypt(plaintext)
	if err != nil {
		return nil, common.ErrorInternal
	}

	now := time.Now().UTC()
	note := &models.Note{
		ID:      uuid.NewString(),
		UserID:  userID,
		Title:   title,
		Content: ciphertext,
		Created: now,
		Updated: now,
	}
	if err := s.repomanager.Notes(s.db).Create(ctx, note); err != nil {
		return nil, fmt.Errorf("error creating note: %v", err)
	}
	return &NoteResult{NoteSummary: summarize(note), Content: plaintext}, nil
}

// ListNotes returns the caller's note metadata ordered by updated ascending.
// Content is never decrypted for lists.
func (s *NoteService) ListNotes(ctx context.Context, userID string) ([]NoteSummary, error) {
	items, err := s.repomanager.Notes(s.db).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %v", err)
	}
	result := make([]NoteSummary, 0, len(items))
	for _, n := range items {
		result = append(result, summarize(n))
	}
	return result, nil
}

// ReadNote fetches and decrypts a single owned note. A note owned by someone
// else is ErrorNotFound; a note that will not decrypt is ErrorUnreadable.
func (s *NoteService) ReadNote(ctx context.Context, userID, id string) (*NoteResult, error) {
	note, err := s.repomanager.Notes(s.db).Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.codec.Decrypt(note.Content)
	if err != nil {
		return nil, common.ErrorUnreadable
	}
	return &NoteResult{NoteSummary: summarize(note), Content: plaintext}, nil
}

// UpdateNoteContent replaces the note content and bumps updated. Last write
// wins; there is no version check.
func (s *NoteService) UpdateNoteContent(ctx context.Context, userID, id string, content json.RawMessage) (*NoteResult, error) {
	plaintext, err := canonicalContent(content)
	if err != nil {
		return nil, err
	}
	ciphertext, err := s.codec.Encrypt(plaintext)
	if err != nil {
		return nil, common.ErrorInternal
	}
	note, err := s.repomanager.Notes(s.db).UpdateContent(ctx, id, userID, ciphertext)
	if err != nil {
		return nil, err
	}
	return &NoteResult{NoteSummary: summarize(note), Content: plaintext}, nil
}

// UpdateNoteTitle renames an owned note. The "Untitled" fallback applies at
// creation only; a rename must carry a non-empty title.
func (s *NoteService) UpdateNoteTitle(ctx context.Context, userID, id, title string) error {
	if title == "" || len(title) > maxNoteTitleLen {
		return common.ErrorInvalidInput
	}
	return s.repomanager.Notes(s.db).UpdateTitle(ctx, id, userID, title)
}

// DeleteNote removes an owned note. Share links and attachments cascade at
// the database level.
func (s *NoteService) DeleteNote(ctx context.Context, userID, id string) error {
	return s.repomanager.Notes(s.db).Delete(ctx, id, userID)
}

func summarize(n *models.Note) NoteSummary {
	return NoteSummary{ID: n.ID, Title: n.Title, Created: n.Created, Updated: n.Updated}
}

func normalizeTitle(title string) (string, error) {
	if title == "" {
		return defaultNoteTitle, nil
	}
	if len(title) > maxNoteTitleLen {
		return "", common.ErrorInvalidInput
	}
	return title, nil
}

// canonicalContent compacts the raw JSON document so equal documents encrypt
// from equal bytes regardless of client whitespace.
func canonicalContent(content json.RawMessage) ([]byte, error) {
	if len(content) == 0 {
		return nil, common.ErrorInvalidInput
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, content); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInvalidInput, err)
	}
	return buf.Bytes(), nil
}
