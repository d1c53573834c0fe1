package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gauravjot/my-it-tools/internal/common"
	"github.com/gauravjot/my-it-tools/internal/cryptox"
	"github.com/gauravjot/my-it-tools/internal/server/models"
	"github.com/gauravjot/my-it-tools/internal/server/repositories/repomanager"
)

const (
	defaultShareTitle = "Note Share"
	maxShareTitleLen  = 48
	// shareTokenBytes random bytes expand to 32 hex characters in the URL.
	shareTokenBytes = 16
)

// ShareLinkInfo is the owner-facing view of a share link. The raw token is
// absent: it is returned exactly once, at creation, as ShareLinkCreated.URLKey.
type ShareLinkInfo struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Anonymous           bool      `json:"anonymous"`
	Active              bool      `json:"active"`
	IsPasswordProtected bool      `json:"isPasswordProtected"`
	Created             time.Time `json:"created"`
}

// ShareLinkCreated carries the one-time raw URL token alongside the link
// metadata.
type ShareLinkCreated struct {
	ShareLinkInfo
	URLKey string `json:"urlKey"`
}

// SharedNoteView is what an anonymous visitor gets when resolving a link.
// Owner fields are populated only when the link is not anonymous.
type SharedNoteView struct {
	Title        string          `json:"title"`
	Content      json.RawMessage `json:"content"`
	NoteCreated  time.Time       `json:"noteCreated"`
	NoteUpdated  time.Time       `json:"noteUpdated"`
	ShareCreated time.Time       `json:"shareCreated"`
	OwnerID      string          `json:"ownerId,omitempty"`
	OwnerName    string          `json:"ownerName,omitempty"`
}

// ShareService issues and resolves public share links for notes. The raw URL
// token never touches the database; only its SHA-256 hash (the passkey) does.
type ShareService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	notes       *NoteService
}

// NewShareService constructs a ShareService. It decrypts note content through
// the NoteService codec when resolving links.
func NewShareService(db *sql.DB, m repomanager.RepositoryManager, notes *NoteService) *ShareService {
	return &ShareService{db: db, repomanager: m, notes: notes}
}

// CreateShareLink issues a new link for an owned note. Foreign notes come
// back as ErrorNotFound, same as missing ones. A password shorter than two
// characters means the link is not password protected. A link created with
// active=false behaves like a disabled one until the row is replaced; there
// is no activation path.
func (s *ShareService) CreateShareLink(ctx context.Context, userID, noteID, title, password string, anonymous, active bool) (*ShareLinkCreated, error) {
	// Owner check doubles as an existence check.
	if _, err := s.repomanager.Notes(s.db).Get(ctx, noteID, userID); err != nil {
		return nil, err
	}

	if title == "" {
		title = defaultShareTitle
	}
	if len(title) > maxShareTitleLen {
		return nil, common.ErrorInvalidInput
	}

	token, err := common.MakeRandHexString(shareTokenBytes)
	if err != nil {
		return nil, common.ErrorInternal
	}

	passwordHash := ""
	if len(password) > 1 {
		passwordHash = cryptox.HashPassword(password)
	}

	share := &models.NoteShare{
		ID:        uuid.NewString(),
		UserID:    userID,
		NoteID:    noteID,
		Passkey:   cryptox.HashToken(token),
		Password:  passwordHash,
		Title:     title,
		Anonymous: anonymous,
		Active:    active,
		Created:   time.Now().UTC(),
	}
	if err := s.repomanager.Shares(s.db).Create(ctx, share); err != nil {
		return nil, fmt.Errorf("error creating share link: %v", err)
	}

	return &ShareLinkCreated{ShareLinkInfo: shareInfo(share), URLKey: token}, nil
}

// ListShareLinks returns the owner's links for a note, newest first.
func (s *ShareService) ListShareLinks(ctx context.Context, userID, noteID string) ([]ShareLinkInfo, error) {
	items, err := s.repomanager.Shares(s.db).ListByNote(ctx, noteID, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing share links: %v", err)
	}
	result := make([]ShareLinkInfo, 0, len(items))
	for _, sh := range items {
		result = append(result, shareInfo(sh))
	}
	return result, nil
}

// DisableShareLink permanently deactivates a link. Disabling twice is not an
// error; there is no way to reactivate.
func (s *ShareService) DisableShareLink(ctx context.Context, userID, shareID string) error {
	return s.repomanager.Shares(s.db).Disable(ctx, shareID, userID)
}

// ResolveShareLink serves a shared note to an unauthenticated visitor.
// Unknown and disabled tokens are the same ErrorNotFound. When the link is
// password protected, a missing and a wrong password are the same
// ErrorIncorrectPassword.
func (s *ShareService) ResolveShareLink(ctx context.Context, token, password string) (*SharedNoteView, error) {
	share, err := s.repomanager.Shares(s.db).FindActiveByPasskey(ctx, cryptox.HashToken(token))
	if err != nil {
		return nil, err
	}

	if share.IsPasswordProtected() {
		if !cryptox.VerifyPassword(share.Password, password) {
			return nil, common.ErrorIncorrectPassword
		}
	}

	note, err := s.repomanager.Notes(s.db).GetByID(ctx, share.NoteID)
	if err != nil {
		return nil, err
	}
	plaintext, err := s.notes.codec.Decrypt(note.Content)
	if err != nil {
		return nil, common.ErrorUnreadable
	}

	view := &SharedNoteView{
		Title:        note.Title,
		Content:      plaintext,
		NoteCreated:  note.Created,
		NoteUpdated:  note.Updated,
		ShareCreated: share.Created,
	}
	if !share.Anonymous {
		owner, err := s.repomanager.Users(s.db).GetByID(ctx, note.UserID)
		if err != nil {
			return nil, common.ErrorInternal
		}
		view.OwnerID = owner.ID
		view.OwnerName = owner.Name
	}
	return view, nil
}

func shareInfo(sh *models.NoteShare) ShareLinkInfo {
	return ShareLinkInfo{
		ID:                  sh.ID,
		Title:               sh.Title,
		Anonymous:           sh.Anonymous,
		Active:              sh.Active,
		IsPasswordProtected: sh.IsPasswordProtected(),
		Created:             sh.Created,
	}
}
