package models

import "time"

// NoteShare is a public share link for a note. Passkey is the one-way hash
// of the raw URL token; the token itself is returned to the creator once and
// never stored. Password is an Argon2id hash, or "" when no password gates
// the link.
type NoteShare struct {
	ID        string
	UserID    string
	NoteID    string
	Passkey   string
	Password  string
	Title     string
	Anonymous bool
	Active    bool
	Created   time.Time
}

// IsPasswordProtected reports whether resolving the link requires a password.
func (s *NoteShare) IsPasswordProtected() bool {
	return len(s.Password) > 0
}
