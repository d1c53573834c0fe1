package models

import "time"

// Note holds plaintext metadata plus the encrypted content blob. Content is
// never persisted or transmitted in cleartext; only the codec output goes to
// the database.
type Note struct {
	ID      string
	UserID  string
	Title   string
	Content []byte
	Created time.Time
	Updated time.Time
}
