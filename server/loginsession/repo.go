package loginsession

import "time"

// Session is the login session the CMS establishes for a user. The session
// ID doubles as the key the token store is scoped by.
type Session struct {
	SessionID string
	Email     string
	UID       int64

	CreatedAt time.Time
}

type Repo interface {
	Upsert(sessionID string, session Session) error
	Get(sessionID string) (Session, error)
	Delete(sessionID string) error
}
