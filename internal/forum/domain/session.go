package domain

import "time"

// Session is the server-held binding from an opaque cookie token to a user.
// Username and Role are denormalized into the row on login (and refreshed on
// username change) so authorization checks need no user re-fetch.
type Session struct {
	ID        string
	UserID    string
	TokenHash string // SHA-256 fingerprint of the opaque token
	Username  string
	Role      Role
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the session is past its expiry at time now.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Identity is the authenticated caller as seen by policy and handlers.
type Identity struct {
	UserID   string
	Username string
	Role     Role
}

// Identity derives the caller identity bound to the session.
func (s Session) Identity() Identity {
	return Identity{UserID: s.UserID, Username: s.Username, Role: s.Role}
}
