package models

import "time"

// User represents a registered forum account
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Session represents an authenticated session. The ID is the opaque token
// carried in the client cookie; expiry is computed at lookup time, never
// stored as a separate state field.
type Session struct {
	ID        string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// IsExpired checks if the session has expired
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
