package domain

import "time"

// AuthSession is a signed-in session. Only its presence gates access.
type AuthSession struct {
	Token     string
	User      string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is no longer valid at now.
func (s *AuthSession) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
