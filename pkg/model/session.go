package model

import "time"

// Session represents an authenticated browser session.
//
// The session row is the single owner of the upstream token pair: the API
// gateway reads the access token from it and writes rotated access tokens
// back into it. Deleting the row terminates the session.
type Session struct {
	ID           string    `json:"id"`
	UserID       int64     `json:"user_id"`
	Username     string    `json:"username"`
	Role         Role      `json:"role"`
	AccessToken  string    `json:"-"`
	RefreshToken string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// IsExpired reports whether the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// IsAdmin reports whether the session belongs to an admin user.
func (s *Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}
