package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields this app reads out of an access token. The upstream
// API is the verifier; we only peek at the payload for expiry and identity
// hints, so parsing here is deliberately unverified.
type Claims struct {
	UserID   string
	Username string
	Role     string
	Expiry   time.Time
}

// IsExpired reports whether the token's expiry has passed.
// A zero expiry (absent claim) is treated as not expired.
func (c Claims) IsExpired() bool {
	if c.Expiry.IsZero() {
		return false
	}
	return time.Now().After(c.Expiry)
}

type rawClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
	UserID   any    `json:"user_id,omitempty"`
}

// PeekClaims decodes the payload of an access token without verifying its
// signature.
func PeekClaims(access string) (Claims, error) {
	var raw rawClaims
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(access, &raw); err != nil {
		return Claims{}, fmt.Errorf("parse access token: %w", err)
	}

	c := Claims{
		UserID:   raw.Subject,
		Username: raw.Username,
		Role:     raw.Role,
	}
	if raw.ExpiresAt != nil {
		c.Expiry = raw.ExpiresAt.Time
	}
	// Some token backends carry user_id instead of sub.
	if c.UserID == "" && raw.UserID != nil {
		c.UserID = fmt.Sprint(raw.UserID)
	}
	return c, nil
}
