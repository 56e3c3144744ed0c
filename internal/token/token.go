// Package token owns the access/refresh token pair.
//
// The pair is mutated in exactly two places: login stores a fresh pair, and
// the gateway's refresh flow replaces the access token. Any failed refresh
// clears both tokens before the error surfaces, so an access token is never
// reused past a failed-refresh point.
package token

// Pair holds the upstream token pair: a short-lived access token and a
// longer-lived refresh token.
type Pair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// IsZero reports whether neither token is present.
func (p Pair) IsZero() bool {
	return p.Access == "" && p.Refresh == ""
}

// Source is the storage a gateway client reads tokens from and persists
// rotated tokens into. Implementations: MemorySource (tests), FileSource
// (CLI credentials file) and the per-session source in internal/session.
type Source interface {
	// Pair returns the current token pair; a zero Pair means anonymous.
	Pair() (Pair, error)
	// SetAccess persists a rotated access token, keeping the refresh token.
	SetAccess(access string) error
	// Set persists a full pair (login).
	Set(p Pair) error
	// Clear removes both tokens (logout or refresh failure).
	Clear() error
}

// MemorySource keeps the pair in memory. Not safe for concurrent use; the
// web app binds one source per request and the CLI is single-threaded.
type MemorySource struct {
	pair Pair
}

// NewMemorySource creates a MemorySource holding the given pair.
func NewMemorySource(p Pair) *MemorySource {
	return &MemorySource{pair: p}
}

func (s *MemorySource) Pair() (Pair, error) {
	return s.pair, nil
}

func (s *MemorySource) SetAccess(access string) error {
	s.pair.Access = access
	return nil
}

func (s *MemorySource) Set(p Pair) error {
	s.pair = p
	return nil
}

func (s *MemorySource) Clear() error {
	s.pair = Pair{}
	return nil
}
