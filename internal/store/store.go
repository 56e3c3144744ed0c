package store

import (
	"context"

	"github.com/me/smecert/pkg/model"
)

// Store defines the persistence layer for browser sessions.
//
// The session row owns the upstream token pair; UpdateSessionTokens is the
// write path used by the gateway's refresh flow.
type Store interface {
	CreateSession(ctx context.Context, sess *model.Session) error
	GetSession(ctx context.Context, id string) (*model.Session, error)
	UpdateSessionTokens(ctx context.Context, id, access, refresh string) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)

	// Lifecycle
	Close() error
	Migrate(ctx context.Context) error
}
