package session

import (
	"context"
	"log/slog"

	"github.com/me/smecert/internal/store"
	"github.com/me/smecert/internal/token"
	"github.com/me/smecert/pkg/model"
)

// sessionSource adapts a session row to token.Source. It is bound to one
// request: the context is the request context and the session pointer is the
// one resolved by FromRequest. Tokens the gateway rotates are persisted back
// into the row; Clear deletes the row, which is how a failed refresh
// terminates the session.
type sessionSource struct {
	ctx    context.Context
	store  store.Store
	sess   *model.Session
	logger *slog.Logger
}

var _ token.Source = (*sessionSource)(nil)

func (s *sessionSource) Pair() (token.Pair, error) {
	return token.Pair{Access: s.sess.AccessToken, Refresh: s.sess.RefreshToken}, nil
}

func (s *sessionSource) SetAccess(access string) error {
	if err := s.store.UpdateSessionTokens(s.ctx, s.sess.ID, access, s.sess.RefreshToken); err != nil {
		return err
	}
	s.sess.AccessToken = access
	return nil
}

func (s *sessionSource) Set(p token.Pair) error {
	if err := s.store.UpdateSessionTokens(s.ctx, s.sess.ID, p.Access, p.Refresh); err != nil {
		return err
	}
	s.sess.AccessToken = p.Access
	s.sess.RefreshToken = p.Refresh
	return nil
}

func (s *sessionSource) Clear() error {
	s.sess.AccessToken = ""
	s.sess.RefreshToken = ""
	s.logger.Info("session terminated after failed refresh", "session", s.sess.ID)
	return s.store.DeleteSession(s.ctx, s.sess.ID)
}
