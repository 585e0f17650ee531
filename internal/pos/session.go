package pos

import (
	"context"
	"fmt"
	"os"
	"strings"

	"tablecrm_cashier/internal/tablecrm"

	"go.uber.org/zap"
)

// TokenStore persists the last accepted token, the durable counterpart
// of the single browser-storage key the operator flow relies on.
type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

func (s *TokenStore) Load() (string, error) {
	if s.path == "" {
		return "", nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *TokenStore) Save(token string) error {
	if s.path == "" {
		return nil
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *TokenStore) Clear() error {
	if s.path == "" {
		return nil
	}
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// Session gates the order flow behind a validated token. Validation is
// a read-through probe against the sales listing: a rejected token and
// an unreachable API collapse to the same unauthenticated outcome.
type Session struct {
	base   *tablecrm.Client
	store  *TokenStore
	logger *zap.Logger

	token         string
	authenticated bool
}

func NewSession(base *tablecrm.Client, store *TokenStore, logger *zap.Logger) *Session {
	return &Session{
		base:   base,
		store:  store,
		logger: logger.Named("session"),
	}
}

func (s *Session) Authenticate(ctx context.Context, token string) bool {
	token = strings.TrimSpace(token)
	if token == "" {
		s.drop()
		return false
	}

	probe := s.base.WithToken(token)
	if _, err := probe.ListSalesDocuments(ctx); err != nil {
		s.logger.Warn("token validation failed", zap.Error(err))
		s.drop()
		return false
	}

	s.token = token
	s.authenticated = true
	if err := s.store.Save(token); err != nil {
		s.logger.Warn("persisting token failed", zap.Error(err))
	}
	return true
}

// Resume re-validates a previously stored token, if any.
func (s *Session) Resume(ctx context.Context) bool {
	token, err := s.store.Load()
	if err != nil {
		s.logger.Warn("reading stored token failed", zap.Error(err))
		return false
	}
	if token == "" {
		return false
	}
	return s.Authenticate(ctx, token)
}

func (s *Session) Logout() {
	s.drop()
}

func (s *Session) Authenticated() bool {
	return s.authenticated
}

// Client returns a client bound to the current token.
func (s *Session) Client() *tablecrm.Client {
	return s.base.WithToken(s.token)
}

func (s *Session) drop() {
	s.token = ""
	s.authenticated = false
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("clearing stored token failed", zap.Error(err))
	}
}
