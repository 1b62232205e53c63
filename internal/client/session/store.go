// Package session owns the client credential and the identity resolved from
// it. Nothing else mutates the session; dependents read it and subscribe to
// changes.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/example/reserva/internal/client/gateway"
	"github.com/example/reserva/internal/client/models"
	"github.com/example/reserva/internal/client/repositories/localstore"
	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/logging"
)

// IdentityResolver fetches the identity behind the current credential.
// *gateway.Client satisfies this.
type IdentityResolver interface {
	Me(ctx context.Context) (*gateway.Result, error)
}

// Store holds the opaque credential and the resolved identity. The
// credential is persisted under a single fixed key so a restart does not
// require a new login.
type Store struct {
	mu       sync.RWMutex
	token    string
	identity *models.Identity

	repo     localstore.Repository
	resolver IdentityResolver
	logger   logging.Logger
	subs     []func()
}

func NewStore(repo localstore.Repository, resolver IdentityResolver, logger logging.Logger) *Store {
	return &Store{
		repo:     repo,
		resolver: resolver,
		logger:   logger.With("module", "session"),
	}
}

// Restore loads a previously persisted credential and resolves the identity
// behind it, blocking until resolution finishes. A rejected or unreachable
// resolution clears the session: the user simply has to log in again.
func (s *Store) Restore(ctx context.Context) error {
	data, err := s.repo.Get(ctx, localstore.KeyToken)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	s.mu.Lock()
	s.token = string(data)
	s.mu.Unlock()

	if err := s.resolve(ctx); err != nil {
		s.logger.Warn(ctx, "stored credential rejected, session cleared", "error", err)
		return nil
	}
	s.notify()
	return nil
}

// Login stores and persists the credential, then resolves the identity.
// Resolution failure forces a logout and reports the reason.
func (s *Store) Login(ctx context.Context, token string) error {
	if err := s.repo.Set(ctx, localstore.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("persist credential: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	if err := s.resolve(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Logout clears credential and identity synchronously and removes the
// persisted copy.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.token = ""
	s.identity = nil
	s.mu.Unlock()

	err := s.repo.Delete(ctx, localstore.KeyToken)
	s.notify()
	if err != nil {
		return fmt.Errorf("remove persisted credential: %w", err)
	}
	return nil
}

// resolve fetches /api/me for the current credential. Any failure, whether an
// invalid credential or an unreachable server, forces a logout.
func (s *Store) resolve(ctx context.Context) error {
	res, err := s.resolver.Me(ctx)
	if err != nil {
		_ = s.Logout(ctx)
		return fmt.Errorf("identity resolution: %w", err)
	}
	if !res.OK {
		_ = s.Logout(ctx)
		return common.ErrInvalidToken
	}

	var identity models.Identity
	if err := res.Decode(&identity); err != nil {
		_ = s.Logout(ctx)
		return fmt.Errorf("identity resolution: %w", err)
	}

	s.mu.Lock()
	s.identity = &identity
	s.mu.Unlock()
	return nil
}

// IsAuthenticated is exactly "credential is present".
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Token implements gateway.TokenSource.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Identity returns the resolved identity, if any.
func (s *Store) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return models.Identity{}, false
	}
	return *s.identity, true
}

// Subscribe registers fn to run after every session change.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]func(), len(s.subs))
	copy(subs, s.subs)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn()
	}
}
