package oauth

import (
	"context"
	"fmt"
	"sync"
)

// TokenStore holds issued access and refresh tokens mapped to their owning
// client.
//
// Lookups are served from memory; every mutation writes through to the
// repository synchronously so tokens survive a restart. Tokens never expire
// and refresh tokens are never rotated.
//
// All public methods are thread-safe.
type TokenStore struct {
	mu      sync.RWMutex
	access  map[string]string // token -> client_id
	refresh map[string]string // token -> client_id
	repo    TokenRepository
}

// NewTokenStore creates a token store backed by the given repository.
func NewTokenStore(repo TokenRepository) *TokenStore {
	return &TokenStore{
		access:  make(map[string]string),
		refresh: make(map[string]string),
		repo:    repo,
	}
}

// Load rebuilds the in-memory maps wholesale from the repository.
// This should be called once on application startup.
func (s *TokenStore) Load(ctx context.Context) error {
	access, err := s.repo.ListAccess(ctx)
	if err != nil {
		return fmt.Errorf("loading access tokens: %w", err)
	}
	refresh, err := s.repo.ListRefresh(ctx)
	if err != nil {
		return fmt.Errorf("loading refresh tokens: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.access = make(map[string]string, len(access))
	for _, t := range access {
		s.access[t.Token] = t.ClientID
	}
	s.refresh = make(map[string]string, len(refresh))
	for _, t := range refresh {
		s.refresh[t.Token] = t.ClientID
	}
	return nil
}

// PutAccess records a new access token for a client and persists it.
// The in-memory map is only updated after the write-through succeeds.
func (s *TokenStore) PutAccess(ctx context.Context, token, clientID string) error {
	if err := s.repo.SaveAccess(ctx, &StoredToken{Token: token, ClientID: clientID}); err != nil {
		return err
	}

	s.mu.Lock()
	s.access[token] = clientID
	s.mu.Unlock()
	return nil
}

// PutRefresh records a new refresh token for a client and persists it.
func (s *TokenStore) PutRefresh(ctx context.Context, token, clientID string) error {
	if err := s.repo.SaveRefresh(ctx, &StoredToken{Token: token, ClientID: clientID}); err != nil {
		return err
	}

	s.mu.Lock()
	s.refresh[token] = clientID
	s.mu.Unlock()
	return nil
}

// HasAccess reports whether an access token has been issued.
func (s *TokenStore) HasAccess(token string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.access[token]
	return ok
}

// AccessOwner returns the client that owns an access token.
func (s *TokenStore) AccessOwner(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clientID, ok := s.access[token]
	return clientID, ok
}

// RefreshOwner returns the client that owns a refresh token.
func (s *TokenStore) RefreshOwner(token string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	clientID, ok := s.refresh[token]
	return clientID, ok
}

// Counts returns the number of held access and refresh tokens.
func (s *TokenStore) Counts() (access, refresh int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.access), len(s.refresh)
}
