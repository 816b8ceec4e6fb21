package auth

import (
	"context"
	"time"

	"gamecatalog/internal/cache"
)

const revokedTokenKeyPrefix = "denylist:token:"

// TokenStoreInterface defines the interface for the session token denylist.
type TokenStoreInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) bool
}

// TokenStore keeps revoked token ids in Redis until the token would have expired.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Revoke puts a token id on the denylist. Already expired tokens are skipped.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks the denylist. An unavailable cache reads as not revoked,
// so a Redis outage never locks every user out.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	data, err := s.cache.Get(ctx, revokedTokenKeyPrefix+tokenID)
	return err == nil && data != nil
}
