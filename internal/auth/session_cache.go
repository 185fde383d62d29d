package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"invested/internal/cache"
)

const sessionKeyPrefix = "session:"

// SessionCacheInterface defines the cache-side session operations.
type SessionCacheInterface interface {
	Store(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error
	Get(ctx context.Context, token string) (userID uuid.UUID, expiresAt time.Time, ok bool)
	Delete(ctx context.Context, token string) error
}

// SessionCache keeps hot sessions in redis in front of the authoritative
// session table. It is fail-safe: a dead redis degrades to DB lookups.
type SessionCache struct {
	cache *cache.Client
}

// Ensure SessionCache implements SessionCacheInterface
var _ SessionCacheInterface = (*SessionCache)(nil)

// NewSessionCache creates a new session cache.
func NewSessionCache(cache *cache.Client) *SessionCache {
	return &SessionCache{cache: cache}
}

type cachedSession struct {
	UserID    uuid.UUID `json:"userId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Store caches a session until its expiry.
func (s *SessionCache) Store(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(cachedSession{UserID: userID, ExpiresAt: expiresAt})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.cache.Set(ctx, sessionKeyPrefix+token, payload, ttl)
}

// Get returns the cached session if present and decodable.
func (s *SessionCache) Get(ctx context.Context, token string) (uuid.UUID, time.Time, bool) {
	data, err := s.cache.Get(ctx, sessionKeyPrefix+token)
	if err != nil || data == nil {
		return uuid.Nil, time.Time{}, false
	}
	var cached cachedSession
	if err := json.Unmarshal(data, &cached); err != nil {
		return uuid.Nil, time.Time{}, false
	}
	return cached.UserID, cached.ExpiresAt, true
}

// Delete evicts a session from the cache.
func (s *SessionCache) Delete(ctx context.Context, token string) error {
	return s.cache.Delete(ctx, sessionKeyPrefix+token)
}
