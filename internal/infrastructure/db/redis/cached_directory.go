package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/pkg/logger"
)

const defaultCacheTTL = 5 * time.Minute

// Cache is the subset of *redis.Client used by CachedDirectory.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// CachedDirectory is a read-through Redis cache in front of a UserDirectory.
// Key format: user:email:<lowercased email>
//
// Only hits are cached. Cache failures are logged and the inner directory
// is consulted as if the entry were missing.
type CachedDirectory struct {
	inner ports.UserDirectory
	cache Cache
	ttl   time.Duration
	log   zerolog.Logger
}

// NewCachedDirectory wraps inner. A non-positive ttl falls back to 5 minutes.
func NewCachedDirectory(inner ports.UserDirectory, cache Cache, ttl time.Duration, log zerolog.Logger) *CachedDirectory {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CachedDirectory{inner: inner, cache: cache, ttl: ttl, log: log}
}

// FindByEmail satisfies ports.UserDirectory.
func (d *CachedDirectory) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	key := d.key(email)

	raw, err := d.cache.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var u domain.User
		if jsonErr := json.Unmarshal(raw, &u); jsonErr == nil {
			return &u, nil
		}
		d.log.Warn().Str("email", logger.MaskEmail(email)).Msg("discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		d.log.Warn().Err(err).Msg("user cache read failed, falling through")
	}

	u, err := d.inner.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(u); err == nil {
		if err := d.cache.Set(ctx, key, payload, d.ttl).Err(); err != nil {
			d.log.Warn().Err(err).Msg("user cache write failed")
		}
	}
	return u, nil
}

func (d *CachedDirectory) key(email string) string {
	return fmt.Sprintf("user:email:%s", strings.ToLower(strings.TrimSpace(email)))
}
