package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dilahazalbilgin/VerifID/internal/core/ports"
)

const lookupTTL = 5 * time.Minute

// LookupCache caches public lookup results so third-party polling does not
// hit the document store on every request. Entries expire after lookupTTL
// and are deleted eagerly on rotation and revocation, so a stale positive
// can never outlive its token.
// Key format: lookup:<request_id>
type LookupCache struct {
	client *redis.Client
}

// NewLookupCache wraps the given Redis client.
func NewLookupCache(client *redis.Client) *LookupCache {
	return &LookupCache{client: client}
}

// Get returns the cached result for requestID, or nil on a cache miss.
func (c *LookupCache) Get(ctx context.Context, requestID string) (*ports.LookupResult, error) {
	raw, err := c.client.Get(ctx, c.key(requestID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup cache get: %w", err)
	}

	var result ports.LookupResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("lookup cache decode: %w", err)
	}
	return &result, nil
}

// Set stores a lookup result under its request ID.
func (c *LookupCache) Set(ctx context.Context, requestID string, result *ports.LookupResult) error {
	raw, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("lookup cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(requestID), raw, lookupTTL).Err()
}

// Invalidate removes the entry for a rotated or revoked request ID.
func (c *LookupCache) Invalidate(ctx context.Context, requestID string) error {
	return c.client.Del(ctx, c.key(requestID)).Err()
}

func (c *LookupCache) key(requestID string) string {
	return "lookup:" + requestID
}
