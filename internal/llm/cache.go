package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dsb-backend-go/pkg/cache"
)

const cacheKeyPrefix = "dsb:llm:"

// CachedClient serves repeated identical requests from a cache. Cache
// failures are logged and never fail the completion. JSON requests are only
// cached when the answer is well-formed JSON; a malformed cached answer is
// evicted and regenerated.
type CachedClient struct {
	next   Client
	cache  cache.Cache
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient wraps next with a response cache.
func NewCachedClient(next Client, c cache.Cache, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{next: next, cache: c, ttl: ttl, logger: logger}
}

// CacheKey derives the cache key for a request.
func CacheKey(req Request) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%.3f\x00%t\x00%s\x00%s", req.Task, req.Temperature, req.JSON, req.System, req.Prompt)
	return cacheKeyPrefix + hex.EncodeToString(h.Sum(nil))
}

func (c *CachedClient) Complete(ctx context.Context, req Request) (string, error) {
	key := CacheKey(req)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil && req.JSON && !json.Valid([]byte(cached)):
		c.logger.Warn("Evicting malformed cached LLM answer", zap.String("task", string(req.Task)))
		if err := c.cache.Delete(ctx, key); err != nil {
			c.logger.Warn("LLM cache eviction failed", zap.String("task", string(req.Task)), zap.Error(err))
		}
	case err == nil:
		c.logger.Debug("LLM cache hit", zap.String("task", string(req.Task)))
		return cached, nil
	case !errors.Is(err, cache.ErrMiss):
		c.logger.Warn("LLM cache lookup failed", zap.String("task", string(req.Task)), zap.Error(err))
	}

	out, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}

	if req.JSON && !json.Valid([]byte(out)) {
		return out, nil
	}
	if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
		c.logger.Warn("LLM cache store failed", zap.String("task", string(req.Task)), zap.Error(err))
	}
	return out, nil
}

var _ Client = (*CachedClient)(nil)
