package diagnostics

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

// redisEntry is the JSON shape stored per key.
type redisEntry struct {
	Version int          `json:"version"`
	Diags   []Diagnostic `json:"diagnostics"`
}

// RedisCache persists the per-document diagnostic cache in Redis, for
// deployments sharing the diagnostics engine across multiple editor-
// service processes. It mirrors internal/cache.RedisStore's index-set
// pattern so Snapshot and InvalidateAll avoid a KEYS scan.
type RedisCache struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

// NewRedisCache wraps an existing *redis.Client under prefix (defaulted
// to "cnl:diagnostics:").
func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	if prefix == "" {
		prefix = "cnl:diagnostics:"
	}
	return &RedisCache{client: client, prefix: prefix, ctx: context.Background()}
}

func (c *RedisCache) key(uri string) string { return c.prefix + uri }
func (c *RedisCache) indexKey() string      { return c.prefix + "index" }

func (c *RedisCache) Get(uri string, version int) ([]Diagnostic, bool) {
	raw, err := c.client.Get(c.ctx, c.key(uri)).Bytes()
	if err != nil {
		return nil, false
	}
	var e redisEntry
	if err := json.Unmarshal(raw, &e); err != nil || e.Version != version {
		return nil, false
	}
	return e.Diags, true
}

func (c *RedisCache) Set(uri string, version int, diags []Diagnostic) {
	raw, err := json.Marshal(redisEntry{Version: version, Diags: diags})
	if err != nil {
		return
	}
	_ = c.client.Set(c.ctx, c.key(uri), raw, 0).Err()
	_ = c.client.SAdd(c.ctx, c.indexKey(), uri).Err()
}

func (c *RedisCache) Invalidate(uri string) {
	_ = c.client.Del(c.ctx, c.key(uri)).Err()
	_ = c.client.SRem(c.ctx, c.indexKey(), uri).Err()
}

func (c *RedisCache) InvalidateAll() {
	uris, err := c.client.SMembers(c.ctx, c.indexKey()).Result()
	if err != nil {
		return
	}
	for _, uri := range uris {
		_ = c.client.Del(c.ctx, c.key(uri)).Err()
	}
	_ = c.client.Del(c.ctx, c.indexKey()).Err()
}

func (c *RedisCache) Snapshot() map[string][]Diagnostic {
	uris, err := c.client.SMembers(c.ctx, c.indexKey()).Result()
	if err != nil {
		return nil
	}
	out := make(map[string][]Diagnostic, len(uris))
	for _, uri := range uris {
		raw, err := c.client.Get(c.ctx, c.key(uri)).Bytes()
		if err != nil {
			continue
		}
		var e redisEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			continue
		}
		out[uri] = e.Diags
	}
	return out
}
