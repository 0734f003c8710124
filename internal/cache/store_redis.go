package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisRecord is the JSON shape stored per key; the parsed Core module
// is never persisted here (see Store's doc comment).
type redisRecord struct {
	Hash        string    `json:"hash"`
	Diagnostics []byte    `json:"diagnostics"`
	CachedAt    time.Time `json:"cachedAt"`
	LastChecked time.Time `json:"lastChecked"`
}

// RedisStore persists document cache entries in Redis, keyed under a
// configurable prefix, with an index set tracking known paths so Prune
// and Size can enumerate entries without a KEYS scan in production.
type RedisStore struct {
	client *redis.Client
	prefix string
	ctx    context.Context
}

// NewRedisStore wraps an existing *redis.Client (constructed by the
// caller, so tests can point it at a github.com/alicebob/miniredis/v2
// instance instead of a live server).
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "cnl:cache:"
	}
	return &RedisStore{client: client, prefix: prefix, ctx: context.Background()}
}

func (s *RedisStore) key(path string) string {
	return s.prefix + path
}

func (s *RedisStore) indexKey() string {
	return s.prefix + "index"
}

func (s *RedisStore) get(path string) (*CachedDocument, bool) {
	raw, err := s.client.Get(s.ctx, s.key(path)).Bytes()
	if err != nil {
		return nil, false
	}
	var rec redisRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, false
	}
	doc := &CachedDocument{Path: path, Hash: rec.Hash, CachedAt: rec.CachedAt, LastChecked: rec.LastChecked}
	_ = json.Unmarshal(rec.Diagnostics, &doc.Diagnostics)
	return doc, true
}

func (s *RedisStore) Get(path string) (*CachedDocument, bool) {
	return s.get(path)
}

func (s *RedisStore) GetByHash(hash string) (*CachedDocument, bool) {
	paths, err := s.client.SMembers(s.ctx, s.indexKey()).Result()
	if err != nil {
		return nil, false
	}
	for _, path := range paths {
		if doc, ok := s.get(path); ok && doc.Hash == hash {
			return doc, true
		}
	}
	return nil, false
}

func (s *RedisStore) Set(path string, doc *CachedDocument) {
	diagJSON, err := json.Marshal(doc.Diagnostics)
	if err != nil {
		return
	}
	rec := redisRecord{Hash: doc.Hash, Diagnostics: diagJSON, CachedAt: doc.CachedAt, LastChecked: doc.LastChecked}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	_ = s.client.Set(s.ctx, s.key(path), raw, 0).Err()
	_ = s.client.SAdd(s.ctx, s.indexKey(), path).Err()
}

func (s *RedisStore) Invalidate(path string) {
	_ = s.client.Del(s.ctx, s.key(path)).Err()
	_ = s.client.SRem(s.ctx, s.indexKey(), path).Err()
}

func (s *RedisStore) InvalidateAll() {
	paths, err := s.client.SMembers(s.ctx, s.indexKey()).Result()
	if err != nil {
		return
	}
	for _, path := range paths {
		_ = s.client.Del(s.ctx, s.key(path)).Err()
	}
	_ = s.client.Del(s.ctx, s.indexKey()).Err()
}

func (s *RedisStore) Size() int {
	n, err := s.client.SCard(s.ctx, s.indexKey()).Result()
	if err != nil {
		return 0
	}
	return int(n)
}

func (s *RedisStore) Prune(maxAge time.Duration) int {
	paths, err := s.client.SMembers(s.ctx, s.indexKey()).Result()
	if err != nil {
		return 0
	}
	cutoff := time.Now().Add(-maxAge)
	pruned := 0
	for _, path := range paths {
		doc, ok := s.get(path)
		if !ok || doc.LastChecked.Before(cutoff) {
			s.Invalidate(path)
			pruned++
		}
	}
	return pruned
}
