package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-wardrobe/pkg/types"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

// Store is the key value store behind CachedSource.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &RedisStore{client: rdb}
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return data, err
}

func (r *RedisStore) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, data, ttl).Err()
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}

// CachedSource is a read-through cache in front of a Source. Store failures are logged and
// the underlying source is used instead.
type CachedSource struct {
	Source Source
	Store  Store
	TTL    time.Duration
	Prefix string
	keys   sync.Map
}

func NewCachedSource(src Source, store Store, ttl time.Duration, prefix string) *CachedSource {
	return &CachedSource{Source: src, Store: store, TTL: ttl, Prefix: prefix}
}

func (c *CachedSource) key(parts ...any) string {
	return fmt.Sprint(append([]any{c.Prefix, ":"}, parts...)...)
}

func cached[T any](ctx context.Context, c *CachedSource, key string, fetch func() (T, error)) (T, error) {
	var out T
	data, err := c.Store.Get(ctx, key)
	if err == nil {
		if err = sonic.Unmarshal(data, &out); err == nil {
			return out, nil
		}
		log.Printf("cache: failed to decode %s: %v", key, err)
	} else if !errors.Is(err, ErrCacheMiss) {
		log.Printf("cache: get %s failed: %v", key, err)
	}
	out, err = fetch()
	if err != nil {
		return out, err
	}
	data, err = sonic.Marshal(out)
	if err != nil {
		log.Printf("cache: failed to encode %s: %v", key, err)
		return out, nil
	}
	if err = c.Store.Set(ctx, key, data, c.TTL); err != nil {
		log.Printf("cache: set %s failed: %v", key, err)
	} else {
		c.keys.Store(key, struct{}{})
	}
	return out, nil
}

func (c *CachedSource) FetchItems(ctx context.Context, limit int) ([]types.CatalogItem, error) {
	limit = ClampLimit(limit)
	return cached(ctx, c, c.key("items:", limit), func() ([]types.CatalogItem, error) {
		return c.Source.FetchItems(ctx, limit)
	})
}

func (c *CachedSource) FetchNames(ctx context.Context, dim types.Dimension) ([]types.NameEntry, error) {
	return cached(ctx, c, c.key("names:", dim), func() ([]types.NameEntry, error) {
		return c.Source.FetchNames(ctx, dim)
	})
}

func (c *CachedSource) FetchPriceBands(ctx context.Context) ([]types.Band, error) {
	return cached(ctx, c, c.key("bands"), func() ([]types.Band, error) {
		return c.Source.FetchPriceBands(ctx)
	})
}

// Invalidate drops every key this cache has written.
func (c *CachedSource) Invalidate(ctx context.Context) error {
	keys := make([]string, 0)
	c.keys.Range(func(k, _ any) bool {
		keys = append(keys, k.(string))
		c.keys.Delete(k)
		return true
	})
	return c.Store.Delete(ctx, keys...)
}
