package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/redis/go-redis/v9"

	"github.com/hiraeth-dev/entities/internal/domain"
	"github.com/hiraeth-dev/entities/internal/usecase"
)

// KVCache is the minimal surface the account cache needs from a backend.
type KVCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

// RedisCache backs KVCache with a redis client.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte) {
	c.rdb.Set(ctx, key, value, c.ttl)
}

// MemcachedCache backs KVCache with a memcached client.
type MemcachedCache struct {
	mc  *memcache.Client
	ttl time.Duration
}

func NewMemcachedCache(mc *memcache.Client, ttl time.Duration) *MemcachedCache {
	return &MemcachedCache{mc: mc, ttl: ttl}
}

func (c *MemcachedCache) Get(ctx context.Context, key string) ([]byte, bool) {
	item, err := c.mc.Get(key)
	if err != nil {
		return nil, false
	}
	return item.Value, true
}

func (c *MemcachedCache) Set(ctx context.Context, key string, value []byte) {
	c.mc.Set(&memcache.Item{Key: key, Value: value, Expiration: int32(c.ttl / time.Second)})
}

// CachedAccounts is a read-through cache over an AccountsGateway for the two
// hot lookups. Cache failures fall through to the inner gateway; entries age
// out on TTL, there is no explicit invalidation.
type CachedAccounts struct {
	usecase.AccountsGateway
	cache KVCache
}

func NewCachedAccounts(inner usecase.AccountsGateway, cache KVCache) *CachedAccounts {
	return &CachedAccounts{AccountsGateway: inner, cache: cache}
}

func (r *CachedAccounts) GetFromID(ctx context.Context, id string) (domain.Account, error) {
	return r.lookup(ctx, "entities:account:id:"+id, func() (domain.Account, error) {
		return r.AccountsGateway.GetFromID(ctx, id)
	})
}

func (r *CachedAccounts) GetFromLocalUserID(ctx context.Context, userID string) (domain.Account, error) {
	return r.lookup(ctx, "entities:account:user:"+userID, func() (domain.Account, error) {
		return r.AccountsGateway.GetFromLocalUserID(ctx, userID)
	})
}

func (r *CachedAccounts) lookup(ctx context.Context, key string, fetch func() (domain.Account, error)) (domain.Account, error) {
	if raw, ok := r.cache.Get(ctx, key); ok {
		var account domain.Account
		if err := json.Unmarshal(raw, &account); err == nil {
			return account, nil
		}
	}

	account, err := fetch()
	if err != nil {
		return domain.Account{}, err
	}

	if raw, err := json.Marshal(account); err == nil {
		r.cache.Set(ctx, key, raw)
	}
	return account, nil
}
