package redis

import (
	"context"
	"time"
)

// Cache 提供给 service 层的读穿缓存适配器，满足 service.Cache
type Cache struct{}

func NewCache() *Cache {
	return &Cache{}
}

func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	return GetValue(ctx, key)
}

func (c *Cache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	return SetWithExpiration(ctx, key, value, expiration)
}

func (c *Cache) Delete(ctx context.Context, key string) error {
	return DeleteKey(ctx, key)
}

func (c *Cache) SAdd(ctx context.Context, key string, member string) error {
	return SAdd(ctx, key, member)
}
