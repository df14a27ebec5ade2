package service

import (
	"context"
	"time"
)

// Cache 业务侧的读穿缓存抽象，由 pkg/redis 实现。
// 缓存只负责加速读取，不参与正确性保证，任何方法失败都可以降级为直接查库。
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	SAdd(ctx context.Context, key string, member string) error
}
