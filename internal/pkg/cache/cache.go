package cache

import (
	"context"
	"fmt"
	"time"
)

// 缓存通用接口
type Cache interface {
	// Set在缓存中设置一个值，并指定过期时间。
	// value应该是一个可以被JSON封送的结构体或指向结构体的指针。
	Set(ctx context.Context, key string, value any, expiration time.Duration) error

	// Get从缓存中检索一个值，并将其解编组到目标接口。
	// target应该是一个指针。未命中时返回 ErrCacheMiss。
	Get(ctx context.Context, key string, target any) error

	// 删除一个或多个key
	Del(ctx context.Context, keys ...string) error

	// 检查key是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// Incr 自增计数器，返回自增后的值，用于限流
	Incr(ctx context.Context, key string) (int64, error)

	Expire(ctx context.Context, key string, expiration time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// GeneratePhotoURLKey 照片预签名URL的缓存key
func GeneratePhotoURLKey(photoID uint64) string {
	return fmt.Sprintf("photo:url:%d", photoID)
}

// GenerateValidateRateKey 分享校验限流计数器的key，按客户端IP区分
func GenerateValidateRateKey(clientIP string) string {
	return fmt.Sprintf("share:validate:rate:%s", clientIP)
}
