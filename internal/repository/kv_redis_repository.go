package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dujiao-next/storefront/internal/cache"

	"github.com/redis/go-redis/v9"
)

// RedisKVRepository Redis 实现
type RedisKVRepository struct {
	client *redis.Client
	prefix string
}

// NewRedisKVRepository 创建 Redis 键值仓库
func NewRedisKVRepository(client *redis.Client, prefix string) *RedisKVRepository {
	return &RedisKVRepository{client: client, prefix: prefix}
}

// Get 读取键值
func (r *RedisKVRepository) Get(ctx context.Context, key string) (string, error) {
	if r.client == nil {
		return "", fmt.Errorf("redis client not initialized")
	}
	val, err := r.client.Get(ctx, cache.BuildKey(r.prefix, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set 写入键值，不设置过期时间
func (r *RedisKVRepository) Set(ctx context.Context, key, value string) error {
	if r.client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return r.client.Set(ctx, cache.BuildKey(r.prefix, key), value, 0).Err()
}

// Delete 删除键值
func (r *RedisKVRepository) Delete(ctx context.Context, key string) error {
	if r.client == nil {
		return fmt.Errorf("redis client not initialized")
	}
	return r.client.Del(ctx, cache.BuildKey(r.prefix, key)).Err()
}
