package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = errors.New("kv key not found")

// KVRepository 客户端持久化键值存储接口
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// MemoryKVRepository 进程内实现（测试与无持久化场景）
type MemoryKVRepository struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKVRepository 创建内存键值存储
func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{items: make(map[string]string)}
}

// Get 读取键值
func (r *MemoryKVRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	value, ok := r.items[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return value, nil
}

// Set 写入键值
func (r *MemoryKVRepository) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[key] = value
	return nil
}

// Delete 删除键值
func (r *MemoryKVRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, key)
	return nil
}
