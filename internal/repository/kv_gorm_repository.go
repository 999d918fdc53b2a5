package repository

import (
	"context"
	"errors"
	"time"

	"github.com/dujiao-next/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKVRepository GORM 实现（sqlite / postgres）
type GormKVRepository struct {
	db *gorm.DB
}

// NewGormKVRepository 创建键值仓库
func NewGormKVRepository(db *gorm.DB) *GormKVRepository {
	return &GormKVRepository{db: db}
}

// WithTx 绑定事务
func (r *GormKVRepository) WithTx(tx *gorm.DB) *GormKVRepository {
	if tx == nil {
		return r
	}
	return &GormKVRepository{db: tx}
}

// Get 读取键值
func (r *GormKVRepository) Get(ctx context.Context, key string) (string, error) {
	var entry models.KVEntry
	err := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

// Set 写入键值（存在则覆盖）
func (r *GormKVRepository) Set(ctx context.Context, key, value string) error {
	entry := models.KVEntry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entry_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

// Delete 删除键值
func (r *GormKVRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("entry_key = ?", key).Delete(&models.KVEntry{}).Error
}
