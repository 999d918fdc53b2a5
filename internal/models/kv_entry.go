package models

import "time"

// KVEntry 持久化键值记录（购物车等客户端状态）
type KVEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;type:varchar(191)" json:"key"` // 键
	Value     string    `gorm:"type:text;not null" json:"value"`                          // 序列化后的值
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`                                  // 更新时间
}

// TableName 指定表名
func (KVEntry) TableName() string {
	return "kv_entries"
}
