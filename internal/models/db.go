package models

import (
	"fmt"

	"gorm.io/gorm"
)

// AutoMigrate 自动迁移键值存储表
func AutoMigrate(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database not initialized")
	}
	return db.AutoMigrate(&KVEntry{})
}
