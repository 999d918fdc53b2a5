//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/dujiao-next/storefront/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}
	_ = db.Migrator().DropTable(&models.KVEntry{})
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres kv entries failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(&models.KVEntry{})
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestPostgresIntegrationKVRepository(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	exerciseKVRepository(t, NewGormKVRepository(db))
}

func TestRedisIntegrationKVRepository(t *testing.T) {
	addr := strings.TrimSpace(os.Getenv("TEST_REDIS_ADDR"))
	if addr == "" {
		t.Skip("skip redis integration test: TEST_REDIS_ADDR is empty")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	exerciseKVRepository(t, NewRedisKVRepository(client, "sf-test"))
}
