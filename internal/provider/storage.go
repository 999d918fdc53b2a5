package provider

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/repository"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 存储驱动
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

// OpenDB 打开键值存储所用的数据库连接
func OpenDB(driver, dsn string, pool config.StoragePoolConfig) (*gorm.DB, error) {
	normalized := strings.ToLower(strings.TrimSpace(driver))
	var dialector gorm.Dialector
	switch normalized {
	case "", DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres, "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	applyDBPool(sqlDB, pool)
	return db, nil
}

func applyDBPool(sqlDB *sql.DB, pool config.StoragePoolConfig) {
	if sqlDB == nil {
		return
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}

// NewKVRepository 按存储驱动创建购物车键值仓库，返回值附带关闭函数
func NewKVRepository(cfg *config.Config) (repository.KVRepository, func() error, error) {
	noop := func() error { return nil }
	if cfg == nil {
		return repository.NewMemoryKVRepository(), noop, nil
	}
	switch cfg.Storage.Driver {
	case "", DriverMemory:
		return repository.NewMemoryKVRepository(), noop, nil
	case DriverSQLite, DriverPostgres, "postgresql":
		db, err := OpenDB(cfg.Storage.Driver, cfg.Storage.DSN, cfg.Storage.Pool)
		if err != nil {
			return nil, noop, fmt.Errorf("open kv database: %w", err)
		}
		if err := models.AutoMigrate(db); err != nil {
			return nil, noop, fmt.Errorf("migrate kv database: %w", err)
		}
		closer := func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return repository.NewGormKVRepository(db), closer, nil
	case DriverRedis:
		redisCfg := cfg.Redis
		redisCfg.Enabled = true
		if err := cache.InitRedis(&redisCfg); err != nil {
			return nil, noop, fmt.Errorf("init redis: %w", err)
		}
		return repository.NewRedisKVRepository(cache.Client(), cache.Prefix()), cache.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
