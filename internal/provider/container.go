package provider

import (
	"context"
	"errors"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/repository"
	"github.com/dujiao-next/storefront/internal/service"
)

// Container 本地宿主的依赖容器
type Container struct {
	Config *config.Config

	// Storage
	KVRepo repository.KVRepository

	// Catalog
	CatalogSource  service.CatalogSource
	CatalogService *service.CatalogService

	closers []func() error
}

// NewContainer 初始化容器：目录来源与购物车存储
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	// 初始化缓存（redis 存储驱动会单独初始化）
	if cfg.Storage.Driver != DriverRedis {
		if err := cache.InitRedis(&cfg.Redis); err != nil {
			logger.Warnw("provider_init_redis_failed", "error", err)
		}
	}

	source, err := service.NewCatalogSource(cfg.Catalog)
	if err != nil {
		return nil, err
	}

	kv, closer, err := NewKVRepository(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config:         cfg,
		KVRepo:         kv,
		CatalogSource:  source,
		CatalogService: service.NewCatalogService(logger.Component("catalog")),
		closers:        []func() error{closer},
	}
	return c, nil
}

// LoadCatalog 拉取并加载目录
func (c *Container) LoadCatalog(ctx context.Context) error {
	if c == nil || c.CatalogService == nil {
		return errors.New("container not initialized")
	}
	_, err := c.CatalogService.LoadFrom(ctx, c.CatalogSource)
	return err
}

// Close 释放存储连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	for _, closer := range c.closers {
		if closer == nil {
			continue
		}
		if err := closer(); err != nil {
			errs = append(errs, err)
		}
	}
	if cache.Enabled() {
		if err := cache.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
