package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/provider"
	"github.com/dujiao-next/storefront/internal/router"
)

// BuildRunner 构建服务运行器
func BuildRunner(cfg *config.Config, mode string) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	container, err := provider.NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("init container: %w", err)
	}

	// 预热目录：失败只告警，目录路由会在下次请求时重试
	if err := container.LoadCatalog(context.Background()); err != nil {
		logger.Warnw("app_catalog_preload_failed", "error", err)
	}

	var services []Service

	// 初始化 HTTP 服务
	if mode == ModeAll || mode == ModeAPI {
		engine := router.SetupRouter(cfg, container)
		services = append(services, NewHTTPService(cfg, engine, logger.Component("http")))
	}

	// 初始化目录定时刷新
	if mode == ModeAll || mode == ModeRefresh {
		if interval := cfg.Catalog.RefreshInterval(); interval > 0 {
			services = append(services, NewCatalogRefreshService(container, interval, logger.Component("catalog_refresh")))
		}
	}

	if len(services) == 0 {
		_ = container.Close()
		return nil, errors.New("no services initialized (check mode and config)")
	}

	return NewRunner(services...).WithCleanup(container.Close), nil
}

// Run 应用启动入口
func Run(opts Options) error {
	opts = normalizeOptions(opts)
	if opts.Config == nil {
		return errors.New("config is nil")
	}

	runner, err := BuildRunner(opts.Config, opts.Mode)
	if err != nil {
		return err
	}

	opts.Logger.Infow("app_start", "mode", opts.Mode, "storage", opts.Config.Storage.Driver)
	return RunWithOptions(runner, opts)
}
