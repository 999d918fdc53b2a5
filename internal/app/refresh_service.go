package app

import (
	"context"
	"errors"
	"time"

	"github.com/dujiao-next/storefront/internal/logger"

	"go.uber.org/zap"
)

// CatalogLoader 可重新加载目录的依赖
type CatalogLoader interface {
	LoadCatalog(ctx context.Context) error
}

// CatalogRefreshService 按固定间隔重新拉取并校验目录
// 校验失败时保留上一份有效目录。
type CatalogRefreshService struct {
	loader   CatalogLoader
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewCatalogRefreshService 创建目录刷新服务
func NewCatalogRefreshService(loader CatalogLoader, interval time.Duration, log *zap.SugaredLogger) *CatalogRefreshService {
	return &CatalogRefreshService{
		loader:   loader,
		interval: interval,
		log:      logger.OrDefault(log, "catalog_refresh"),
	}
}

// Name 服务名称
func (s *CatalogRefreshService) Name() string {
	return "catalog_refresh"
}

// Start 阻塞运行直到 ctx 结束
func (s *CatalogRefreshService) Start(ctx context.Context) error {
	if s == nil || s.loader == nil {
		return errors.New("catalog refresh not initialized")
	}
	if s.interval <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogRefreshService) refresh(ctx context.Context) {
	start := time.Now()
	if err := s.loader.LoadCatalog(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		s.log.Warnw("catalog_refresh_failed", "error", err)
		return
	}
	s.log.Debugw("catalog_refreshed", "latency_ms", time.Since(start).Milliseconds())
}

// Stop 停止服务（随 ctx 退出）
func (s *CatalogRefreshService) Stop(context.Context) error {
	return nil
}
