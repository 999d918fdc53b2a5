package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dujiao-next/storefront/internal/config"
	"github.com/dujiao-next/storefront/internal/logger"

	"go.uber.org/zap"
)

const httpReadHeaderTimeout = 10 * time.Second

// HTTPService 静态宿主 HTTP 服务：页面外壳、目录文档与商品查询
type HTTPService struct {
	server       *http.Server
	catalogRoute string
	shellDir     string
	log          *zap.SugaredLogger
}

// NewHTTPService 按配置创建 HTTP 服务
func NewHTTPService(cfg *config.Config, handler http.Handler, log *zap.SugaredLogger) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: httpReadHeaderTimeout,
		},
		catalogRoute: cfg.Catalog.Route,
		shellDir:     cfg.Shell.Dir,
		log:          logger.OrDefault(log, "http"),
	}
}

// Name 服务名称
func (s *HTTPService) Name() string {
	return "storefront_http"
}

// Addr 监听地址
func (s *HTTPService) Addr() string {
	if s == nil || s.server == nil {
		return ""
	}
	return s.server.Addr
}

// Start 阻塞监听，Stop 后正常返回
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("http server not initialized")
	}
	s.log.Infow("http_listen",
		"addr", s.server.Addr,
		"catalog_route", s.catalogRoute,
		"shell_dir", s.shellDir,
	)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 优雅关闭
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
