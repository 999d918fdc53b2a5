package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dujiao-next/storefront/internal/config"
)

const maxCatalogBytes = 16 << 20

// CatalogSource 目录原始字节来源
type CatalogSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// FileSource 本地文件目录
type FileSource struct {
	Path string
}

// Fetch 读取文件
func (s FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := strings.TrimSpace(s.Path)
	if path == "" {
		return nil, fmt.Errorf("%w: empty catalog path", ErrCatalogSourceInvalid)
	}
	return os.ReadFile(path)
}

// HTTPSource 远程目录
type HTTPSource struct {
	URL     string
	Timeout time.Duration
	Client  *http.Client
}

// Fetch 拉取远程目录，非 2xx 视为失败
func (s HTTPSource) Fetch(ctx context.Context) ([]byte, error) {
	target := strings.TrimSpace(s.URL)
	if target == "" {
		return nil, fmt.Errorf("%w: empty catalog url", ErrCatalogSourceInvalid)
	}
	client := s.Client
	if client == nil {
		client = &http.Client{Timeout: s.Timeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("catalog request returned status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
}

// NewCatalogSource 按配置创建目录来源
func NewCatalogSource(cfg config.CatalogConfig) (CatalogSource, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source)) {
	case "", "file":
		return FileSource{Path: cfg.Path}, nil
	case "http", "https":
		return HTTPSource{URL: cfg.URL, Timeout: cfg.Timeout()}, nil
	default:
		return nil, fmt.Errorf("%w: unsupported source %q", ErrCatalogSourceInvalid, cfg.Source)
	}
}
