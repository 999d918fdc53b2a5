package router

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"

	"github.com/gin-gonic/gin"
)

// ShellHandler 静态页面外壳服务
// 目录请求回落到首页文件，/product/<slug> 美化地址回落到商品详情页。
func ShellHandler(dir, indexFile, detailPage string) gin.HandlerFunc {
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if strings.TrimSpace(indexFile) == "" {
		indexFile = "index.html"
	}
	if strings.TrimSpace(detailPage) == "" {
		detailPage = constants.ProductDetailPage
	}
	root := http.Dir(dir)

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}
		name := resolveShellPath(c.Request.URL.Path, indexFile, detailPage)
		if !serveShellFile(c, root, name, indexFile) {
			c.String(http.StatusNotFound, "404 page not found")
		}
	}
}

func resolveShellPath(requestPath, indexFile, detailPage string) string {
	if strings.HasPrefix(requestPath, constants.ProductPathPrefix) {
		return "/" + strings.TrimPrefix(detailPage, "/")
	}
	name := path.Clean("/" + requestPath)
	if strings.HasSuffix(requestPath, "/") {
		name = path.Join(name, indexFile)
	}
	return name
}

func serveShellFile(c *gin.Context, root http.FileSystem, name, indexFile string) bool {
	file, err := root.Open(name)
	if err != nil {
		if !isNotExist(err) {
			logger.Warnw("shell_file_open_failed", "path", name, "error", err)
		}
		return false
	}
	defer file.Close()
	stat, err := file.Stat()
	if err != nil {
		return false
	}
	if stat.IsDir() {
		if path.Base(name) == indexFile {
			return false
		}
		return serveShellFile(c, root, path.Join(name, indexFile), indexFile)
	}
	http.ServeContent(c.Writer, c.Request, stat.Name(), stat.ModTime(), file)
	return true
}

// isNotExist 兼容 http.Dir 返回的错误
func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
