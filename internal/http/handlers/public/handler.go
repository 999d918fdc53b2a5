package public

import "github.com/dujiao-next/storefront/internal/provider"

// Handler 静态宿主公开接口处理器入口
// 说明：仅提供目录下发、商品查询与健康检查，购物车状态只存在于浏览器。
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
