package service

import (
	"net/url"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"

	"go.uber.org/zap"
)

// PageContext 页面导航上下文
type PageContext struct {
	QueryProduct string
	PathSegment  string
}

// PageContextFromURL 从地址中提取 ?product= 与 /product/<seg>
func PageContextFromURL(u *url.URL) PageContext {
	if u == nil {
		return PageContext{}
	}
	return PageContext{
		QueryProduct: u.Query().Get(constants.ProductQueryParam),
		PathSegment:  productPathSegment(u.Path),
	}
}

func productPathSegment(path string) string {
	idx := strings.Index(path, constants.ProductPathPrefix)
	if idx < 0 {
		return ""
	}
	rest := path[idx+len(constants.ProductPathPrefix):]
	if cut := strings.IndexByte(rest, '/'); cut >= 0 {
		rest = rest[:cut]
	}
	return rest
}

// Token 按 query → path → 默认值 选择首个非空标识
func (c PageContext) Token(fallback string) string {
	if c.QueryProduct != "" {
		return c.QueryProduct
	}
	if c.PathSegment != "" {
		return c.PathSegment
	}
	if fallback == "" {
		return constants.DefaultProductToken
	}
	return fallback
}

// ProductResolver 当前商品解析
type ProductResolver struct {
	catalog      *CatalogService
	defaultToken string
	log          *zap.SugaredLogger
}

// NewProductResolver 创建解析器
func NewProductResolver(catalog *CatalogService, defaultToken string, log *zap.SugaredLogger) *ProductResolver {
	if strings.TrimSpace(defaultToken) == "" {
		defaultToken = constants.DefaultProductToken
	}
	return &ProductResolver{
		catalog:      catalog,
		defaultToken: defaultToken,
		log:          logger.OrDefault(log, "resolver"),
	}
}

// ResolveCurrent 解析当前商品；找不到时回退到第一个商品，仅在目录不可用时返回错误。
// 返回值是独立副本，调用方修改不会影响目录。
func (r *ProductResolver) ResolveCurrent(pc PageContext) (*models.Product, error) {
	if r.catalog == nil || !r.catalog.Loaded() {
		return nil, ErrCatalogUnavailable
	}
	first := r.catalog.Catalog().FirstProduct()
	if first == nil {
		return nil, ErrCatalogUnavailable
	}

	token := pc.Token(r.defaultToken)
	product, err := r.Resolve(token)
	if err != nil {
		r.log.Warnw("resolver_fallback_first_product", "token", token, "fallback", first.ID)
		return first.Clone(), nil
	}
	return product, nil
}

// Resolve 按标识精确解析，样品与父商品合并；找不到时返回 ErrProductNotFound
func (r *ProductResolver) Resolve(token string) (*models.Product, error) {
	if r.catalog == nil || !r.catalog.Loaded() {
		return nil, ErrCatalogUnavailable
	}
	found, ok := r.catalog.FindBySlugOrID(token)
	if !ok {
		return nil, ErrProductNotFound
	}
	if found.Kind == models.KindSample && found.ParentProductID != "" {
		if parent, ok := r.catalog.ProductByID(found.ParentProductID); ok {
			return models.MergeSample(parent, found), nil
		}
		r.log.Debugw("resolver_sample_parent_missing", "sample", found.ID, "parent", found.ParentProductID)
	}
	return found.Clone(), nil
}
