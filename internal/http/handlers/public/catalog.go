package public

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dujiao-next/storefront/internal/cache"
	"github.com/dujiao-next/storefront/internal/http/response"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"
	"github.com/dujiao-next/storefront/internal/render"
	"github.com/dujiao-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/blake2b"
)

const catalogContentType = "application/json; charset=utf-8"

// ProductView 商品查询响应结构
type ProductView struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Kind       string `json:"kind"`
	ProductID  string `json:"product_id"`
	VariantID  string `json:"variant_id"`
	Name       string `json:"name"`
	Price      string `json:"price"`
	Dimensions string `json:"dimensions"`
	MainImage  string `json:"main_image"`
	URL        string `json:"url"`
}

// GetCatalog 下发目录文档，每次请求都重新拉取并校验，校验失败不下发
func (h *Handler) GetCatalog(c *gin.Context) {
	raw, err := h.CatalogSource.Fetch(c.Request.Context())
	if err != nil {
		respondCatalogError(c, &service.CatalogLoadError{Stage: service.CatalogStageFetch, Err: err})
		return
	}
	if _, err := h.CatalogService.Load(raw); err != nil {
		respondCatalogError(c, err)
		return
	}

	etag := CatalogETag(raw)
	c.Header("ETag", etag)
	if maxAge := h.Config.Catalog.CacheMaxAgeSeconds; maxAge > 0 {
		c.Header("Cache-Control", "public, max-age="+strconv.Itoa(maxAge))
	} else {
		c.Header("Cache-Control", "no-cache")
	}
	if ETagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, catalogContentType, raw)
}

// GetProduct 按 slug / handle / id 查询商品（样品会合并父商品字段）
func (h *Handler) GetProduct(c *gin.Context) {
	token := strings.TrimSpace(c.Param("token"))
	if token == "" {
		response.BadRequest(c, "product token required")
		return
	}
	resolver := service.NewProductResolver(h.CatalogService, h.Config.Catalog.DefaultToken, logger.Component("resolver"))
	product, err := resolver.Resolve(token)
	if err != nil {
		respondCatalogError(c, err)
		return
	}
	response.Success(c, h.productView(product))
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	products := 0
	if catalog := h.CatalogService.Catalog(); catalog != nil {
		products = len(catalog.Products)
	}
	response.Success(c, gin.H{
		"catalog_loaded": h.CatalogService.Loaded(),
		"products":       products,
		"storage":        h.Config.Storage.Driver,
		"redis":          cache.Enabled(),
	})
}

func (h *Handler) productView(p *models.Product) ProductView {
	return ProductView{
		ID:         p.ID,
		Slug:       p.Slug,
		Kind:       p.Kind.String(),
		ProductID:  p.ProductID,
		VariantID:  p.VariantID,
		Name:       p.Name,
		Price:      render.PriceText(p),
		Dimensions: firstNonEmpty(p.Dimensions, p.Size),
		MainImage:  p.MainImage,
		URL:        render.ProductURL(h.Config.Catalog.DetailPage, firstNonEmpty(p.Slug, p.ID)),
	}
}

// CatalogETag 目录内容的强校验标签
func CatalogETag(raw []byte) string {
	sum := blake2b.Sum256(raw)
	return fmt.Sprintf(`"%x"`, sum[:16])
}

// ETagMatches 判断 If-None-Match 是否命中（支持列表、弱标签与 *）
func ETagMatches(header, etag string) bool {
	header = strings.TrimSpace(header)
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" {
			return true
		}
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == etag {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
