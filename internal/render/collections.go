package render

import (
	"sort"
	"strings"

	"github.com/dujiao-next/storefront/internal/models"
)

// SortBySorting 按 sorting 升序稳定排序（缺省视为 999），返回新切片
func SortBySorting(items []models.Product) []models.Product {
	out := append([]models.Product(nil), items...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortKey() < out[j].SortKey()
	})
	return out
}

// FilterMainProducts 主商品分类且非样品规格
func FilterMainProducts(products []models.Product, category, sampleMarker string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category && !p.IsSampleVariant(sampleMarker) {
			out = append(out, p)
		}
	}
	return out
}

// HomeProducts 首页轮播：主商品分类排序后取前 limit 个
func HomeProducts(products []models.Product, category string, limit int) []models.Product {
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			filtered = append(filtered, p)
		}
	}
	sorted := SortBySorting(filtered)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// MainAccessories 精选配件（按白名单过滤后排序）
func MainAccessories(accessories []models.Product, allow []string) []models.Product {
	allowed := make(map[string]struct{}, len(allow))
	for _, id := range allow {
		allowed[id] = struct{}{}
	}
	out := make([]models.Product, 0, len(allow))
	for _, a := range accessories {
		if _, ok := allowed[a.ID]; ok {
			out = append(out, a)
		}
	}
	return SortBySorting(out)
}

// PageAccessories 配件页：配件分类下全部条目
func PageAccessories(accessories []models.Product, category string) []models.Product {
	out := make([]models.Product, 0, len(accessories))
	for _, a := range accessories {
		if a.Category == category {
			out = append(out, a)
		}
	}
	return SortBySorting(out)
}

// GalleryImage 画廊图片
type GalleryImage struct {
	URL       string
	Alt       string
	Synthetic bool
}

// OrderGallery 按 sort_order 排序，主图不在列表中时插到最前，跳过无地址的图片
func OrderGallery(p *models.Product) []GalleryImage {
	if p == nil {
		return nil
	}
	images := append([]models.ProductImage(nil), p.Images...)
	sort.SliceStable(images, func(i, j int) bool {
		return images[i].SortOrder < images[j].SortOrder
	})

	out := make([]GalleryImage, 0, len(images)+1)
	if p.MainImage != "" && !containsImage(images, p.MainImage) {
		out = append(out, GalleryImage{URL: p.MainImage, Alt: p.Name, Synthetic: true})
	}
	for _, img := range images {
		if strings.TrimSpace(img.URL) == "" {
			continue
		}
		out = append(out, GalleryImage{URL: img.URL, Alt: p.Name + " - " + img.Type})
	}
	return out
}

func containsImage(images []models.ProductImage, url string) bool {
	for _, img := range images {
		if img.URL == url {
			return true
		}
	}
	return false
}

// FindProductLink 按名称或 ID（忽略大小写）查找营销链接目标
func FindProductLink(products []models.Product, token string) *models.Product {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	for i := range products {
		if strings.EqualFold(products[i].Name, token) || strings.EqualFold(products[i].ID, token) {
			return &products[i]
		}
	}
	return nil
}
