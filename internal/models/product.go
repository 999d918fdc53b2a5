package models

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
)

// RecordKind 目录记录类型
type RecordKind int

const (
	KindProduct RecordKind = iota
	KindSample
	KindAccessory
)

// String 返回记录类型名称
func (k RecordKind) String() string {
	switch k {
	case KindSample:
		return "sample"
	case KindAccessory:
		return "accessory"
	default:
		return "product"
	}
}

// Identity 商品身份（productId + variantId）
type Identity struct {
	ProductID string
	VariantID string
}

// Valid 两个字段都非空时身份有效
func (i Identity) Valid() bool {
	return strings.TrimSpace(i.ProductID) != "" && strings.TrimSpace(i.VariantID) != ""
}

// ProductImage 商品图片
type ProductImage struct {
	URL       string `json:"url"`        // 图片地址
	SortOrder int    `json:"sort_order"` // 排序（缺省为 0）
	Type      string `json:"type"`       // 图片类型（panel/installation/stone/closeup）
}

// Product 目录记录（商品、样品、配件共用结构）
type Product struct {
	Kind                 RecordKind     `json:"-"`                      // 记录类型
	ID                   string         `json:"id"`                     // 目录 ID
	Slug                 string         `json:"slug"`                   // 唯一标识
	Handle               string         `json:"handle"`                 // 备用标识
	ProductID            string         `json:"productId"`              // 商品 ID
	VariantID            string         `json:"variantId"`              // 规格 ID
	Name                 string         `json:"name"`                   // 名称
	Price                string         `json:"price"`                  // 展示价格（预格式化）
	PriceValue           Money          `json:"priceValue"`             // 数值价格
	Currency             string         `json:"currency"`               // 币种
	Dimensions           string         `json:"dimensions"`             // 尺寸描述
	Size                 string         `json:"size"`                   // 备用尺寸描述
	AltText              string         `json:"alt_text"`               // 备用描述
	MainImage            string         `json:"mainImage"`              // 主图
	HoverImage           string         `json:"hover_image"`            // 悬停图
	SelectionSliderImage string         `json:"selection_slider_image"` // 选择器缩略图
	Images               []ProductImage `json:"images"`                 // 图片列表
	Category             string         `json:"category"`               // 分类
	Sorting              *int           `json:"sorting"`                // 排序权重（缺省 999）
	Description          string         `json:"description"`            // 描述
	SpecialFieldText     string         `json:"special_field_text"`     // 营销主文案
	SpecialFieldSlogan   string         `json:"special_field_slogan"`   // 营销标语
	ParentProductID      string         `json:"parent_product_id"`      // 样品所属父商品
	Color                string         `json:"color"`                  // 背景色
	ButtonHeaderColor    string         `json:"button_header_color"`    // 按钮/标题色

	present map[string]struct{} // 解码时出现过的字段
	coerced []string
}

// Identity 返回记录身份
func (p *Product) Identity() Identity {
	return Identity{ProductID: p.ProductID, VariantID: p.VariantID}
}

// SortKey 排序键，缺省或 0 视为 999
func (p *Product) SortKey() int {
	if p.Sorting == nil || *p.Sorting == 0 {
		return constants.SortingSentinel
	}
	return *p.Sorting
}

// IsSampleVariant 样品记录或 ID 含样品标记时视为样品规格
func (p *Product) IsSampleVariant(marker string) bool {
	if p.Kind == KindSample {
		return true
	}
	if marker == "" {
		marker = constants.SampleIDMarker
	}
	return strings.Contains(p.ID, marker)
}

// MatchesToken 按 slug、handle、id 匹配
func (p *Product) MatchesToken(token string) bool {
	if token == "" {
		return false
	}
	return p.Slug == token || p.Handle == token || p.ID == token
}

// Clone 返回记录的独立副本
func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	out := *p
	if p.Images != nil {
		out.Images = append([]ProductImage(nil), p.Images...)
	}
	if p.Sorting != nil {
		sorting := *p.Sorting
		out.Sorting = &sorting
	}
	return &out
}

// MergeSample 将样品字段覆盖到父商品副本上，父商品不会被修改
// 从目录解码的样品按字段是否出现覆盖（显式空值同样生效），代码构造的样品只覆盖非零字段。
func MergeSample(parent, sample *Product) *Product {
	if sample == nil {
		return parent.Clone()
	}
	if parent == nil {
		return sample.Clone()
	}
	out := parent.Clone()
	out.Kind = KindSample
	out.present = nil
	out.coerced = nil

	str := func(dst *string, key, value string) {
		if sample.has(key, value != "") {
			*dst = value
		}
	}
	str(&out.ID, "id", sample.ID)
	str(&out.Slug, "slug", sample.Slug)
	str(&out.Handle, "handle", sample.Handle)
	str(&out.ProductID, "productId", sample.ProductID)
	str(&out.VariantID, "variantId", sample.VariantID)
	str(&out.Name, "name", sample.Name)
	str(&out.Price, "price", sample.Price)
	if sample.has("priceValue", !sample.PriceValue.IsZero()) {
		out.PriceValue = sample.PriceValue
	}
	str(&out.Currency, "currency", sample.Currency)
	str(&out.Dimensions, "dimensions", sample.Dimensions)
	str(&out.Size, "size", sample.Size)
	str(&out.AltText, "alt_text", sample.AltText)
	str(&out.MainImage, "mainImage", sample.MainImage)
	str(&out.HoverImage, "hover_image", sample.HoverImage)
	str(&out.SelectionSliderImage, "selection_slider_image", sample.SelectionSliderImage)
	if sample.has("images", sample.Images != nil) {
		out.Images = append([]ProductImage(nil), sample.Images...)
	}
	str(&out.Category, "category", sample.Category)
	if sample.has("sorting", sample.Sorting != nil) {
		out.Sorting = nil
		if sample.Sorting != nil {
			sorting := *sample.Sorting
			out.Sorting = &sorting
		}
	}
	str(&out.Description, "description", sample.Description)
	str(&out.SpecialFieldText, "special_field_text", sample.SpecialFieldText)
	str(&out.SpecialFieldSlogan, "special_field_slogan", sample.SpecialFieldSlogan)
	str(&out.ParentProductID, "parent_product_id", sample.ParentProductID)
	str(&out.Color, "color", sample.Color)
	str(&out.ButtonHeaderColor, "button_header_color", sample.ButtonHeaderColor)
	return out
}
