package render

import "golang.org/x/net/html"

// 逻辑插槽名称，由页面外壳映射到具体节点
const (
	SlotProductName        = "product-name"
	SlotProductPrice       = "product-price"
	SlotVariantLabel       = "variant-label"
	SlotProductDescription = "product-description"
	SlotProductDimensions  = "product-dimensions"
	SlotProductColor       = "product-color"
	SlotProductAccent      = "product-accent"
	SlotGallery            = "gallery"
	SlotVariantSelector    = "variant-selector"
	SlotProductSelector    = "product-selector"
	SlotMainAccessories    = "main-accessories"
	SlotAccessoriesSection = "accessories-section"
	SlotAddToCartForm      = "add-to-cart-form"
	SlotHomeSlider         = "home-slider"
	SlotAccessoriesPage    = "accessories-page"
	SlotHeroHeading        = "hero-heading"
	SlotHealthSlogan       = "health-slogan"
	SlotFeatureSlogan      = "feature-slogan"
	SlotShoutOutSlogan     = "shout-out-slogan"
	SlotProductLink        = "product-link"
	SlotCartList           = "cart-list"
	SlotCartListAlt        = "cart-list-alt"
	SlotCartEmpty          = "cart-empty"
	SlotCartForm           = "cart-form"
	SlotCartTotal          = "cart-total"
	SlotCartTotalAlt       = "cart-total-alt"
	SlotCartBadge          = "cart-badge"
	SlotCartContainer      = "cart-container"
	SlotCartOpenLink       = "cart-open-link"
)

// AttrProductLink 营销链接上声明目标商品的属性
const AttrProductLink = "product-link"

// Container 插槽中的一个候选容器
type Container interface {
	Tag() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	SetText(text string)
	// SetStyle 设置内联样式，value 为空时移除该属性
	SetStyle(property, value string)
	// Replace 清空子节点后整体替换
	Replace(nodes []*html.Node)
	Hide()
	Show()
}

// Clicker 可触发点击的容器
type Clicker interface {
	Click()
}

// Document 页面外壳
type Document interface {
	// Slot 返回插槽的全部候选容器（文档顺序）
	Slot(name string) []Container
	// EmptyStates 返回插槽内的空数据占位节点
	EmptyStates(name string) []Container
}

// WidgetRefresher 轮播组件刷新钩子
type WidgetRefresher interface {
	Refresh(c Container) error
}

func firstContainer(doc Document, names ...string) Container {
	for _, name := range names {
		if found := doc.Slot(name); len(found) > 0 {
			return found[0]
		}
	}
	return nil
}
