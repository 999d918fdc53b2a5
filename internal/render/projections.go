package render

import (
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/models"

	"golang.org/x/net/html"
)

// ProductURL 商品详情页地址
func ProductURL(detailPage, slug string) string {
	if detailPage == "" {
		detailPage = constants.ProductDetailPage
	}
	return fmt.Sprintf("%s?%s=%s", detailPage, constants.ProductQueryParam, slug)
}

func currencyOrDefault(currency string) string {
	if currency == "" {
		return constants.DefaultCurrency
	}
	return currency
}

// GallerySlides 商品画廊幻灯片
func GallerySlides(images []GalleryImage) []*html.Node {
	out := make([]*html.Node, 0, len(images))
	for _, img := range images {
		src := SafeURL(img.URL)
		if src == "" {
			continue
		}
		out = append(out, element("div", attrs("class", "swiper-slide is-swiper-product w-dyn-item", "role", "listitem"),
			element("div", attrs("class", "img-hight"),
				element("img", attrs("alt", Text(img.Alt), "loading", "lazy", "src", src, "class", "img-swiper_img")),
			),
		))
	}
	return out
}

// VariantTiles SKU 选择器（当前商品标记 active）
func VariantTiles(products []models.Product, current *models.Product, detailPage string) []*html.Node {
	out := make([]*html.Node, 0, len(products))
	for _, p := range products {
		linkClass := "slider-selector_link is-slider-selector w-inline-block"
		if current != nil && p.Slug == current.Slug {
			linkClass += " active"
		}
		thumb := SafeURL(firstNonEmpty(p.SelectionSliderImage, p.MainImage))
		out = append(out, element("div", attrs("class", "swiper-slide is-slider-selector w-dyn-item", "role", "listitem"),
			element("a", attrs("href", ProductURL(detailPage, p.Slug), "class", linkClass),
				element("div", attrs("class", "slider-selector_height"),
					element("img", attrs("loading", "lazy", "width", "95", "src", thumb, "alt", Text(p.Name), "class", "slider-selector_img")),
				),
			),
		))
	}
	return out
}

// SelectorSlides 桌面端商品选择轮播
func SelectorSlides(products []models.Product, current *models.Product, detailPage string) []*html.Node {
	out := make([]*html.Node, 0, len(products))
	for i, p := range products {
		active := current != nil && p.Slug == current.Slug
		slideClass := "swiper-slide is-slider-selector w-dyn-item"
		linkClass := "slider-selector_link is-slider-selector w-inline-block"
		checkmark := "display: none"
		if active {
			slideClass += " is-active"
			linkClass += " w--current"
			checkmark = "display: flex"
		}
		if i == 1 {
			slideClass += " swiper-slide-next"
		}
		link := element("a", attrs("aria-label", "Acoustic Panels Link", "href", ProductURL(detailPage, p.Slug), "class", linkClass),
			element("img", attrs("loading", "lazy", "width", "95", "alt", "", "src", SafeURL(firstNonEmpty(p.SelectionSliderImage, p.MainImage)), "class", "slider-selector_img")),
			element("div", attrs("class", "swiper-main-img")),
			element("div", attrs("class", "checkmark_wrapper", "style", checkmark)),
		)
		if active {
			SetNodeAttr(link, "aria-current", "page")
		}
		out = append(out, element("div", attrs(
			"role", "group",
			"class", slideClass,
			"aria-label", fmt.Sprintf("%d / %d", i+1, len(products)),
		), link))
	}
	return out
}

// AccessoryCards 商品页精选配件卡片
func AccessoryCards(accessories []models.Product) []*html.Node {
	out := make([]*html.Node, 0, len(accessories))
	for _, a := range accessories {
		var image *html.Node
		if src := SafeURL(a.MainImage); src != "" {
			image = element("img", attrs("loading", "lazy", "src", src, "alt", Text(a.Name), "class", "image-214"))
		}
		out = append(out, element("div", attrs("class", "collection-item-7 w-dyn-item", "role", "listitem"),
			element("div", attrs("class", "content_additionals"),
				element("div", attrs("class", "addtions_img_container"), image),
				element("div", attrs("class", "description additionals"),
					element("h2", attrs("class", "additional_top"), textNode(Text(a.Name))),
					element("div", attrs("class", "text-block-92"), textNode(Text(a.Description))),
					element("div", attrs("class", "text-block-93"), textNode(Text(a.Price)+" "+currencyOrDefault(a.Currency))),
				),
			),
			element("div", attrs("class", "buy-button"), addToCartForm(a, true)),
		))
	}
	return out
}

// AccessoryPageCards 配件页卡片（名称映射与描述兜底）
func AccessoryPageCards(accessories []models.Product) []*html.Node {
	out := make([]*html.Node, 0, len(accessories))
	for _, a := range accessories {
		description := a.Description
		if description == "" {
			description = AccessoryDescriptionFallback[a.ID]
		}
		name := a.Name
		if mapped, ok := AccessoryDisplayNames[a.Name]; ok {
			name = mapped
		}
		wrap := element("div", attrs("class", "item-wrap_samples is-addons"),
			element("div", attrs("class", "top_titel-wrap is-addons"),
				element("div", attrs("class", "header-wrap_samples is-addons"),
					element("div", attrs("class", "text-block-65 is-addons"), textNode(Text(name))),
					element("div", attrs("class", "description-wrap_samples is-addons"),
						element("div", attrs("class", "text-block-70 is-addons"), textNode(Text(description))),
					),
					element("div", attrs("class", "price-wrap_samples is-addons"),
						element("div", attrs("class", "text-block-68 is-addons", "data-commerce-type", "variation-price"),
							textNode(Text(a.Price)+" "+currencyOrDefault(a.Currency))),
					),
				),
			),
			element("div", attrs("class", "bottom_addtocart-wrap is-addons"),
				element("div", attrs("class", "add-to-cart is-addons"), addToCartForm(a, false)),
			),
		)
		if bg := SafeURL(a.MainImage); bg != "" {
			style := MergeStyle("", "background-image", fmt.Sprintf("url(%s)", bg))
			style = MergeStyle(style, "background-size", "cover")
			style = MergeStyle(style, "background-position", "center")
			SetNodeAttr(wrap, "style", style)
		}
		out = append(out, element("div", attrs("class", "addons-collection w-dyn-item", "role", "listitem"), wrap))
	}
	return out
}

func addToCartForm(p models.Product, withDataID bool) *html.Node {
	form := element("form", attrs(
		"class", "w-commerce-commerceaddtocartform",
		"data-node-type", "commerce-add-to-cart-form",
		"data-wf-product-id", p.ProductID,
		"data-wf-variant-id", p.VariantID,
	),
		element("input", attrs("type", "submit", "data-node-type", "commerce-add-to-cart-button", "class", "w-commerce-commerceaddtocartbutton buy_button", "value", "Add to Cart")),
	)
	if withDataID {
		SetNodeAttr(form, "data-product-id", p.ID)
	}
	return form
}

// HomeSlides 首页商品轮播
func HomeSlides(products []models.Product, detailPage string) []*html.Node {
	out := make([]*html.Node, 0, len(products))
	for _, p := range products {
		mainImage := SafeURL(p.MainImage)
		hoverImage := SafeURL(firstNonEmpty(p.HoverImage, p.MainImage))
		price := firstNonEmpty(p.Price, constants.DefaultHomePrice)
		name := Text(p.Name)
		out = append(out, element("div", attrs("class", "swiper-slide is-slider-main w-dyn-item", "role", "listitem"),
			element("a", attrs("href", ProductURL(detailPage, p.Slug), "class", "slider-selector_link is-slider-main w-inline-block"),
				element("div", attrs("class", "slider-main_image-height is-slider-main"),
					element("img", attrs("src", mainImage, "loading", "lazy", "alt", name, "class", "slider-main_image")),
					element("img", attrs("src", hoverImage, "loading", "lazy", "style", "opacity: 0;", "alt", name, "class", "slider-main_image-2")),
				),
				element("div", attrs("class", "slider-main_text-wrapper is-slider-main"),
					element("div", attrs("class", "slider-main_text-holder is-slider-main"),
						element("h3", attrs("class", "heading-142"), textNode(name)),
						element("h4", attrs("class", "heading-144"), textNode(Text(p.Description))),
					),
					element("div", attrs("class", "slider-main_price-holder"),
						element("h3", attrs("data-commerce-type", "variation-price", "class", "heading-143"),
							textNode(Text(price)+" "+currencyOrDefault(p.Currency))),
					),
				),
			),
		))
	}
	return out
}

// PriceText 商品页价格文本，缺少价格时使用默认值
func PriceText(p *models.Product) string {
	if p == nil || p.Price == "" {
		return constants.DefaultPriceText
	}
	price := p.Price
	if !strings.Contains(price, constants.CurrencySymbol) {
		price = constants.CurrencySymbol + price
	}
	return price + " " + currencyOrDefault(p.Currency)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// AccessoryDisplayNames 配件页展示名称
var AccessoryDisplayNames = map[string]string{
	"Schrauben weiß":    "Screws white",
	"Schrauben schwarz": "Screws black",
	"Wandkleber":        "Wall glue",
	"Kartuschenpresse":  "Cartridge press",
	"Lattenschrauben":   "Slatted screws",
	"Nano-Versiegelung": "Nano-sealing",
	"Acoustic Felt":     "Acoustic Felt",
}

// AccessoryDescriptionFallback 配件缺少描述时的兜底文本
var AccessoryDescriptionFallback = map[string]string{
	"schrauben-weiss":       "50 pcs.",
	"wandschrauben-schwarz": "50 pcs.",
	"wandkleber":            "470g cartridge / 1 panel",
	"kartuschenpresse":      "1 pc.",
	"lattenschrauben":       "50 pcs.",
	"nano-versiegelung":     "250ml",
	"acoustic-felt":         "60% Upcycled Pet Polyester",
}
