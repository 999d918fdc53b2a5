package shell

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/render"
)

// SlotSelector 插槽的容器与空状态选择器
type SlotSelector struct {
	Container string
	Empty     string
}

func scoped(root, inner string) string {
	return root + " " + inner
}

const (
	bindGallery         = `[bind="2fb8e092-727e-f3ca-475b-8178c0fc0239"]`
	bindVariantSelector = `[bind="116c2318-c33b-dcc5-4ef0-b6d435cfdf1f"]`
	bindProductSelector = `[bind="1a91082b-8f19-b175-b9ba-0deb9fa8ae10"]`
	bindMainAccessories = `[bind="d37286f8-45ee-d5c0-5042-fa9b1e03f774"]`
	bindHomeSlider      = `[bind="64b2a859-d0e1-7585-034c-483b3d178395"]`
	bindAccessoriesPage = `[bind="4a7dc39c-fd5a-acc7-8775-f4e5a479d73b"]`
	bindPrice           = `[bind="44360311-a628-3bd3-7fc8-c24734f0668a"]`
	variationPrice      = `[data-commerce-type="variation-price"]`
)

// DefaultSelectors 默认页面外壳的插槽映射
var DefaultSelectors = map[string]SlotSelector{
	render.SlotProductName: {Container: `[bind="44360311-a628-3bd3-7fc8-c24734f06683"]`},
	render.SlotProductPrice: {Container: strings.Join([]string{
		scoped(".price_wrapper", bindPrice),
		scoped(".product_text_wrapper", bindPrice),
		scoped(".price_wrapper", variationPrice),
		scoped(".product_text_wrapper", variationPrice),
	}, ", ")},
	render.SlotVariantLabel:       {Container: `[bind="116c2318-c33b-dcc5-4ef0-b6d435cfdf1a"]`},
	render.SlotProductDescription: {Container: ".product-description-wrapper p, .product-description-text"},
	render.SlotProductDimensions:  {Container: ".text-block-127"},
	render.SlotProductColor:       {Container: "[data-product-color]"},
	render.SlotProductAccent:      {Container: "[data-product-accent-color]"},
	render.SlotGallery: {
		Container: scoped(bindGallery, ".swiper-wrapper"),
		Empty:     scoped(bindGallery, ".w-dyn-empty"),
	},
	render.SlotVariantSelector: {
		Container: scoped(bindVariantSelector, ".swiper-wrapper"),
		Empty:     scoped(bindVariantSelector, ".w-dyn-empty"),
	},
	render.SlotProductSelector: {
		Container: scoped(bindProductSelector, `[bind="1a91082b-8f19-b175-b9ba-0deb9fa8ae11"]`),
		Empty:     scoped(bindProductSelector, `[bind="1a91082b-8f19-b175-b9ba-0deb9fa8ae16"]`),
	},
	render.SlotMainAccessories: {
		Container: scoped(bindMainAccessories, ".w-dyn-items"),
		Empty:     scoped(bindMainAccessories, ".w-dyn-empty"),
	},
	render.SlotAccessoriesSection: {Container: "section:has(" + bindMainAccessories + ")"},
	render.SlotAddToCartForm:      {Container: `[data-node-type="commerce-add-to-cart-form"]`},
	render.SlotHomeSlider: {
		Container: scoped(bindHomeSlider, ".swiper-wrapper"),
		Empty:     scoped(bindHomeSlider, ".w-dyn-empty"),
	},
	render.SlotAccessoriesPage: {
		Container: scoped(bindAccessoriesPage, `[bind="4a7dc39c-fd5a-acc7-8775-f4e5a479d73c"]`),
		Empty:     scoped(bindAccessoriesPage, ".w-dyn-empty"),
	},
	render.SlotHeroHeading:    {Container: ".hero-heading-2"},
	render.SlotHealthSlogan:   {Container: ".health-text-slogan"},
	render.SlotFeatureSlogan:  {Container: `section:has([product-link="Yami"]) .slogan._2.text`},
	render.SlotShoutOutSlogan: {Container: ".shout-out-container.main .slogan._2.text"},
	render.SlotProductLink:    {Container: "[" + render.AttrProductLink + "]"},
	render.SlotCartList:       {Container: `[bind="4bc36725-f958-4612-d2cb-e90fd749bb31"]`},
	render.SlotCartListAlt:    {Container: `[bind="4bc36725-f958-4612-d2cb-e90fd749bb6e"]`},
	render.SlotCartEmpty:      {Container: `[bind="4bc36725-f958-4612-d2cb-e90fd749bb50"]`},
	render.SlotCartForm:       {Container: `[data-node-type="commerce-cart-form"]`},
	render.SlotCartTotal:      {Container: `[bind="4bc36725-f958-4612-d2cb-e90fd749bb45"]`},
	render.SlotCartTotalAlt:   {Container: `[bind="4bc36725-f958-4612-d2cb-e90fd749bb82"]`},
	render.SlotCartBadge:      {Container: `[bind="4bc36725-f958-4612-d2cb-e90fd749bb26"], [bind="4bc36725-f958-4612-d2cb-e90fd749bb63"]`},
	render.SlotCartContainer:  {Container: `[data-node-type="commerce-cart-container-wrapper"]`},
	render.SlotCartOpenLink:   {Container: `[data-node-type="commerce-cart-open-link"]`},
}

// RequiredSlots 各页面类型必须提供的插槽
var RequiredSlots = map[string][]string{
	constants.PageProduct: {
		render.SlotProductName,
		render.SlotProductPrice,
		render.SlotGallery,
		render.SlotVariantSelector,
		render.SlotMainAccessories,
		render.SlotAddToCartForm,
	},
	constants.PageAccessories: {
		render.SlotAccessoriesPage,
	},
	constants.PageHome: {
		render.SlotHomeSlider,
		render.SlotHeroHeading,
	},
}

// CartSlots 带购物车侧栏的页面需要的插槽
var CartSlots = []string{
	render.SlotCartList,
	render.SlotCartTotal,
	render.SlotCartBadge,
}

// MergeSelectors 以覆盖项替换默认容器选择器
func MergeSelectors(overrides map[string]string) map[string]SlotSelector {
	out := make(map[string]SlotSelector, len(DefaultSelectors)+len(overrides))
	for name, sel := range DefaultSelectors {
		out[name] = sel
	}
	for name, css := range overrides {
		css = strings.TrimSpace(css)
		if css == "" {
			continue
		}
		sel := out[name]
		sel.Container = css
		out[name] = sel
	}
	return out
}
