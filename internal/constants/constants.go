package constants

import "time"

// 目录分类常量
const (
	CategoryMainProducts = "AKUROCK Akustikpaneele"
	CategoryAccessories  = "AKUROCK Zubehör"
)

// 商品解析常量
const (
	DefaultProductToken = "brush"
	SampleIDMarker      = "-sample"
	SortingSentinel     = 999
	HomeSliderLimit     = 4
	ProductQueryParam   = "product"
	ProductPathPrefix   = "/product/"
	ProductDetailPage   = "detail_product.html"
)

// MainAccessoryIDs 商品详情页展示的精选配件
var MainAccessoryIDs = []string{
	"schrauben-weiss",
	"wandschrauben-schwarz",
	"wandkleber",
}

// 营销文案常量
const (
	MarketingHeroProductID   = "brush"
	MarketingSloganProductID = "yami"
	MarketingHeroDefault     = "More than just an acoustic panel, a symphony of stone and design."
	DefaultPriceText         = "€220.00 EUR"
	DefaultHomePrice         = "€220.00"
	DefaultCurrency          = "EUR"
	CurrencySymbol           = "€"
	DimensionsLabelPrefix    = "Size per panel - "
)

// 购物车存储常量
const (
	CartStorageKey = "stonearts-cart"
)

// 购物车操作指令
const (
	ActionIncrease        = "increase"
	ActionDecrease        = "decrease"
	ActionDelete          = "delete"
	ActionQuantityChanged = "quantity-changed"
	ActionSubmitAddToCart = "submit-add-to-cart"
)

// 页面类型
const (
	PageProduct     = "product"
	PageAccessories = "accessories"
	PageHome        = "home"
	PageUnknown     = "unknown"
)

// 延迟回调时长
const (
	WidgetRefreshDelay   = 100 * time.Millisecond
	CartOpenDelay        = 100 * time.Millisecond
	BridgeInitDelay      = 300 * time.Millisecond
	CartInitRecheckDelay = 500 * time.Millisecond
)
