package render

import (
	"path"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Options 目录分类与营销标识
type Options struct {
	ProductCategory   string
	AccessoryCategory string
	MainAccessories   []string
	SampleMarker      string
	HeroProductID     string
	SloganProductID   string
	HeroDefault       string
	DetailPage        string
}

func (o Options) withDefaults() Options {
	if o.ProductCategory == "" {
		o.ProductCategory = constants.CategoryMainProducts
	}
	if o.AccessoryCategory == "" {
		o.AccessoryCategory = constants.CategoryAccessories
	}
	if o.MainAccessories == nil {
		o.MainAccessories = constants.MainAccessoryIDs
	}
	if o.SampleMarker == "" {
		o.SampleMarker = constants.SampleIDMarker
	}
	if o.HeroProductID == "" {
		o.HeroProductID = constants.MarketingHeroProductID
	}
	if o.SloganProductID == "" {
		o.SloganProductID = constants.MarketingSloganProductID
	}
	if o.HeroDefault == "" {
		o.HeroDefault = constants.MarketingHeroDefault
	}
	if o.DetailPage == "" {
		o.DetailPage = constants.ProductDetailPage
	}
	return o
}

// Populator 按页面类型把目录数据绑定到插槽
type Populator struct {
	doc       Document
	opts      Options
	refresher *Refresher
	log       *zap.SugaredLogger
}

// NewPopulator 创建页面填充器
func NewPopulator(doc Document, opts Options, refresher *Refresher, log *zap.SugaredLogger) *Populator {
	return &Populator{
		doc:       doc,
		opts:      opts.withDefaults(),
		refresher: refresher,
		log:       logger.OrDefault(log, "populator"),
	}
}

// DetectPage 根据路径与页面插槽判断页面类型
func DetectPage(pagePath string, doc Document) string {
	lower := strings.ToLower(pagePath)
	filename := ""
	if !strings.HasSuffix(lower, "/") {
		filename = path.Base(lower)
	}
	switch {
	case strings.Contains(lower, "detail_product") || strings.Contains(lower, "product/") ||
		(doc != nil && len(doc.Slot(SlotProductName)) > 0):
		return constants.PageProduct
	case strings.Contains(lower, "zubehoer") || (doc != nil && len(doc.Slot(SlotAccessoriesPage)) > 0):
		return constants.PageAccessories
	case lower == "/" || lower == "" || filename == "" || filename == "index.html" || strings.Contains(filename, "index"):
		return constants.PageHome
	default:
		return constants.PageUnknown
	}
}

// Populate 按页面类型填充
func (p *Populator) Populate(kind string, catalog *models.Catalog, current *models.Product) {
	switch kind {
	case constants.PageProduct:
		p.PopulateProductPage(catalog, current)
	case constants.PageAccessories:
		p.PopulateAccessoriesPage(catalog)
	case constants.PageHome:
		p.PopulateHomePage(catalog)
	default:
		p.log.Debugw("populate_skipped_unknown_page", "kind", kind)
	}
}

// PopulateProductPage 商品详情页
func (p *Populator) PopulateProductPage(catalog *models.Catalog, product *models.Product) {
	if len(p.doc.Slot(SlotProductName)) == 0 {
		p.log.Warnw("product_page_marker_missing")
		return
	}
	for _, slot := range []string{SlotGallery, SlotVariantSelector, SlotProductSelector, SlotMainAccessories} {
		HideEmptyStates(p.doc, slot)
	}
	if catalog == nil || product == nil {
		p.log.Warnw("product_page_catalog_unavailable")
		return
	}

	p.applyColorScheme(product)
	name := Text(product.Name)
	SetText(p.doc, SlotProductName, name)
	SetText(p.doc, SlotProductPrice, PriceText(product))
	SetText(p.doc, SlotVariantLabel, name)
	if product.Description != "" {
		SetText(p.doc, SlotProductDescription, Text(product.Description))
	}
	if product.Dimensions != "" {
		SetText(p.doc, SlotProductDimensions, constants.DimensionsLabelPrefix+Text(product.Dimensions))
	}
	// 先写页面静态表单，之后渲染的配件表单保留各自身份
	p.stampAddToCartForms(product)

	if len(product.Images) > 0 {
		p.bindCollection(SlotGallery, GallerySlides(OrderGallery(product)), true)
	} else {
		p.log.Warnw("product_gallery_empty", "product", product.ID)
	}

	selectable := SortBySorting(FilterMainProducts(catalog.Products, p.opts.ProductCategory, p.opts.SampleMarker))
	p.bindCollection(SlotVariantSelector, VariantTiles(selectable, product, p.opts.DetailPage), true)
	p.bindCollection(SlotProductSelector, SelectorSlides(selectable, product, p.opts.DetailPage), true)

	if len(catalog.Accessories) == 0 {
		p.log.Warnw("product_accessories_empty")
	} else {
		accessories := MainAccessories(catalog.Accessories, p.opts.MainAccessories)
		if len(accessories) == 0 {
			p.log.Warnw("product_main_accessories_filtered_out")
		}
		p.bindCollection(SlotMainAccessories, AccessoryCards(accessories), false)
	}
	for _, section := range p.doc.Slot(SlotAccessoriesSection) {
		section.Show()
	}
	p.log.Debugw("product_page_populated", "product", product.ID, "selectable", len(selectable))
}

// PopulateHomePage 首页轮播与营销文案
func (p *Populator) PopulateHomePage(catalog *models.Catalog) {
	if catalog == nil {
		return
	}
	products := HomeProducts(catalog.Products, p.opts.ProductCategory, constants.HomeSliderLimit)
	p.bindCollection(SlotHomeSlider, HomeSlides(products, p.opts.DetailPage), false)
	p.PopulateMarketing(catalog)
}

// PopulateAccessoriesPage 配件列表页
func (p *Populator) PopulateAccessoriesPage(catalog *models.Catalog) {
	if catalog == nil || len(catalog.Accessories) == 0 {
		p.log.Warnw("accessories_page_data_missing")
		return
	}
	accessories := PageAccessories(catalog.Accessories, p.opts.AccessoryCategory)
	p.bindCollection(SlotAccessoriesPage, AccessoryPageCards(accessories), false)
}

// PopulateMarketing 营销文案：按固定商品标识取值，缺失时保持原样或使用默认文案
func (p *Populator) PopulateMarketing(catalog *models.Catalog) {
	if catalog == nil {
		return
	}
	hero := p.opts.HeroDefault
	if source := catalog.ProductByID(p.opts.HeroProductID); source != nil && source.SpecialFieldText != "" {
		hero = Text(source.SpecialFieldText)
	}
	SetText(p.doc, SlotHeroHeading, hero)

	if source := catalog.ProductByID(p.opts.SloganProductID); source != nil && source.SpecialFieldSlogan != "" {
		slogan := Text(source.SpecialFieldSlogan)
		for _, slot := range []string{SlotHealthSlogan, SlotFeatureSlogan, SlotShoutOutSlogan} {
			SetText(p.doc, slot, slogan)
		}
	}

	for _, link := range p.doc.Slot(SlotProductLink) {
		token, ok := link.Attr(AttrProductLink)
		if !ok || !strings.EqualFold(link.Tag(), "a") {
			continue
		}
		if target := FindProductLink(catalog.Products, token); target != nil {
			link.SetAttr("href", ProductURL(p.opts.DetailPage, target.Slug))
		}
	}
}

func (p *Populator) applyColorScheme(product *models.Product) {
	if product.Color == "" || product.ButtonHeaderColor == "" {
		return
	}
	for _, c := range p.doc.Slot(SlotProductColor) {
		c.SetStyle("background-color", product.Color)
	}
	for _, c := range p.doc.Slot(SlotProductAccent) {
		c.SetStyle("color", product.ButtonHeaderColor)
		c.SetStyle("border-color", product.ButtonHeaderColor)
	}
}

func (p *Populator) stampAddToCartForms(product *models.Product) {
	dataID := product.ID
	if dataID == "" {
		dataID = product.Slug
	}
	for _, form := range p.doc.Slot(SlotAddToCartForm) {
		if product.ProductID != "" {
			form.SetAttr("data-wf-product-id", product.ProductID)
		}
		if product.VariantID != "" {
			form.SetAttr("data-wf-variant-id", product.VariantID)
		}
		form.SetAttr("data-product-id", dataID)
		form.SetAttr("data-variant-id", product.VariantID)
	}
}

func (p *Populator) bindCollection(slot string, nodes []*html.Node, refresh bool) {
	canonical := Bind(p.doc, slot, nodes)
	if canonical == nil {
		p.log.Warnw("slot_container_missing", "slot", slot)
		return
	}
	if refresh {
		p.refresher.Schedule(slot, canonical)
	}
}
