package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var (
	dimensionsAreaPattern    = regexp.MustCompile(`\(.*?\)`)
	dimensionsDecimalPattern = regexp.MustCompile(` x \d+\.\d+ x \d+\.\d+ cm`)
	dimensionsIntegerPattern = regexp.MustCompile(` x \d+ x \d+ cm`)
)

// CartRenderer 购物车变更后的渲染钩子
type CartRenderer interface {
	RenderCart(cart *models.Cart)
	RenderBadge(count int)
}

// CartService 购物车操作（唯一的购物车写入方）
type CartService struct {
	catalog  *CatalogService
	store    *CartStore
	renderer CartRenderer
	log      *zap.SugaredLogger
	cart     *models.Cart
}

// NewCartService 创建购物车服务
func NewCartService(catalog *CatalogService, store *CartStore, renderer CartRenderer, log *zap.SugaredLogger) *CartService {
	return &CartService{
		catalog:  catalog,
		store:    store,
		renderer: renderer,
		log:      logger.OrDefault(log, "cart"),
	}
}

// Init 读取持久化购物车并渲染
func (s *CartService) Init(ctx context.Context) {
	s.cart = s.loadCart(ctx)
	s.render()
}

// Ready 是否已完成初始化
func (s *CartService) Ready() bool {
	return s.cart != nil
}

// SetRenderer 替换渲染钩子
func (s *CartService) SetRenderer(renderer CartRenderer) {
	s.renderer = renderer
}

func (s *CartService) loadCart(ctx context.Context) *models.Cart {
	if s.store == nil {
		return models.NewCart()
	}
	return s.store.Load(ctx)
}

func (s *CartService) current(ctx context.Context) *models.Cart {
	if s.cart == nil {
		s.cart = s.loadCart(ctx)
	}
	return s.cart
}

// AddItem 加入购物车；同身份累加数量，身份不在目录中时返回 false 且不修改购物车
func (s *CartService) AddItem(ctx context.Context, productID, variantID string, quantity int) bool {
	if quantity < 1 {
		s.log.Warnw("cart_add_invalid_quantity", "product_id", productID, "variant_id", variantID, "quantity", quantity)
		return false
	}
	product, ok := s.catalog.FindByIdentity(productID, variantID)
	if !ok {
		s.log.Warnw("cart_add_product_not_found", "product_id", productID, "variant_id", variantID)
		return false
	}
	cart := s.current(ctx)
	if idx := cart.IndexOf(models.Identity{ProductID: productID, VariantID: variantID}); idx >= 0 {
		cart.Items[idx].Quantity += quantity
	} else {
		cart.Items = append(cart.Items, newCartItem(product, productID, variantID, quantity))
	}
	s.commit(ctx)
	return true
}

// RemoveItem 删除购物车项，不存在时为空操作
func (s *CartService) RemoveItem(ctx context.Context, productID, variantID string) {
	cart := s.current(ctx)
	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID == productID && item.VariantID == variantID {
			continue
		}
		kept = append(kept, item)
	}
	cart.Items = kept
	s.commit(ctx)
}

// UpdateQuantity 覆盖数量；小于 1 等同删除，不存在的身份为空操作
func (s *CartService) UpdateQuantity(ctx context.Context, productID, variantID string, quantity int) {
	cart := s.current(ctx)
	idx := cart.IndexOf(models.Identity{ProductID: productID, VariantID: variantID})
	if idx < 0 {
		return
	}
	if quantity < 1 {
		s.RemoveItem(ctx, productID, variantID)
		return
	}
	cart.Items[idx].Quantity = quantity
	s.commit(ctx)
}

// Item 返回身份对应的购物车项
func (s *CartService) Item(ctx context.Context, productID, variantID string) (models.CartItem, bool) {
	return s.current(ctx).Find(models.Identity{ProductID: productID, VariantID: variantID})
}

// Count 商品总件数
func (s *CartService) Count(ctx context.Context) int {
	return cartCount(s.current(ctx))
}

// Total 按加入时价格计算的总额
func (s *CartService) Total(ctx context.Context) float64 {
	return CartTotal(s.current(ctx)).Float64()
}

// FormatPrice 价格展示格式
func (s *CartService) FormatPrice(value float64, currency string) string {
	return models.FormatPrice(value, currency)
}

// Snapshot 当前购物车的深拷贝
func (s *CartService) Snapshot(ctx context.Context) *models.Cart {
	return s.current(ctx).Clone()
}

// Refresh 重新渲染购物车（不修改状态）
func (s *CartService) Refresh(ctx context.Context) {
	s.current(ctx)
	s.render()
}

// commit 持久化 → 渲染购物车 → 渲染角标
func (s *CartService) commit(ctx context.Context) {
	if s.store != nil {
		s.store.Save(ctx, s.cart)
	}
	s.render()
}

func (s *CartService) render() {
	if s.renderer == nil {
		return
	}
	s.renderer.RenderCart(s.cart.Clone())
	s.renderer.RenderBadge(cartCount(s.cart))
}

func cartCount(cart *models.Cart) int {
	total := 0
	if cart == nil {
		return total
	}
	for _, item := range cart.Items {
		total += item.Quantity
	}
	return total
}

// CartTotal 汇总 price × quantity
func CartTotal(cart *models.Cart) models.Money {
	sum := decimal.Zero
	if cart != nil {
		for _, item := range cart.Items {
			sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	return models.NewMoneyFromDecimal(sum)
}

// newCartItem 加入时的商品快照
func newCartItem(p *models.Product, productID, variantID string, quantity int) models.CartItem {
	slug := p.Slug
	if slug == "" {
		slug = p.ID
	}
	currency := p.Currency
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	return models.CartItem{
		ProductID:    productID,
		VariantID:    variantID,
		ProductSlug:  slug,
		Name:         p.Name,
		Price:        snapshotPrice(p),
		PriceDisplay: snapshotPriceDisplay(p),
		Currency:     currency,
		Image:        snapshotImage(p),
		Dimensions:   ShortDimensions(firstNonEmpty(p.Dimensions, p.Size, p.AltText)),
		Quantity:     quantity,
	}
}

func snapshotPrice(p *models.Product) float64 {
	if !p.PriceValue.IsZero() {
		return p.PriceValue.Float64()
	}
	if parsed, ok := models.ParsePriceText(p.Price); ok {
		return parsed.Float64()
	}
	return 0
}

func snapshotPriceDisplay(p *models.Product) string {
	if p.Price != "" {
		return p.Price
	}
	return fmt.Sprintf("%s%s.00", constants.CurrencySymbol, p.PriceValue.Decimal.String())
}

func snapshotImage(p *models.Product) string {
	if p.MainImage != "" {
		return p.MainImage
	}
	if len(p.Images) > 0 {
		return p.Images[0].URL
	}
	return ""
}

// ShortDimensions 去掉括号内的面积与 "x W x H cm" 后缀，结果为空时保留去括号后的文本
func ShortDimensions(text string) string {
	display := strings.TrimSpace(dimensionsAreaPattern.ReplaceAllString(text, ""))
	short := dimensionsDecimalPattern.ReplaceAllString(display, "")
	short = strings.TrimSpace(dimensionsIntegerPattern.ReplaceAllString(short, ""))
	if short == "" {
		return display
	}
	return short
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
