package render

import (
	"strconv"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
	"github.com/dujiao-next/storefront/internal/logger"
	"github.com/dujiao-next/storefront/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// CartViewModel 购物车渲染结果
type CartViewModel struct {
	Items []*html.Node
	Empty bool
	Total string
	Count int
}

// CartView 由购物车快照生成完整视图（纯函数，每次整体重建）
func CartView(cart *models.Cart) CartViewModel {
	view := CartViewModel{Items: []*html.Node{}}
	sum := decimal.Zero
	if cart != nil {
		for _, item := range cart.Items {
			view.Items = append(view.Items, CartItemNode(item))
			view.Count += item.Quantity
			sum = sum.Add(decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	view.Empty = len(view.Items) == 0
	view.Total = models.NewMoneyFromDecimal(sum).Display(constants.DefaultCurrency)
	return view
}

// CartItemNode 单个购物车行
func CartItemNode(item models.CartItem) *html.Node {
	identity := func(kv ...string) []html.Attribute {
		return append(attrs(kv...), attr("data-product-id", item.ProductID), attr("data-variant-id", item.VariantID))
	}
	info := element("div", attrs("class", "w-commerce-commercecartiteminfo"),
		element("div", attrs("class", "w-commerce-commercecartproductname"), textNode(Text(item.Name))),
	)
	if item.Dimensions != "" {
		info.AppendChild(element("div", attrs("class", "w-commerce-commercecartproductoption"),
			textNode(strings.TrimSpace(strings.ReplaceAll(item.Dimensions, " x ", "×")))))
	}
	info.AppendChild(element("div", attrs("class", "w-commerce-commercecartproductprice"),
		textNode(Text(item.PriceDisplay)+" "+item.Currency)))
	info.AppendChild(element("div", attrs("class", "cart-quantity-controls"),
		element("button", identity("type", "button", "class", "q-dec cart-qty-btn", "data-action", constants.ActionDecrease), textNode("−")),
		element("input", identity("type", "number", "class", "cart-quantity-input", "value", strconv.Itoa(item.Quantity), "min", "1")),
		element("button", identity("type", "button", "class", "q-inc cart-qty-btn", "data-action", constants.ActionIncrease), textNode("+")),
	))
	info.AppendChild(element("a", identity("href", "#", "class", "cart-delete-link", "data-action", constants.ActionDelete), textNode("Delete")))

	return element("div", identity("class", "w-commerce-commercecartitem"),
		element("img", attrs("src", SafeURL(item.Image), "alt", Text(item.Name), "class", "w-commerce-commercecartitemimage")),
		info,
	)
}

// CartPresenter 将购物车视图绑定到页面插槽
type CartPresenter struct {
	doc Document
	log *zap.SugaredLogger
}

// NewCartPresenter 创建购物车展示器
func NewCartPresenter(doc Document, log *zap.SugaredLogger) *CartPresenter {
	return &CartPresenter{doc: doc, log: logger.OrDefault(log, "cart_view")}
}

// RenderCart 整体重建购物车列表、空状态与总价
func (p *CartPresenter) RenderCart(cart *models.Cart) {
	view := CartView(cart)
	list := firstContainer(p.doc, SlotCartList, SlotCartListAlt)
	if list == nil {
		p.log.Warnw("cart_list_container_missing")
		return
	}
	if empty := firstContainer(p.doc, SlotCartEmpty); empty != nil {
		form := firstContainer(p.doc, SlotCartForm)
		if view.Empty {
			empty.SetStyle("display", "block")
			if form != nil {
				form.SetStyle("display", "none")
			}
		} else {
			empty.SetStyle("display", "none")
			if form != nil {
				form.SetStyle("display", "block")
			}
		}
	}
	list.Replace(view.Items)
	if total := firstContainer(p.doc, SlotCartTotal, SlotCartTotalAlt); total != nil {
		total.SetText(view.Total)
	}
}

// RenderBadge 更新全部购物车角标
func (p *CartPresenter) RenderBadge(count int) {
	SetText(p.doc, SlotCartBadge, strconv.Itoa(count))
}

// OpenCart 展开购物车侧栏
func (p *CartPresenter) OpenCart() {
	container := firstContainer(p.doc, SlotCartContainer)
	if container == nil {
		return
	}
	container.SetStyle("display", "block")
	if link, ok := firstContainer(p.doc, SlotCartOpenLink).(Clicker); ok {
		link.Click()
	}
}
