package models

// CartItem 购物车项（加入时的商品快照）
type CartItem struct {
	ProductID    string  `json:"productId"`    // 商品 ID
	VariantID    string  `json:"variantId"`    // 规格 ID
	ProductSlug  string  `json:"productSlug"`  // 商品 slug
	Name         string  `json:"name"`         // 名称
	Price        float64 `json:"price"`        // 加入时的数值价格
	PriceDisplay string  `json:"priceDisplay"` // 展示价格
	Currency     string  `json:"currency"`     // 币种
	Image        string  `json:"image"`        // 图片
	Dimensions   string  `json:"dimensions"`   // 简短尺寸
	Quantity     int     `json:"quantity"`     // 数量（>= 1）
}

// Identity 返回购物车项身份
func (i CartItem) Identity() Identity {
	return Identity{ProductID: i.ProductID, VariantID: i.VariantID}
}

// Cart 购物车（保持插入顺序）
type Cart struct {
	Items []CartItem `json:"items"`
}

// NewCart 创建空购物车
func NewCart() *Cart {
	return &Cart{Items: []CartItem{}}
}

// IndexOf 查找身份对应的下标，不存在返回 -1
func (c *Cart) IndexOf(id Identity) int {
	if c == nil {
		return -1
	}
	for i := range c.Items {
		if c.Items[i].ProductID == id.ProductID && c.Items[i].VariantID == id.VariantID {
			return i
		}
	}
	return -1
}

// Find 返回身份对应的购物车项
func (c *Cart) Find(id Identity) (CartItem, bool) {
	idx := c.IndexOf(id)
	if idx < 0 {
		return CartItem{}, false
	}
	return c.Items[idx], true
}

// Clone 深拷贝
func (c *Cart) Clone() *Cart {
	if c == nil {
		return NewCart()
	}
	items := make([]CartItem, len(c.Items))
	copy(items, c.Items)
	return &Cart{Items: items}
}

// Len 购物车行数
func (c *Cart) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Items)
}
