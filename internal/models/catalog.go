package models

// Catalog 商品目录（页面会话内只读）
type Catalog struct {
	Products    []Product `json:"products"`
	Samples     []Product `json:"samples"`
	Accessories []Product `json:"accessories"`
}

// Tag 为每条记录标记类型
func (c *Catalog) Tag() {
	for i := range c.Products {
		c.Products[i].Kind = KindProduct
	}
	for i := range c.Samples {
		c.Samples[i].Kind = KindSample
	}
	for i := range c.Accessories {
		c.Accessories[i].Kind = KindAccessory
	}
}

// FirstProduct 返回第一个商品
func (c *Catalog) FirstProduct() *Product {
	if c == nil || len(c.Products) == 0 {
		return nil
	}
	return &c.Products[0]
}

// ProductByID 按 ID 查找商品
func (c *Catalog) ProductByID(id string) *Product {
	if c == nil || id == "" {
		return nil
	}
	for i := range c.Products {
		if c.Products[i].ID == id {
			return &c.Products[i]
		}
	}
	return nil
}
