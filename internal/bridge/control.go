package bridge

import (
	"strings"
)

// 页面控件属性
const (
	AttrAction             = "data-action"
	AttrProductID          = "data-product-id"
	AttrVariantID          = "data-variant-id"
	AttrFormProductID      = "data-wf-product-id"
	AttrFormVariantID      = "data-wf-variant-id"
	QuantityInputClass     = "cart-quantity-input"
	AddToCartQuantityInput = `input[name="commerce-add-to-cart-quantity-input"]`
)

// AttrReader 可读取属性的控件
type AttrReader interface {
	Attr(name string) (string, bool)
}

// CommandFromControl 由带 data-action 的控件构造指令
func CommandFromControl(c AttrReader) (Command, bool) {
	if c == nil {
		return Command{}, false
	}
	token, _ := c.Attr(AttrAction)
	action, ok := ParseAction(token)
	if !ok {
		return Command{}, false
	}
	return Command{
		Action:    action,
		ProductID: attrOf(c, AttrProductID),
		VariantID: attrOf(c, AttrVariantID),
	}, true
}

// QuantityChange 数量输入框变更；非数量输入框返回 false
func QuantityChange(c AttrReader, value string) (Command, bool) {
	if c == nil || !hasClass(attrOf(c, "class"), QuantityInputClass) {
		return Command{}, false
	}
	return Command{
		Action:    ActionQuantityChanged,
		ProductID: attrOf(c, AttrProductID),
		VariantID: attrOf(c, AttrVariantID),
		Value:     value,
		HasValue:  true,
	}, true
}

// SubmissionFromForm 读取加购表单的商品身份
func SubmissionFromForm(form AttrReader, quantity string, hasQuantity bool) Submission {
	return Submission{
		ProductID:   attrOf(form, AttrFormProductID),
		VariantID:   attrOf(form, AttrFormVariantID),
		QuantityRaw: quantity,
		HasQuantity: hasQuantity,
	}
}

func attrOf(c AttrReader, name string) string {
	if c == nil {
		return ""
	}
	v, _ := c.Attr(name)
	return strings.TrimSpace(v)
}

func hasClass(classes, class string) bool {
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}
