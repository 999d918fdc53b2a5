package models

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"

	"github.com/shopspring/decimal"
)

// Money 统一金额类型（保留 2 位小数）
type Money struct {
	decimal.Decimal
}

// NewMoneyFromFloat 从浮点数创建金额
func NewMoneyFromFloat(amount float64) Money {
	return Money{Decimal: decimal.NewFromFloat(amount).Round(2)}
}

// NewMoneyFromDecimal 从 decimal 创建金额
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(2)}
}

// MarshalJSON 输出数值
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Float64())
}

// UnmarshalJSON 解析金额（字符串或数字）
// 空串、无法解析的文本或其它类型按 0 处理，单个字段不会使整条记录失效。
func (m *Money) UnmarshalJSON(b []byte) error {
	*m, _ = parseLooseMoney(b)
	return nil
}

// parseLooseMoney ok=false 表示字段存在但无法解析
func parseLooseMoney(b []byte) (Money, bool) {
	if isJSONNull(b) {
		return Money{}, true
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return Money{}, false
		}
		return ParsePriceText(s)
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return Money{}, false
	}
	return NewMoneyFromFloat(f), true
}

// Float64 返回浮点值
func (m Money) Float64() float64 {
	f, _ := m.Decimal.Round(2).Float64()
	return f
}

// String 返回 2 位小数格式
func (m Money) String() string {
	return m.Decimal.Round(2).StringFixed(2)
}

// Display 货币展示格式，例如 "€12.50 EUR"
func (m Money) Display(currency string) string {
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = constants.DefaultCurrency
	}
	return fmt.Sprintf("%s%s %s", constants.CurrencySymbol, m.String(), currency)
}

// ParsePriceText 去除非数字字符后解析价格文本
func ParsePriceText(text string) (Money, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := leadingNumber(b.String())
	if cleaned == "" {
		return Money{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Money{}, false
	}
	return NewMoneyFromDecimal(d), true
}

// leadingNumber 截取最长的合法数字前缀（与宽松浮点解析一致）
func leadingNumber(s string) string {
	seenDot := false
	end := 0
	for i, r := range s {
		if r == '.' {
			if seenDot {
				break
			}
			seenDot = true
		}
		end = i + 1
	}
	out := strings.TrimSuffix(s[:end], ".")
	if out == "" || out == "." {
		return ""
	}
	if strings.HasPrefix(out, ".") {
		out = "0" + out
	}
	return out
}

// FormatPrice 两位小数加币种后缀，例如 FormatPrice(660, "EUR") = "€660.00 EUR"
func FormatPrice(value float64, currency string) string {
	return NewMoneyFromFloat(value).Display(currency)
}
