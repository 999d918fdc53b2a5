package bridge

import (
	"strings"

	"github.com/dujiao-next/storefront/internal/constants"
)

// Action 购物车交互指令
type Action int

const (
	ActionUnknown Action = iota
	ActionIncrease
	ActionDecrease
	ActionDelete
	ActionQuantityChanged
	ActionSubmitAddToCart
)

var actionTokens = map[Action]string{
	ActionIncrease:        constants.ActionIncrease,
	ActionDecrease:        constants.ActionDecrease,
	ActionDelete:          constants.ActionDelete,
	ActionQuantityChanged: constants.ActionQuantityChanged,
	ActionSubmitAddToCart: constants.ActionSubmitAddToCart,
}

// String 指令令牌
func (a Action) String() string {
	if token, ok := actionTokens[a]; ok {
		return token
	}
	return "unknown"
}

// ParseAction 解析页面上的 data-action 令牌
func ParseAction(token string) (Action, bool) {
	token = strings.ToLower(strings.TrimSpace(token))
	for action, candidate := range actionTokens {
		if candidate == token {
			return action, true
		}
	}
	return ActionUnknown, false
}

// Command 一次交互
type Command struct {
	Action    Action
	ProductID string
	VariantID string
	// Value 数量原始输入，仅数量变更与加购使用
	Value     string
	HasValue  bool
}

// Submission 加购表单提交
type Submission struct {
	ProductID   string
	VariantID   string
	QuantityRaw string
	HasQuantity bool
}

// Command 转换为加购指令
func (s Submission) Command() Command {
	return Command{
		Action:    ActionSubmitAddToCart,
		ProductID: s.ProductID,
		VariantID: s.VariantID,
		Value:     s.QuantityRaw,
		HasValue:  s.HasQuantity,
	}
}

// ParseLeadingInt 宽松解析：跳过前导空白，读取可选符号与连续数字，其余忽略
func ParseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	negative := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		negative = s[0] == '-'
		s = s[1:]
	}
	value, digits := 0, 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if value < 1<<30 {
			value = value*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if negative {
		value = -value
	}
	return value, true
}

// ParseQuantity 加购数量，缺省、非数字或小于 1 时为 1
func ParseQuantity(raw string, present bool) int {
	if !present {
		return 1
	}
	value, ok := ParseLeadingInt(raw)
	if !ok || value < 1 {
		return 1
	}
	return value
}
