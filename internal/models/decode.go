package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UnmarshalJSON 宽松解码目录记录
// priceValue 与 sorting 类型不符时按缺省处理并记入 CoercedFields。
func (p *Product) UnmarshalJSON(b []byte) error {
	if isJSONNull(b) {
		return nil
	}
	type Alias Product
	aux := struct {
		*Alias
		PriceValue json.RawMessage `json:"priceValue"`
		Sorting    json.RawMessage `json:"sorting"`
	}{Alias: (*Alias)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	var coerced []string
	price, ok := parseLooseMoney(aux.PriceValue)
	if !ok {
		coerced = append(coerced, "priceValue")
	}
	p.PriceValue = price

	p.Sorting = nil
	if !isJSONNull(aux.Sorting) {
		if v, ok := looseInt(aux.Sorting); ok {
			p.Sorting = &v
		} else {
			coerced = append(coerced, "sorting")
		}
	}
	p.coerced = coerced

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		return err
	}
	p.present = make(map[string]struct{}, len(keys))
	for k := range keys {
		p.present[k] = struct{}{}
	}
	return nil
}

// CoercedFields 解码时按缺省值处理的字段
func (p *Product) CoercedFields() []string {
	return p.coerced
}

// has 解码得到的记录按字段是否出现判断；代码构造的记录按非零值判断
func (p *Product) has(key string, nonZero bool) bool {
	if p.present == nil {
		return nonZero
	}
	_, ok := p.present[key]
	return ok
}

// UnmarshalJSON sort_order 接受数字或数字字符串，其它值按 0 处理
func (img *ProductImage) UnmarshalJSON(b []byte) error {
	if isJSONNull(b) {
		return nil
	}
	type Alias ProductImage
	aux := struct {
		*Alias
		SortOrder json.RawMessage `json:"sort_order"`
	}{Alias: (*Alias)(img)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	img.SortOrder, _ = looseInt(aux.SortOrder)
	return nil
}

// looseInt 数字（小数截断）或数字字符串；其它类型返回 false
func looseInt(raw json.RawMessage) (int, bool) {
	if isJSONNull(raw) {
		return 0, false
	}
	var f float64
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	} else if err := json.Unmarshal(raw, &f); err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, false
	}
	return int(f), true
}

func isJSONNull(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || string(b) == "null"
}
