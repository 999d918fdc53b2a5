package render

import "golang.org/x/net/html"

// HideEmptyStates 隐藏插槽的空数据占位（任何渲染尝试都会先执行）
func HideEmptyStates(doc Document, slot string) {
	for _, empty := range doc.EmptyStates(slot) {
		empty.Hide()
	}
}

// Bind 将节点整体替换到插槽的规范容器。
// 多个候选时最后一个为规范容器，其余隐藏且不填充；未找到容器时返回 nil。
func Bind(doc Document, slot string, nodes []*html.Node) Container {
	HideEmptyStates(doc, slot)
	candidates := doc.Slot(slot)
	if len(candidates) == 0 {
		return nil
	}
	canonical := candidates[len(candidates)-1]
	for _, other := range candidates[:len(candidates)-1] {
		other.Hide()
	}
	canonical.Replace(nodes)
	return canonical
}

// SetText 为插槽的全部候选设置文本
func SetText(doc Document, slot, text string) int {
	candidates := doc.Slot(slot)
	for _, c := range candidates {
		c.SetText(text)
	}
	return len(candidates)
}
