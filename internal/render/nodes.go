package render

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var textPolicy = bluemonday.StrictPolicy()

// Text 去除目录文本中的标记，返回纯文本
func Text(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(raw)))
}

// SafeURL 仅保留相对地址与 http(s) 地址，其余返回空串
func SafeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https":
		return raw
	default:
		return ""
	}
}

func element(tag string, attrs []html.Attribute, children ...*html.Node) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     attrs,
	}
	for _, child := range children {
		if child != nil {
			n.AppendChild(child)
		}
	}
	return n
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, attr(kv[i], kv[i+1]))
	}
	return out
}

// NodeAttr 读取节点属性
func NodeAttr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetNodeAttr 设置节点属性
func SetNodeAttr(n *html.Node, key, value string) {
	for i := range n.Attr {
		if n.Attr[i].Key == key {
			n.Attr[i].Val = value
			return
		}
	}
	n.Attr = append(n.Attr, attr(key, value))
}

// SetNodeText 以单个文本子节点替换全部子节点
func SetNodeText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(textNode(text))
}

// ReplaceChildren 清空后追加新节点
func ReplaceChildren(n *html.Node, nodes []*html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, child := range nodes {
		if child == nil {
			continue
		}
		if child.Parent != nil {
			child.Parent.RemoveChild(child)
		}
		n.AppendChild(child)
	}
}

// MergeStyle 修改内联样式中的单个属性，value 为空时移除
func MergeStyle(style, property, value string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	parts := make([]string, 0, 4)
	replaced := false
	for _, decl := range strings.Split(style, ";") {
		decl = strings.TrimSpace(decl)
		if decl == "" {
			continue
		}
		name, _, _ := strings.Cut(decl, ":")
		if strings.ToLower(strings.TrimSpace(name)) == property {
			if value != "" && !replaced {
				parts = append(parts, property+": "+value)
				replaced = true
			}
			continue
		}
		parts = append(parts, decl)
	}
	if value != "" && !replaced {
		parts = append(parts, property+": "+value)
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "; ") + ";"
}

// StyleValue 读取内联样式属性
func StyleValue(style, property string) string {
	property = strings.ToLower(strings.TrimSpace(property))
	for _, decl := range strings.Split(style, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if ok && strings.ToLower(strings.TrimSpace(name)) == property {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// HTML 序列化节点列表
func HTML(nodes []*html.Node) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		if n == nil {
			continue
		}
		_ = html.Render(&buf, n)
	}
	return buf.String()
}
