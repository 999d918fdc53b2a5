package shell

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dujiao-next/storefront/internal/render"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Document 基于 goquery 的页面外壳
type Document struct {
	doc       *goquery.Document
	selectors map[string]SlotSelector
}

// Parse 解析页面外壳
func Parse(r io.Reader, overrides map[string]string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page shell: %w", err)
	}
	return &Document{doc: doc, selectors: MergeSelectors(overrides)}, nil
}

// ParseString 解析字符串形式的页面外壳
func ParseString(markup string, overrides map[string]string) (*Document, error) {
	return Parse(strings.NewReader(markup), overrides)
}

// ParseFile 解析页面外壳文件
func ParseFile(path string, overrides map[string]string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, overrides)
}

// Slot 插槽候选容器（文档顺序）
func (d *Document) Slot(name string) []render.Container {
	sel, ok := d.selectors[name]
	if !ok || sel.Container == "" {
		return nil
	}
	return wrap(d.doc.Find(sel.Container))
}

// EmptyStates 插槽的空数据占位
func (d *Document) EmptyStates(name string) []render.Container {
	sel, ok := d.selectors[name]
	if !ok || sel.Empty == "" {
		return nil
	}
	return wrap(d.doc.Find(sel.Empty))
}

// Find 直接按 CSS 选择器查询
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// HTML 序列化整个文档
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	for _, n := range d.doc.Nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func wrap(sel *goquery.Selection) []render.Container {
	out := make([]render.Container, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &container{sel: s})
	})
	return out
}

type container struct {
	sel *goquery.Selection
}

func (c *container) node() *html.Node {
	return c.sel.Get(0)
}

func (c *container) Tag() string {
	return goquery.NodeName(c.sel)
}

func (c *container) Attr(name string) (string, bool) {
	return c.sel.Attr(name)
}

func (c *container) SetAttr(name, value string) {
	c.sel.SetAttr(name, value)
}

func (c *container) SetText(text string) {
	render.SetNodeText(c.node(), text)
}

func (c *container) SetStyle(property, value string) {
	style, _ := c.sel.Attr("style")
	merged := render.MergeStyle(style, property, value)
	if merged == "" {
		c.sel.RemoveAttr("style")
		return
	}
	c.sel.SetAttr("style", merged)
}

func (c *container) Replace(nodes []*html.Node) {
	render.ReplaceChildren(c.node(), nodes)
}

func (c *container) Hide() {
	c.SetStyle("display", "none")
}

func (c *container) Show() {
	c.SetStyle("display", "")
}
