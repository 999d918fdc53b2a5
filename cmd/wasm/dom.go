//go:build js && wasm

package main

import (
	"bytes"
	"strings"
	"syscall/js"

	"github.com/dujiao-next/storefront/internal/render"
	"github.com/dujiao-next/storefront/internal/shell"

	"golang.org/x/net/html"
)

// domDocument 浏览器 DOM 上的页面外壳
type domDocument struct {
	root      js.Value
	selectors map[string]shell.SlotSelector
}

func newDOMDocument(root js.Value, overrides map[string]string) *domDocument {
	return &domDocument{root: root, selectors: shell.MergeSelectors(overrides)}
}

func (d *domDocument) Slot(name string) []render.Container {
	sel, ok := d.selectors[name]
	if !ok || sel.Container == "" {
		return nil
	}
	return d.query(sel.Container)
}

func (d *domDocument) EmptyStates(name string) []render.Container {
	sel, ok := d.selectors[name]
	if !ok || sel.Empty == "" {
		return nil
	}
	return d.query(sel.Empty)
}

func (d *domDocument) query(selector string) []render.Container {
	list := d.root.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]render.Container, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &domContainer{el: list.Index(i)})
	}
	return out
}

// domContainer 单个 DOM 元素
type domContainer struct {
	el js.Value
}

func (c *domContainer) Tag() string {
	return strings.ToLower(c.el.Get("tagName").String())
}

func (c *domContainer) Attr(name string) (string, bool) {
	if !c.el.Call("hasAttribute", name).Bool() {
		return "", false
	}
	return c.el.Call("getAttribute", name).String(), true
}

func (c *domContainer) SetAttr(name, value string) {
	c.el.Call("setAttribute", name, value)
}

func (c *domContainer) SetText(text string) {
	c.el.Set("textContent", text)
}

func (c *domContainer) SetStyle(property, value string) {
	style, _ := c.Attr("style")
	merged := render.MergeStyle(style, property, value)
	if merged == "" {
		c.el.Call("removeAttribute", "style")
		return
	}
	c.el.Call("setAttribute", "style", merged)
}

func (c *domContainer) Replace(nodes []*html.Node) {
	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			continue
		}
	}
	c.el.Set("innerHTML", buf.String())
}

func (c *domContainer) Hide() {
	c.SetStyle("display", "none")
}

func (c *domContainer) Show() {
	c.SetStyle("display", "")
}

func (c *domContainer) Click() {
	c.el.Call("click")
}

// swiperRefresher 刷新容器所在的轮播组件
type swiperRefresher struct{}

func (swiperRefresher) Refresh(c render.Container) error {
	dc, ok := c.(*domContainer)
	if !ok {
		return nil
	}
	host := dc.el.Call("closest", ".swiper")
	if host.IsNull() || host.IsUndefined() {
		return nil
	}
	instance := host.Get("swiper")
	if instance.IsUndefined() || instance.IsNull() {
		return nil
	}
	instance.Call("update")
	return nil
}
