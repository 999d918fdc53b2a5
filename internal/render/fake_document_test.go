package render

import (
	"strings"

	"golang.org/x/net/html"
)

type fakeContainer struct {
	node     *html.Node
	replaced int
	clicked  int
}

func newFakeContainer(tag string, kv ...string) *fakeContainer {
	return &fakeContainer{node: element(tag, attrs(kv...))}
}

func (c *fakeContainer) Tag() string { return c.node.Data }

func (c *fakeContainer) Attr(name string) (string, bool) { return NodeAttr(c.node, name) }

func (c *fakeContainer) SetAttr(name, value string) { SetNodeAttr(c.node, name, value) }

func (c *fakeContainer) SetText(text string) { SetNodeText(c.node, text) }

func (c *fakeContainer) SetStyle(property, value string) {
	style, _ := NodeAttr(c.node, "style")
	SetNodeAttr(c.node, "style", MergeStyle(style, property, value))
}

func (c *fakeContainer) Replace(nodes []*html.Node) {
	c.replaced++
	ReplaceChildren(c.node, nodes)
}

func (c *fakeContainer) Hide() { c.SetStyle("display", "none") }

func (c *fakeContainer) Show() { c.SetStyle("display", "") }

func (c *fakeContainer) Click() { c.clicked++ }

func (c *fakeContainer) hidden() bool {
	style, _ := NodeAttr(c.node, "style")
	return StyleValue(style, "display") == "none"
}

func (c *fakeContainer) display() string {
	style, _ := NodeAttr(c.node, "style")
	return StyleValue(style, "display")
}

func (c *fakeContainer) text() string {
	var b strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(c.node)
	return b.String()
}

func (c *fakeContainer) children() []*html.Node {
	var out []*html.Node
	for child := c.node.FirstChild; child != nil; child = child.NextSibling {
		out = append(out, child)
	}
	return out
}

func (c *fakeContainer) markup() string {
	return HTML(c.children())
}

type fakeDocument struct {
	slots map[string][]*fakeContainer
	empty map[string][]*fakeContainer
}

func newFakeDocument() *fakeDocument {
	return &fakeDocument{slots: map[string][]*fakeContainer{}, empty: map[string][]*fakeContainer{}}
}

func (d *fakeDocument) add(slot string, c *fakeContainer) *fakeContainer {
	d.slots[slot] = append(d.slots[slot], c)
	return c
}

func (d *fakeDocument) addEmpty(slot string) *fakeContainer {
	c := newFakeContainer("div", "class", "w-dyn-empty")
	d.empty[slot] = append(d.empty[slot], c)
	return c
}

func (d *fakeDocument) Slot(name string) []Container {
	out := make([]Container, 0, len(d.slots[name]))
	for _, c := range d.slots[name] {
		out = append(out, c)
	}
	return out
}

func (d *fakeDocument) EmptyStates(name string) []Container {
	out := make([]Container, 0, len(d.empty[name]))
	for _, c := range d.empty[name] {
		out = append(out, c)
	}
	return out
}
