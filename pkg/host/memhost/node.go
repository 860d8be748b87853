package memhost

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

// Node is an element or text node of a Document.
type Node struct {
	doc *Document
	n   *html.Node
}

var _ dom.Node = (*Node)(nil)

// Tag returns the lower-case tag name, or "" for text nodes.
func (n *Node) Tag() string {
	if n.n.Type != html.ElementNode {
		return ""
	}
	return n.n.Data
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.n.Type == html.TextNode
}

// Raw returns the underlying x/net/html node.
func (n *Node) Raw() *html.Node {
	return n.n
}

// OuterHTML renders the node itself.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	if err := html.Render(&b, n.n); err != nil {
		return ""
	}
	return b.String()
}

// String returns the opening tag for elements and a quoted form for text.
func (n *Node) String() string {
	if n.n.Type == html.TextNode {
		return fmt.Sprintf("#text %q", n.n.Data)
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(n.n.Data)
	for _, a := range n.n.Attr {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	b.WriteString(">")
	return b.String()
}

func (n *Node) requireElement(op string) error {
	if n.n.Type != html.ElementNode {
		return errors.New("E023").WithDetailf("%s on %s", op, n)
	}
	return nil
}

// GetAttribute implements dom.Node.
func (n *Node) GetAttribute(name string) (string, bool, error) {
	if err := n.requireElement("getAttribute"); err != nil {
		return "", false, err
	}
	v, ok := n.attr(strings.ToLower(name))
	return v, ok, nil
}

// SetAttribute implements dom.Node.
func (n *Node) SetAttribute(name, value string) error {
	if err := n.requireElement("setAttribute"); err != nil {
		return err
	}
	if !validName(name) {
		return errors.New("E020").WithDetailf("attribute %q", name)
	}
	n.setAttr(strings.ToLower(name), value)
	return nil
}

func (n *Node) attr(key string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func (n *Node) setAttr(key, value string) {
	for i, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.n.Attr[i].Val = value
			return
		}
	}
	n.n.Attr = append(n.n.Attr, html.Attribute{Key: key, Val: value})
}

func (n *Node) removeAttr(key string) {
	attrs := n.n.Attr[:0]
	for _, a := range n.n.Attr {
		if a.Namespace == "" && a.Key == key {
			continue
		}
		attrs = append(attrs, a)
	}
	n.n.Attr = attrs
}

// GetStyle implements dom.Node.
func (n *Node) GetStyle(property string) (string, error) {
	if err := n.requireElement("style"); err != nil {
		return "", err
	}
	raw, _ := n.attr("style")
	return parseStyle(raw).get(cssProperty(property)), nil
}

// SetStyle implements dom.Node. An empty value removes the property. A
// value that is not a single declaration value, such as "red; top: 0",
// is ignored as a browser ignores it.
func (n *Node) SetStyle(property, value string) error {
	if err := n.requireElement("style"); err != nil {
		return err
	}
	value = strings.TrimSpace(value)
	if value != "" && !validStyleValue(value) {
		return nil
	}
	raw, _ := n.attr("style")
	decls := parseStyle(raw)
	decls = decls.set(cssProperty(property), value)
	if len(decls) == 0 {
		n.removeAttr("style")
		return nil
	}
	n.setAttr("style", decls.String())
	return nil
}

// ParentElement implements dom.Node.
func (n *Node) ParentElement() (dom.Node, error) {
	p := n.n.Parent
	if p == nil || p.Type != html.ElementNode {
		return nil, nil
	}
	return n.doc.wrap(p), nil
}

// Children implements dom.Node.
func (n *Node) Children() ([]dom.Node, error) {
	var out []dom.Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, n.doc.wrap(c))
		}
	}
	if out == nil {
		out = []dom.Node{}
	}
	return out, nil
}

// AppendChild implements dom.Node.
func (n *Node) AppendChild(child dom.Node) error {
	c, err := n.own(child)
	if err != nil {
		return err
	}
	if err := n.insertable(c); err != nil {
		return err
	}
	detach(c.n)
	n.n.AppendChild(c.n)
	return nil
}

// Remove implements dom.Node.
func (n *Node) Remove() error {
	detach(n.n)
	return nil
}

// ReplaceWith implements dom.Node.
func (n *Node) ReplaceWith(node dom.Node) error {
	r, err := n.own(node)
	if err != nil {
		return err
	}
	parent := n.n.Parent
	if parent == nil || r.n == n.n {
		return nil
	}
	if err := n.doc.wrap(parent).insertable(r); err != nil {
		return err
	}
	detach(r.n)
	parent.InsertBefore(r.n, n.n)
	parent.RemoveChild(n.n)
	return nil
}

// InnerHTML implements dom.Node.
func (n *Node) InnerHTML() (string, error) {
	if err := n.requireElement("innerHTML"); err != nil {
		return "", err
	}
	var b strings.Builder
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// SetInnerHTML implements dom.Node.
func (n *Node) SetInnerHTML(markup string) error {
	if err := n.requireElement("innerHTML"); err != nil {
		return err
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), n.n)
	if err != nil {
		return err
	}
	n.clear()
	for _, c := range nodes {
		n.n.AppendChild(c)
	}
	return nil
}

// InnerText implements dom.Node. Script, style and template contents are
// skipped; a text node returns its own data.
func (n *Node) InnerText() (string, error) {
	if n.n.Type == html.TextNode {
		return n.n.Data, nil
	}
	var b strings.Builder
	collectText(&b, n.n)
	return b.String(), nil
}

// SetInnerText implements dom.Node. Line breaks become <br> elements; a
// text node has its data replaced.
func (n *Node) SetInnerText(text string) error {
	if n.n.Type == html.TextNode {
		n.n.Data = text
		return nil
	}
	n.clear()
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			n.n.AppendChild(&html.Node{Type: html.ElementNode, Data: "br", DataAtom: atom.Br})
		}
		if line != "" {
			n.n.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
	return nil
}

// own checks that other is a node of the same document.
func (n *Node) own(other dom.Node) (*Node, error) {
	o, ok := other.(*Node)
	if !ok || o == nil {
		return nil, errors.New("E021").WithDetailf("%v is not a memhost node", other)
	}
	if o.doc != n.doc {
		return nil, errors.New("E021").WithDetail("node belongs to another document")
	}
	return o, nil
}

// insertable rejects children that would create a cycle or that text
// nodes cannot hold.
func (n *Node) insertable(c *Node) error {
	if n.n.Type != html.ElementNode {
		return errors.New("E021").WithDetailf("%s cannot have children", n)
	}
	for p := n.n; p != nil; p = p.Parent {
		if p == c.n {
			return errors.New("E021").WithDetailf("%s is an ancestor of %s", c, n)
		}
	}
	return nil
}

// clear discards the children. Discarded nodes lose their listeners and
// their cached wrappers.
func (n *Node) clear() {
	for c := n.n.FirstChild; c != nil; {
		next := c.NextSibling
		n.n.RemoveChild(c)
		n.doc.forget(c)
		c = next
	}
}

func detach(n *html.Node) {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}

func collectText(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(c.Data)
		case html.ElementNode:
			switch c.DataAtom {
			case atom.Script, atom.Style, atom.Template:
				continue
			case atom.Br:
				b.WriteString("\n")
				continue
			}
			collectText(b, c)
		}
	}
}
