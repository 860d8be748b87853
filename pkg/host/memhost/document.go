package memhost

import (
	"bytes"
	"io"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

const emptyDocument = "<!DOCTYPE html><html><head></head><body></body></html>"

// Document is an in-memory HTML document and the dom.Host over it.
type Document struct {
	root      *html.Node
	nodes     map[*html.Node]*Node
	listeners map[*html.Node][]*registration
}

var _ dom.Host = (*Document)(nil)

// New returns an empty document with html, head and body elements.
func New() *Document {
	doc, err := ParseString(emptyDocument)
	if err != nil {
		// The constant above always parses.
		panic(err)
	}
	return doc
}

// Parse reads an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return &Document{
		root:      root,
		nodes:     make(map[*html.Node]*Node),
		listeners: make(map[*html.Node][]*registration),
	}, nil
}

// ParseString reads an HTML document from s.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the whole document to w.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// String renders the whole document.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// Body returns the body element, or nil.
func (d *Document) Body() *Node {
	n, _ := d.first("body")
	return n
}

// QuerySelector implements dom.Host.
func (d *Document) QuerySelector(selector string) (dom.Node, error) {
	n, err := d.first(selector)
	if err != nil || n == nil {
		return nil, err
	}
	return n, nil
}

// QuerySelectorAll returns every match in document order.
func (d *Document) QuerySelectorAll(selector string) ([]*Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	matches := sel.MatchAll(d.root)
	nodes := make([]*Node, len(matches))
	for i, m := range matches {
		nodes[i] = d.wrap(m)
	}
	return nodes, nil
}

func (d *Document) first(selector string) (*Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	m := sel.MatchFirst(d.root)
	if m == nil {
		return nil, nil
	}
	return d.wrap(m), nil
}

func compile(selector string) (cascadia.Selector, error) {
	sel, err := cascadia.Compile(selector)
	if err != nil {
		return nil, errors.New("E022").WithDetailf("%q", selector).Wrap(err)
	}
	return sel, nil
}

// CreateElement implements dom.Host. Tag names are lower-cased.
func (d *Document) CreateElement(tag string) (dom.Node, error) {
	if !validName(tag) {
		return nil, errors.New("E020").WithDetailf("tag %q", tag)
	}
	tag = strings.ToLower(tag)
	return d.wrap(&html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}), nil
}

// CreateTextNode implements dom.Host.
func (d *Document) CreateTextNode(text string) (dom.Node, error) {
	return d.wrap(&html.Node{Type: html.TextNode, Data: text}), nil
}

// wrap returns the single *Node standing for n, so that the same tree
// node always compares equal.
func (d *Document) wrap(n *html.Node) *Node {
	if n == nil {
		return nil
	}
	if w, ok := d.nodes[n]; ok {
		return w
	}
	w := &Node{doc: d, n: n}
	d.nodes[n] = w
	return w
}

// forget drops the wrappers and listeners of n and its descendants.
func (d *Document) forget(n *html.Node) {
	delete(d.nodes, n)
	delete(d.listeners, n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.forget(c)
	}
}

// validName accepts the names a browser's createElement accepts.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_', r == ':':
		case i > 0 && (r >= '0' && r <= '9' || r == '-' || r == '.'):
		case r > 0x7f:
		default:
			return false
		}
	}
	return true
}
