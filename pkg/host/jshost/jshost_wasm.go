//go:build js && wasm

package jshost

import (
	"syscall/js"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

// Host is the global document.
type Host struct {
	document js.Value
}

// Document returns the host for the page's global document.
func Document() (dom.Host, error) {
	doc := js.Global().Get("document")
	if doc.IsUndefined() || doc.IsNull() {
		return nil, errors.New("E023").WithDetail("no global document")
	}
	return &Host{document: doc}, nil
}

// QuerySelector implements dom.Host.
func (h *Host) QuerySelector(selector string) (n dom.Node, err error) {
	defer recoverJS(&err)
	v := h.document.Call("querySelector", selector)
	if v.IsNull() {
		return nil, nil
	}
	return &Node{v: v}, nil
}

// CreateElement implements dom.Host.
func (h *Host) CreateElement(tag string) (n dom.Node, err error) {
	defer recoverJS(&err)
	return &Node{v: h.document.Call("createElement", tag)}, nil
}

// CreateTextNode implements dom.Host.
func (h *Host) CreateTextNode(text string) (n dom.Node, err error) {
	defer recoverJS(&err)
	return &Node{v: h.document.Call("createTextNode", text)}, nil
}

// Node wraps a js.Value referencing a DOM node.
type Node struct {
	v js.Value
}

// Value returns the underlying js.Value.
func (n *Node) Value() js.Value { return n.v }

// GetAttribute implements dom.Node.
func (n *Node) GetAttribute(name string) (value string, ok bool, err error) {
	defer recoverJS(&err)
	v := n.v.Call("getAttribute", name)
	if v.IsNull() {
		return "", false, nil
	}
	return v.String(), true, nil
}

// SetAttribute implements dom.Node.
func (n *Node) SetAttribute(name, value string) (err error) {
	defer recoverJS(&err)
	n.v.Call("setAttribute", name, value)
	return nil
}

// GetStyle implements dom.Node.
func (n *Node) GetStyle(property string) (value string, err error) {
	defer recoverJS(&err)
	v := n.v.Get("style").Get(property)
	if v.IsUndefined() || v.IsNull() {
		return "", nil
	}
	return v.String(), nil
}

// SetStyle implements dom.Node.
func (n *Node) SetStyle(property, value string) (err error) {
	defer recoverJS(&err)
	n.v.Get("style").Set(property, value)
	return nil
}

// AddEventListener implements dom.Node. The js.Func is never released
// because listeners are never removed.
func (n *Node) AddEventListener(event string, fn dom.Listener, opts dom.ListenerOptions) (err error) {
	defer recoverJS(&err)
	cb := js.FuncOf(func(this js.Value, args []js.Value) any {
		ev := dom.Event{Type: event, CurrentTarget: n}
		if len(args) > 0 {
			native := args[0]
			ev.Native = native
			ev.Type = native.Get("type").String()
			if t := native.Get("target"); !t.IsNull() && !t.IsUndefined() {
				ev.Target = &Node{v: t}
			}
		}
		fn(ev)
		return nil
	})
	options := map[string]any{
		"capture": opts.Capture,
		"once":    opts.Once,
		"passive": opts.Passive,
	}
	n.v.Call("addEventListener", event, cb, options)
	return nil
}

// ParentElement implements dom.Node.
func (n *Node) ParentElement() (p dom.Node, err error) {
	defer recoverJS(&err)
	v := n.v.Get("parentElement")
	if v.IsNull() || v.IsUndefined() {
		return nil, nil
	}
	return &Node{v: v}, nil
}

// Children implements dom.Node.
func (n *Node) Children() (out []dom.Node, err error) {
	defer recoverJS(&err)
	children := n.v.Get("children")
	if children.IsUndefined() {
		return []dom.Node{}, nil
	}
	length := children.Length()
	out = make([]dom.Node, 0, length)
	for i := 0; i < length; i++ {
		out = append(out, &Node{v: children.Index(i)})
	}
	return out, nil
}

// AppendChild implements dom.Node.
func (n *Node) AppendChild(child dom.Node) (err error) {
	c, ok := child.(*Node)
	if !ok {
		return errors.New("E021").WithDetailf("%v is not a browser node", child)
	}
	defer recoverJS(&err)
	n.v.Call("appendChild", c.v)
	return nil
}

// Remove implements dom.Node.
func (n *Node) Remove() (err error) {
	defer recoverJS(&err)
	n.v.Call("remove")
	return nil
}

// ReplaceWith implements dom.Node.
func (n *Node) ReplaceWith(node dom.Node) (err error) {
	r, ok := node.(*Node)
	if !ok {
		return errors.New("E021").WithDetailf("%v is not a browser node", node)
	}
	defer recoverJS(&err)
	n.v.Call("replaceWith", r.v)
	return nil
}

// InnerHTML implements dom.Node.
func (n *Node) InnerHTML() (s string, err error) {
	defer recoverJS(&err)
	return n.v.Get("innerHTML").String(), nil
}

// SetInnerHTML implements dom.Node.
func (n *Node) SetInnerHTML(markup string) (err error) {
	defer recoverJS(&err)
	n.v.Set("innerHTML", markup)
	return nil
}

// InnerText implements dom.Node. Text nodes report their data.
func (n *Node) InnerText() (s string, err error) {
	defer recoverJS(&err)
	if v := n.v.Get("innerText"); !v.IsUndefined() {
		return v.String(), nil
	}
	return n.v.Get("textContent").String(), nil
}

// SetInnerText implements dom.Node.
func (n *Node) SetInnerText(text string) (err error) {
	defer recoverJS(&err)
	if n.v.Get("innerText").IsUndefined() {
		n.v.Set("textContent", text)
		return nil
	}
	n.v.Set("innerText", text)
	return nil
}

// String returns the browser's string form, e.g. [object HTMLDivElement].
func (n *Node) String() string {
	return n.v.Call("toString").String()
}

// recoverJS turns a thrown JavaScript exception into an error.
func recoverJS(err *error) {
	r := recover()
	if r == nil {
		return
	}
	if jsErr, ok := r.(js.Error); ok {
		*err = errors.New("E024").Wrap(jsErr)
		return
	}
	panic(r)
}
