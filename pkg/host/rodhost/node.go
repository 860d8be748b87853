package rodhost

import (
	"github.com/go-rod/rod"
	"github.com/ysmood/gson"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

// Node is a dom.Node backed by a remote object on the page.
type Node struct {
	host *Host
	el   *rod.Element
}

var _ dom.Node = (*Node)(nil)

// Element returns the rod element behind n.
func (n *Node) Element() *rod.Element {
	return n.el
}

func (n *Node) eval(op, js string, args ...any) (gson.JSON, error) {
	res, err := n.el.Evaluate(rod.Eval(js, args...))
	if err != nil {
		return gson.JSON{}, remote(op, err)
	}
	return res.Value, nil
}

func (n *Node) peer(op string, other dom.Node) (*Node, error) {
	o, ok := other.(*Node)
	if !ok || o.host != n.host {
		return nil, errors.New("E021").WithDetailf("%s: node %v belongs to another host", op, other)
	}
	return o, nil
}

// GetAttribute implements dom.Node.
func (n *Node) GetAttribute(name string) (string, bool, error) {
	v, err := n.el.Attribute(name)
	if err != nil {
		return "", false, remote("getAttribute "+name, err)
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// SetAttribute implements dom.Node.
func (n *Node) SetAttribute(name, value string) error {
	_, err := n.eval("setAttribute "+name, `function (k, v) { this.setAttribute(k, v) }`, name, value)
	return err
}

// GetStyle implements dom.Node. It reads the inline style only.
func (n *Node) GetStyle(name string) (string, error) {
	v, err := n.eval("style "+name, `function (k) {
		const s = this.style
		return s[k] !== undefined ? String(s[k]) : s.getPropertyValue(k)
	}`, name)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// SetStyle implements dom.Node.
func (n *Node) SetStyle(name, value string) error {
	_, err := n.eval("style "+name, `function (k, v) {
		if (this.style[k] !== undefined) { this.style[k] = v } else { this.style.setProperty(k, v) }
	}`, name, value)
	return err
}

// AddEventListener implements dom.Node. The listener runs on rod's event
// goroutine; Event.Native carries the serialized event as gson.JSON.
func (n *Node) AddEventListener(event string, fn dom.Listener, opts dom.ListenerOptions) error {
	if fn == nil {
		return nil
	}
	name := n.host.bindingName()
	stop, err := n.host.page.Expose(name, func(payload gson.JSON) (any, error) {
		fn(dom.Event{Type: payload.Get("type").Str(), Target: n, CurrentTarget: n, Native: payload})
		return nil, nil
	})
	if err != nil {
		return remote("expose "+name, err)
	}
	n.host.keep(stop)

	_, err = n.eval("addEventListener "+event, `function (binding, type, capture, once, passive) {
		this.addEventListener(type, (e) => {
			window[binding]({ type: e.type, bubbles: e.bubbles, timeStamp: e.timeStamp })
		}, { capture, once, passive })
	}`, name, event, opts.Capture, opts.Once, opts.Passive)
	return err
}

// ParentElement implements dom.Node.
func (n *Node) ParentElement() (dom.Node, error) {
	v, err := n.eval("parentElement", `function () { return this.parentElement === null }`)
	if err != nil {
		return nil, err
	}
	if v.Bool() {
		return nil, nil
	}
	el, err := n.el.ElementByJS(rod.Eval(`function () { return this.parentElement }`))
	if err != nil {
		return nil, remote("parentElement", err)
	}
	return &Node{host: n.host, el: el}, nil
}

// Children implements dom.Node.
func (n *Node) Children() ([]dom.Node, error) {
	els, err := n.el.ElementsByJS(rod.Eval(`function () { return Array.from(this.children || []) }`))
	if err != nil {
		return nil, remote("children", err)
	}
	out := make([]dom.Node, 0, len(els))
	for _, el := range els {
		out = append(out, &Node{host: n.host, el: el})
	}
	return out, nil
}

// AppendChild implements dom.Node.
func (n *Node) AppendChild(child dom.Node) error {
	c, err := n.peer("appendChild", child)
	if err != nil {
		return err
	}
	_, err = n.eval("appendChild", `function (c) { this.appendChild(c) }`, c.el.Object)
	return err
}

// Remove implements dom.Node.
func (n *Node) Remove() error {
	_, err := n.eval("remove", `function () { this.remove() }`)
	return err
}

// ReplaceWith implements dom.Node.
func (n *Node) ReplaceWith(other dom.Node) error {
	o, err := n.peer("replaceWith", other)
	if err != nil {
		return err
	}
	_, err = n.eval("replaceWith", `function (o) { this.replaceWith(o) }`, o.el.Object)
	return err
}

// InnerHTML implements dom.Node.
func (n *Node) InnerHTML() (string, error) {
	v, err := n.eval("innerHTML", `function () { return this.innerHTML ?? "" }`)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// SetInnerHTML implements dom.Node.
func (n *Node) SetInnerHTML(markup string) error {
	_, err := n.eval("innerHTML", `function (s) { this.innerHTML = s }`, markup)
	return err
}

// InnerText implements dom.Node. Text nodes report their data.
func (n *Node) InnerText() (string, error) {
	v, err := n.eval("innerText", `function () { return this.innerText ?? this.textContent ?? "" }`)
	if err != nil {
		return "", err
	}
	return v.Str(), nil
}

// SetInnerText implements dom.Node.
func (n *Node) SetInnerText(text string) error {
	_, err := n.eval("innerText", `function (s) {
		if (this.nodeType === Node.TEXT_NODE) { this.data = s } else { this.innerText = s }
	}`, text)
	return err
}

// String describes the remote object.
func (n *Node) String() string {
	return n.el.String()
}
