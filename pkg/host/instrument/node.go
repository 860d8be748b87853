package instrument

import (
	"github.com/vango-dev/mdom/pkg/dom"
)

// Node decorates an inner dom.Node.
type Node struct {
	host  *Host
	inner dom.Node
}

var _ dom.Node = (*Node)(nil)

// Inner returns the decorated node.
func (n *Node) Inner() dom.Node {
	return n.inner
}

// peer strips this host's decoration from other before it reaches the
// inner host.
func (n *Node) peer(other dom.Node) dom.Node {
	if w, ok := other.(*Node); ok && w.host == n.host {
		return w.inner
	}
	return other
}

func (n *Node) GetAttribute(name string) (value string, ok bool, err error) {
	err = n.host.observe("getAttribute", name, func() (err error) {
		value, ok, err = n.inner.GetAttribute(name)
		return err
	})
	return value, ok, err
}

func (n *Node) SetAttribute(name, value string) error {
	return n.host.observe("setAttribute", name, func() error {
		return n.inner.SetAttribute(name, value)
	})
}

func (n *Node) GetStyle(name string) (value string, err error) {
	err = n.host.observe("getStyle", name, func() (err error) {
		value, err = n.inner.GetStyle(name)
		return err
	})
	return value, err
}

func (n *Node) SetStyle(name, value string) error {
	return n.host.observe("setStyle", name, func() error {
		return n.inner.SetStyle(name, value)
	})
}

// AddEventListener registers fn with the inner node. Event targets seen by
// fn are decorated nodes.
func (n *Node) AddEventListener(event string, fn dom.Listener, opts dom.ListenerOptions) error {
	var wrapped dom.Listener
	if fn != nil {
		wrapped = func(ev dom.Event) {
			n.host.metrics.listeners.WithLabelValues(ev.Type).Inc()
			ev.Target = n.host.wrap(ev.Target)
			ev.CurrentTarget = n.host.wrap(ev.CurrentTarget)
			fn(ev)
		}
	}
	return n.host.observe("addEventListener", event, func() error {
		return n.inner.AddEventListener(event, wrapped, opts)
	})
}

func (n *Node) ParentElement() (parent dom.Node, err error) {
	err = n.host.observe("parentElement", n.inner.String(), func() (err error) {
		parent, err = n.inner.ParentElement()
		return err
	})
	return n.host.wrap(parent), err
}

func (n *Node) Children() (children []dom.Node, err error) {
	err = n.host.observe("children", n.inner.String(), func() (err error) {
		children, err = n.inner.Children()
		return err
	})
	return n.host.wrapAll(children), err
}

func (n *Node) AppendChild(child dom.Node) error {
	return n.host.observe("appendChild", n.inner.String(), func() error {
		return n.inner.AppendChild(n.peer(child))
	})
}

func (n *Node) Remove() error {
	return n.host.observe("remove", n.inner.String(), n.inner.Remove)
}

func (n *Node) ReplaceWith(other dom.Node) error {
	return n.host.observe("replaceWith", n.inner.String(), func() error {
		return n.inner.ReplaceWith(n.peer(other))
	})
}

func (n *Node) InnerHTML() (markup string, err error) {
	err = n.host.observe("innerHTML", n.inner.String(), func() (err error) {
		markup, err = n.inner.InnerHTML()
		return err
	})
	return markup, err
}

func (n *Node) SetInnerHTML(markup string) error {
	return n.host.observe("setInnerHTML", n.inner.String(), func() error {
		return n.inner.SetInnerHTML(markup)
	})
}

func (n *Node) InnerText() (text string, err error) {
	err = n.host.observe("innerText", n.inner.String(), func() (err error) {
		text, err = n.inner.InnerText()
		return err
	})
	return text, err
}

func (n *Node) SetInnerText(text string) error {
	return n.host.observe("setInnerText", n.inner.String(), func() error {
		return n.inner.SetInnerText(text)
	})
}

func (n *Node) String() string {
	return n.inner.String()
}
