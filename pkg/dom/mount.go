package dom

import (
	"fmt"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/vdom"
)

// Mount builds v on host through Handle operations only and returns the
// handle of the root. Fragment roots need a parent; use MountInto. Raw
// markup is wrapped in a span.
func Mount(host Host, v *vdom.VNode) (*Handle, error) {
	if v == nil {
		return nil, errors.New("E004").WithDetail("nil node")
	}
	switch v.Kind {
	case vdom.KindElement:
		return mountElement(host, v)
	case vdom.KindText:
		return CreateText(host, v.Text)
	case vdom.KindRaw:
		return mountRaw(host, v)
	case vdom.KindComponent:
		return Mount(host, render(v))
	default:
		return nil, errors.New("E004").WithDetailf("%s root", v.Kind)
	}
}

// MountInto builds v and appends the result to parent. Fragments append
// each of their children.
func MountInto(parent *Handle, v *vdom.VNode) error {
	if !parent.Resolved() {
		return unresolved("MountInto")
	}
	if v == nil {
		return nil
	}
	switch v.Kind {
	case vdom.KindFragment:
		for _, c := range v.Children {
			if err := MountInto(parent, c); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindComponent:
		return MountInto(parent, render(v))
	case vdom.KindText:
		return parent.Append(TextItem(v.Text))
	}
	child, err := Mount(parent.host, v)
	if err != nil {
		return err
	}
	return parent.Append(HandleItem(child))
}

func render(v *vdom.VNode) *vdom.VNode {
	if v.Comp == nil {
		return nil
	}
	return v.Comp.Render()
}

func mountElement(host Host, v *vdom.VNode) (*Handle, error) {
	h, err := Create(host, v.Tag)
	if err != nil {
		return nil, err
	}

	var attrs []Entry
	for _, a := range v.Attrs {
		value, ok := attrValue(a)
		if ok {
			attrs = append(attrs, E(a.Key, value))
		}
	}
	if len(attrs) > 0 {
		if _, _, err := h.Attr(SetMany(attrs...)); err != nil {
			return nil, err
		}
	}

	if len(v.Styles) > 0 {
		if _, err := h.Style(SetMany(Entries(v.Styles)...)); err != nil {
			return nil, err
		}
	}

	for _, ev := range v.Events {
		fn, err := listener(ev)
		if err != nil {
			return nil, err
		}
		if err := h.On(ev.Event, fn, listenerOptions(ev.Options)...); err != nil {
			return nil, err
		}
	}

	for _, c := range v.Children {
		if err := MountInto(h, c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func mountRaw(host Host, v *vdom.VNode) (*Handle, error) {
	h, err := Create(host, "span")
	if err != nil {
		return nil, err
	}
	if _, err := h.HTML(Write(v.Text)); err != nil {
		return nil, err
	}
	return h, nil
}

// attrValue converts a declarative attribute value to its string form.
// ok is false when the attribute should be omitted.
func attrValue(a vdom.Attr) (string, bool) {
	switch v := a.Value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if vdom.IsBooleanAttr(a.Key) {
			return "", v
		}
		if v {
			return "true", true
		}
		return "false", true
	case fmt.Stringer:
		return v.String(), true
	default:
		return fmt.Sprint(v), true
	}
}

func listener(ev vdom.EventHandler) (Listener, error) {
	switch fn := ev.Handler.(type) {
	case Listener:
		return fn, nil
	case func(Event):
		return fn, nil
	case func():
		return func(Event) { fn() }, nil
	default:
		return nil, errors.New("E004").WithDetailf("%s handler of type %T", ev.Event, ev.Handler)
	}
}

func listenerOptions(opts []vdom.EventOption) []ListenerOption {
	out := make([]ListenerOption, 0, len(opts))
	for _, o := range opts {
		switch o {
		case vdom.EventCapture:
			out = append(out, Capture())
		case vdom.EventOnce:
			out = append(out, Once())
		case vdom.EventPassive:
			out = append(out, Passive())
		}
	}
	return out
}
