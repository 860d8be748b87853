package command

import (
	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

// Listener receives events from listeners registered by op "on".
type Listener func(cmd Command, ev dom.Event)

// Dispatcher fires an event at a node, for op "dispatch".
type Dispatcher func(node dom.Node, event string) error

type options struct {
	listener   Listener
	dispatcher Dispatcher
	listenOpts []dom.ListenerOption
}

// Option configures Apply.
type Option func(*options)

// WithListener sets the callback for op "on". Without one, "on" fails
// with E023.
func WithListener(fn Listener, opts ...dom.ListenerOption) Option {
	return func(o *options) {
		o.listener = fn
		o.listenOpts = opts
	}
}

// WithDispatcher enables op "dispatch".
func WithDispatcher(fn Dispatcher) Option {
	return func(o *options) {
		o.dispatcher = fn
	}
}

// Apply validates cmd and runs it against the first node matching
// cmd.Selector in host.
func Apply(host dom.Host, cmd Command, opts ...Option) (Result, error) {
	if err := cmd.Validate(); err != nil {
		return Result{}, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	h, err := dom.Query(host, cmd.Selector)
	if err != nil {
		return Result{}, err
	}

	switch cmd.Op {
	case OpAttr:
		v, ok, err := h.Attr(cmd.access())
		return Result{Value: v, Present: ok}, err

	case OpStyle:
		v, err := h.Style(cmd.access())
		return Result{Value: v, Present: v != ""}, err

	case OpShow:
		return Result{}, h.Show()

	case OpHide:
		return Result{}, h.Hide()

	case OpHTML:
		v, err := h.HTML(cmd.content())
		return Result{Value: v}, err

	case OpText:
		v, err := h.Text(cmd.content())
		return Result{Value: v}, err

	case OpChildren:
		nodes, err := h.Children()
		return Result{Nodes: describe(nodes)}, err

	case OpParent:
		p, err := h.Parent()
		if err != nil || p == nil {
			return Result{}, err
		}
		return Result{Nodes: []string{p.String()}}, nil

	case OpAppend:
		items, err := resolveItems(host, cmd.Items)
		if err != nil {
			return Result{}, err
		}
		return Result{}, h.Append(items...)

	case OpReplace:
		items, err := resolveItems(host, cmd.Items)
		if err != nil {
			return Result{}, err
		}
		return Result{}, h.Replace(items[0])

	case OpRemove:
		return Result{}, h.Remove()

	case OpString:
		return Result{Value: h.String()}, nil

	case OpOn:
		if o.listener == nil {
			return Result{}, errors.New("E023").WithDetail("on: no listener configured")
		}
		fn := o.listener
		return Result{}, h.On(cmd.Event, func(ev dom.Event) { fn(cmd, ev) }, o.listenOpts...)

	case OpDispatch:
		if o.dispatcher == nil {
			return Result{}, errors.New("E023").WithDetail("dispatch: host cannot fire events")
		}
		if !h.Resolved() {
			return Result{}, errors.New("E001").WithDetail("dispatch")
		}
		return Result{}, o.dispatcher(h.Node(), cmd.Event)
	}
	return Result{}, errors.New("E040").WithDetailf("op %q", cmd.Op)
}

func (c Command) access() dom.Access {
	switch {
	case c.Entries != nil:
		return dom.SetMany(dom.Entries(c.Entries)...)
	case c.Loose && c.Value != nil:
		return dom.Loose(c.Key, *c.Value)
	case c.Value != nil:
		return dom.Set(c.Key, *c.Value)
	default:
		return dom.Get(c.Key)
	}
}

func (c Command) content() dom.Content {
	switch {
	case c.Loose && c.Value != nil:
		return dom.LooseContent(*c.Value)
	case c.Value != nil:
		return dom.Write(*c.Value)
	default:
		return dom.Read()
	}
}

// resolveItems builds every item before any is inserted, so a bad item
// leaves the document untouched.
func resolveItems(host dom.Host, specs []Item) ([]dom.Item, error) {
	items := make([]dom.Item, 0, len(specs))
	for _, it := range specs {
		switch {
		case it.Selector != "":
			h, err := dom.Query(host, it.Selector)
			if err != nil {
				return nil, err
			}
			if !h.Resolved() {
				return nil, errors.New("E001").WithDetailf("item selector %q matched nothing", it.Selector)
			}
			items = append(items, dom.HandleItem(h))

		case it.Tag != "":
			h, err := dom.Create(host, it.Tag)
			if err != nil {
				return nil, err
			}
			switch {
			case it.Text != nil:
				_, err = h.Text(dom.Write(*it.Text))
			case it.HTML != "":
				_, err = h.HTML(dom.Write(it.HTML))
			}
			if err != nil {
				return nil, err
			}
			items = append(items, dom.HandleItem(h))

		default:
			items = append(items, dom.TextItem(*it.Text))
		}
	}
	return items, nil
}

func describe(nodes []dom.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.String()
	}
	return out
}
