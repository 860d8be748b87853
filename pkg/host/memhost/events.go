package memhost

import (
	"golang.org/x/net/html"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

type registration struct {
	event   string
	fn      dom.Listener
	opts    dom.ListenerOptions
	removed bool
}

// Phase is the dispatch phase an Event is in.
type Phase uint8

const (
	PhaseNone Phase = iota
	PhaseCapturing
	PhaseAtTarget
	PhaseBubbling
)

// Event is the native event passed in dom.Event.Native.
type Event struct {
	Type       string
	Bubbles    bool
	Cancelable bool

	phase            Phase
	stopped          bool
	defaultPrevented bool
	passive          bool
}

// EventOption configures a dispatched event.
type EventOption func(*Event)

// NoBubble dispatches an event that does not bubble.
func NoBubble() EventOption {
	return func(e *Event) { e.Bubbles = false }
}

// NotCancelable dispatches an event whose default cannot be prevented.
func NotCancelable() EventOption {
	return func(e *Event) { e.Cancelable = false }
}

// Phase returns the current dispatch phase.
func (e *Event) Phase() Phase { return e.phase }

// StopPropagation stops the event after the current node's listeners.
func (e *Event) StopPropagation() { e.stopped = true }

// PreventDefault marks the event cancelled. It has no effect on
// non-cancelable events or inside passive listeners.
func (e *Event) PreventDefault() {
	if e.Cancelable && !e.passive {
		e.defaultPrevented = true
	}
}

// DefaultPrevented reports whether a listener cancelled the event.
func (e *Event) DefaultPrevented() bool { return e.defaultPrevented }

// AddEventListener implements dom.Node.
func (n *Node) AddEventListener(event string, fn dom.Listener, opts dom.ListenerOptions) error {
	if fn == nil {
		return nil
	}
	n.doc.listeners[n.n] = append(n.doc.listeners[n.n], &registration{event: event, fn: fn, opts: opts})
	return nil
}

// ListenerCount returns how many live listeners target holds for event.
func (d *Document) ListenerCount(target dom.Node, event string) int {
	t, ok := target.(*Node)
	if !ok {
		return 0
	}
	count := 0
	for _, r := range d.listeners[t.n] {
		if r.event == event && !r.removed {
			count++
		}
	}
	return count
}

// Dispatch fires an event of the given type at target and returns it once
// every phase has run. Events bubble and are cancelable unless configured
// otherwise.
func (d *Document) Dispatch(target dom.Node, eventType string, opts ...EventOption) (*Event, error) {
	t, ok := target.(*Node)
	if !ok || t == nil || t.doc != d {
		return nil, errors.New("E023").WithDetailf("dispatch target %v is not a node of this document", target)
	}
	ev := &Event{Type: eventType, Bubbles: true, Cancelable: true}
	for _, opt := range opts {
		opt(ev)
	}

	var path []*html.Node
	for p := t.n.Parent; p != nil; p = p.Parent {
		path = append(path, p)
	}

	ev.phase = PhaseCapturing
	for i := len(path) - 1; i >= 0 && !ev.stopped; i-- {
		d.invoke(path[i], t, ev, func(r *registration) bool { return r.opts.Capture })
	}

	if !ev.stopped {
		ev.phase = PhaseAtTarget
		d.invoke(t.n, t, ev, func(r *registration) bool { return r.opts.Capture })
		if !ev.stopped {
			d.invoke(t.n, t, ev, func(r *registration) bool { return !r.opts.Capture })
		}
	}

	if ev.Bubbles {
		ev.phase = PhaseBubbling
		for _, p := range path {
			if ev.stopped {
				break
			}
			d.invoke(p, t, ev, func(r *registration) bool { return !r.opts.Capture })
		}
	}

	ev.phase = PhaseNone
	return ev, nil
}

// invoke runs the listeners registered on n when dispatch started that
// match the phase filter.
func (d *Document) invoke(n *html.Node, target *Node, ev *Event, match func(*registration) bool) {
	regs := d.listeners[n]
	if len(regs) == 0 {
		return
	}
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)

	current := d.wrap(n)
	for _, r := range snapshot {
		if r.removed || r.event != ev.Type || !match(r) {
			continue
		}
		if r.opts.Once {
			d.removeListener(n, r)
		}
		ev.passive = r.opts.Passive
		r.fn(dom.Event{
			Type:          ev.Type,
			Target:        target,
			CurrentTarget: current,
			Native:        ev,
		})
		ev.passive = false
	}
}

func (d *Document) removeListener(n *html.Node, r *registration) {
	r.removed = true
	regs := d.listeners[n]
	for i, x := range regs {
		if x == r {
			d.listeners[n] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}
