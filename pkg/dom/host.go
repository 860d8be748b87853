package dom

// Host is the document environment a Handle operates in.
type Host interface {
	// QuerySelector returns the first node matching selector, or nil if
	// nothing matches.
	QuerySelector(selector string) (Node, error)

	// CreateElement returns a new detached element of the given tag.
	CreateElement(tag string) (Node, error)

	// CreateTextNode returns a new detached text node.
	CreateTextNode(text string) (Node, error)
}

// Node is a host-owned element or text node.
type Node interface {
	// GetAttribute returns the attribute value and whether it is present.
	GetAttribute(name string) (string, bool, error)
	SetAttribute(name, value string) error

	// GetStyle returns an inline style property, "" when unset.
	GetStyle(property string) (string, error)
	SetStyle(property, value string) error

	AddEventListener(event string, fn Listener, opts ListenerOptions) error

	// ParentElement returns the parent element, or nil for roots and
	// detached nodes.
	ParentElement() (Node, error)

	// Children returns the element children in document order.
	Children() ([]Node, error)

	// AppendChild moves child to the end of this node's children.
	AppendChild(child Node) error

	// Remove detaches the node from its parent. Detached nodes are left as-is.
	Remove() error

	// ReplaceWith puts node in this node's place and detaches this node.
	ReplaceWith(node Node) error

	InnerHTML() (string, error)
	SetInnerHTML(markup string) error
	InnerText() (string, error)
	SetInnerText(text string) error

	String() string
}

// Listener receives events dispatched by the host.
type Listener func(Event)

// Event is the host-neutral view of a dispatched event.
type Event struct {
	// Type is the event name, e.g. "click".
	Type string

	// Target is the node the event was dispatched to, if the host exposes it.
	Target Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget Node

	// Native is the host's own event value (js.Value, gson.JSON, *memhost.Event).
	Native any
}

// ListenerOptions mirrors the host's listener options.
type ListenerOptions struct {
	Capture bool
	Once    bool
	Passive bool
}

// ListenerOption configures a listener registration.
type ListenerOption func(*ListenerOptions)

// Capture registers the listener for the capture phase.
func Capture() ListenerOption {
	return func(o *ListenerOptions) { o.Capture = true }
}

// Once removes the listener after its first invocation.
func Once() ListenerOption {
	return func(o *ListenerOptions) { o.Once = true }
}

// Passive marks the listener as never cancelling the event.
func Passive() ListenerOption {
	return func(o *ListenerOptions) { o.Passive = true }
}
