package dom

const (
	displayVisible = "block"
	displayHidden  = "none"
)

// Handle references at most one host node.
type Handle struct {
	host Host
	node Node
}

// Query resolves selector against host and wraps the first match. An empty
// selector, or one that matches nothing, yields an unresolved handle.
func Query(host Host, selector string) (*Handle, error) {
	h := &Handle{host: host}
	if selector == "" {
		return h, nil
	}
	node, err := host.QuerySelector(selector)
	if err != nil {
		return nil, err
	}
	h.node = node
	return h, nil
}

// Create wraps a new detached element of the given tag.
func Create(host Host, tag string) (*Handle, error) {
	node, err := host.CreateElement(tag)
	if err != nil {
		return nil, err
	}
	return &Handle{host: host, node: node}, nil
}

// CreateText wraps a new detached text node.
func CreateText(host Host, text string) (*Handle, error) {
	node, err := host.CreateTextNode(text)
	if err != nil {
		return nil, err
	}
	return &Handle{host: host, node: node}, nil
}

// Wrap references an existing node of host. A nil node gives an
// unresolved handle.
func Wrap(host Host, node Node) *Handle {
	return &Handle{host: host, node: node}
}

// Resolved reports whether the handle references a node.
func (h *Handle) Resolved() bool {
	return h != nil && h.node != nil
}

// Node returns the referenced node, or nil.
func (h *Handle) Node() Node {
	if h == nil {
		return nil
	}
	return h.node
}

// Host returns the host the handle was built against.
func (h *Handle) Host() Host {
	if h == nil {
		return nil
	}
	return h.host
}

// String returns the node's string form, or "<Empty Handle>".
func (h *Handle) String() string {
	if !h.Resolved() {
		return "<Empty Handle>"
	}
	return h.node.String()
}

// Attr reads or writes attributes. ok reports whether a read attribute
// is present; writes return "", false, nil on success.
func (h *Handle) Attr(a Access) (value string, ok bool, err error) {
	if !h.Resolved() {
		return "", false, unresolved("Attr")
	}
	switch a.kind {
	case AccessGet:
		return h.node.GetAttribute(a.key)
	case AccessSet:
		return "", false, h.node.SetAttribute(a.key, a.value)
	case AccessSetMany:
		for _, e := range a.entries {
			if err := h.node.SetAttribute(e.Key, e.Value); err != nil {
				return "", false, err
			}
		}
		return "", false, nil
	default:
		return "", false, ErrUnknownAccess
	}
}

// Style reads or writes inline style properties. Unset properties read
// as "".
func (h *Handle) Style(a Access) (string, error) {
	if !h.Resolved() {
		return "", unresolved("Style")
	}
	switch a.kind {
	case AccessGet:
		return h.node.GetStyle(a.key)
	case AccessSet:
		return "", h.node.SetStyle(a.key, a.value)
	case AccessSetMany:
		for _, e := range a.entries {
			if err := h.node.SetStyle(e.Key, e.Value); err != nil {
				return "", err
			}
		}
		return "", nil
	default:
		return "", ErrUnknownAccess
	}
}

// Show sets display to block. A display value set before Hide is not
// restored.
func (h *Handle) Show() error {
	_, err := h.Style(Set("display", displayVisible))
	return err
}

// Hide sets display to none.
func (h *Handle) Hide() error {
	_, err := h.Style(Set("display", displayHidden))
	return err
}

// On registers fn with the host for event. There is no matching off.
func (h *Handle) On(event string, fn Listener, opts ...ListenerOption) error {
	if !h.Resolved() {
		return unresolved("On")
	}
	var o ListenerOptions
	for _, opt := range opts {
		opt(&o)
	}
	return h.node.AddEventListener(event, fn, o)
}

// Parent returns the parent element, or nil.
func (h *Handle) Parent() (Node, error) {
	if !h.Resolved() {
		return nil, unresolved("Parent")
	}
	return h.node.ParentElement()
}

// Children returns a snapshot of the element children.
func (h *Handle) Children() ([]Node, error) {
	if !h.Resolved() {
		return nil, unresolved("Children")
	}
	return h.node.Children()
}

// Append appends items in order. A failing item stops the rest; earlier
// items stay appended.
func (h *Handle) Append(items ...Item) error {
	if !h.Resolved() {
		return unresolved("Append")
	}
	for _, it := range items {
		child, err := it.resolve(h.host)
		if err != nil {
			return err
		}
		if err := h.node.AppendChild(child); err != nil {
			return err
		}
	}
	return nil
}

// Child reads the children when items is nil and appends otherwise.
func (h *Handle) Child(items []Item) ([]Node, error) {
	if items == nil {
		return h.Children()
	}
	return nil, h.Append(items...)
}

// Replace puts the item's node in place of the referenced node. The
// handle keeps referencing the now detached node.
func (h *Handle) Replace(item Item) error {
	if !h.Resolved() {
		return unresolved("Replace")
	}
	node, err := item.resolve(h.host)
	if err != nil {
		return err
	}
	return h.node.ReplaceWith(node)
}

// Remove detaches the referenced node from its parent.
func (h *Handle) Remove() error {
	if !h.Resolved() {
		return unresolved("Remove")
	}
	return h.node.Remove()
}

// HTML reads or replaces the node's markup. Markup is not sanitised.
func (h *Handle) HTML(c Content) (string, error) {
	if !h.Resolved() {
		return "", unresolved("HTML")
	}
	if c.write {
		return "", h.node.SetInnerHTML(c.value)
	}
	return h.node.InnerHTML()
}

// Text reads or replaces the node's rendered text.
func (h *Handle) Text(c Content) (string, error) {
	if !h.Resolved() {
		return "", unresolved("Text")
	}
	if c.write {
		return "", h.node.SetInnerText(c.value)
	}
	return h.node.InnerText()
}
