package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a declarative node.
type VNode struct {
	Kind     VKind
	Tag      string
	Attrs    []Attr
	Styles   StyleMap
	Events   []EventHandler
	Children []*VNode
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
}

// Attr returns the value of the last attribute named key.
func (v *VNode) Attr(key string) (any, bool) {
	if v == nil {
		return nil, false
	}
	for i := len(v.Attrs) - 1; i >= 0; i-- {
		if v.Attrs[i].Key == key {
			return v.Attrs[i].Value, true
		}
	}
	return nil, false
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// StyleMap holds inline style properties.
type StyleMap map[string]string

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "click", "input", etc.
	Handler any    // func() or a listener function
	Options []EventOption
}

// EventOption flags a handler registration.
type EventOption uint8

const (
	EventCapture EventOption = iota + 1
	EventOnce
	EventPassive
)

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
