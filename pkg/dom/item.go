package dom

import (
	"fmt"

	"github.com/vango-dev/mdom/internal/errors"
)

// ItemKind discriminates the shapes accepted by Append, Child and Replace.
type ItemKind uint8

const (
	itemInvalid ItemKind = iota
	ItemHandle
	ItemNode
	ItemText
)

// String returns the string representation of the ItemKind.
func (k ItemKind) String() string {
	switch k {
	case ItemHandle:
		return "handle"
	case ItemNode:
		return "node"
	case ItemText:
		return "text"
	default:
		return "invalid"
	}
}

// Item is another Handle, a raw host Node, or a string.
type Item struct {
	kind   ItemKind
	handle *Handle
	node   Node
	text   string
}

// HandleItem contributes the node referenced by h.
func HandleItem(h *Handle) Item {
	return Item{kind: ItemHandle, handle: h}
}

// NodeItem contributes a raw host node as-is.
func NodeItem(n Node) Item {
	return Item{kind: ItemNode, node: n}
}

// TextItem contributes a new text node holding text.
func TextItem(text string) Item {
	return Item{kind: ItemText, text: text}
}

// Handles converts handles into items.
func Handles(hs ...*Handle) []Item {
	items := make([]Item, len(hs))
	for i, h := range hs {
		items[i] = HandleItem(h)
	}
	return items
}

// Kind returns the item shape.
func (it Item) Kind() ItemKind { return it.kind }

// String describes the item for logs.
func (it Item) String() string {
	switch it.kind {
	case ItemHandle:
		return it.handle.String()
	case ItemNode:
		if it.node == nil {
			return "<nil node>"
		}
		return it.node.String()
	case ItemText:
		return fmt.Sprintf("%q", it.text)
	default:
		return "<invalid item>"
	}
}

// resolve returns the host node an item stands for, creating a text node
// through host when needed.
func (it Item) resolve(host Host) (Node, error) {
	switch it.kind {
	case ItemHandle:
		if it.handle == nil || it.handle.node == nil {
			return nil, unresolved("item")
		}
		return it.handle.node, nil
	case ItemNode:
		if it.node == nil {
			return nil, ErrUnknownItem
		}
		return it.node, nil
	case ItemText:
		if host == nil {
			return nil, errors.New("E023").WithDetail("text items need a host to create text nodes")
		}
		return host.CreateTextNode(it.text)
	default:
		return nil, ErrUnknownItem
	}
}
