package vdom

import "fmt"

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Raw creates a node whose markup is parsed as-is when mounted. Markup
// is not sanitised.
func Raw(html string) *VNode {
	return &VNode{Kind: KindRaw, Text: html}
}

// Fragment groups children without a wrapper element. Attributes,
// styles and handlers have nowhere to go and are dropped.
func Fragment(children ...any) *VNode {
	node := &VNode{Kind: KindFragment}
	for _, c := range children {
		node.Children, _ = appendChild(node.Children, c)
	}
	return node
}

// appendChild adds arg to dst when it is a child value: a node, a node
// slice, a component or a string. Nil nodes are skipped.
func appendChild(dst []*VNode, arg any) ([]*VNode, bool) {
	switch v := arg.(type) {
	case *VNode:
		if v != nil {
			dst = append(dst, v)
		}
	case []*VNode:
		for _, c := range v {
			if c != nil {
				dst = append(dst, c)
			}
		}
	case Component:
		dst = append(dst, &VNode{Kind: KindComponent, Comp: v})
	case string:
		dst = append(dst, Text(v))
	default:
		return dst, false
	}
	return dst, true
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

// Unless is the inverse of If.
func Unless(condition bool, node *VNode) *VNode {
	if !condition {
		return node
	}
	return nil
}

// Range maps items to nodes, dropping nil results.
func Range[T any](items []T, fn func(int, T) *VNode) []*VNode {
	out := make([]*VNode, 0, len(items))
	for i, item := range items {
		if n := fn(i, item); n != nil {
			out = append(out, n)
		}
	}
	return out
}
