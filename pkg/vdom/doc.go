// Package vdom provides declarative node descriptions for mdom.
//
// A VNode tree describes elements, text, fragments, components and raw
// markup. It holds no host state; dom.Mount turns a tree into real host
// nodes through the Handle façade.
//
// # Element API
//
// Elements are created using variadic factory functions:
//
//	Div(Class("card"), ID("main"),
//	    H1(Text("Title")),
//	    P("Content"),
//	    StyleMap{"display": "flex"},
//	    OnClick(handler),
//	)
//
// Arguments may be Attr, []Attr, StyleMap, EventHandler, *VNode,
// []*VNode, Component, string (text) or nil (ignored).
package vdom
