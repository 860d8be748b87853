// Package dom provides Handle, a thin façade over a host document-object model.
//
// A Handle references at most one host node and exposes short, uniform
// operations for attributes, inline style, visibility, events, hierarchy,
// content, replacement and removal. The document itself, its selector
// engine, its event dispatch and its node factories belong to the host and
// are reached through the Host and Node interfaces. Adapters live under
// pkg/host.
//
// # Accessors
//
// Attribute and style access share one protocol. The argument variant
// decides whether the call reads, writes one key, or writes many:
//
//	h.Attr(dom.Get("id"))                        // read
//	h.Attr(dom.Set("id", "main"))                // write one
//	h.Style(dom.SetMany(dom.E("width", "10rem"),
//	    dom.E("height", "2rem")))                // write many, in order
//
// Markup and text content use the unary form:
//
//	h.HTML(dom.Write("<h1>Hello</h1>"))
//	markup, _ := h.HTML(dom.Read())
//
// Set and Write always write, including empty values. Loose and
// LooseContent reproduce the classic truthiness convention where an
// absent or empty value turns the call into a read.
//
// # Items
//
// Append, Child and Replace accept Items, a closed union of another
// Handle, a raw host Node, or a string that becomes a text node:
//
//	body.Append(dom.HandleItem(card), dom.TextItem("footer"))
//
// # References
//
// A Handle is a non-owning reference. Mutations go straight to the host
// node and are visible to every other holder of it. A handle whose
// selector matched nothing is unresolved; every operation on it fails
// with ErrUnresolved.
package dom
