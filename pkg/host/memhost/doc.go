// Package memhost implements dom.Host over an in-memory HTML document.
//
// The tree is a golang.org/x/net/html node tree, selectors are compiled
// with cascadia, and inline styles live in the style attribute exactly as
// a browser reflects them, parsed with the gorilla/css scanner. Events are
// dispatched synchronously with capture, target and bubble phases.
//
//	doc, _ := memhost.ParseString(`<body><div id="app"></div></body>`)
//	app, _ := dom.Query(doc, "#app")
//	app.Attr(dom.Set("data-ready", "1"))
//	fmt.Println(doc.String())
//
// Node wrappers and listeners are kept per tree node for the life of the
// Document. Nodes discarded by an innerHTML or innerText write are
// forgotten: their listeners are gone, and a handle still holding one
// no longer compares equal to a fresh lookup. Removed nodes are kept,
// since they can be inserted again.
//
// A Document is not safe for concurrent use.
package memhost
