// Package command applies JSON-serialisable operations to a document
// through the dom handle API.
//
// A Command names an operation, the selector of the node it targets and
// the operation's payload:
//
//	{"op": "attr", "selector": "#app", "key": "title", "value": ""}
//	{"op": "append", "selector": "ul", "items": [{"tag": "li", "text": "x"}]}
//	{"op": "text", "selector": "h1"}
//
// A nil Value reads and a present Value writes, so writing the empty
// string is never mistaken for a read. Set Loose to opt back into the
// older rule where an empty value reads.
//
// The CLI and the live server share this package.
package command
