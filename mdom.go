// Package mdom provides the public API for minimal DOM handles.
//
// This is the recommended import for most programs:
//
//	import "github.com/vango-dev/mdom"
//
// Usage:
//
//	doc, _ := mdom.ParseHTML(`<main id="app"><ul></ul></main>`)
//	list, _ := mdom.Query(doc, "#app ul")
//	_ = list.Append(mdom.TextItem("hello"))
//	title, ok, _ := list.Attr(mdom.Get("title"))
//
// Handles work against any Host: the in-memory document from pkg/host/memhost,
// the browser DOM from pkg/host/jshost, or a remote page from pkg/host/rodhost.
package mdom

import (
	"github.com/vango-dev/mdom/pkg/dom"
	"github.com/vango-dev/mdom/pkg/host/memhost"
	"github.com/vango-dev/mdom/pkg/vdom"
)

// =============================================================================
// Handles (re-export from pkg/dom)
// =============================================================================

// Handle references at most one host node.
type Handle = dom.Handle

// Host is the document a handle resolves selectors against.
type Host = dom.Host

// Node is one host node.
type Node = dom.Node

// Query wraps the first match of selector. A selector that matches nothing
// gives an unresolved handle.
var Query = dom.Query

// Create wraps a new detached element.
var Create = dom.Create

// CreateText wraps a new detached text node.
var CreateText = dom.CreateText

// Wrap references an existing node.
var Wrap = dom.Wrap

// ErrUnresolved is returned by every operation on an unresolved handle.
var ErrUnresolved = dom.ErrUnresolved

// =============================================================================
// Access and content (re-export from pkg/dom)
// =============================================================================

// Access selects a read or write of an attribute or style property.
type Access = dom.Access

// Entry is one key/value pair of a bulk write.
type Entry = dom.Entry

// Content selects a read or write of markup or text.
type Content = dom.Content

var (
	// Get reads one key.
	Get = dom.Get
	// Set writes one key; an empty value is still a write.
	Set = dom.Set
	// SetMany writes several keys in order.
	SetMany = dom.SetMany
	// E builds one Entry.
	E = dom.E
	// Entries converts a map to entries sorted by key.
	Entries = dom.Entries
	// Loose treats a missing or empty value as a read.
	Loose = dom.Loose
	// Read reads markup or text.
	Read = dom.Read
	// Write replaces markup or text.
	Write = dom.Write
	// LooseContent treats a missing or empty value as a read.
	LooseContent = dom.LooseContent
)

// =============================================================================
// Items (re-export from pkg/dom)
// =============================================================================

// Item is one node to insert.
type Item = dom.Item

var (
	HandleItem = dom.HandleItem
	NodeItem   = dom.NodeItem
	TextItem   = dom.TextItem
	Handles    = dom.Handles
)

// =============================================================================
// Events (re-export from pkg/dom)
// =============================================================================

// Listener receives events registered with Handle.On.
type Listener = dom.Listener

// Event is what a Listener receives.
type Event = dom.Event

// ListenerOption configures a listener registration.
type ListenerOption = dom.ListenerOption

var (
	Capture = dom.Capture
	Once    = dom.Once
	Passive = dom.Passive
)

// =============================================================================
// Virtual nodes
// =============================================================================

// VNode is a virtual node that Mount turns into host nodes.
type VNode = vdom.VNode

// Mount builds host nodes for v and wraps the root.
var Mount = dom.Mount

// MountInto builds host nodes for v and appends them to parent.
var MountInto = dom.MountInto

// =============================================================================
// In-memory documents (re-export from pkg/host/memhost)
// =============================================================================

// Document is an in-memory HTML document.
type Document = memhost.Document

// NewDocument returns an empty document.
var NewDocument = memhost.New

// ParseHTML parses markup into a document.
var ParseHTML = memhost.ParseString
