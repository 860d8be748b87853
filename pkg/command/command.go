package command

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/vango-dev/mdom/internal/errors"
)

// Operation names.
const (
	OpAttr     = "attr"
	OpStyle    = "style"
	OpShow     = "show"
	OpHide     = "hide"
	OpHTML     = "html"
	OpText     = "text"
	OpChildren = "children"
	OpAppend   = "append"
	OpReplace  = "replace"
	OpRemove   = "remove"
	OpParent   = "parent"
	OpOn       = "on"
	OpString   = "string"
	OpDispatch = "dispatch"
)

// Ops lists every operation in a stable order.
var Ops = []string{
	OpAttr, OpStyle, OpShow, OpHide, OpHTML, OpText, OpChildren,
	OpAppend, OpReplace, OpRemove, OpParent, OpOn, OpString, OpDispatch,
}

// Command is one operation on the node matched by Selector.
type Command struct {
	Op       string `json:"op"`
	Selector string `json:"selector"`

	// Key names the attribute or style property.
	Key string `json:"key,omitempty"`

	// Value writes when non-nil and reads when nil.
	Value *string `json:"value,omitempty"`

	// Entries is a bulk attribute or style write applied in key order.
	Entries map[string]string `json:"entries,omitempty"`

	// Items are appended, or the single replacement for replace.
	Items []Item `json:"items,omitempty"`

	// Event names the event for on and dispatch.
	Event string `json:"event,omitempty"`

	// Loose treats an empty Value as a read.
	Loose bool `json:"loose,omitempty"`
}

// Item describes a node to insert. Exactly one of Selector, Tag or Text
// must be set.
type Item struct {
	// Selector moves an existing node.
	Selector string `json:"selector,omitempty"`

	// Tag creates an element, optionally filled with HTML.
	Tag  string `json:"tag,omitempty"`
	HTML string `json:"html,omitempty"`

	// Text creates a text node, or fills a Tag element with text.
	Text *string `json:"text,omitempty"`
}

// Result is what an operation read.
type Result struct {
	// Value is the read attribute, style, markup, text or string form.
	Value string `json:"value,omitempty"`

	// Present reports whether a read attribute exists.
	Present bool `json:"present,omitempty"`

	// Nodes describes the nodes returned by children and parent.
	Nodes []string `json:"nodes,omitempty"`
}

// String returns a pointer to s, for Command.Value and Item.Text.
func String(s string) *string {
	return &s
}

// Decode reads one command from r. Unknown fields are rejected.
func Decode(r io.Reader) (Command, error) {
	var cmd Command
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cmd); err != nil {
		return Command{}, errors.New("E041").WithDetail(err.Error())
	}
	return cmd, cmd.Validate()
}

// Parse decodes a command from data.
func Parse(data []byte) (Command, error) {
	return Decode(bytes.NewReader(data))
}

// Validate checks that cmd names a known operation and carries the
// payload it needs.
func (c Command) Validate() error {
	switch c.Op {
	case OpAttr, OpStyle:
		if c.Key == "" && c.Entries == nil {
			return invalid(c, "key or entries is required")
		}
		if c.Key != "" && c.Entries != nil {
			return invalid(c, "key and entries are exclusive")
		}
		if c.Entries != nil && c.Value != nil {
			return invalid(c, "entries and value are exclusive")
		}
	case OpShow, OpHide, OpHTML, OpText, OpChildren, OpRemove, OpParent, OpString:
	case OpAppend:
		if len(c.Items) == 0 {
			return invalid(c, "items is required")
		}
	case OpReplace:
		if len(c.Items) != 1 {
			return invalid(c, "replace takes exactly one item")
		}
	case OpOn, OpDispatch:
		if c.Event == "" {
			return invalid(c, "event is required")
		}
	case "":
		return errors.New("E041").WithDetail("op is required")
	default:
		return errors.New("E040").
			WithDetailf("op %q", c.Op).
			WithSuggestion("Use one of the operations listed by 'mdom --help'")
	}
	for _, it := range c.Items {
		if err := it.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Mutates reports whether a successful run of c changes the document.
func (c Command) Mutates() bool {
	switch c.Op {
	case OpAttr, OpStyle:
		if c.Entries != nil {
			return true
		}
		return c.writes()
	case OpHTML, OpText:
		return c.writes()
	case OpShow, OpHide, OpAppend, OpReplace, OpRemove:
		return true
	}
	return false
}

func (c Command) writes() bool {
	return c.Value != nil && !(c.Loose && *c.Value == "")
}

func (it Item) validate() error {
	set := 0
	if it.Selector != "" {
		set++
	}
	if it.Tag != "" {
		set++
	}
	if it.Text != nil && it.Tag == "" {
		set++
	}
	if set != 1 {
		return errors.New("E041").WithDetail("item needs exactly one of selector, tag or text")
	}
	if it.HTML != "" && (it.Tag == "" || it.Text != nil) {
		return errors.New("E041").WithDetail("item html needs a tag and no text")
	}
	return nil
}

func invalid(c Command, msg string) error {
	return errors.New("E041").WithDetailf("%s: %s", c.Op, msg)
}
