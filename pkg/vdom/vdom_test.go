package vdom

import (
	"testing"
)

func TestCreateElementArguments(t *testing.T) {
	handler := func() {}
	node := Div(
		nil,
		ID("main"),
		[]Attr{Class("a", "b"), {}},
		StyleMap{"display": "flex"},
		StyleMap{"width": "1px"},
		OnClick(handler, EventOnce),
		H1("Title"),
		[]*VNode{P("x"), nil},
		Func(func() *VNode { return Span() }),
		"tail",
	)

	if node.Kind != KindElement || node.Tag != "div" {
		t.Fatalf("node = %v %q", node.Kind, node.Tag)
	}
	if len(node.Attrs) != 2 {
		t.Errorf("len(Attrs) = %d, want 2 (empty attrs dropped)", len(node.Attrs))
	}
	if v, _ := node.Attr("class"); v != "a b" {
		t.Errorf("class = %v", v)
	}
	if len(node.Styles) != 2 || node.Styles["display"] != "flex" {
		t.Errorf("Styles = %v", node.Styles)
	}
	if len(node.Events) != 1 || node.Events[0].Event != "click" || node.Events[0].Options[0] != EventOnce {
		t.Errorf("Events = %+v", node.Events)
	}

	kinds := []VKind{KindElement, KindElement, KindComponent, KindText}
	if len(node.Children) != len(kinds) {
		t.Fatalf("len(Children) = %d, want %d", len(node.Children), len(kinds))
	}
	for i, k := range kinds {
		if node.Children[i].Kind != k {
			t.Errorf("child %d kind = %v, want %v", i, node.Children[i].Kind, k)
		}
	}
}

func TestAttrLastWins(t *testing.T) {
	node := Div(ID("a"), ID("b"))
	if v, ok := node.Attr("id"); !ok || v != "b" {
		t.Errorf("Attr(id) = %v, %v", v, ok)
	}
	var nilNode *VNode
	if _, ok := nilNode.Attr("id"); ok {
		t.Error("nil node has no attributes")
	}
}

func TestAttributeHelpers(t *testing.T) {
	tests := []struct {
		attr Attr
		key  string
		val  any
	}{
		{Data("id", "7"), "data-id", "7"},
		{Hidden(), "hidden", true},
		{Disabled(false), "disabled", false},
		{TabIndex(2), "tabindex", 2},
		{AriaHidden(true), "aria-hidden", true},
		{Attribute("x-y", "z"), "x-y", "z"},
	}
	for _, tt := range tests {
		if tt.attr.Key != tt.key || tt.attr.Value != tt.val {
			t.Errorf("attr = %+v, want %s=%v", tt.attr, tt.key, tt.val)
		}
	}
	if !IsBooleanAttr("checked") || IsBooleanAttr("aria-hidden") {
		t.Error("IsBooleanAttr")
	}
	if !IsVoidElement("img") || IsVoidElement("div") {
		t.Error("IsVoidElement")
	}
}

func TestHelpers(t *testing.T) {
	if Textf("%d items", 3).Text != "3 items" {
		t.Error("Textf")
	}
	if Raw("<b>").Kind != KindRaw {
		t.Error("Raw kind")
	}
	if If(false, Div()) != nil || If(true, Div()) == nil {
		t.Error("If")
	}
	if Unless(true, Div()) != nil || Unless(false, Div()) == nil {
		t.Error("Unless")
	}

	frag := Fragment("a", Span(), nil, []*VNode{Em(), nil})
	if frag.Kind != KindFragment || len(frag.Children) != 3 {
		t.Errorf("Fragment children = %d", len(frag.Children))
	}

	items := Range([]string{"x", "", "y"}, func(_ int, s string) *VNode {
		if s == "" {
			return nil
		}
		return Li(s)
	})
	if len(items) != 2 {
		t.Errorf("Range kept %d nodes, want 2", len(items))
	}
}

func TestVKindString(t *testing.T) {
	names := map[VKind]string{
		KindElement:   "Element",
		KindText:      "Text",
		KindFragment:  "Fragment",
		KindComponent: "Component",
		KindRaw:       "Raw",
		VKind(99):     "Unknown",
	}
	for k, want := range names {
		if k.String() != want {
			t.Errorf("%d.String() = %q, want %q", k, k.String(), want)
		}
	}
}
