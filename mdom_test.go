package mdom_test

import (
	"errors"
	"testing"

	"github.com/vango-dev/mdom"
	"github.com/vango-dev/mdom/pkg/vdom"
)

func TestHandleRoundTrip(t *testing.T) {
	doc, err := mdom.ParseHTML(`<main id="app" title="home"><ul></ul></main>`)
	if err != nil {
		t.Fatal(err)
	}

	list, err := mdom.Query(doc, "#app ul")
	if err != nil {
		t.Fatal(err)
	}
	if err := list.Append(mdom.TextItem("hello")); err != nil {
		t.Fatal(err)
	}
	html, err := list.HTML(mdom.Read())
	if err != nil {
		t.Fatal(err)
	}
	if html != "hello" {
		t.Errorf("HTML = %q, want hello", html)
	}

	app, _ := mdom.Query(doc, "#app")
	if _, _, err := app.Attr(mdom.Set("title", "")); err != nil {
		t.Fatal(err)
	}
	v, ok, _ := app.Attr(mdom.Get("title"))
	if v != "" || !ok {
		t.Errorf("title = %q, %v; want empty and present", v, ok)
	}
	v, _, _ = app.Attr(mdom.Loose("id", ""))
	if v != "app" {
		t.Errorf("Loose read = %q, want app", v)
	}
}

func TestUnresolved(t *testing.T) {
	doc := mdom.NewDocument()
	h, err := mdom.Query(doc, "#nope")
	if err != nil {
		t.Fatal(err)
	}
	if h.Resolved() {
		t.Fatal("handle resolved against an empty document")
	}
	if err := h.Hide(); !errors.Is(err, mdom.ErrUnresolved) {
		t.Errorf("Hide() = %v, want ErrUnresolved", err)
	}
	if h.String() != "<Empty Handle>" {
		t.Errorf("String() = %q", h.String())
	}
}

func TestMount(t *testing.T) {
	doc := mdom.NewDocument()
	body, _ := mdom.Query(doc, "body")

	if err := mdom.MountInto(body, vdom.Ul(vdom.Li("a"), vdom.Li("b"))); err != nil {
		t.Fatal(err)
	}
	items, err := body.Children()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 1 || items[0].String() != "<ul>" {
		t.Errorf("children = %v", items)
	}
	got, _ := body.HTML(mdom.Read())
	if got != "<ul><li>a</li><li>b</li></ul>" {
		t.Errorf("HTML = %q", got)
	}
}
