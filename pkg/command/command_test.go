package command

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
	"github.com/vango-dev/mdom/pkg/host/memhost"
)

const page = `<main id="app" title="home"><h1>Hi</h1><ul id="list"><li id="a">a</li><li id="b">b</li></ul><p id="gone">bye</p></main>`

func newDoc(t *testing.T) *memhost.Document {
	t.Helper()
	doc, err := memhost.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func apply(t *testing.T, host dom.Host, cmd Command, opts ...Option) Result {
	t.Helper()
	res, err := Apply(host, cmd, opts...)
	if err != nil {
		t.Fatalf("Apply(%+v): %v", cmd, err)
	}
	return res
}

func inner(t *testing.T, doc *memhost.Document, sel string) string {
	t.Helper()
	return apply(t, doc, Command{Op: OpHTML, Selector: sel}).Value
}

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Command
		code string
	}{
		{
			name: "read attr",
			in:   `{"op":"attr","selector":"#app","key":"title"}`,
			want: Command{Op: OpAttr, Selector: "#app", Key: "title"},
		},
		{
			name: "write empty attr",
			in:   `{"op":"attr","selector":"#app","key":"title","value":""}`,
			want: Command{Op: OpAttr, Selector: "#app", Key: "title", Value: String("")},
		},
		{
			name: "append items",
			in:   `{"op":"append","selector":"ul","items":[{"tag":"li","text":"c"},{"text":"!"}]}`,
			want: Command{Op: OpAppend, Selector: "ul", Items: []Item{{Tag: "li", Text: String("c")}, {Text: String("!")}}},
		},
		{name: "invalid json", in: `{"op":`, code: "E041"},
		{name: "unknown field", in: `{"op":"show","selector":"p","colour":"red"}`, code: "E041"},
		{name: "unknown op", in: `{"op":"explode","selector":"p"}`, code: "E040"},
		{name: "missing op", in: `{"selector":"p"}`, code: "E041"},
		{name: "attr without key", in: `{"op":"attr","selector":"p"}`, code: "E041"},
		{name: "key and entries", in: `{"op":"style","selector":"p","key":"color","entries":{"a":"b"}}`, code: "E041"},
		{name: "entries and value", in: `{"op":"style","selector":"p","entries":{"a":"b"},"value":"x"}`, code: "E041"},
		{name: "append without items", in: `{"op":"append","selector":"p"}`, code: "E041"},
		{name: "replace with two", in: `{"op":"replace","selector":"p","items":[{"tag":"a"},{"tag":"b"}]}`, code: "E041"},
		{name: "on without event", in: `{"op":"on","selector":"p"}`, code: "E041"},
		{name: "empty item", in: `{"op":"append","selector":"p","items":[{}]}`, code: "E041"},
		{name: "ambiguous item", in: `{"op":"append","selector":"p","items":[{"selector":"a","tag":"b"}]}`, code: "E041"},
		{name: "html without tag", in: `{"op":"append","selector":"p","items":[{"text":"a","html":"<b></b>"}]}`, code: "E041"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse([]byte(tt.in))
			if code := errors.Code(err); code != tt.code {
				t.Fatalf("Parse code = %q, want %q (err %v)", code, tt.code, err)
			}
			if tt.code != "" {
				return
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAttr(t *testing.T) {
	doc := newDoc(t)

	res := apply(t, doc, Command{Op: OpAttr, Selector: "#app", Key: "title"})
	if res.Value != "home" || !res.Present {
		t.Errorf("read = %+v, want home/present", res)
	}

	apply(t, doc, Command{Op: OpAttr, Selector: "#app", Key: "title", Value: String("")})
	res = apply(t, doc, Command{Op: OpAttr, Selector: "#app", Key: "title"})
	if res.Value != "" || !res.Present {
		t.Errorf("after empty write = %+v, want empty/present", res)
	}

	res = apply(t, doc, Command{Op: OpAttr, Selector: "#app", Key: "lang"})
	if res.Present {
		t.Errorf("missing attribute reported present: %+v", res)
	}

	apply(t, doc, Command{Op: OpAttr, Selector: "#app", Entries: map[string]string{"data-b": "2", "data-a": "1"}})
	for k, want := range map[string]string{"data-a": "1", "data-b": "2"} {
		if got := apply(t, doc, Command{Op: OpAttr, Selector: "#app", Key: k}).Value; got != want {
			t.Errorf("%s = %q, want %q", k, got, want)
		}
	}
}

func TestLooseValueReads(t *testing.T) {
	doc := newDoc(t)
	res := apply(t, doc, Command{Op: OpAttr, Selector: "#app", Key: "title", Value: String(""), Loose: true})
	if res.Value != "home" {
		t.Errorf("loose empty value = %+v, want a read of home", res)
	}
	res = apply(t, doc, Command{Op: OpText, Selector: "h1", Value: String(""), Loose: true})
	if res.Value != "Hi" {
		t.Errorf("loose empty text = %+v, want a read of Hi", res)
	}
}

func TestStyleShowHide(t *testing.T) {
	doc := newDoc(t)

	apply(t, doc, Command{Op: OpStyle, Selector: "h1", Key: "color", Value: String("red")})
	res := apply(t, doc, Command{Op: OpStyle, Selector: "h1", Key: "color"})
	if res.Value != "red" || !res.Present {
		t.Errorf("style = %+v, want red", res)
	}

	apply(t, doc, Command{Op: OpHide, Selector: "h1"})
	if got := apply(t, doc, Command{Op: OpStyle, Selector: "h1", Key: "display"}).Value; got != "none" {
		t.Errorf("display after hide = %q, want none", got)
	}
	apply(t, doc, Command{Op: OpShow, Selector: "h1"})
	if got := apply(t, doc, Command{Op: OpStyle, Selector: "h1", Key: "display"}).Value; got != "block" {
		t.Errorf("display after show = %q, want block", got)
	}
}

func TestContent(t *testing.T) {
	doc := newDoc(t)

	if got := apply(t, doc, Command{Op: OpText, Selector: "h1"}).Value; got != "Hi" {
		t.Errorf("text = %q, want Hi", got)
	}
	apply(t, doc, Command{Op: OpText, Selector: "h1", Value: String("")})
	if got := inner(t, doc, "h1"); got != "" {
		t.Errorf("h1 after empty text write = %q, want empty", got)
	}

	apply(t, doc, Command{Op: OpHTML, Selector: "h1", Value: String("<em>x</em>")})
	if got := inner(t, doc, "h1"); got != "<em>x</em>" {
		t.Errorf("html = %q", got)
	}
}

func TestTreeOps(t *testing.T) {
	doc := newDoc(t)

	res := apply(t, doc, Command{Op: OpChildren, Selector: "#list"})
	if len(res.Nodes) != 2 || !strings.Contains(res.Nodes[0], `id="a"`) {
		t.Errorf("children = %v", res.Nodes)
	}

	res = apply(t, doc, Command{Op: OpParent, Selector: "#a"})
	if len(res.Nodes) != 1 || !strings.HasPrefix(res.Nodes[0], "<ul") {
		t.Errorf("parent = %v", res.Nodes)
	}

	apply(t, doc, Command{Op: OpAppend, Selector: "#list", Items: []Item{
		{Tag: "li", Text: String("c")},
		{Tag: "li", HTML: "<b>d</b>"},
		{Text: String("!")},
		{Selector: "#a"},
	}})
	want := `<li id="b">b</li><li>c</li><li><b>d</b></li>!<li id="a">a</li>`
	if got := inner(t, doc, "#list"); got != want {
		t.Errorf("after append = %q, want %q", got, want)
	}

	apply(t, doc, Command{Op: OpReplace, Selector: "#b", Items: []Item{{Text: String("B")}}})
	apply(t, doc, Command{Op: OpRemove, Selector: "#gone"})
	want = `<h1>Hi</h1><ul id="list">B<li>c</li><li><b>d</b></li>!<li id="a">a</li></ul>`
	if got := inner(t, doc, "#app"); got != want {
		t.Errorf("after replace/remove = %q, want %q", got, want)
	}
}

func TestBadItemLeavesDocumentAlone(t *testing.T) {
	doc := newDoc(t)
	before := inner(t, doc, "#list")

	_, err := Apply(doc, Command{Op: OpAppend, Selector: "#list", Items: []Item{
		{Tag: "li", Text: String("new")},
		{Selector: "#missing"},
	}})
	if errors.Code(err) != "E001" {
		t.Fatalf("code = %q, want E001", errors.Code(err))
	}
	if got := inner(t, doc, "#list"); got != before {
		t.Errorf("list changed to %q", got)
	}
}

func TestUnresolvedSelector(t *testing.T) {
	doc := newDoc(t)

	for _, op := range []string{OpShow, OpHide, OpHTML, OpText, OpChildren, OpRemove, OpParent} {
		_, err := Apply(doc, Command{Op: op, Selector: "#nope"})
		if errors.Code(err) != "E001" {
			t.Errorf("%s on unresolved code = %q, want E001", op, errors.Code(err))
		}
	}

	res := apply(t, doc, Command{Op: OpString, Selector: "#nope"})
	if res.Value != "<Empty Handle>" {
		t.Errorf("string = %q", res.Value)
	}
	if got := apply(t, doc, Command{Op: OpString, Selector: "h1"}).Value; got != "<h1>" {
		t.Errorf("string(h1) = %q, want <h1>", got)
	}
}

func TestOnAndDispatch(t *testing.T) {
	doc := newDoc(t)

	_, err := Apply(doc, Command{Op: OpOn, Selector: "h1", Event: "click"})
	if errors.Code(err) != "E023" {
		t.Errorf("on without listener code = %q, want E023", errors.Code(err))
	}
	_, err = Apply(doc, Command{Op: OpDispatch, Selector: "h1", Event: "click"})
	if errors.Code(err) != "E023" {
		t.Errorf("dispatch without dispatcher code = %q, want E023", errors.Code(err))
	}

	var fired []string
	listen := WithListener(func(cmd Command, ev dom.Event) {
		fired = append(fired, cmd.Selector+":"+ev.Type)
	})
	dispatch := WithDispatcher(func(n dom.Node, event string) error {
		_, err := doc.Dispatch(n, event)
		return err
	})

	apply(t, doc, Command{Op: OpOn, Selector: "#app", Event: "click"}, listen)
	apply(t, doc, Command{Op: OpDispatch, Selector: "h1", Event: "click"}, dispatch)

	if diff := cmp.Diff([]string{"#app:click"}, fired); diff != "" {
		t.Errorf("fired mismatch (-want +got):\n%s", diff)
	}

	_, err = Apply(doc, Command{Op: OpDispatch, Selector: "#nope", Event: "click"}, dispatch)
	if errors.Code(err) != "E001" {
		t.Errorf("dispatch unresolved code = %q, want E001", errors.Code(err))
	}
}

func TestOpsCoverValidate(t *testing.T) {
	for _, op := range Ops {
		err := Command{Op: op}.Validate()
		if errors.Code(err) == "E040" {
			t.Errorf("op %q listed in Ops but rejected as unknown", op)
		}
	}
}

func TestMutates(t *testing.T) {
	tests := []struct {
		cmd  Command
		want bool
	}{
		{Command{Op: OpAttr, Key: "k"}, false},
		{Command{Op: OpAttr, Key: "k", Value: String("")}, true},
		{Command{Op: OpAttr, Key: "k", Value: String(""), Loose: true}, false},
		{Command{Op: OpAttr, Key: "k", Value: String("v"), Loose: true}, true},
		{Command{Op: OpStyle, Entries: map[string]string{"a": "b"}}, true},
		{Command{Op: OpHTML}, false},
		{Command{Op: OpText, Value: String("x")}, true},
		{Command{Op: OpShow}, true},
		{Command{Op: OpAppend}, true},
		{Command{Op: OpReplace}, true},
		{Command{Op: OpChildren}, false},
		{Command{Op: OpOn}, false},
		{Command{Op: OpDispatch}, false},
	}
	for _, tt := range tests {
		if got := tt.cmd.Mutates(); got != tt.want {
			t.Errorf("Mutates(%+v) = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}
