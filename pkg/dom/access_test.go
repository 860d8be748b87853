package dom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAccessConstructors(t *testing.T) {
	tests := []struct {
		name     string
		access   Access
		wantKind AccessKind
		wantKey  string
		wantVal  string
	}{
		{"get", Get("id"), AccessGet, "id", ""},
		{"set", Set("id", "x"), AccessSet, "id", "x"},
		{"set empty", Set("id", ""), AccessSet, "id", ""},
		{"loose no value", Loose("id"), AccessGet, "id", ""},
		{"loose empty", Loose("id", ""), AccessGet, "id", ""},
		{"loose value", Loose("id", "x"), AccessSet, "id", "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.access.Kind() != tt.wantKind {
				t.Errorf("Kind() = %v, want %v", tt.access.Kind(), tt.wantKind)
			}
			if tt.access.Key() != tt.wantKey {
				t.Errorf("Key() = %q, want %q", tt.access.Key(), tt.wantKey)
			}
			if tt.access.Value() != tt.wantVal {
				t.Errorf("Value() = %q, want %q", tt.access.Value(), tt.wantVal)
			}
		})
	}
}

func TestEntriesSorted(t *testing.T) {
	got := Entries(map[string]string{"b": "2", "a": "1", "c": "3"})
	want := []Entry{{"a", "1"}, {"b", "2"}, {"c", "3"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
	if SetMany(got...).Kind() != AccessSetMany {
		t.Error("SetMany kind")
	}
}

func TestContent(t *testing.T) {
	if Read().IsWrite() {
		t.Error("Read() writes")
	}
	if w := Write(""); !w.IsWrite() || w.Value() != "" {
		t.Error("Write(\"\") must write an empty value")
	}
	if LooseContent("").IsWrite() || LooseContent().IsWrite() {
		t.Error("LooseContent with no or empty value must read")
	}
	if c := LooseContent("x"); !c.IsWrite() || c.Value() != "x" {
		t.Error("LooseContent(x) must write x")
	}
}

func TestKindStrings(t *testing.T) {
	if AccessSetMany.String() != "setMany" || AccessKind(0).String() != "invalid" {
		t.Error("AccessKind.String")
	}
	if ItemText.String() != "text" || ItemKind(0).String() != "invalid" {
		t.Error("ItemKind.String")
	}
}

func TestItemString(t *testing.T) {
	if got := TextItem("a").String(); got != `"a"` {
		t.Errorf("TextItem String = %q", got)
	}
	if got := HandleItem(nil).String(); got != "<Empty Handle>" {
		t.Errorf("nil HandleItem String = %q", got)
	}
	if got := (Item{}).String(); got != "<invalid item>" {
		t.Errorf("zero Item String = %q", got)
	}
}
