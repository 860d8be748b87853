package templates

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vango-dev/mdom/internal/config"
	"github.com/vango-dev/mdom/internal/errors"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"blank", false},
		{"list", false},
		{"s3", false},
		{"nonexistent", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := Get(tt.name)
			if tt.wantErr {
				if errors.Code(err) != "E140" {
					t.Errorf("Get(%q) error = %v, want E140", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tmpl.Name != tt.name {
				t.Errorf("Name = %q, want %q", tmpl.Name, tt.name)
			}
			if tmpl.Description == "" {
				t.Error("template should have a description")
			}
		})
	}
}

func TestList(t *testing.T) {
	if diff := cmp.Diff([]string{"blank", "list", "s3"}, List()); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestCreateFileTemplates(t *testing.T) {
	for _, name := range []string{"blank", "list"} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			tmpl, _ := Get(name)
			cfg := Config{Title: "Fish & Chips", Document: "page.html", Port: 8081}
			if err := tmpl.Create(dir, cfg); err != nil {
				t.Fatalf("Create error: %v", err)
			}

			loaded, err := config.Load(dir)
			if err != nil {
				t.Fatalf("generated mdom.json does not load: %v", err)
			}
			if err := loaded.Validate(); err != nil {
				t.Fatalf("generated mdom.json is invalid: %v", err)
			}
			if loaded.Document != "page.html" || loaded.Serve.Port != 8081 || loaded.Store.Kind != config.StoreFile {
				t.Errorf("config = %+v", loaded)
			}

			page, err := os.ReadFile(filepath.Join(dir, "page.html"))
			if err != nil {
				t.Fatalf("document not created: %v", err)
			}
			if !strings.Contains(string(page), "<title>Fish &amp; Chips</title>") {
				t.Errorf("title not escaped:\n%s", page)
			}
			if !strings.Contains(string(page), `id="app"`) {
				t.Errorf("document has no #app:\n%s", page)
			}
		})
	}
}

func TestCreateS3(t *testing.T) {
	dir := t.TempDir()
	tmpl, _ := Get("s3")
	if err := tmpl.Create(dir, Config{Bucket: "pages", Prefix: "site/"}); err != nil {
		t.Fatal(err)
	}

	loaded, err := config.Load(dir)
	if err != nil {
		t.Fatal(err)
	}
	want := config.StoreConfig{Kind: config.StoreS3, Bucket: "pages", Prefix: "site/", Region: "us-east-1"}
	if diff := cmp.Diff(want, loaded.Store); diff != "" {
		t.Errorf("store mismatch (-want +got):\n%s", diff)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultDocument)); !os.IsNotExist(err) {
		t.Error("s3 template should not write a local document")
	}
}

func TestCreateRefusesExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, config.DefaultDocument)
	if err := os.WriteFile(existing, []byte("mine"), 0644); err != nil {
		t.Fatal(err)
	}

	tmpl, _ := Get("blank")
	err := tmpl.Create(dir, Config{})
	if errors.Code(err) != "E141" {
		t.Fatalf("Create error = %v, want E141", err)
	}
	if config.Exists(dir) {
		t.Error("mdom.json written although another file was in the way")
	}
	data, _ := os.ReadFile(existing)
	if string(data) != "mine" {
		t.Error("existing document overwritten")
	}
}

func TestRenderDefaults(t *testing.T) {
	tmpl, _ := Get("list")
	files, err := tmpl.Render(Config{})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := files[config.DefaultDocument]; !ok {
		t.Errorf("files = %v, want %s", keys(files), config.DefaultDocument)
	}
	if !strings.Contains(string(files["README.md"]), "port 3000") {
		t.Errorf("README:\n%s", files["README.md"])
	}
}

func keys(m map[string][]byte) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
