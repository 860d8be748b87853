package templates

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/vango-dev/mdom/internal/config"
	"github.com/vango-dev/mdom/internal/errors"
)

// Config contains template variables.
type Config struct {
	// Title is the page title.
	Title string

	// Document is the document name written to mdom.json.
	Document string

	// Port is the live server port.
	Port int

	// Bucket, Region and Prefix configure the s3 template.
	Bucket string
	Region string
	Prefix string
}

func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = "mdom"
	}
	if c.Document == "" {
		c.Document = config.DefaultDocument
	}
	if c.Port == 0 {
		c.Port = config.DefaultPort
	}
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	return c
}

// Template represents a project template.
type Template struct {
	// Name is the template name.
	Name string

	// Description describes the template.
	Description string

	// Files maps relative paths to file contents. A path may itself
	// contain template actions.
	Files map[string]string
}

var funcs = template.FuncMap{
	// json renders v as a JSON literal.
	"json": func(v any) (string, error) {
		data, err := json.Marshal(v)
		return string(data), err
	},
}

// Available templates.
var templates = map[string]*Template{
	"blank": blankTemplate(),
	"list":  listTemplate(),
	"s3":    s3Template(),
}

// Get returns a template by name.
func Get(name string) (*Template, error) {
	tmpl, ok := templates[name]
	if !ok {
		return nil, errors.New("E140").
			WithDetail("Template '" + name + "' not found").
			WithSuggestion("Available templates: " + strings.Join(List(), ", "))
	}
	return tmpl, nil
}

// List returns all available template names, sorted.
func List() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render executes every file of the template. The result maps rendered
// relative paths to contents.
func (t *Template) Render(cfg Config) (map[string][]byte, error) {
	cfg = cfg.withDefaults()
	out := make(map[string][]byte, len(t.Files))
	for relPath, content := range t.Files {
		path, err := execute(relPath, relPath, cfg)
		if err != nil {
			return nil, err
		}
		data, err := execute(relPath, content, cfg)
		if err != nil {
			return nil, err
		}
		out[filepath.FromSlash(string(path))] = data
	}
	return out, nil
}

// Create renders the template into dir. No file is written when any
// target already exists.
func (t *Template) Create(dir string, cfg Config) error {
	files, err := t.Render(cfg)
	if err != nil {
		return err
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		full := filepath.Join(dir, p)
		if _, err := os.Stat(full); err == nil {
			return errors.New("E141").
				WithDetail(full).
				WithSuggestion("Remove the file or initialise another directory")
		}
	}

	for _, p := range paths {
		full := filepath.Join(dir, p)
		if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(full, files[p], 0644); err != nil {
			return err
		}
	}
	return nil
}

func execute(name, text string, cfg Config) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(funcs).Parse(text)
	if err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "invalid template %s: %v", name, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		return nil, errors.Newf(errors.CategoryCLI, "template execute error %s: %v", name, err)
	}
	return buf.Bytes(), nil
}

func blankTemplate() *Template {
	return &Template{
		Name:        "blank",
		Description: "An empty page with a #app mount point",
		Files: map[string]string{
			config.ConfigFileName: `{
  "document": {{json .Document}},
  "store": {
    "kind": "file",
    "dir": "."
  },
  "serve": {
    "port": {{.Port}}
  }
}
`,
			"{{.Document}}": `<!DOCTYPE html>
<html>
<head><title>{{html .Title}}</title></head>
<body><main id="app"></main></body>
</html>
`,
		},
	}
}

func listTemplate() *Template {
	return &Template{
		Name:        "list",
		Description: "A page with a list to append to",
		Files: map[string]string{
			config.ConfigFileName: `{
  "document": {{json .Document}},
  "store": {
    "kind": "file",
    "dir": "."
  },
  "serve": {
    "port": {{.Port}},
    "metrics": true
  },
  "log": {
    "level": "info",
    "format": "text"
  }
}
`,
			"{{.Document}}": `<!DOCTYPE html>
<html>
<head><title>{{html .Title}}</title></head>
<body>
<main id="app">
<h1>{{html .Title}}</h1>
<ul id="items"><li>first</li></ul>
</main>
</body>
</html>
`,
			"README.md": `# {{.Title}}

Edit {{.Document}} with mdom:

` + "```" + `bash
mdom text h1
mdom append '#items' tag:li=second --write
mdom attr '#items' data-count 2 --write
mdom serve
` + "```" + `

The live server listens on port {{.Port}} and serves the document at /,
commands at POST /commands, a websocket at /ws and metrics at /metrics.
`,
		},
	}
}

func s3Template() *Template {
	return &Template{
		Name:        "s3",
		Description: "A bucket-backed store; the document lives in S3",
		Files: map[string]string{
			config.ConfigFileName: `{
  "document": {{json .Document}},
  "store": {
    "kind": "s3",
    "bucket": {{json .Bucket}},
    "prefix": {{json .Prefix}},
    "region": {{json .Region}}
  },
  "serve": {
    "port": {{.Port}}
  }
}
`,
		},
	}
}
