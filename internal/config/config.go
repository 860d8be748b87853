package config

import (
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/mdom/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "mdom.json"

	// YAMLFileName is the alternative YAML configuration file, read when
	// mdom.json is absent.
	YAMLFileName = "mdom.yaml"

	// DefaultDatabase is the sqlite store's default database file.
	DefaultDatabase = "mdom.db"

	// DefaultPort is the default live server port.
	DefaultPort = 3000

	// DefaultHost is the default live server host.
	DefaultHost = "localhost"

	// DefaultDocument is the document name used when none is configured.
	DefaultDocument = "index.html"

	// DefaultNamespace is the default metrics namespace and tracer name.
	DefaultNamespace = "mdom"
)

// Store kinds.
const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
	StoreS3     = "s3"
)

// Config represents the complete mdom.json configuration.
type Config struct {
	// Document is the name of the document commands operate on.
	Document string `json:"document,omitempty" yaml:"document,omitempty"`

	// Store selects where documents are loaded from and saved to.
	Store StoreConfig `json:"store,omitempty" yaml:"store,omitempty"`

	// Serve configures the live server.
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`

	// Log configures the slog handler.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Tracing configures OpenTelemetry spans.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// Metrics configures Prometheus collectors.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	// Kind is "file", "sqlite" or "s3".
	Kind string `json:"kind,omitempty" yaml:"kind,omitempty"`

	// Dir is the root directory of a file store, relative to the config.
	Dir string `json:"dir,omitempty" yaml:"dir,omitempty"`

	// Path is the sqlite database file, relative to the config.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Bucket is the S3 bucket.
	Bucket string `json:"bucket,omitempty" yaml:"bucket,omitempty"`

	// Prefix is prepended to S3 object keys.
	Prefix string `json:"prefix,omitempty" yaml:"prefix,omitempty"`

	// Region is the S3 region.
	Region string `json:"region,omitempty" yaml:"region,omitempty"`

	// Endpoint overrides the S3 endpoint, for MinIO and similar servers.
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`

	// PathStyle forces path-style bucket addressing.
	PathStyle bool `json:"pathStyle,omitempty" yaml:"pathStyle,omitempty"`
}

// ServeConfig configures the live server.
type ServeConfig struct {
	Host string `json:"host,omitempty" yaml:"host,omitempty"`
	Port int    `json:"port,omitempty" yaml:"port,omitempty"`

	// Metrics exposes /metrics.
	Metrics bool `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// TracingConfig configures tracing.
type TracingConfig struct {
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// MetricsConfig configures metrics.
type MetricsConfig struct {
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads configuration from the specified directory. It looks for
// mdom.json, then mdom.yaml.
func Load(dir string) (*Config, error) {
	jsonPath := filepath.Join(dir, ConfigFileName)
	yamlPath := filepath.Join(dir, YAMLFileName)
	if _, err := os.Stat(jsonPath); os.IsNotExist(err) {
		if _, err := os.Stat(yamlPath); err == nil {
			return LoadFile(yamlPath)
		}
	}
	return LoadFile(jsonPath)
}

// LoadFile reads configuration from the specified file path. Files
// ending in .yaml or .yml are read as YAML, anything else as JSON.
func LoadFile(path string) (*Config, error) {
	name := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E121").
				WithDetail("No " + name + " found in " + filepath.Dir(path)).
				WithSuggestion("Run mdom init, or pass --doc to operate on a file directly")
		}
		return nil, errors.New("E120").Wrap(err)
	}

	cfg := &Config{}
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E120").
			WithDetail("Failed to parse " + name + ": " + err.Error()).
			WithSuggestion("Check the file's syntax")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes the configuration to the file it was loaded from.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.Newf(errors.CategoryConfig, "no config path set")
	}
	return c.SaveTo(c.configPath)
}

// SaveTo writes the configuration to the specified path, as YAML when
// the path ends in .yaml or .yml.
func (c *Config) SaveTo(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.New("E120").Wrap(err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.New("E120").Wrap(err)
	}

	c.configPath = path
	return nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Document == "" {
		c.Document = DefaultDocument
	}

	if c.Store.Kind == "" {
		c.Store.Kind = StoreFile
	}
	if c.Store.Kind == StoreFile && c.Store.Dir == "" {
		c.Store.Dir = "."
	}
	if c.Store.Kind == StoreSQLite && c.Store.Path == "" {
		c.Store.Path = DefaultDatabase
	}
	if c.Store.Kind == StoreS3 && c.Store.Region == "" {
		c.Store.Region = "us-east-1"
	}

	if c.Serve.Host == "" {
		c.Serve.Host = DefaultHost
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = DefaultPort
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("E122").
			WithDetail("Port must be between 0 and 65535")
	}

	switch c.Store.Kind {
	case StoreFile, StoreSQLite:
	case StoreS3:
		if c.Store.Bucket == "" {
			return errors.New("E123").
				WithDetail("store.bucket is required for the s3 store")
		}
	default:
		return errors.New("E123").
			WithDetailf("store.kind %q", c.Store.Kind).
			WithSuggestion(`Use "file", "sqlite" or "s3"`)
	}

	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	if f := c.Log.Format; f != "text" && f != "json" {
		return errors.New("E124").
			WithDetailf("log.format %q", f).
			WithSuggestion(`Use "text" or "json"`)
	}
	return nil
}

// SlogLevel returns the configured log level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return 0, errors.New("E124").
			WithDetailf("log.level %q", c.Log.Level).
			WithSuggestion("Use debug, info, warn or error")
	}
	return level, nil
}

// Logger builds a slog logger writing to w as configured. Invalid levels
// fall back to info.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, err := c.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(c.Log.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Address returns the host:port the live server listens on.
func (c *Config) Address() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// URL returns the live server's base URL.
func (c *Config) URL() string {
	return "http://" + c.Address()
}

// StoreDir returns the absolute root of a file store.
func (c *Config) StoreDir() string {
	dir := c.Store.Dir
	if dir == "" {
		dir = "."
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(c.Dir(), dir)
}

// StorePath returns the absolute path of a sqlite store's database.
func (c *Config) StorePath() string {
	p := c.Store.Path
	if p == "" {
		p = DefaultDatabase
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir(), p)
}

// Exists checks if a config file, JSON or YAML, exists in the given
// directory.
func Exists(dir string) bool {
	for _, name := range []string{ConfigFileName, YAMLFileName} {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

// FindProjectRoot walks up directories to find the project root.
// Returns the directory containing mdom.json, or an error if not found.
func FindProjectRoot(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		if Exists(dir) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E121").
				WithDetail("No mdom.json found in " + startDir + " or any parent directory")
		}
		dir = parent
	}
}

// LoadFromWorkingDir loads configuration from the nearest mdom.json at or
// above the working directory.
func LoadFromWorkingDir() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	root, err := FindProjectRoot(wd)
	if err != nil {
		return nil, err
	}

	return Load(root)
}
