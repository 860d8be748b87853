package watch

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Op is the kind of change.
type Op int

const (
	// OpWrite covers creation, modification and a rename onto the path.
	OpWrite Op = iota
	// OpRemove covers removal and a rename away from the path.
	OpRemove
)

func (o Op) String() string {
	if o == OpRemove {
		return "remove"
	}
	return "write"
}

// Change represents a settled change to one path.
type Change struct {
	Path string
	Op   Op
}

// Config configures a Watcher.
type Config struct {
	// Paths are files or directories to watch. Files are watched through
	// their directory and filtered by name.
	Paths []string

	// Ignore patterns to skip (names, globs or path segments).
	Ignore []string

	// Debounce is how long a path must stay quiet before it is reported.
	// Default: 100ms
	Debounce time.Duration

	// Logger receives watch errors. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultIgnore contains default patterns to ignore.
var DefaultIgnore = []string{
	".git",
	".mdom-*",
	"*.tmp",
	"*.swp",
	"*~",
}

// Watcher monitors files for changes.
type Watcher struct {
	config   Config
	logger   *slog.Logger
	fs       *fsnotify.Watcher
	files    map[string]bool
	onChange func(Change)

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	pending map[string]pending
}

type pending struct {
	op Op
	at time.Time
}

// New creates a watcher subscribed to config.Paths. Paths must exist.
func New(config Config) (*Watcher, error) {
	if config.Debounce == 0 {
		config.Debounce = 100 * time.Millisecond
	}
	if len(config.Ignore) == 0 {
		config.Ignore = DefaultIgnore
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		config:  config,
		logger:  config.Logger.With("component", "mdom.watch"),
		fs:      fw,
		files:   make(map[string]bool),
		pending: make(map[string]pending),
	}

	dirs := make(map[string]bool)
	for _, p := range config.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, err
		}
		info, err := os.Stat(abs)
		if err != nil {
			fw.Close()
			return nil, err
		}
		dir := abs
		if !info.IsDir() {
			dir = filepath.Dir(abs)
			w.files[abs] = true
		}
		if dirs[dir] {
			continue
		}
		dirs[dir] = true
		if err := fw.Add(dir); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// OnChange sets the callback for changes. It runs on the Start goroutine.
func (w *Watcher) OnChange(fn func(Change)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = fn
}

// Start delivers changes until ctx is done or Stop is called, then
// releases the subscription. A watcher cannot be restarted.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.running = false
		w.mu.Unlock()
		w.fs.Close()
	}()

	ticker := time.NewTicker(w.config.Debounce / 2)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-stopCh:
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case now := <-ticker.C:
			w.flush(now)
		}
	}
}

// Stop stops a running watcher.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		close(w.stopCh)
		w.running = false
	}
}

// IsRunning returns whether the watcher is running.
func (w *Watcher) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Watcher) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)
	if w.shouldIgnore(name) {
		return
	}
	if len(w.files) > 0 && !w.files[name] {
		return
	}

	var op Op
	switch {
	case event.Has(fsnotify.Create), event.Has(fsnotify.Write):
		op = OpWrite
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = OpRemove
	default:
		return
	}

	w.mu.Lock()
	w.pending[name] = pending{op: op, at: time.Now()}
	w.mu.Unlock()
}

// flush reports paths that have been quiet for the debounce window.
func (w *Watcher) flush(now time.Time) {
	w.mu.Lock()
	callback := w.onChange
	var settled []Change
	for p, pd := range w.pending {
		if now.Sub(pd.at) >= w.config.Debounce {
			settled = append(settled, Change{Path: p, Op: pd.op})
			delete(w.pending, p)
		}
	}
	w.mu.Unlock()

	if callback == nil {
		return
	}
	for _, c := range settled {
		callback(c)
	}
}

// shouldIgnore checks if a path should be ignored.
func (w *Watcher) shouldIgnore(fullPath string) bool {
	name := filepath.Base(fullPath)
	normalized := filepath.ToSlash(fullPath)

	for _, pattern := range w.config.Ignore {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		if name == pattern {
			return true
		}

		hasPathSep := strings.ContainsAny(pattern, `/\`)
		if strings.ContainsAny(pattern, "*?[") {
			target := name
			if hasPathSep {
				target = normalized
				pattern = filepath.ToSlash(pattern)
			}
			if matched, _ := path.Match(pattern, target); matched {
				return true
			}
			continue
		}

		if hasPathSep {
			if hasSegments(normalized, filepath.ToSlash(pattern)) {
				return true
			}
			continue
		}
		if hasSegments(normalized, pattern) {
			return true
		}
	}
	return false
}

// hasSegments reports whether the segments of pattern occur contiguously
// in p.
func hasSegments(p, pattern string) bool {
	parts := segments(p)
	want := segments(pattern)
	if len(want) == 0 || len(want) > len(parts) {
		return false
	}
	for i := 0; i <= len(parts)-len(want); i++ {
		match := true
		for j := range want {
			if parts[i+j] != want[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func segments(p string) []string {
	var out []string
	for _, part := range strings.Split(p, "/") {
		if part != "" && part != "." {
			out = append(out, part)
		}
	}
	return out
}
