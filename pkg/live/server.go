package live

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/command"
	"github.com/vango-dev/mdom/pkg/dom"
	"github.com/vango-dev/mdom/pkg/host/instrument"
	"github.com/vango-dev/mdom/pkg/host/memhost"
	"github.com/vango-dev/mdom/pkg/store"
)

// Config configures a Server.
type Config struct {
	// Logger receives request and session logs. Default: slog.Default()
	Logger *slog.Logger

	// Registry holds the server's and the host decorator's collectors.
	// Default: a fresh registry per server.
	Registry *prometheus.Registry

	// Metrics exposes /metrics.
	Metrics bool

	// Namespace is the metrics namespace (default: "mdom").
	Namespace string

	// TracerName names the decorator's tracer (default: "mdom").
	TracerName string

	// Store and Name, when both set, receive the document after every
	// mutation.
	Store store.Store
	Name  string

	// ReadTimeout bounds the wait for the next socket message.
	// Default: 60s
	ReadTimeout time.Duration

	// WriteTimeout bounds each socket write. Default: 10s
	WriteTimeout time.Duration

	// SendBuffer is the per-socket queue length; sockets that fall
	// further behind are dropped. Default: 64
	SendBuffer int

	// MaxBody limits POST /commands bodies. Default: 1 MiB
	MaxBody int64

	// CheckOrigin validates websocket origins. Default: same host.
	CheckOrigin func(*http.Request) bool
}

func (c *Config) applyDefaults() {
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.Namespace == "" {
		c.Namespace = "mdom"
	}
	if c.TracerName == "" {
		c.TracerName = "mdom"
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 60 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 10 * time.Second
	}
	if c.SendBuffer == 0 {
		c.SendBuffer = 64
	}
	if c.MaxBody == 0 {
		c.MaxBody = 1 << 20
	}
}

// Server owns a document and the sockets watching it.
type Server struct {
	config   Config
	logger   *slog.Logger
	metrics  *metrics
	upgrader websocket.Upgrader

	// mu serialises every access to doc and host. seq counts the
	// renders that were broadcast; rendered is the latest of them.
	mu       sync.Mutex
	doc      *memhost.Document
	host     *instrument.Host
	seq      uint64
	rendered string

	// saveMu guards the pending save. One goroutine at a time writes to
	// the store, always the highest sequence queued.
	saveMu     sync.Mutex
	saving     bool
	pending    string
	pendingSeq uint64
	savedSeq   uint64

	clientsMu sync.Mutex
	clients   map[*client]struct{}
	closed    bool
}

// New returns a server for doc.
func New(doc *memhost.Document, config Config) *Server {
	config.applyDefaults()
	logger := config.Logger.With("component", "mdom.live")

	s := &Server{
		config:  config,
		logger:  logger,
		metrics: newMetrics(config.Registry, config.Namespace),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		doc:     doc,
		clients: make(map[*client]struct{}),
	}
	s.host = s.wrap(doc)
	s.rendered = doc.String()
	return s
}

func (s *Server) wrap(doc *memhost.Document) *instrument.Host {
	return instrument.Wrap(doc,
		instrument.WithRegistry(s.config.Registry),
		instrument.WithNamespace(s.config.Namespace),
		instrument.WithTracerName(s.config.TracerName),
		instrument.WithLogger(s.config.Logger),
	)
}

// Registry returns the registry the server's collectors live in.
func (s *Server) Registry() *prometheus.Registry {
	return s.config.Registry
}

// HTML renders the current document.
func (s *Server) HTML() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc.String()
}

// Apply runs cmd against the document. Mutations are broadcast and, with
// a configured store, saved. A mutating command that fails after changing
// the document, such as a bulk write stopped by a bad entry, is broadcast
// and saved too.
func (s *Server) Apply(ctx context.Context, cmd command.Command) (command.Result, error) {
	s.mu.Lock()
	res, err := command.Apply(s.host, cmd,
		command.WithListener(s.onEvent),
		command.WithDispatcher(s.dispatch),
	)
	var (
		html string
		seq  uint64
	)
	if cmd.Mutates() {
		html = s.doc.String()
		if err == nil || html != s.rendered {
			s.seq++
			seq = s.seq
			s.rendered = html
			s.broadcast(Message{Type: TypeDocument, HTML: html})
		}
	}
	s.mu.Unlock()

	status := "success"
	if err != nil {
		status = "error"
		s.logger.Debug("command failed", "op", cmd.Op, "selector", cmd.Selector, "error", err)
	}
	s.metrics.commandsTotal.WithLabelValues(cmd.Op, status).Inc()

	if seq > 0 {
		s.persist(ctx, seq, html)
	}
	return res, err
}

// Reload replaces the document with markup changed outside the server,
// such as an edit to the stored file, and broadcasts it. Markup that
// renders the same as the current document is ignored. Listeners
// registered on the old document are dropped.
func (s *Server) Reload(markup []byte) (bool, error) {
	doc, err := memhost.Parse(bytes.NewReader(markup))
	if err != nil {
		return false, errors.New("E101").WithDetail("reload").Wrap(err)
	}
	html := doc.String()

	s.mu.Lock()
	if html == s.doc.String() {
		s.mu.Unlock()
		return false, nil
	}
	s.doc = doc
	s.host = s.wrap(doc)
	s.seq++
	seq := s.seq
	s.rendered = html
	s.broadcast(Message{Type: TypeDocument, HTML: html})
	s.mu.Unlock()

	// The store already holds the reloaded markup. A save still running
	// rewrites it afterwards.
	s.saveMu.Lock()
	if seq > s.pendingSeq {
		s.pending, s.pendingSeq = html, seq
	}
	if !s.saving {
		s.savedSeq = s.pendingSeq
	}
	s.saveMu.Unlock()

	s.metrics.reloads.Inc()
	s.logger.Info("document reloaded", "bytes", len(html))
	return true, nil
}

// onEvent runs inside Apply while mu is held; it only touches clients.
func (s *Server) onEvent(cmd command.Command, ev dom.Event) {
	msg := Message{Type: TypeEvent, Selector: cmd.Selector, Event: ev.Type}
	if ev.Target != nil {
		msg.Target = ev.Target.String()
	}
	s.broadcast(msg)
}

func (s *Server) dispatch(node dom.Node, event string) error {
	_, err := s.doc.Dispatch(instrument.Unwrap(node), event)
	return err
}

// persist queues render seq for saving. The caller that finds no save
// running writes, and keeps writing the newest queued render until the
// last one written is the newest.
func (s *Server) persist(ctx context.Context, seq uint64, html string) {
	if s.config.Store == nil || s.config.Name == "" {
		return
	}
	ctx = context.WithoutCancel(ctx)

	s.saveMu.Lock()
	if seq > s.pendingSeq {
		s.pending, s.pendingSeq = html, seq
	}
	if s.saving {
		s.saveMu.Unlock()
		return
	}
	s.saving = true
	for s.pendingSeq > s.savedSeq {
		data, next := s.pending, s.pendingSeq
		s.saveMu.Unlock()

		if err := s.config.Store.Save(ctx, s.config.Name, []byte(data)); err != nil {
			s.logger.Warn("save failed", "document", s.config.Name, "error", err)
		}

		s.saveMu.Lock()
		s.savedSeq = next
	}
	s.saving = false
	s.saveMu.Unlock()
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("live server listening", "addr", ln.Addr().String())

	select {
	case err := <-errCh:
		s.Close()
		return err
	case <-ctx.Done():
	}

	s.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.New("E060").WithDetailf("listen %s", addr).Wrap(err)
	}
	return s.Serve(ctx, ln)
}

// Close disconnects every socket and refuses new ones.
func (s *Server) Close() {
	s.clientsMu.Lock()
	s.closed = true
	for c := range s.clients {
		s.removeLocked(c)
	}
	s.clientsMu.Unlock()
}
