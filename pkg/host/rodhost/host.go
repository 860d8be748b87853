package rodhost

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
)

// Options configures Open.
type Options struct {
	// ControlURL connects to an existing browser; empty launches one.
	ControlURL string

	// Bin is the browser binary; empty lets the launcher find or download one.
	Bin string

	// Headless runs a launched browser without a window.
	Headless bool

	// URL is the page to open. Default: about:blank.
	URL string
}

// Host is a dom.Host over one rod page.
type Host struct {
	page *rod.Page

	mu       sync.Mutex
	bindings []func() error
	seq      atomic.Uint64
}

var _ dom.Host = (*Host)(nil)

// New returns a host over an already opened page.
func New(page *rod.Page) *Host {
	return &Host{page: page}
}

// Open launches or connects to a browser, opens opts.URL and returns the
// host and a function that closes everything it started.
func Open(ctx context.Context, opts Options) (*Host, func() error, error) {
	controlURL := opts.ControlURL
	var l *launcher.Launcher
	if controlURL == "" {
		l = launcher.New().Headless(opts.Headless)
		if opts.Bin != "" {
			l = l.Bin(opts.Bin)
		}
		u, err := l.Launch()
		if err != nil {
			return nil, nil, remote("launch browser", err)
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return nil, nil, remote("connect", err)
	}

	url := opts.URL
	if url == "" {
		url = "about:blank"
	}
	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		_ = browser.Close()
		return nil, nil, remote("open page", err)
	}
	if err := page.WaitLoad(); err != nil {
		_ = browser.Close()
		return nil, nil, remote("wait load", err)
	}

	h := New(page)
	closeFn := func() error {
		h.Close()
		err := browser.Close()
		if l != nil {
			l.Cleanup()
		}
		return err
	}
	return h, closeFn, nil
}

// Page returns the underlying page.
func (h *Host) Page() *rod.Page {
	return h.page
}

// Close removes the page bindings created for listeners.
func (h *Host) Close() {
	h.mu.Lock()
	stops := h.bindings
	h.bindings = nil
	h.mu.Unlock()
	for _, stop := range stops {
		_ = stop()
	}
}

// QuerySelector implements dom.Host. It does not wait for the selector
// to appear.
func (h *Host) QuerySelector(selector string) (dom.Node, error) {
	ok, el, err := h.page.Has(selector)
	if err != nil {
		return nil, remote("querySelector "+selector, err)
	}
	if !ok {
		return nil, nil
	}
	return &Node{host: h, el: el}, nil
}

// CreateElement implements dom.Host.
func (h *Host) CreateElement(tag string) (dom.Node, error) {
	el, err := h.page.ElementByJS(rod.Eval(`(tag) => document.createElement(tag)`, tag))
	if err != nil {
		return nil, remote("createElement "+tag, err)
	}
	return &Node{host: h, el: el}, nil
}

// CreateTextNode implements dom.Host.
func (h *Host) CreateTextNode(text string) (dom.Node, error) {
	el, err := h.page.ElementByJS(rod.Eval(`(text) => document.createTextNode(text)`, text))
	if err != nil {
		return nil, remote("createTextNode", err)
	}
	return &Node{host: h, el: el}, nil
}

func (h *Host) bindingName() string {
	return fmt.Sprintf("__mdomListener%d", h.seq.Add(1))
}

func (h *Host) keep(stop func() error) {
	h.mu.Lock()
	h.bindings = append(h.bindings, stop)
	h.mu.Unlock()
}

func remote(op string, err error) error {
	return errors.New("E024").WithDetail(op).Wrap(err)
}
