package instrument

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/mdom/pkg/dom"
)

// Host decorates an inner dom.Host.
type Host struct {
	inner   dom.Host
	config  Config
	metrics *metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

var _ dom.Host = (*Host)(nil)

// Wrap returns a decorator around inner.
func Wrap(inner dom.Host, opts ...Option) *Host {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	config.finish()

	return &Host{
		inner:   inner,
		config:  config,
		metrics: newMetrics(config),
		tracer:  config.TracerProvider.Tracer(config.TracerName),
		logger:  config.Logger.With("component", "mdom.host"),
	}
}

// Inner returns the decorated host.
func (h *Host) Inner() dom.Host {
	return h.inner
}

// QuerySelector implements dom.Host.
func (h *Host) QuerySelector(selector string) (dom.Node, error) {
	var node dom.Node
	err := h.observe("querySelector", selector, func() (err error) {
		node, err = h.inner.QuerySelector(selector)
		return err
	})
	return h.wrap(node), err
}

// CreateElement implements dom.Host.
func (h *Host) CreateElement(tag string) (dom.Node, error) {
	var node dom.Node
	err := h.observe("createElement", tag, func() (err error) {
		node, err = h.inner.CreateElement(tag)
		return err
	})
	return h.wrap(node), err
}

// CreateTextNode implements dom.Host.
func (h *Host) CreateTextNode(text string) (dom.Node, error) {
	var node dom.Node
	err := h.observe("createTextNode", "#text", func() (err error) {
		node, err = h.inner.CreateTextNode(text)
		return err
	})
	return h.wrap(node), err
}

func (h *Host) observe(op, target string, fn func() error) error {
	start := time.Now()
	_, span := h.tracer.Start(h.config.Context, "mdom."+op,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("mdom.op", op),
			attribute.String("mdom.target", target),
		),
	)
	defer span.End()

	err := fn()
	elapsed := time.Since(start)

	status := "success"
	if err != nil {
		status = "error"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	h.metrics.operations.WithLabelValues(op, status).Inc()
	h.metrics.duration.WithLabelValues(op).Observe(elapsed.Seconds())
	if err != nil {
		h.logger.Debug("host operation failed", "op", op, "target", target, "duration", elapsed, "error", err)
	} else {
		h.logger.Debug("host operation", "op", op, "target", target, "duration", elapsed)
	}
	return err
}

func (h *Host) wrap(n dom.Node) dom.Node {
	if n == nil {
		return nil
	}
	if w, ok := n.(*Node); ok && w.host == h {
		return w
	}
	return &Node{host: h, inner: n}
}

func (h *Host) wrapAll(nodes []dom.Node) []dom.Node {
	if nodes == nil {
		return nil
	}
	out := make([]dom.Node, len(nodes))
	for i, n := range nodes {
		out[i] = h.wrap(n)
	}
	return out
}

// Unwrap returns the inner node behind n, or n itself when it is not a
// decorated node.
func Unwrap(n dom.Node) dom.Node {
	for {
		w, ok := n.(*Node)
		if !ok {
			return n
		}
		n = w.inner
	}
}
