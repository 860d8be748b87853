package instrument

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/embedded"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
	"github.com/vango-dev/mdom/pkg/host/memhost"
)

type recordedSpan struct {
	noop.Span
	name   string
	attrs  []attribute.KeyValue
	status codes.Code
	errs   []error
	ended  bool
}

func (s *recordedSpan) End(...trace.SpanEndOption)                  { s.ended = true }
func (s *recordedSpan) SetStatus(code codes.Code, _ string)         { s.status = code }
func (s *recordedSpan) RecordError(err error, _ ...trace.EventOption) { s.errs = append(s.errs, err) }
func (s *recordedSpan) SetAttributes(kv ...attribute.KeyValue)      { s.attrs = append(s.attrs, kv...) }

type recordingTracer struct {
	embedded.Tracer
	mu    sync.Mutex
	spans []*recordedSpan
}

func (t *recordingTracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	cfg := trace.NewSpanStartConfig(opts...)
	s := &recordedSpan{name: name, attrs: cfg.Attributes()}
	t.mu.Lock()
	t.spans = append(t.spans, s)
	t.mu.Unlock()
	return ctx, s
}

type recordingProvider struct {
	embedded.TracerProvider
	tracer *recordingTracer
}

func (p *recordingProvider) Tracer(string, ...trace.TracerOption) trace.Tracer {
	return p.tracer
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("counter Write() error: %v", err)
	}
	return m.GetCounter().GetValue()
}

func histogramCount(t *testing.T, o prometheus.Observer) uint64 {
	t.Helper()
	metric, ok := o.(prometheus.Metric)
	if !ok {
		t.Fatalf("observer %T does not implement prometheus.Metric", o)
	}
	var m dto.Metric
	if err := metric.Write(&m); err != nil {
		t.Fatalf("histogram Write() error: %v", err)
	}
	return m.GetHistogram().GetSampleCount()
}

type fixture struct {
	doc    *memhost.Document
	host   *Host
	tracer *recordingTracer
	logs   *bytes.Buffer
}

func newFixture(t *testing.T, markup string) fixture {
	t.Helper()
	doc, err := memhost.ParseString(markup)
	if err != nil {
		t.Fatal(err)
	}
	tracer := &recordingTracer{}
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	host := Wrap(doc,
		WithRegistry(prometheus.NewRegistry()),
		WithLogger(logger),
		WithTracerProvider(&recordingProvider{tracer: tracer}),
	)
	return fixture{doc: doc, host: host, tracer: tracer, logs: logs}
}

func TestOperationsAreCounted(t *testing.T) {
	f := newFixture(t, `<div id="app" title="x"></div>`)

	h, err := dom.Query(f.host, "#app")
	if err != nil {
		t.Fatal(err)
	}
	if v, ok, err := h.Attr(dom.Get("title")); err != nil || !ok || v != "x" {
		t.Fatalf("Attr(get) = %q, %v, %v", v, ok, err)
	}
	if _, _, err := h.Attr(dom.Set("bad name", "1")); err == nil {
		t.Fatal("expected invalid attribute name to fail")
	}

	m := f.host.metrics
	if got := counterValue(t, m.operations.WithLabelValues("querySelector", "success")); got != 1 {
		t.Errorf("querySelector success = %v, want 1", got)
	}
	if got := counterValue(t, m.operations.WithLabelValues("getAttribute", "success")); got != 1 {
		t.Errorf("getAttribute success = %v, want 1", got)
	}
	if got := counterValue(t, m.operations.WithLabelValues("setAttribute", "error")); got != 1 {
		t.Errorf("setAttribute error = %v, want 1", got)
	}
	if got := histogramCount(t, m.duration.WithLabelValues("getAttribute")); got != 1 {
		t.Errorf("getAttribute duration samples = %d, want 1", got)
	}
}

func TestSpans(t *testing.T) {
	f := newFixture(t, `<div id="app"></div>`)

	h, err := dom.Query(f.host, "#app")
	if err != nil {
		t.Fatal(err)
	}
	_, _, _ = h.Attr(dom.Set("bad name", "1"))

	spans := f.tracer.spans
	if len(spans) != 2 {
		t.Fatalf("spans = %d, want 2", len(spans))
	}
	if spans[0].name != "mdom.querySelector" || spans[0].status != codes.Ok || !spans[0].ended {
		t.Errorf("span 0 = %s status %v ended %v", spans[0].name, spans[0].status, spans[0].ended)
	}
	var target string
	for _, kv := range spans[0].attrs {
		if kv.Key == "mdom.target" {
			target = kv.Value.AsString()
		}
	}
	if target != "#app" {
		t.Errorf("mdom.target = %q, want #app", target)
	}
	if spans[1].status != codes.Error || len(spans[1].errs) != 1 {
		t.Errorf("span 1 status %v errs %d, want Error and 1", spans[1].status, len(spans[1].errs))
	}
	if errors.Code(spans[1].errs[0]) != "E020" {
		t.Errorf("recorded error code = %q, want E020", errors.Code(spans[1].errs[0]))
	}
}

func TestDebugLogs(t *testing.T) {
	f := newFixture(t, `<p></p>`)
	if _, err := dom.Query(f.host, "p"); err != nil {
		t.Fatal(err)
	}
	out := f.logs.String()
	for _, want := range []string{"host operation", "op=querySelector", "component=mdom.host"} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q missing %q", out, want)
		}
	}
}

func TestNoMatchStaysUnresolved(t *testing.T) {
	f := newFixture(t, `<p></p>`)
	h, err := dom.Query(f.host, "#missing")
	if err != nil {
		t.Fatal(err)
	}
	if h.Resolved() {
		t.Error("query with no match resolved through decorator")
	}
}

func TestTreeOperationsUnwrapPeers(t *testing.T) {
	f := newFixture(t, `<ul id="list"><li id="a">a</li></ul>`)

	list, _ := dom.Query(f.host, "#list")
	item, err := dom.Create(f.host, "li")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := item.Text(dom.Write("b")); err != nil {
		t.Fatal(err)
	}
	if err := list.Append(dom.HandleItem(item), dom.TextItem("!")); err != nil {
		t.Fatalf("Append through decorator: %v", err)
	}

	a, _ := dom.Query(f.host, "#a")
	repl, _ := dom.Create(f.host, "li")
	if err := a.Replace(dom.HandleItem(repl)); err != nil {
		t.Fatalf("Replace through decorator: %v", err)
	}

	kids, err := list.Children()
	if err != nil {
		t.Fatal(err)
	}
	if len(kids) != 2 {
		t.Fatalf("Children = %d, want 2", len(kids))
	}
	for _, k := range kids {
		if _, ok := k.(*Node); !ok {
			t.Errorf("child %T is not decorated", k)
		}
	}

	got, _ := list.HTML(dom.Read())
	if want := "<li></li><li>b</li>!"; got != want {
		t.Errorf("HTML = %q, want %q", got, want)
	}
}

func TestListenerTargetsAreDecorated(t *testing.T) {
	f := newFixture(t, `<button id="b">go</button>`)

	b, _ := dom.Query(f.host, "#b")
	var seen dom.Event
	if err := b.On("click", func(ev dom.Event) { seen = ev }); err != nil {
		t.Fatal(err)
	}

	if _, err := f.doc.Dispatch(Unwrap(b.Node()), "click"); err != nil {
		t.Fatal(err)
	}
	if seen.Type != "click" {
		t.Fatalf("listener saw %q, want click", seen.Type)
	}
	if _, ok := seen.Target.(*Node); !ok {
		t.Errorf("Target %T is not decorated", seen.Target)
	}
	if got := counterValue(t, f.host.metrics.listeners.WithLabelValues("click")); got != 1 {
		t.Errorf("listener calls = %v, want 1", got)
	}
}

func TestSharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a := Wrap(memhost.New(), WithRegistry(reg))
	b := Wrap(memhost.New(), WithRegistry(reg))
	if a.metrics.operations != b.metrics.operations {
		t.Error("decorators on one registry do not share collectors")
	}
}

func TestUnwrap(t *testing.T) {
	doc := memhost.New()
	inner, _ := doc.CreateElement("div")
	outer := Wrap(Wrap(doc, WithRegistry(prometheus.NewRegistry())), WithRegistry(prometheus.NewRegistry()))
	node, _ := outer.CreateElement("div")

	if Unwrap(inner) != inner {
		t.Error("Unwrap changed an undecorated node")
	}
	if _, ok := Unwrap(node).(*memhost.Node); !ok {
		t.Errorf("Unwrap(double decorated) = %T, want *memhost.Node", Unwrap(node))
	}
}
