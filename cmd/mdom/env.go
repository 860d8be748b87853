package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/mdom/internal/config"
	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/pkg/dom"
	"github.com/vango-dev/mdom/pkg/host/instrument"
	"github.com/vango-dev/mdom/pkg/host/memhost"
	"github.com/vango-dev/mdom/pkg/store"
)

// env is the configuration, store and document a command runs against.
type env struct {
	cfg    *config.Config
	store  store.Store
	name   string
	logger *slog.Logger
}

// loadConfig honours --config, then the nearest mdom.json, then defaults.
func loadConfig(g *globals) (*config.Config, error) {
	if g.configPath != "" {
		return config.LoadFile(g.configPath)
	}
	cfg, err := config.LoadFromWorkingDir()
	if errors.Code(err) == "E121" {
		return config.New(), nil
	}
	return cfg, err
}

func newEnv(ctx context.Context, g *globals, stderr io.Writer) (*env, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, name: cfg.Document, logger: cfg.Logger(stderr)}
	if g.docPath != "" {
		abs, err := filepath.Abs(g.docPath)
		if err != nil {
			return nil, err
		}
		e.store, err = store.NewFileStore(filepath.Dir(abs))
		if err != nil {
			return nil, err
		}
		e.name = filepath.Base(abs)
		return e, nil
	}

	e.store, err = store.FromConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return e, nil
}

// close releases the store.
func (e *env) close() {
	if c, ok := e.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			e.logger.Warn("closing store", "error", err)
		}
	}
}

// load reads the document. When missing is true a missing document
// yields an empty one.
func (e *env) load(ctx context.Context, missing bool) (*memhost.Document, error) {
	data, err := e.store.Load(ctx, e.name)
	if err != nil {
		if missing && errors.Code(err) == "E100" {
			e.logger.Info("starting from an empty document", "document", e.name)
			return memhost.New(), nil
		}
		return nil, err
	}
	doc, err := memhost.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, errors.New("E101").WithDetailf("parse %q", e.name).Wrap(err)
	}
	return doc, nil
}

func (e *env) save(ctx context.Context, doc *memhost.Document) error {
	if err := e.store.Save(ctx, e.name, []byte(doc.String())); err != nil {
		return err
	}
	e.logger.Debug("document saved", "document", e.name)
	return nil
}

// host decorates doc so every operation is logged at debug level.
func (e *env) host(doc *memhost.Document) dom.Host {
	return instrument.Wrap(doc,
		instrument.WithRegistry(prometheus.NewRegistry()),
		instrument.WithLogger(e.logger),
		instrument.WithNamespace(e.cfg.Metrics.Namespace),
		instrument.WithTracerName(e.cfg.Tracing.TracerName),
	)
}
