package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/mdom/internal/errors"
	"github.com/vango-dev/mdom/internal/watch"
	"github.com/vango-dev/mdom/pkg/live"
	"github.com/vango-dev/mdom/pkg/store"
)

func serveCmd(g *globals) *cobra.Command {
	var (
		port    int
		host    string
		metrics bool
		reload  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the document live over HTTP and WebSocket",
		Long: `Serve the document live.

  GET  /          current document
  POST /commands  apply one JSON command
  GET  /ws        websocket: send commands, receive document updates
  GET  /metrics   Prometheus metrics (with --metrics)

A missing document starts empty. With --write every change is saved to
the store. With --watch, edits made to the document file by anything
else are loaded and pushed to every socket.

Examples:
  mdom serve
  mdom serve --port=8080 --metrics
  mdom serve --doc page.html --write --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := newEnv(cmd.Context(), g, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.close()

			if port > 0 {
				e.cfg.Serve.Port = port
			}
			if host != "" {
				e.cfg.Serve.Host = host
			}
			if metrics {
				e.cfg.Serve.Metrics = true
			}
			if err := e.cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			doc, err := e.load(ctx, true)
			if err != nil {
				return err
			}

			config := live.Config{
				Logger:     e.logger,
				Metrics:    e.cfg.Serve.Metrics,
				Namespace:  e.cfg.Metrics.Namespace,
				TracerName: e.cfg.Tracing.TracerName,
			}
			if g.write {
				config.Store = e.store
				config.Name = e.name
			}

			srv := live.New(doc, config)
			group, gctx := errgroup.WithContext(ctx)
			if reload {
				w, err := e.watchDocument(gctx, srv)
				if err != nil {
					return err
				}
				group.Go(func() error {
					if err := w.Start(gctx); err != context.Canceled {
						return err
					}
					return nil
				})
			}
			group.Go(func() error {
				e.logger.Info("serving document", "document", e.name, "url", e.cfg.URL())
				return srv.ListenAndServe(gctx, e.cfg.Address())
			})
			return group.Wait()
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from mdom.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from mdom.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose /metrics")
	cmd.Flags().BoolVar(&reload, "watch", false, "Reload the document when its file changes")
	return cmd
}

// watchDocument returns a watcher that reloads srv whenever the document
// file changes. The caller starts it.
func (e *env) watchDocument(ctx context.Context, srv *live.Server) (*watch.Watcher, error) {
	fs, ok := e.store.(*store.FileStore)
	if !ok {
		return nil, errors.New("E123").
			WithDetail("--watch needs a file store").
			WithSuggestion(`Set store.kind to "file" or use --doc`)
	}
	path := filepath.Join(fs.Dir(), filepath.FromSlash(e.name))
	if _, err := os.Stat(path); err != nil {
		return nil, errors.New("E100").WithDetailf("--watch needs an existing document: %s", path)
	}

	w, err := watch.New(watch.Config{Paths: []string{path}, Logger: e.logger})
	if err != nil {
		return nil, errors.New("E101").WithDetailf("watch %s", path).Wrap(err)
	}
	w.OnChange(func(c watch.Change) {
		if c.Op != watch.OpWrite {
			return
		}
		data, err := e.store.Load(ctx, e.name)
		if err != nil {
			e.logger.Warn("reload failed", "document", e.name, "error", err)
			return
		}
		if _, err := srv.Reload(data); err != nil {
			e.logger.Warn("reload failed", "document", e.name, "error", err)
		}
	})
	e.logger.Info("watching document", "path", path)
	return w, nil
}
