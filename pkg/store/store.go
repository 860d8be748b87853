package store

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/vango-dev/mdom/internal/config"
	"github.com/vango-dev/mdom/internal/errors"
)

// Store is a backend for named documents.
type Store interface {
	// Load returns the document's bytes.
	Load(ctx context.Context, name string) ([]byte, error)

	// Save replaces the document's bytes, creating it when missing.
	Save(ctx context.Context, name string, data []byte) error
}

var (
	// ErrNotFound is returned by Load for missing documents.
	ErrNotFound = errors.New("E100")

	// ErrIO is the base of every other store failure.
	ErrIO = errors.New("E101")
)

func notFound(name string) error {
	return errors.New("E100").WithDetailf("document %q", name)
}

func ioFailed(op, name string, err error) error {
	return errors.New("E101").WithDetailf("%s %q", op, name).Wrap(err)
}

// cleanName rejects names that escape the store root.
func cleanName(name string) (string, error) {
	if name == "" {
		return "", errors.New("E101").WithDetail("empty document name")
	}
	clean := path.Clean("/" + filepath.ToSlash(name))[1:]
	if clean == "" || clean != strings.TrimPrefix(filepath.ToSlash(name), "./") {
		return "", errors.New("E101").
			WithDetailf("document name %q is not a clean relative path", name)
	}
	return clean, nil
}

// FromConfig builds the store selected by cfg. Stores that hold
// resources implement io.Closer.
func FromConfig(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Kind {
	case config.StoreFile, "":
		return NewFileStore(cfg.StoreDir())
	case config.StoreSQLite:
		return OpenSQLite(ctx, cfg.StorePath())
	case config.StoreS3:
		client := NewS3Client(S3ClientOptions{
			Region:    cfg.Store.Region,
			Endpoint:  cfg.Store.Endpoint,
			PathStyle: cfg.Store.PathStyle,
			AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
			Session:   os.Getenv("AWS_SESSION_TOKEN"),
		})
		return NewS3Store(client, cfg.Store.Bucket, cfg.Store.Prefix), nil
	default:
		return nil, errors.New("E123").WithDetailf("store.kind %q", cfg.Store.Kind)
	}
}
