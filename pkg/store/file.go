package store

import (
	"context"
	"os"
	"path/filepath"
)

// FileStore stores documents as files under a root directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the root directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, ioFailed("mkdir", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the root directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, ioFailed("load", name, err)
	}
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, filepath.FromSlash(clean)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(name)
		}
		return nil, ioFailed("load", name, err)
	}
	return data, nil
}

// Save implements Store. The file is written beside its final path and
// renamed into place.
func (s *FileStore) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return ioFailed("save", name, err)
	}
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	target := filepath.Join(s.dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return ioFailed("save", name, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".mdom-*")
	if err != nil {
		return ioFailed("save", name, err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return ioFailed("save", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return ioFailed("save", name, err)
	}
	if err := tmp.Close(); err != nil {
		return ioFailed("save", name, err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return ioFailed("save", name, err)
	}
	return nil
}
