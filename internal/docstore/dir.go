package docstore

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/myrjola/fitplan/internal/errors"
)

// Dir stores each document as <key>.json inside a directory.
type Dir struct {
	path string
}

// NewDir returns a Dir store rooted at path, creating the directory if needed.
func NewDir(path string) (*Dir, error) {
	if err := os.MkdirAll(path, 0o755); err != nil { //nolint:mnd // rwxr-xr-x
		return nil, errors.Wrap(err, "create data directory", slog.String("path", path))
	}
	return &Dir{path: path}, nil
}

// Path returns the file that holds the document for key.
func (d *Dir) Path(key string) string {
	return filepath.Join(d.path, key+".json")
}

// Get reads the document file.
func (d *Dir) Get(_ context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	body, err := os.ReadFile(d.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Wrap(ErrNotFound, "read document", slogKey(key))
	}
	if err != nil {
		return nil, errors.Wrap(err, "read document", slogKey(key))
	}
	return body, nil
}

// Put writes the document to a temporary file and renames it over the old one so that readers never
// observe a half-written document.
func (d *Dir) Put(_ context.Context, key string, body []byte) (err error) {
	if err = validateKey(key); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(d.path, "."+key+"-*.json")
	if err != nil {
		return errors.Wrap(err, "create temporary document", slogKey(key))
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(body); err != nil {
		return errors.Join(errors.Wrap(err, "write temporary document", slogKey(key)), tmp.Close())
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "close temporary document", slogKey(key))
	}
	if err = os.Rename(tmp.Name(), d.Path(key)); err != nil {
		return errors.Wrap(err, "replace document", slogKey(key))
	}
	return nil
}

func slogKey(key string) slog.Attr {
	return slog.String("key", key)
}
