package httpfs

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"gitlab.com/gitlab-org/labkit/log"

	"gitlab.com/forked-pages/forked-pages/metrics"
)

// ErrNotDirectory is returned when the root to serve is not a directory
var ErrNotDirectory = errors.New("root is not a directory")

// FileSystem is an http.FileSystem serving files below a single directory.
// Symlinks are followed. Every Open is counted and traced.
type FileSystem struct {
	root string
	dir  http.Dir
}

// NewFileSystem creates a FileSystem for root. Relative roots are resolved
// against the working directory once, so a later Chdir does not move it.
func NewFileSystem(root string) (*FileSystem, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", root, err)
	}

	fi, err := os.Stat(absRoot)
	if err != nil {
		return nil, err
	}

	if !fi.IsDir() {
		return nil, fmt.Errorf("%q: %w", absRoot, ErrNotDirectory)
	}

	return &FileSystem{
		root: absRoot,
		dir:  http.Dir(absRoot),
	}, nil
}

// Root returns the absolute directory being served
func (fs *FileSystem) Root() string {
	return fs.root
}

// Open opens name relative to the root. name is slash separated and
// cleaned by http.Dir so it can never leave the root.
func (fs *FileSystem) Open(name string) (http.File, error) {
	f, err := fs.dir.Open(name)

	metrics.VFSOperations.WithLabelValues("Open", strconv.FormatBool(err == nil)).Inc()

	if err != nil {
		log.WithError(err).WithField("name", name).Trace("open failed")
		return nil, err
	}

	if fi, err := f.Stat(); err == nil && !fi.IsDir() {
		metrics.ServedFileSize.Observe(float64(fi.Size()))
	}

	log.WithField("name", name).Trace("open")

	return f, nil
}
