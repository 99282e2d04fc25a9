package httpfs

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"gitlab.com/gitlab-org/labkit/log"
)

// FileServer answers requests for regular files with their content and
// leaves directories to http.FileServer for index pages, listings and the
// trailing slash redirect. Unlike http.FileServer it never redirects a
// request for index.html.
type FileServer struct {
	fs   *FileSystem
	dirs http.Handler
}

// NewFileServer returns a FileServer for fs
func NewFileServer(fs *FileSystem) *FileServer {
	return &FileServer{
		fs:   fs,
		dirs: http.FileServer(fs),
	}
}

func (s *FileServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/") {
		s.dirs.ServeHTTP(w, r)
		return
	}

	name := path.Clean("/" + r.URL.Path)

	f, err := s.fs.Open(name)
	if err != nil {
		serveOpenError(w, err)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		serveOpenError(w, err)
		return
	}

	if fi.IsDir() {
		s.dirs.ServeHTTP(w, r)
		return
	}

	// devices, sockets and pipes are never served
	if !fi.Mode().IsRegular() {
		log.WithField("name", name).Debug("not a regular file")
		http.NotFound(w, r)
		return
	}

	http.ServeContent(w, r, fi.Name(), fi.ModTime(), f)
}

// serveOpenError answers the same way http.FileServer does for a file that
// cannot be opened.
func serveOpenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		http.Error(w, "404 page not found", http.StatusNotFound)
	case errors.Is(err, fs.ErrPermission):
		http.Error(w, "403 Forbidden", http.StatusForbidden)
	default:
		http.Error(w, "500 Internal Server Error", http.StatusInternalServerError)
	}
}
