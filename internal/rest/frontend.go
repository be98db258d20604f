package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the static frontend build. Requests for paths that
// do not match a file fall back to the index page, so client-side routing
// keeps working after a reload.
type FrontendHandler struct {
	root  string
	index string
	fs    http.Handler
}

func NewFrontendHandler(root string, index string) *FrontendHandler {
	return &FrontendHandler{
		root:  root,
		index: index,
		fs:    http.FileServer(http.Dir(root)),
	}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(h.root, filepath.Clean(strings.TrimPrefix(r.URL.Path, "/")))
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, h.index))
		return
	}
	h.fs.ServeHTTP(w, r)
}
