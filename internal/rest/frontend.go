package rest

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// FrontendHandler serves the built single-page frontend. Unknown paths fall
// back to the index document so client-side routing keeps working.
type FrontendHandler struct {
	root  string
	index string
}

func NewFrontendHandler(root string, index string) *FrontendHandler {
	return &FrontendHandler{root: root, index: index}
}

func (h *FrontendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requested := filepath.Join(h.root, filepath.Clean("/"+r.URL.Path))

	if !strings.HasPrefix(requested, filepath.Clean(h.root)) {
		http.NotFound(w, r)
		return
	}

	info, err := os.Stat(requested)
	if err != nil || info.IsDir() {
		http.ServeFile(w, r, filepath.Join(h.root, h.index))
		return
	}

	http.ServeFile(w, r, requested)
}
