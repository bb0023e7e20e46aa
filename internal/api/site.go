package api

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

// SiteHandler serves a static site from dir. Missing pages (no extension
// or .html) fall back to index.html; other missing files are 404s.
func SiteHandler(dir string) http.Handler {
	fsys := os.DirFS(dir)
	files := http.FileServer(http.FS(fsys))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "index.html"
		}

		if st, err := fs.Stat(fsys, name); err == nil {
			if !st.IsDir() {
				files.ServeHTTP(w, r)
				return
			}
			if _, err := fs.Stat(fsys, path.Join(name, "index.html")); err == nil {
				files.ServeHTTP(w, r)
				return
			}
		}

		if ext := path.Ext(name); ext != "" && ext != ".html" {
			http.NotFound(w, r)
			return
		}
		r.URL.Path = "/"
		files.ServeHTTP(w, r)
	})
}

// mountStatic serves dir under prefix without directory listings.
func mountStatic(r chi.Router, prefix, dir string) {
	if dir == "" {
		return
	}
	files := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.Handle(prefix+"/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if strings.HasSuffix(req.URL.Path, "/") {
			http.NotFound(w, req)
			return
		}
		files.ServeHTTP(w, req)
	}))
}
