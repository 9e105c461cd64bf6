// Package web serves the live preview: a text area posted to the highlight
// scheduler and rendered back as an HTML fragment.
package web

import (
	_ "embed"
	"html/template"
	"net/http"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

const (
	stylesPath = "/assets/styles.css"
	scriptPath = "/assets/ui.js"
)

var (
	//go:embed templates/index.html
	indexHTML string
	indexOnce sync.Once
	indexTmpl *template.Template

	//go:embed assets/styles.css
	stylesCSS string

	//go:embed assets/ui.js
	scriptJS string
)

type indexData struct {
	StylesPath string
	ScriptPath string
	Theme      string
}

// Register attaches the preview page, its assets and the API to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/", s.indexHandler)
	mux.HandleFunc(stylesPath, stylesHandler)
	mux.HandleFunc(scriptPath, scriptHandler)
	mux.HandleFunc("/api/preview", s.previewHandler)
	mux.HandleFunc("/api/decorations", s.decorationsHandler)
}

func (s *Server) indexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	tmpl := loadTemplate()
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	// rendered fragments carry inline style attributes
	w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'self' 'unsafe-inline'; script-src 'self'; img-src 'self'; connect-src 'self'; form-action 'self'; base-uri 'none'")
	theme := "light"
	if s.opts.Dark {
		theme = "dark"
	}
	if err := tmpl.Execute(w, indexData{StylesPath: stylesPath, ScriptPath: scriptPath, Theme: theme}); err != nil {
		http.Error(w, "template rendering failed", http.StatusInternalServerError)
	}
}

func setSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "no-referrer")
	w.Header().Set("X-Frame-Options", "DENY")
}

var (
	stylesETag = etag(stylesCSS)
	scriptETag = etag(scriptJS)
)

func etag(content string) string {
	return `"` + strconv.FormatUint(xxhash.Sum64String(content), 16) + `"`
}

func stylesHandler(w http.ResponseWriter, r *http.Request) {
	serveAsset(w, r, "text/css; charset=utf-8", stylesETag, stylesCSS)
}

func scriptHandler(w http.ResponseWriter, r *http.Request) {
	serveAsset(w, r, "application/javascript; charset=utf-8", scriptETag, scriptJS)
}

// serveAsset answers revalidations with 304 when the embedded content is
// unchanged.
func serveAsset(w http.ResponseWriter, r *http.Request, contentType, tag, body string) {
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Header().Set("ETag", tag)
	if r.Header.Get("If-None-Match") == tag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write([]byte(body))
}

func loadTemplate() *template.Template {
	indexOnce.Do(func() {
		indexTmpl = template.Must(template.New("index").Parse(indexHTML))
	})
	return indexTmpl
}
