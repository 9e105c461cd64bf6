package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/phyten/taglight/internal/document"
	"github.com/phyten/taglight/internal/highlight"
	"github.com/phyten/taglight/internal/output"
	"github.com/phyten/taglight/internal/paint"
	"github.com/phyten/taglight/internal/render/html"
)

const (
	maxBody      = 1 << 20
	maxDocuments = 64
	defaultID    = "preview"
	defaultName  = "preview.txt"
)

type Options struct {
	Dark     bool
	Gutter   bool
	TabWidth int
	Logger   *zap.Logger
}

// Server keeps one surface per preview id. Passes run on the scheduler, so a
// burst of edits to the same id is coalesced into one highlight.
type Server struct {
	scheduler *highlight.Scheduler
	opts      Options
	logger    *zap.Logger

	mu       sync.Mutex
	surfaces map[string]*paint.Surface
	order    []string
}

func NewServer(scheduler *highlight.Scheduler, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		scheduler: scheduler,
		opts:      opts,
		logger:    logger,
		surfaces:  make(map[string]*paint.Surface),
	}
}

type previewRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Text  string `json:"text"`
	Theme string `json:"theme"`
}

type previewResponse struct {
	ID          string          `json:"id"`
	HTML        string          `json:"html"`
	Decorations []output.Record `json:"decorations"`
}

func (s *Server) previewHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req previewRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		http.Error(w, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}
	dark := s.opts.Dark
	switch strings.ToLower(req.Theme) {
	case "":
	case "dark":
		dark = true
	case "light":
		dark = false
	default:
		http.Error(w, "invalid theme: "+req.Theme, http.StatusBadRequest)
		return
	}
	id := previewID(req.ID)
	name := previewName(req.Name)

	uri := "untitled:" + name
	surface := s.surface(id)
	if surface.Doc().URI() != uri {
		// passes for the old name are tracked under another editor id
		surface.Reset()
	}
	surface.SetDocument(document.New(uri, req.Text))
	select {
	case <-s.scheduler.Trigger(surface):
	case <-r.Context().Done():
		s.logger.Debug("preview abandoned", zap.String("id", id))
		return
	}

	var buf bytes.Buffer
	lines := surface.Layout(dark)
	if err := html.Render(&buf, lines, html.Options{Dark: dark, Gutter: s.opts.Gutter, TabWidth: s.opts.TabWidth}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	records := output.Records(name, surface, dark)
	if records == nil {
		records = []output.Record{}
	}
	writeJSON(w, previewResponse{ID: id, HTML: buf.String(), Decorations: records})
}

// decorationsHandler dumps the applications of a preview document in one of
// the output formats.
func (s *Server) decorationsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	q := r.URL.Query()
	id := previewID(q.Get("id"))
	s.mu.Lock()
	surface, ok := s.surfaces[id]
	s.mu.Unlock()
	if !ok {
		http.Error(w, "unknown preview: "+id, http.StatusNotFound)
		return
	}
	format := q.Get("format")
	if format == "" {
		format = "ndjson"
	}
	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, "unsupported output format: "+format, http.StatusBadRequest)
		return
	}
	fields, err := output.ResolveFields(q.Get("fields"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dark := s.opts.Dark
	if t := q.Get("theme"); t != "" {
		dark = t == "dark"
	}
	name := previewName(strings.TrimPrefix(surface.Doc().URI(), "untitled:"))
	var buf bytes.Buffer
	if err := output.Write(&buf, format, output.Records(name, surface, dark), fields); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(buf.Bytes())
}

var contentTypes = map[string]string{
	"ndjson":   "application/x-ndjson; charset=utf-8",
	"csv":      "text/csv; charset=utf-8",
	"markdown": "text/markdown; charset=utf-8",
}

// surface returns the surface for id, evicting the oldest preview once the
// limit is reached.
func (s *Server) surface(id string) *paint.Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sf, ok := s.surfaces[id]; ok {
		return sf
	}
	if len(s.order) >= maxDocuments {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.surfaces, oldest)
	}
	sf := paint.NewSurface(document.New("untitled:"+defaultName, ""))
	s.surfaces[id] = sf
	s.order = append(s.order, id)
	return sf
}

// Documents reports how many previews are held.
func (s *Server) Documents() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.surfaces)
}

func previewID(raw string) string {
	id := strings.TrimSpace(raw)
	if id == "" {
		return defaultID
	}
	return id
}

func previewName(raw string) string {
	name := strings.TrimSpace(raw)
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r < ' ' {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return defaultName
	}
	return name
}

func writeJSON(w http.ResponseWriter, v any) {
	setSecurityHeaders(w)
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
