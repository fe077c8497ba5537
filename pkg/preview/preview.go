package preview

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sgazz/acai-mindmap/pkg/errors"
	mmio "github.com/sgazz/acai-mindmap/pkg/io"
	"github.com/sgazz/acai-mindmap/pkg/mindmap"
	"github.com/sgazz/acai-mindmap/pkg/observability"
	"github.com/sgazz/acai-mindmap/pkg/render/nodelink"
	"github.com/sgazz/acai-mindmap/pkg/render/svg"
	"github.com/sgazz/acai-mindmap/pkg/route"
)

// DefaultRefresh is how often the index page reloads.
const DefaultRefresh = 2 * time.Second

// Loader provides the document to serve.
type Loader interface {
	Load(ctx context.Context) (mindmap.Snapshot, error)
}

// LoaderFunc adapts a function to [Loader].
type LoaderFunc func(ctx context.Context) (mindmap.Snapshot, error)

func (f LoaderFunc) Load(ctx context.Context) (mindmap.Snapshot, error) { return f(ctx) }

// FileLoader reads the document at the given path.
type FileLoader string

func (p FileLoader) Load(ctx context.Context) (mindmap.Snapshot, error) {
	return mmio.ImportFile(string(p))
}

// Option configures the handler.
type Option func(*server)

// WithRouter sets the connection geometry used for SVG output.
func WithRouter(r route.Router) Option { return func(s *server) { s.router = r } }

// WithLogger logs each request at debug level.
func WithLogger(l *log.Logger) Option { return func(s *server) { s.logger = l } }

// WithDefaultColor sets the fill for nodes without a color in DOT output.
func WithDefaultColor(c string) Option { return func(s *server) { s.color = c } }

// WithTitle sets the index page title.
func WithTitle(t string) Option { return func(s *server) { s.title = t } }

// WithRefresh sets the index page reload interval. Zero disables reloading.
func WithRefresh(d time.Duration) Option { return func(s *server) { s.refresh = d } }

type server struct {
	loader  Loader
	router  route.Router
	logger  *log.Logger
	color   string
	title   string
	refresh time.Duration
	now     func() time.Time
}

// NewHandler returns the preview routes for documents from l.
func NewHandler(l Loader, opts ...Option) http.Handler {
	s := &server{
		loader:  l,
		router:  route.Default(),
		logger:  log.New(io.Discard),
		title:   "mind map",
		refresh: DefaultRefresh,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/", s.index)
	r.Get("/healthz", s.health)
	r.Get("/map.json", s.document)
	r.Get("/map.svg", s.svg)
	r.Get("/map.dot", s.dot)
	r.Route("/nodes", func(r chi.Router) {
		r.Get("/", s.listNodes)
		r.Get("/{nodeID}", s.node)
	})
	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) index(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title>", html.EscapeString(s.title))
	if s.refresh > 0 {
		fmt.Fprintf(w, "<meta http-equiv=\"refresh\" content=\"%d\">", max(int(s.refresh/time.Second), 1))
	}
	fmt.Fprintf(w, "</head><body><h1>%s</h1><p>%d nodes, %d connections</p>", html.EscapeString(s.title), len(snap.Nodes), len(snap.Connections))
	fmt.Fprint(w, "<img src=\"map.svg\" alt=\"mind map\"></body></html>\n")
}

func (s *server) document(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := mmio.WriteJSON(w, snap, s.now()); err != nil {
		s.logger.Debug("write document", "err", err)
	}
}

func (s *server) svg(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	hooks := observability.Render()
	hooks.OnRenderStart(r.Context(), "svg", len(snap.Nodes))
	start := time.Now()
	out := svg.Render(snap.Nodes, snap.Connections, svg.WithRouter(s.router))
	hooks.OnRenderComplete(r.Context(), "svg", len(out), time.Since(start), nil)

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(out)
}

func (s *server) dot(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/vnd.graphviz; charset=utf-8")
	fmt.Fprint(w, nodelink.ToDOT(snap, nodelink.Options{DefaultColor: s.color}))
}

func (s *server) listNodes(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"nodes": mmio.Export(snap, s.now()).Nodes})
}

// nodeResponse is the body of GET /nodes/{nodeID}.
type nodeResponse struct {
	Node        mmio.NodeDoc         `json:"node"`
	Connections []mmio.ConnectionDoc `json:"connections"`
}

func (s *server) node(w http.ResponseWriter, r *http.Request) {
	snap, ok := s.load(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "nodeID")
	doc := mmio.Export(snap, s.now())

	resp := nodeResponse{Connections: []mmio.ConnectionDoc{}}
	found := false
	for _, n := range doc.Nodes {
		if n.ID == id {
			resp.Node, found = n, true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, errors.New(errors.ErrCodeNotFound, "node %q not found", id))
		return
	}
	for _, c := range doc.Connections {
		if c.From == id || c.To == id {
			resp.Connections = append(resp.Connections, c)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// =============================================================================
// Helpers
// =============================================================================

// load fetches the document, writing an error response on failure.
func (s *server) load(w http.ResponseWriter, r *http.Request) (mindmap.Snapshot, bool) {
	snap, err := s.loader.Load(r.Context())
	if err != nil {
		s.logger.Warn("load document", "err", err)
		writeError(w, statusFor(err), err)
		return mindmap.Snapshot{}, false
	}
	return snap, true
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"took", time.Since(start).Round(time.Microsecond),
			"id", middleware.GetReqID(r.Context()),
		)
	})
}

func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound, errors.ErrCodeNotFound:
		return http.StatusNotFound
	case errors.ErrCodeParse, errors.ErrCodeSchema, errors.ErrCodeValidation, errors.ErrCodeInvalidFormat:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: errors.UserMessage(err), Code: string(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
