// Package server serves a live preview of a playbook: the rendered
// document, its page containers, a page outline and a PDF export. Output is
// rebuilt only when the source file changes.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	playbook "github.com/RodolfoDavidAlvarez/orchardprogram"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/render"
	"github.com/RodolfoDavidAlvarez/orchardprogram/internal/source"
)

// Renderer builds preview HTML. Implementations must be safe for
// concurrent use.
type Renderer interface {
	RenderText(text string) string
	Document(title, fragment string) (string, error)
}

// Exporter prints a playbook to PDF.
type Exporter interface {
	Convert(ctx context.Context, input playbook.Input) (*playbook.Result, error)
}

// Options configures a Server.
type Options struct {
	Source         string                 // Playbook text file (required)
	AssetsDir      string                 // Served under /assets/; empty disables the route
	Title          string                 // Document title
	Page           *playbook.PageSettings // PDF page settings, nil = defaults
	MaxReportBytes int64                  // Body limit for client error reports
}

// defaultMaxReportBytes limits client error reports.
const defaultMaxReportBytes = 64 << 10

// rendered is the cached output for one version of the source.
type rendered struct {
	fragment string
	document string
	outline  []render.PageOutline
}

// Server is the preview HTTP server.
type Server struct {
	router   chi.Router
	renderer Renderer
	exporter Exporter
	cache    *source.Cache[*rendered]
	log      *slog.Logger
	opts     Options
}

// New creates a preview server for opts.Source.
func New(r Renderer, e Exporter, log *slog.Logger, opts Options) (*Server, error) {
	if opts.Source == "" {
		return nil, fmt.Errorf("%w: no source file configured", source.ErrUnavailable)
	}
	if opts.MaxReportBytes <= 0 {
		opts.MaxReportBytes = defaultMaxReportBytes
	}
	if log == nil {
		log = slog.Default()
	}

	s := &Server{
		renderer: r,
		exporter: e,
		log:      log,
		opts:     opts,
	}
	s.cache = source.NewCache(opts.Source, s.build)
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/", s.handleDocument)
	r.Get("/content", s.handleContent)
	r.Get("/export.pdf", s.handleExport)
	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/outline", s.handleOutline)
		r.Post("/log-error", s.handleLogError)
	})

	if s.opts.AssetsDir != "" {
		fs := http.StripPrefix("/assets/", http.FileServer(http.Dir(s.opts.AssetsDir)))
		r.Handle("/assets/*", fs)
	}

	s.router = r
}

// build renders one version of the source text.
func (s *Server) build(text string) (*rendered, error) {
	fragment := s.renderer.RenderText(text)
	document, err := s.renderer.Document(s.opts.Title, fragment)
	if err != nil {
		return nil, err
	}
	outline, err := render.Outline(strings.NewReader(fragment))
	if err != nil {
		return nil, err
	}
	s.log.Info("playbook rendered", "source", s.opts.Source, "pages", len(outline))
	return &rendered{fragment: fragment, document: document, outline: outline}, nil
}

// current returns the cached output, writing an error response when the
// source cannot be rendered.
func (s *Server) current(w http.ResponseWriter, r *http.Request) (*source.Entry[*rendered], bool) {
	entry, err := s.cache.Get()
	if err != nil {
		s.fail(w, r, "loading playbook", err)
		return nil, false
	}
	return entry, true
}

// notModified sets caching headers and reports whether the client copy is
// still current.
func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if match := r.Header.Get("If-None-Match"); match != "" {
		for _, tag := range strings.Split(match, ",") {
			if t := strings.TrimSpace(tag); t == etag || t == "*" {
				w.WriteHeader(http.StatusNotModified)
				return true
			}
		}
	}
	return false
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.current(w, r)
	if !ok || notModified(w, r, entry.ETag) {
		return
	}
	writeHTML(w, entry.Value.document)
}

func (s *Server) handleContent(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.current(w, r)
	if !ok || notModified(w, r, entry.ETag) {
		return
	}
	writeHTML(w, entry.Value.fragment)
}

func (s *Server) handleOutline(w http.ResponseWriter, r *http.Request) {
	entry, ok := s.current(w, r)
	if !ok || notModified(w, r, entry.ETag) {
		return
	}
	writeJSON(w, http.StatusOK, entry.Value.outline)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if s.exporter == nil {
		writeJSON(w, http.StatusNotImplemented, map[string]string{"error": "PDF export disabled"})
		return
	}
	entry, ok := s.current(w, r)
	if !ok {
		return
	}

	res, err := s.exporter.Convert(r.Context(), playbook.Input{
		Text:      entry.Text,
		Title:     s.opts.Title,
		SourceDir: filepath.Dir(s.opts.Source),
		Page:      s.opts.Page,
	})
	if err != nil {
		s.fail(w, r, "exporting PDF", err)
		return
	}

	name := strings.TrimSuffix(filepath.Base(s.opts.Source), filepath.Ext(s.opts.Source)) + ".pdf"
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Write(res.PDF)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// clientError is a report posted by the preview page.
type clientError struct {
	Message   string `json:"message"`
	Source    string `json:"source"`
	Line      int    `json:"line"`
	Column    int    `json:"column"`
	Stack     string `json:"stack"`
	URL       string `json:"url"`
	UserAgent string `json:"userAgent"`
}

func (s *Server) handleLogError(w http.ResponseWriter, r *http.Request) {
	var report clientError
	body := http.MaxBytesReader(w, r.Body, s.opts.MaxReportBytes)
	if err := json.NewDecoder(body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid error report"})
		return
	}
	if report.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	s.log.Warn("client error",
		"message", report.Message,
		"source", report.Source,
		"line", report.Line,
		"column", report.Column,
		"url", report.URL,
		"user_agent", report.UserAgent,
		"stack", report.Stack,
		"request_id", middleware.GetReqID(r.Context()),
	)
	w.WriteHeader(http.StatusNoContent)
}

// fail maps an error to a status code and logs it.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, source.ErrUnavailable), errors.Is(err, playbook.ErrBrowserConnect):
		status = http.StatusServiceUnavailable
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusGatewayTimeout
	}
	s.log.Error(op+" failed", "error", err, "status", status, "request_id", middleware.GetReqID(r.Context()))
	writeJSON(w, status, map[string]string{"error": op + " failed"})
}

func writeHTML(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
