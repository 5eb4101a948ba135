// Package site serves the demo shell page, its static assets and a small
// JSON API describing the dispatch table.
package site

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/caffeineduck/demoshell/config"
	"github.com/caffeineduck/demoshell/dispatch"
	"github.com/caffeineduck/demoshell/inspect"
)

const shutdownTimeout = 5 * time.Second

// Server hosts the shell page.
type Server struct {
	cfg       *config.Config
	index     *template.Template
	router    chi.Router
	logger    *log.Logger
	inspector *inspect.Inspector
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger. Default writes to stderr with a
// [SITE] prefix.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithInspector enables CheckModule.
func WithInspector(in *inspect.Inspector) Option {
	return func(s *Server) {
		s.inspector = in
	}
}

// New validates cfg and builds the router.
func New(cfg *config.Config, opts ...Option) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	index, err := parseIndex()
	if err != nil {
		return nil, fmt.Errorf("parse index template: %w", err)
	}

	s := &Server{
		cfg:    cfg,
		index:  index,
		logger: log.New(os.Stderr, "[SITE] ", log.LstdFlags),
	}
	for _, opt := range opts {
		opt(s)
	}

	if cfg.CanvasID != dispatch.DefaultCanvasID {
		s.logger.Printf("warning: canvas id %q differs from %q, which the demo module draws on", cfg.CanvasID, dispatch.DefaultCanvasID)
	}

	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.CORSAllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/", s.handleIndex)
	r.Get("/api/demos", s.handleDemos)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	static := http.StripPrefix(StaticPrefix, http.FileServer(http.Dir(s.cfg.AssetsDir)))
	r.Handle(StaticPrefix+"*", static)

	return r
}

// Handler returns the HTTP handler for the site.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	// Render into a buffer so a template failure never leaves half a page.
	var buf bytes.Buffer
	if err := renderIndex(&buf, s.index, newPageData(s.cfg)); err != nil {
		s.logger.Printf("render index: %v", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	io.Copy(w, &buf)
}

type demosResponse struct {
	Namespace string         `json:"namespace"`
	Demos     dispatch.Table `json:"demos"`
}

func (s *Server) handleDemos(w http.ResponseWriter, r *http.Request) {
	demos := s.cfg.Demos
	if demos == nil {
		demos = dispatch.Table{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(demosResponse{
		Namespace: s.cfg.Module.Namespace,
		Demos:     demos,
	})
}

// CheckModule inspects the configured module binary against the dispatch
// table and logs any entry point the page would fail to call. It reports
// false without error when no inspector is set or the binary is absent.
func (s *Server) CheckModule(ctx context.Context) (inspect.Report, bool, error) {
	path := s.cfg.ModulePath()
	if s.inspector == nil || path == "" {
		return inspect.Report{}, false, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			s.logger.Printf("module %s not found, skipping export check", path)
			return inspect.Report{}, false, nil
		}
		return inspect.Report{}, false, fmt.Errorf("stat module: %w", err)
	}

	report, err := s.inspector.InspectFile(ctx, path, s.cfg.Demos)
	if err != nil {
		return inspect.Report{}, false, err
	}
	for _, e := range report.Missing() {
		s.logger.Printf("warning: %s: entry point %q not exported by %s", e.Demo.Flag, e.Demo.Entry, path)
	}
	for _, e := range report.Unusable() {
		s.logger.Printf("warning: %s: entry point %q takes %d arguments", e.Demo.Flag, e.Demo.Entry, e.Params)
	}
	return report, true, nil
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	addr := net.JoinHostPort("", strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Printf("listening on %s", ln.Addr())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
