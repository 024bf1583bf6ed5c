// Package server exposes a computed commit graph over HTTP.
//
// The server is read-only: it loads one commit window (from a file or a
// reload call), runs the shared pipeline, and serves the layout, the
// abstract draw list and rendered artifacts. Fetching commit data from the
// actual repository backend is someone else's job; this server only ever
// sees the pre-fetched list.
package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/gitlanes/gitlanes/pkg/commit"
	"github.com/gitlanes/gitlanes/pkg/graphio"
	"github.com/gitlanes/gitlanes/pkg/pipeline"
	"github.com/gitlanes/gitlanes/pkg/view"
)

// Server serves one repository's commit graph.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger

	mu       sync.RWMutex
	repo     string
	commits  []commit.Commit
	snapshot string // uuid identifying the currently loaded commit window
}

// New creates a server around a pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Load installs a new commit window. Each load gets a fresh snapshot ID
// which doubles as the ETag for every graph endpoint.
func (s *Server) Load(repo string, commits []commit.Commit) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.repo = repo
	s.commits = commit.Normalize(commits)
	s.snapshot = uuid.NewString()
	s.logger.Info("commit window loaded", "repo", repo, "commits", len(s.commits), "snapshot", s.snapshot)
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/commits", s.handleCommits)
		r.Get("/graph", s.handleGraph)
		r.Get("/draw", s.handleDraw)
	})
	r.Get("/graph.svg", s.handleSVG)
	r.Get("/graph.dot", s.handleDOT)

	return r
}

// ListenAndServe runs the server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.logger.Info("listening", "addr", addr)
	return srv.ListenAndServe()
}

func (s *Server) window() (string, []commit.Commit, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo, s.commits, s.snapshot
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCommits(w http.ResponseWriter, r *http.Request) {
	repo, commits, snapshot := s.window()
	if notModified(w, r, snapshot) {
		return
	}
	writeJSON(w, http.StatusOK, graphio.CommitList{Repo: repo, Commits: commits})
}

func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	repo, commits, snapshot := s.window()
	if notModified(w, r, snapshot) {
		return
	}
	res, err := s.runner.ComputeLayout(r.Context(), commits)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, graphio.FromGraph(repo, res.Graph))
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	_, commits, snapshot := s.window()
	if notModified(w, r, snapshot) {
		return
	}
	res, err := s.runner.Execute(r.Context(), commits, pipeline.Options{
		Formats: []string{pipeline.FormatJSON},
		Zoom:    zoomParam(r),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	s.handleArtifact(w, r, pipeline.FormatSVG, "image/svg+xml")
}

func (s *Server) handleDOT(w http.ResponseWriter, r *http.Request) {
	s.handleArtifact(w, r, pipeline.FormatDOT, "text/vnd.graphviz")
}

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request, format, contentType string) {
	_, commits, snapshot := s.window()
	if notModified(w, r, snapshot) {
		return
	}
	res, err := s.runner.Execute(r.Context(), commits, pipeline.Options{
		Formats: []string{format},
		Zoom:    zoomParam(r),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "err", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
}

// logRequests logs every request with its duration and the request ID
// assigned by the middleware.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// zoomParam parses the ?zoom query parameter, clamped like every other zoom
// mutation.
func zoomParam(r *http.Request) float64 {
	raw := r.URL.Query().Get("zoom")
	if raw == "" {
		return view.DefaultZoom
	}
	z, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return view.DefaultZoom
	}
	if z < view.MinZoom {
		z = view.MinZoom
	}
	if z > view.MaxZoom {
		z = view.MaxZoom
	}
	return z
}

// notModified writes the snapshot ETag and short-circuits when the client
// already holds the current snapshot.
func notModified(w http.ResponseWriter, r *http.Request, snapshot string) bool {
	if snapshot == "" {
		return false
	}
	etag := fmt.Sprintf("%q", snapshot)
	w.Header().Set("ETag", etag)
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
