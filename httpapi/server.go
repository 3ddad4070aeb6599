package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/studiolore/studyhall/core"
	"github.com/studiolore/studyhall/retrieval"
	"github.com/studiolore/studyhall/search"
)

// ContentProvider answers topic-content requests.
type ContentProvider interface {
	TopicContent(ctx context.Context, question, sector string, offline bool) core.Answer
}

// Searcher serves ranked search over the topic corpus. Preferences are
// the caller's raw ranking hints; nil when the request carried none.
type Searcher interface {
	Rank(ctx context.Context, query string, prefs search.Preferences) ([]core.SearchResult, error)
}

// SearchRecorder journals executed search queries. Optional.
type SearchRecorder interface {
	RecordSearch(query string) error
}

// ErrContentProviderRequired is returned when no content provider is given.
var ErrContentProviderRequired = errors.New("content provider required")

// ErrSearcherRequired is returned when no searcher is given.
var ErrSearcherRequired = errors.New("searcher required")

// Server routes HTTP requests to the content and search components.
type Server struct {
	content  ContentProvider
	searcher Searcher
	recorder SearchRecorder
	logger   *slog.Logger
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
	}
}

// WithSearchRecorder sets a recorder that journals search queries.
func WithSearchRecorder(recorder SearchRecorder) Option {
	return func(s *Server) {
		s.recorder = recorder
	}
}

// NewServer creates a server over the given components.
func NewServer(content ContentProvider, searcher Searcher, opts ...Option) (*Server, error) {
	if content == nil {
		return nil, ErrContentProviderRequired
	}
	if searcher == nil {
		return nil, ErrSearcherRequired
	}

	s := &Server{
		content:  content,
		searcher: searcher,
		logger:   slog.Default(),
		mux:      http.NewServeMux(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("POST /get_topic_content", s.handleTopicContent)
	s.mux.HandleFunc("POST /advanced_search", s.handleAdvancedSearch)
	s.mux.HandleFunc("GET /health", s.handleHealth)
}

// Handler returns the routing handler, for mounting or testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run starts the HTTP server on addr and blocks until it stops.
func (s *Server) Run(addr string) error {
	h := &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	s.logger.Info("listening", "addr", addr)
	if err := h.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	health := map[string]any{
		"status":    "ok",
		"service":   "studyhall",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, health)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

var (
	_ ContentProvider = (*retrieval.Retriever)(nil)
	_ Searcher        = (*search.Ranker)(nil)
)
