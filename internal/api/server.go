// Package api exposes the formula engine over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-formula/internal/formula"
	"github.com/rxtech-lab/argo-formula/internal/indicator"
	"github.com/rxtech-lab/argo-formula/internal/logger"
	"github.com/rxtech-lab/argo-formula/internal/metrics"
	"github.com/rxtech-lab/argo-formula/internal/version"
	"go.uber.org/zap"
)

// Defaults applied by NewServer.
const (
	DefaultCacheSize    = 256
	DefaultMaxBodyBytes = 1 << 20
)

// Server serves compile, evaluate and signal requests.
// It owns one size-bounded formula cache for its lifetime.
type Server struct {
	mu sync.Mutex

	log      *logger.Logger
	metrics  *metrics.Metrics
	registry indicator.FunctionRegistry
	cache    *formula.Cache
	validate *validator.Validate
	router   *mux.Router

	maxBodyBytes int64

	httpServer *http.Server
	listener   net.Listener
}

// ServerConfig holds the collaborators of a Server. Nil fields get defaults.
type ServerConfig struct {
	Logger   *logger.Logger
	Metrics  *metrics.Metrics
	Registry indicator.FunctionRegistry
	// CacheSize caps the compiled formulas kept across requests.
	CacheSize int
	// MaxBodyBytes caps request bodies; larger ones get 413.
	MaxBodyBytes int64
}

// NewServer creates a server and registers its routes.
func NewServer(config ServerConfig) *Server {
	s := &Server{
		mu:         sync.Mutex{},
		log:        config.Logger,
		metrics:    config.Metrics,
		registry:   config.Registry,
		cache:      nil,
		validate:   validator.New(),
		router:     mux.NewRouter(),
		httpServer: nil,
		listener:   nil,

		maxBodyBytes: config.MaxBodyBytes,
	}

	if s.log == nil {
		s.log = logger.NewNopLogger()
	}

	s.log = s.log.Component("api")

	if s.metrics == nil {
		s.metrics = metrics.NewMetrics()
	}

	if s.registry == nil {
		s.registry = indicator.NewDefaultFunctionRegistry()
	}

	if s.maxBodyBytes <= 0 {
		s.maxBodyBytes = DefaultMaxBodyBytes
	}

	cacheSize := config.CacheSize
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}

	s.cache = formula.NewCache(s.registry,
		formula.WithObserver(s.metrics),
		formula.WithMaxEntries(cacheSize),
	)

	s.router.HandleFunc("/api/v1/compile", s.handleCompile).Methods("POST")
	s.router.HandleFunc("/api/v1/evaluate", s.handleEvaluate).Methods("POST")
	s.router.HandleFunc("/api/v1/signals", s.handleSignals).Methods("POST")
	s.router.HandleFunc("/api/v1/functions", s.handleFunctions).Methods("GET")
	s.router.HandleFunc("/api/v1/schema/{request}", s.handleSchema).Methods("GET")
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")
	s.router.Handle("/metrics", s.metrics.Handler()).Methods("GET")

	return s
}

// Handler returns the router, for embedding or httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on address and serves in the background.
// An empty address picks a free port.
func (s *Server) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	httpServer := s.httpServer
	s.mu.Unlock()

	s.log.Info("API server listening", zap.String("address", listener.Addr().String()))

	go func() {
		if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.log.Error("API server stopped", zap.Error(err))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return nil
	}

	return httpServer.Shutdown(ctx)
}

// Address returns the address the server is listening on.
func (s *Server) Address() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the base URL for the server.
func (s *Server) BaseURL() string {
	return "http://" + s.Address()
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Version: version.GetVersion()})
}

func (s *Server) handleFunctions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, FunctionsResponse{Functions: s.registry.ListFunctions()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
