package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/waveform-comments/api/types"
	"github.com/killallgit/waveform-comments/internal/database"
)

// Server represents the HTTP server
type Server struct {
	engine             *gin.Engine
	httpServer         *http.Server
	db                 *database.DB
	rateLimiters       *sync.Map
	cleanupInitialized sync.Once
	cleanupStop        chan struct{}
	stopOnce           sync.Once

	corsDisabled bool
	corsOrigins  []string
	maxBodyBytes int64

	// Dependencies for handlers
	dependencies *types.Dependencies
}

// ServerOption configures a Server
type ServerOption func(*Server)

// WithTimeouts overrides the HTTP read and write timeouts
func WithTimeouts(read, write time.Duration) ServerOption {
	return func(s *Server) {
		if read > 0 {
			s.httpServer.ReadTimeout = read
		}
		if write > 0 {
			s.httpServer.WriteTimeout = write
		}
	}
}

// WithMaxHeaderBytes overrides the request header size limit
func WithMaxHeaderBytes(n int) ServerOption {
	return func(s *Server) {
		if n > 0 {
			s.httpServer.MaxHeaderBytes = n
		}
	}
}

// WithMaxBodyBytes limits request bodies on writes
func WithMaxBodyBytes(n int64) ServerOption {
	return func(s *Server) {
		s.maxBodyBytes = n
	}
}

// WithCORSOrigins restricts cross-origin requests to the given origins
func WithCORSOrigins(origins []string) ServerOption {
	return func(s *Server) {
		s.corsOrigins = origins
	}
}

// WithoutCORS leaves cross-origin headers off every response
func WithoutCORS() ServerOption {
	return func(s *Server) {
		s.corsDisabled = true
	}
}

// NewServer creates a new HTTP server
func NewServer(address string, opts ...ServerOption) *Server {
	// Create Gin engine with recovery middleware only
	engine := gin.New()
	engine.Use(gin.Recovery())

	server := &Server{
		engine:       engine,
		rateLimiters: &sync.Map{},
		cleanupStop:  make(chan struct{}),
		httpServer: &http.Server{
			Addr:           address,
			Handler:        engine,
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   30 * time.Second,
			IdleTimeout:    30 * time.Second,
			MaxHeaderBytes: 1 << 20, // 1 MB
		},
	}
	for _, opt := range opts {
		opt(server)
	}

	return server
}

// SetDatabase sets the database connection
func (s *Server) SetDatabase(db *database.DB) {
	s.db = db
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{}
	}
	s.dependencies.DB = db
}

// SetDependencies sets all handler dependencies
func (s *Server) SetDependencies(deps *types.Dependencies) {
	s.dependencies = deps
	if deps != nil && deps.DB != nil {
		s.db = deps.DB
	}
}

// Engine returns the Gin engine for testing
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// Initialize sets up middleware and routes
func (s *Server) Initialize() error {
	// Setup global middleware
	s.setupMiddleware()

	// Setup routes
	if err := s.setupRoutes(); err != nil {
		return err
	}

	return nil
}

// setupMiddleware configures global middleware
func (s *Server) setupMiddleware() {
	// Logger middleware
	s.engine.Use(gin.Logger())

	// Global CORS
	if !s.corsDisabled {
		s.engine.Use(CORS(s.corsOrigins...))
	}

	// Global request size limit
	if s.maxBodyBytes > 0 {
		s.engine.Use(RequestSizeLimitWithSize(s.maxBodyBytes))
	} else {
		s.engine.Use(RequestSizeLimit())
	}
}

// setupRoutes delegates to the main route registration
func (s *Server) setupRoutes() error {
	if s.dependencies == nil {
		s.dependencies = &types.Dependencies{DB: s.db}
	}
	return RegisterRoutes(s.engine, s.dependencies, s.rateLimiters, s.cleanupStop, &s.cleanupInitialized)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Stop the rate limiter cleanup goroutine
	s.stopOnce.Do(func() { close(s.cleanupStop) })

	return s.httpServer.Shutdown(ctx)
}
