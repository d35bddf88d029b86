package api

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/aeternum/contact/internal/api/handlers"
	"github.com/aeternum/contact/internal/contact"
	"github.com/aeternum/contact/internal/logging"
	"github.com/aeternum/contact/internal/ratelimit"
	"github.com/gin-gonic/gin"
)

// Represents the contact API server
type Server struct {
	limiter    ratelimit.Store
	stats      *ratelimit.Stats
	notifier   contact.Notifier
	version    string
	startTime  time.Time
	now        func() time.Time
	httpServer *http.Server
	bindAddr   string
	bindPort   int
}

// NewServer creates a new API server instance. The config must be non-nil.
func NewServer(config *Config) *Server {
	// Set Gin to release mode for production
	gin.SetMode(gin.ReleaseMode)

	return &Server{
		limiter:   config.Limiter,
		stats:     config.Stats,
		notifier:  config.Notifier,
		version:   config.Version,
		startTime: time.Now(),
		now:       time.Now,
		bindAddr:  config.BindAddr,
		bindPort:  config.BindPort,
	}
}

// Handler builds the gin router with middleware and routes.
func (s *Server) Handler() http.Handler {
	router := gin.New()

	// Configure Gin logging only if not already configured by CLI tools
	if !logging.IsConfiguredByCLI() {
		gin.DefaultWriter = logging.NewLevelWriter("INFO", "gin")
		gin.DefaultErrorWriter = logging.NewLevelWriter("ERROR", "gin")
	}

	router.Use(s.loggingMiddleware())
	router.Use(s.recoveryMiddleware())
	router.Use(s.corsMiddleware())

	s.setupRoutes(router)

	return router
}

// Start binds the listen address and serves in the background. Bind errors
// are returned immediately.
func (s *Server) Start() error {
	addr := net.JoinHostPort(s.bindAddr, strconv.Itoa(s.bindPort))
	logging.Info("Starting HTTP API server on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		// Timeouts for production
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to bind to %s: %w", addr, err)
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logging.Error("HTTP server failed: %v", err)
		}
	}()

	logging.Success("HTTP API server started successfully")
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	logging.Info("Shutting down HTTP API server...")

	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// getHandlerHealth is a health endpoint handler factory
func (s *Server) getHandlerHealth() gin.HandlerFunc {
	return handlers.HandleHealth(s.version, s.startTime, s.limiter, s.stats)
}

// getHandlerContactSubmit is a contact submission handler factory
func (s *Server) getHandlerContactSubmit() gin.HandlerFunc {
	return handlers.HandleContactSubmit(handlers.ContactDeps{
		Limiter:  s.limiter,
		Stats:    s.stats,
		Notifier: s.notifier,
		Now:      s.now,
	})
}

// getHandlerContactOptions is a contact preflight handler factory
func (s *Server) getHandlerContactOptions() gin.HandlerFunc {
	return handlers.HandleContactOptions()
}
