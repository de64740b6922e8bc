package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "audio2text/internal/api/errors"
	"audio2text/internal/api/middleware"
	"audio2text/internal/api/v1/handlers"
	v1routes "audio2text/internal/api/v1/routes"
)

const DefaultTranscript = "hello world"

// Config represents stub server configuration
type Config struct {
	Host         string
	Port         string
	Transcript   string
	APIKey       string
	MaxBytes     int64
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	Environment  string
}

// Server serves a Whisper-compatible endpoint that always returns the
// configured transcript.
type Server struct {
	config     Config
	router     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	logger     *zap.Logger
}

func NewServer(config Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.Transcript == "" {
		config.Transcript = DefaultTranscript
	}

	switch config.Environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	router.NoRoute(func(c *gin.Context) {
		middleware.HandleError(c, apierrors.NewNotFoundError(c.Request.URL.Path))
	})

	transcriptions := handlers.NewTranscriptionHandler(config.Transcript, config.MaxBytes, logger)
	v1 := router.Group("/v1")
	v1routes.RegisterRoutes(v1, config.APIKey, transcriptions)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		config:     config,
		router:     router,
		httpServer: httpServer,
		logger:     logger,
	}
}

// Start binds the listener and serves in the background. Bind errors are
// returned; later serve errors are logged.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("stub server stopped", zap.Error(err))
		}
	}()

	s.logger.Info("stub server started",
		zap.String("address", ln.Addr().String()),
		zap.String("base_url", s.BaseURL()))
	return nil
}

// BaseURL is the value to use as OPENAI_BASE_URL once started.
func (s *Server) BaseURL() string {
	addr := s.httpServer.Addr
	if s.listener != nil {
		addr = s.listener.Addr().String()
	}
	return "http://" + addr + "/v1"
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down stub server")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("server forced to shutdown", zap.Error(err))
		return err
	}
	return nil
}

// Router returns the Gin router (useful for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}
