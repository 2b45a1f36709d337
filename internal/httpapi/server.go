// Package httpapi serves the quiz, results and type catalog over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Sablekanishka11/mbti-mirror/internal/insight"
	"github.com/Sablekanishka11/mbti-mirror/internal/profiles"
	"github.com/Sablekanishka11/mbti-mirror/internal/results"
)

// OwnerHeader carries the caller-supplied owner identity.
const OwnerHeader = "X-User-ID"

// Options configures a Server.
type Options struct {
	Addr     string
	CORS     bool
	Debug    bool
	Logger   *slog.Logger
	Registry *prometheus.Registry // nil means a fresh registry
	Version  string
}

// Server wires the HTTP routes to the result, catalog and insight services.
type Server struct {
	results  *results.Service
	catalog  *profiles.Catalog
	insights *insight.Service
	metrics  *Metrics
	logger   *slog.Logger
	engine   *gin.Engine
	http     *http.Server
	version  string
	started  time.Time
}

// New builds a Server and its routes. insights may be nil.
func New(svc *results.Service, catalog *profiles.Catalog, insights *insight.Service, opts Options) *Server {
	if !opts.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	reg := opts.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	if opts.CORS {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
		corsConfig.AllowHeaders = []string{"Origin", "Content-Type", OwnerHeader}
		engine.Use(cors.New(corsConfig))
	}

	s := &Server{
		results:  svc,
		catalog:  catalog,
		insights: insights,
		metrics:  MustNewMetrics(reg),
		logger:   opts.Logger.With("component", "http"),
		engine:   engine,
		version:  opts.Version,
		started:  time.Now(),
	}
	engine.Use(s.observe())
	s.routes(promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	s.http = &http.Server{
		Addr:              opts.Addr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(metricsHandler http.Handler) {
	s.engine.GET("/healthz", s.handleHealth)
	s.engine.GET("/metrics", gin.WrapH(metricsHandler))

	api := s.engine.Group("/api")
	api.GET("/questions", s.handleQuestions)
	api.POST("/classify", s.handleClassify)
	api.POST("/results", s.handleSubmit)
	api.GET("/results", s.handleHistory)
	api.GET("/results/:id", s.handleGetResult)
	api.GET("/types", s.handleTypes)
	api.GET("/types/:code", s.handleType)
	api.POST("/insights", s.handleInsight)
}

// Handler exposes the engine for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// observe logs each request and records its latency.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := c.Writer.Status()
		elapsed := time.Since(start)
		s.metrics.requestDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
		s.logger.Debug("request",
			"method", c.Request.Method,
			"route", route,
			"status", status,
			"latency", elapsed,
		)
	}
}
