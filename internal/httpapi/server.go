// Package httpapi exposes the generators over JSON HTTP.
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

	"github.com/rajeshkanna-s/healthyplates/internal/catalog"
	"github.com/rajeshkanna-s/healthyplates/internal/config"
	"github.com/rajeshkanna-s/healthyplates/internal/content"
	"github.com/rajeshkanna-s/healthyplates/internal/grocery"
	"github.com/rajeshkanna-s/healthyplates/internal/healthplan"
	"github.com/rajeshkanna-s/healthyplates/internal/model"
)

const shutdownTimeout = 10 * time.Second

func init() {
	gin.SetMode(gin.ReleaseMode)
}

type Server struct {
	engine *gin.Engine
	cat    *catalog.Catalog
	log    *slog.Logger
}

type healthPlanResponse struct {
	Targets model.CalculatedTargets `json:"targets"`
	Plan    model.MealPlan          `json:"plan"`
}

func New(cat *catalog.Catalog, cfg config.Server, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{engine: gin.New(), cat: cat, log: logger}

	corsCfg := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type"}

	s.engine.Use(gin.Recovery(), s.requestLogger(), cors.New(corsCfg))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	v1 := s.engine.Group("/v1")
	{
		v1.POST("/grocery-list", s.groceryList)
		v1.POST("/health-plan/targets", s.healthTargets)
		v1.POST("/health-plan", s.healthPlan)
		v1.GET("/practices", s.practices)
		v1.GET("/greeting", s.greeting)
	}
}

// Handler returns the router for use with net/http or httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info("http server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.log.Info("http server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}
	return nil
}

func (s *Server) groceryList(c *gin.Context) {
	var prefs model.UserPreferences
	if err := c.ShouldBindJSON(&prefs); err != nil {
		badRequest(c, fmt.Errorf("decode preferences: %w", err))
		return
	}
	if err := prefs.Validate(); err != nil {
		badRequest(c, err)
		return
	}
	c.JSON(http.StatusOK, grocery.Generate(s.cat.Grocery, prefs))
}

func (s *Server) healthTargets(c *gin.Context) {
	in, ok := bindIntake(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, healthplan.CalculateTargets(in))
}

func (s *Server) healthPlan(c *gin.Context) {
	in, ok := bindIntake(c)
	if !ok {
		return
	}
	targets := healthplan.CalculateTargets(in)
	c.JSON(http.StatusOK, healthPlanResponse{
		Targets: targets,
		Plan:    healthplan.GenerateMealPlan(s.cat.Planner, in, targets),
	})
}

func (s *Server) practices(c *gin.Context) {
	maxMinutes := 0
	if v := c.Query("max_minutes"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(c, fmt.Errorf("invalid max_minutes %q", v))
			return
		}
		maxMinutes = n
	}
	c.JSON(http.StatusOK, content.Practices(s.cat.Content, c.Query("category"), maxMinutes))
}

func (s *Server) greeting(c *gin.Context) {
	variant := 0
	if v := c.Query("variant"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			badRequest(c, fmt.Errorf("invalid variant %q", v))
			return
		}
		variant = n
	}
	msg := content.Greeting(s.cat.Content, c.Query("occasion"), c.Query("tone"), c.Query("name"), variant)
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func bindIntake(c *gin.Context) (model.UserIntake, bool) {
	var in model.UserIntake
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, fmt.Errorf("decode intake: %w", err))
		return in, false
	}
	if err := in.Validate(); err != nil {
		badRequest(c, err)
		return in, false
	}
	return in, true
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}
