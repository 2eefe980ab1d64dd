package server

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/posts-gateway/backend/internal/config"
	"github.com/emilythestrangee/posts-gateway/backend/internal/handlers"
	"github.com/emilythestrangee/posts-gateway/backend/internal/middleware"
	"github.com/emilythestrangee/posts-gateway/backend/internal/repository"
)

type Server struct {
	conf    *config.Config
	handler *handlers.Handler
}

// New wires the handlers against posts. started is the process start used for uptime.
func New(conf *config.Config, posts repository.PostRepository, started time.Time) *Server {
	return &Server{
		conf:    conf,
		handler: handlers.NewHandler(posts, conf.IsProduction(), started),
	}
}

// NewServer creates and configures the HTTP server
func (s *Server) NewServer() *http.Server {
	if s.conf.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:         s.conf.Addr(),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  s.conf.IdleTimeout,
		ReadTimeout:  s.conf.ReadTimeout,
		WriteTimeout: s.conf.WriteTimeout,
	}

	log.Printf("🚀 Server starting on port %s (%s)\n", s.conf.HTTPServer.Port, s.conf.Env)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	production := s.conf.IsProduction()

	r := gin.New()
	// every path outside the three routes answers the JSON route listing
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(gin.Logger(), middleware.Recovery(production), middleware.ErrorHandler(production))

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.conf.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	createChain := []gin.HandlerFunc{}
	if s.conf.JWTSecret != "" {
		createChain = append(createChain, middleware.AuthMiddleware(s.conf.JWTSecret))
	}
	createChain = append(createChain, middleware.ValidatePost(), s.handler.Post.CreatePost)

	api := r.Group("/api")
	{
		api.GET("/health", s.handler.Health.Health)
		api.GET("/posts", s.handler.Post.GetPosts)
		api.POST("/posts", createChain...)
	}

	r.NoRoute(middleware.NotFound(routeList(r)))

	return r
}

func routeList(r *gin.Engine) []string {
	routes := make([]string, 0, len(r.Routes()))
	for _, ri := range r.Routes() {
		routes = append(routes, ri.Method+" "+ri.Path)
	}
	sort.Strings(routes)
	return routes
}
