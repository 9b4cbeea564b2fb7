// Package web provides the HTTP server of the content API: engine setup,
// middleware chain and route registration.
package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/lukafrizz/content-api/config"
	"github.com/lukafrizz/content-api/logger"
	"github.com/lukafrizz/content-api/util/common"
	"github.com/lukafrizz/content-api/web/controller"
	"github.com/lukafrizz/content-api/web/entity"
	"github.com/lukafrizz/content-api/web/middleware"
	"github.com/lukafrizz/content-api/web/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Server is the API web server.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	tokens  *service.TokenService
	uploads *service.UploadService

	auth     *controller.AuthController
	comments *controller.CommentController
	news     *controller.NewsController
	products *controller.ProductController
	upload   *controller.UploadController
	admin    *controller.AdminController

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// initRouter initializes gin, registers the middleware chain and all
// controllers, and returns the configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLog())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{config.GetFrontendURL()}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	engine.Use(cors.New(corsConfig))

	// Uploaded files are served directly from disk.
	engine.Static("/uploads", config.GetUploadFolder())

	api := engine.Group("/api")
	api.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig()))

	s.auth = controller.NewAuthController(api.Group("/auth"), s.tokens)
	s.comments = controller.NewCommentController(api.Group("/comments"), s.tokens)
	s.news = controller.NewNewsController(api.Group("/news"), s.tokens)
	s.products = controller.NewProductController(api.Group("/products"), s.tokens)
	s.upload = controller.NewUploadController(api.Group("/upload"), s.tokens, s.uploads)
	s.admin = controller.NewAdminController(api.Group("/admin"), s.tokens)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, entity.Msg{
			Success: false,
			Message: "page not found",
		})
	})

	return engine, nil
}

// Start initializes services and begins serving. It refuses to start when no
// token signing key is configured outside debug mode.
func (s *Server) Start() error {
	secret, ok := config.GetTokenSecret()
	if !ok {
		return common.NewError("TOKEN_SECRET is not set; refusing to start with an insecure default")
	}
	if os.Getenv("TOKEN_SECRET") == "" {
		logger.Warning("TOKEN_SECRET is not set; signing tokens with the insecure debug key")
	}
	s.tokens = service.NewTokenService(secret, config.GetTokenTTL())

	uploads, err := service.NewUploadService(config.GetUploadFolder())
	if err != nil {
		return err
	}
	s.uploads = uploads

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	addr := net.JoinHostPort("", config.GetPort())
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			logger.Error("serve:", err)
		}
	}()

	logger.Infof("%s %s listening on port %s", config.GetName(), config.GetVersion(), config.GetPort())
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	s.cancel()

	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
