// Package httpapi exposes the registration, login and payment submission
// flows over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sprov007/payserver/internal/logging"
	"github.com/sprov007/payserver/internal/server/config"
	"github.com/sprov007/payserver/internal/server/services"
)

// Server is the HTTP front of the payment service.
type Server struct {
	address        string
	logger         logging.Logger
	users          *services.UserService
	payments       *services.PaymentService
	jwtSecret      []byte
	allowedOrigins map[string]struct{}
	router         *gin.Engine
}

// NewServer wires the routes and middleware onto a gin engine.
func NewServer(cfg *config.Config, l logging.Logger, us *services.UserService, ps *services.PaymentService) *Server {
	origins := make(map[string]struct{}, len(cfg.AllowedOrigins))
	for _, o := range cfg.AllowedOrigins {
		origins[o] = struct{}{}
	}

	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		address:        cfg.EndpointAddr,
		logger:         l.With("module", "httpapi"),
		users:          us,
		payments:       ps,
		jwtSecret:      []byte(cfg.SecretKey),
		allowedOrigins: origins,
		router:         router,
	}

	router.Use(s.corsMiddleware())

	router.POST("/register", s.handleRegister)
	router.POST("/login", s.handleLogin)

	authorized := router.Group("/", s.authMiddleware())
	authorized.GET("/dashboard", s.handleDashboard)
	authorized.POST("/payment", s.handlePayment)
	authorized.GET("/last-payment", s.handleLastPayment)

	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.router}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
