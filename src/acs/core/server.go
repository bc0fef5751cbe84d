package core

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bitswalk/acs/src/acs/api"
	_ "github.com/bitswalk/acs/src/acs/docs"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Server holds the HTTP server instance and configuration
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	api        *api.API
}

// NewServer creates a Server exposing the services of a
func NewServer(a *app) *Server {
	// Set Gin mode based on log level
	if viper.GetString("log.level") == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	// Forwarded headers are honored only from server.trusted_proxies.
	// Everyone else is identified by the connection's remote address.
	if err := router.SetTrustedProxies(viper.GetStringSlice("server.trusted_proxies")); err != nil {
		log.Warn("Ignoring invalid server.trusted_proxies", "error", err)
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(gin.Recovery())
	router.Use(ginLogger())

	apiInstance := api.New(api.Config{
		Users:      a.users,
		Roles:      a.roles,
		Migrations: a.engine,
		Version:    VersionInfo,
		RateLimit: api.RateLimitConfig{
			Enabled:            viper.GetBool("server.rate_limit.enabled"),
			AuthRequestsPerMin: viper.GetInt("server.rate_limit.auth_per_min"),
		},
	})
	apiInstance.RegisterRoutes(router)

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return &Server{router: router, api: apiInstance}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until SIGINT or SIGTERM, then shuts down gracefully
func (s *Server) Run(addr string) error {
	defer s.api.Close()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors coming from the listener
	errChan := make(chan error, 1)

	go func() {
		log.Info("Starting acs server", "address", addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("Received signal, shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	log.Info("Server stopped gracefully")
	return nil
}

// ginLogger returns a gin middleware for logging requests
func ginLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		if query := c.Request.URL.RawQuery; query != "" {
			path = path + "?" + query
		}

		c.Next()

		log.Debug("HTTP request",
			"status", c.Writer.Status(),
			"method", c.Request.Method,
			"path", path,
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `serve exposes registration, login, role assignment and migrations over
HTTP. The OpenAPI description is served at /swagger/index.html.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmdContext(cmd))
			if err != nil {
				return err
			}
			defer a.Close()

			log.Info("acs starting",
				"version", VersionInfo.Version,
				"build_date", VersionInfo.BuildDate,
				"database", a.database.Path(),
				"log_output", log.Output(),
			)

			addr := fmt.Sprintf("%s:%d", viper.GetString("server.bind"), viper.GetInt("server.port"))
			return NewServer(a).Run(addr)
		},
	}

	cmd.Flags().IntP("port", "p", 8080, "Port to listen on")
	cmd.Flags().StringP("bind", "b", "127.0.0.1", "Address to bind to")
	_ = viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	_ = viper.BindPFlag("server.bind", cmd.Flags().Lookup("bind"))

	return cmd
}
