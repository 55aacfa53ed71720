package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/argon2id"
	"github.com/gin-gonic/gin"

	"github.com/Tokamp4/task-management-system-fork/internal/config"
	"github.com/Tokamp4/task-management-system-fork/internal/dao"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/httperr"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/middleware"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/v1"
	"github.com/Tokamp4/task-management-system-fork/internal/delivery/http/v2"
	"github.com/Tokamp4/task-management-system-fork/internal/metrics"
	"github.com/Tokamp4/task-management-system-fork/internal/policy"
	"github.com/Tokamp4/task-management-system-fork/internal/services"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	router := gin.New()
	httpLogger := globalLogger.With().Str("component", "http").Logger()
	router.Use(middleware.RequestLogger(httpLogger))
	router.Use(middleware.Recovery(httpLogger))

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(metrics.Config{
			Namespace:        cfg.Metrics.Namespace,
			CollectGoMetrics: cfg.Metrics.CollectGoMetrics,
			CollectProcess:   cfg.Metrics.CollectProcess,
		})
		router.Use(m.Middleware())
		router.GET(cfg.Metrics.Path, gin.WrapH(m.Handler()))
	}
	router.GET("/healthz", handleHealth)
	registerRoutes(router, m)

	server := &http.Server{
		Addr:              net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler:           router,
		ReadHeaderTimeout: httpCfg.ReadHeaderTimeout,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	// Wait for the interrupt signal to gracefully
	// shut down the server with a timeout.
	quit := make(chan os.Signal, 1)
	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	// kill -9 is syscall.SIGKILL but can't be caught, so don't need to add it
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func registerRoutes(router gin.IRouter, m *metrics.Metrics) {
	cfg := config.Global()
	logger := globalLogger

	users := dao.NewUserDao(globalDB)
	sessions := dao.NewSessionDao(globalDB)
	tasks := dao.NewTaskDao(globalDB)

	roleService := services.NewRoleService(logger, users)
	sessionService := services.NewSessionService(logger, sessions)
	taskService := services.NewTaskService(logger, tasks, users, roleService)
	authService := services.NewAuthService(logger, users, sessions, services.AuthServiceConfig{
		PasswordParams: &argon2id.Params{
			Memory:      cfg.Argon2.Memory,
			Iterations:  cfg.Argon2.Iterations,
			Parallelism: cfg.Argon2.Parallelism,
			SaltLength:  cfg.Argon2.SaltLength,
			KeyLength:   cfg.Argon2.KeyLength,
		},
		JWTIssuer:          cfg.JWT.Issuer,
		JWTSigningKey:      []byte(cfg.JWT.SigningKey),
		JWTAccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		JWTRefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
	})

	var observer v1.StatusObserver
	if m != nil {
		observer = m
	}

	authenticator := middleware.NewAuthenticator(logger, authService, sessionService)
	registry := policy.Default()

	v1Handler := v1.New(logger, authService, taskService, roleService, observer)
	apiV1 := router.Group("/api/v1")

	authRouter := apiV1.Group("/auth")
	authRouter.POST("/login", v1Handler.HandleLogin)
	authRouter.POST("/refresh", v1Handler.HandleRefresh)
	authRouter.POST("/register", v1Handler.HandleRegister)
	authRouter.POST("/logout", authenticator.Handle, v1Handler.HandleLogout)

	v1Tasks := apiV1.Group("/tasks", authenticator.Handle)
	v1Tasks.POST("", v1Handler.HandleCreateTask)
	v1Tasks.PUT("/:id", v1Handler.HandleUpdateTask)
	v1Tasks.PUT("/:id/status", v1Handler.HandleSetTaskStatus)
	v1Tasks.DELETE("/:id", v1Handler.HandleDeleteTask)

	apiV1.PUT("/users/:id/roles/:role",
		authenticator.Handle,
		middleware.RequirePolicy(logger, registry, roleService, policy.RequireAdmin),
		v1Handler.HandleAssignRole,
	)

	v2Handler := v2.New(logger, taskService, observer)
	v2Tasks := router.Group("/api/v2/tasks", authenticator.Handle)
	v2Tasks.GET("", v2Handler.HandleGetTasks)
	v2Tasks.PUT("/:id/status",
		middleware.RequirePolicy(logger, registry, roleService, policy.RequireReviewer),
		v2Handler.HandleSetTaskStatus,
	)
}

func handleHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, 2*time.Second)
	defer cancel()

	err := pingDatabase(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("health check failed")
		httperr.Abort(c, httperr.NewStatusText(http.StatusServiceUnavailable))
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
