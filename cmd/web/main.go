package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mentorhub/mentorhub-web/config"
	"github.com/mentorhub/mentorhub-web/internal/cache"
	"github.com/mentorhub/mentorhub-web/internal/coreapi"
	"github.com/mentorhub/mentorhub-web/internal/handlers"
	"github.com/mentorhub/mentorhub-web/internal/middleware"
	"github.com/mentorhub/mentorhub-web/internal/models"
	"github.com/mentorhub/mentorhub-web/internal/services"
	"github.com/mentorhub/mentorhub-web/internal/session"
	"github.com/mentorhub/mentorhub-web/pkg/httpclient"
	"github.com/mentorhub/mentorhub-web/pkg/jwt"
	"github.com/mentorhub/mentorhub-web/pkg/logger"
	"github.com/mentorhub/mentorhub-web/pkg/metrics"
	"github.com/mentorhub/mentorhub-web/pkg/profiling"
	"github.com/mentorhub/mentorhub-web/pkg/storage"
	"github.com/mentorhub/mentorhub-web/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// registerChatRoutes mounts the messaging feature under a dashboard group.
// Students and mentors share the same handlers; the guard on the group
// decides who gets in.
func registerChatRoutes(group *gin.RouterGroup, limiter *middleware.RateLimiter, chatHandler *handlers.ChatHandler) {
	group.GET("/conversas", limiter.Middleware(), chatHandler.Counterparts)
	group.GET("/conversas/:counterpartId", limiter.Middleware(), chatHandler.Conversation)
	group.POST("/mensagens", limiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), chatHandler.Send)
}

// registerProfileRoutes mounts the profile endpoints under a dashboard group.
func registerProfileRoutes(group *gin.RouterGroup, limiter *middleware.RateLimiter, profileHandler *handlers.ProfileHandler) {
	group.GET("/perfil", limiter.Middleware(), profileHandler.Me)
	group.POST("/perfil/avatar", limiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024*1024), profileHandler.UploadAvatar)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogFile:     cfg.Logging.File,
		Environment: cfg.Server.AppEnv,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting MentorHub web tier",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
		cfg.Observability.OTLPEndpoint,
	)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling (no-op unless enabled)
	profilerStop, err := profiling.InitProfiler(
		cfg.Profiling,
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceVersion,
		cfg.Server.AppEnv,
	)
	if err != nil {
		logger.Error("Failed to initialize profiler", zap.Error(err))
	} else {
		defer profilerStop()
	}

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics()

	// Initialize the core backend client
	httpClient := httpclient.NewStandardClientWithTimeout(time.Duration(cfg.CoreAPI.TimeoutSeconds) * time.Second)
	coreClient := coreapi.NewClient(cfg.CoreAPI.BaseURL, httpClient)

	// Initialize the S3 avatar store if credentials are configured
	var avatarStore *storage.AvatarStore
	if cfg.Storage.AccessKeyID != "" && cfg.Storage.SecretAccessKey != "" {
		avatarStore, err = storage.NewAvatarStore(
			cfg.Storage.AccessKeyID,
			cfg.Storage.SecretAccessKey,
			cfg.Storage.BucketName,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
		)
		if err != nil {
			logger.Fatal("Failed to initialize avatar storage", zap.Error(err))
		}
	}

	// Session store backed by a signed cookie plus the legacy keys
	tokenManager := jwt.NewTokenManager(cfg.Session.JWTSecret, cfg.Session.JWTIssuer, cfg.Session.SessionTTLHours)
	sessionStore := session.NewStore(tokenManager, cfg.Session.CookieDomain, cfg.Session.CookieSecure)

	rosterCache := cache.NewRosterCache(cfg.Cache.RosterTTLSeconds, cfg.Cache.DisableRosterCache)

	// Initialize services
	authService := services.NewAuthService(coreClient)
	chatService := services.NewChatService(coreClient, coreClient, rosterCache)
	scheduleService := services.NewScheduleService(coreClient)
	profileService := services.NewProfileService(coreClient, avatarStore, rosterCache)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, sessionStore)
	chatHandler := handlers.NewChatHandler(chatService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	profileHandler := handlers.NewProfileHandler(profileService)
	navHandler := handlers.NewNavHandler()
	healthHandler := handlers.NewHealthHandler(coreClient.Ping)

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(middleware.SessionContextMiddleware(sessionStore))

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true, // session cookies
		MaxAge:           12 * time.Hour,
	}))

	// Rate limiters per endpoint class
	generalRateLimiter := middleware.NewRateLimiter(100, 200) // 100 req/sec, burst of 200
	authRateLimiter := middleware.NewRateLimiter(1, 5)        // login abuse prevention
	chatRateLimiter := middleware.NewRateLimiter(20, 40)      // polling-heavy feature

	// Operational endpoints
	api := router.Group("/api")
	api.GET("/healthcheck", generalRateLimiter.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", generalRateLimiter.Middleware(), gin.WrapH(promhttp.Handler()))
	api.GET("/session", generalRateLimiter.Middleware(), authHandler.Session)

	// Public entry points
	router.POST(models.PathLogin, authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), authHandler.Login)
	router.POST(models.PathRegister, authRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(100*1024), authHandler.Register)
	router.Any(models.PathLogout, authHandler.Logout)

	// The landing page sends everyone where they belong
	router.GET("/", func(c *gin.Context) {
		sess, err := middleware.GetSession(c)
		if err != nil || !sess.Authenticated() {
			c.Redirect(http.StatusFound, models.PathLogin)
			return
		}
		c.Redirect(http.StatusFound, sess.Role.DashboardPath())
	})

	// Student dashboard
	student := router.Group(models.PathStudentDashboard)
	student.Use(middleware.RequireRole(models.RoleStudent))
	student.GET("/nav", generalRateLimiter.Middleware(), navHandler.Descriptor)
	registerChatRoutes(student, chatRateLimiter, chatHandler)
	registerProfileRoutes(student, generalRateLimiter, profileHandler)

	// Admin dashboard
	admin := router.Group(models.PathAdminDashboard)
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	admin.GET("/nav", generalRateLimiter.Middleware(), navHandler.Descriptor)
	registerProfileRoutes(admin, generalRateLimiter, profileHandler)

	// Mentor dashboard
	mentor := router.Group(models.PathMentorDashboard)
	mentor.Use(middleware.RequireRole(models.RoleMentor))
	mentor.GET("/nav", generalRateLimiter.Middleware(), navHandler.Descriptor)
	registerChatRoutes(mentor, chatRateLimiter, chatHandler)
	registerProfileRoutes(mentor, generalRateLimiter, profileHandler)
	mentor.GET("/sessoes", generalRateLimiter.Middleware(), scheduleHandler.List)
	mentor.DELETE("/sessoes/:id", generalRateLimiter.Middleware(), scheduleHandler.Delete)
	mentor.PUT("/sessoes/:id/link", generalRateLimiter.Middleware(), middleware.BodySizeLimitMiddleware(10*1024), scheduleHandler.UpdateLink)
	mentor.POST("/sessoes/:id/iniciar", generalRateLimiter.Middleware(), scheduleHandler.Start)
	mentor.POST("/sessoes/ativa/encerrar", generalRateLimiter.Middleware(), scheduleHandler.EndActive)

	// Catch-all: authenticated users land on their dashboard, everyone
	// else on the login page
	router.NoRoute(func(c *gin.Context) {
		sess, err := middleware.GetSession(c)
		if err != nil || !sess.Authenticated() {
			c.Redirect(http.StatusFound, models.PathLogin)
			return
		}
		c.Redirect(http.StatusFound, sess.Role.DashboardPath())
	})

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
