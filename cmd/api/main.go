package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumenstudio/booking-api/config"
	"github.com/lumenstudio/booking-api/internal/cache"
	"github.com/lumenstudio/booking-api/internal/handlers"
	"github.com/lumenstudio/booking-api/internal/middleware"
	"github.com/lumenstudio/booking-api/internal/services"
	"github.com/lumenstudio/booking-api/internal/web"
	"github.com/lumenstudio/booking-api/pkg/httpclient"
	"github.com/lumenstudio/booking-api/pkg/logger"
	"github.com/lumenstudio/booking-api/pkg/metrics"
	"github.com/lumenstudio/booking-api/pkg/profiling"
	"github.com/lumenstudio/booking-api/pkg/recaptcha"
	"github.com/lumenstudio/booking-api/pkg/tracing"
	"github.com/lumenstudio/booking-api/pkg/webhook"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	bookingBodyLimit = 64 * 1024
	logsBodyLimit    = 1 * 1024 * 1024
)

// rateLimiters groups the per-IP limiters by endpoint type
type rateLimiters struct {
	general *middleware.RateLimiter
	booking *middleware.RateLimiter
	auth    *middleware.RateLimiter
}

// registerPageRoutes registers the booking page and its assets
func registerPageRoutes(router *gin.Engine, limiters rateLimiters, pageHandler *handlers.PageHandler) {
	router.GET("/", limiters.general.Middleware(), pageHandler.Index)
	router.POST("/booking", limiters.booking.Middleware(), middleware.BodySizeLimitMiddleware(bookingBodyLimit), pageHandler.SubmitBooking)
	router.StaticFS("/static", web.Static())
}

// registerAPIRoutes registers the JSON API for a given router group
func registerAPIRoutes(
	group *gin.RouterGroup,
	limiters rateLimiters,
	bookingHandler *handlers.BookingHandler,
	calendarHandler *handlers.CalendarHandler,
	logsHandler *handlers.LogsHandler,
) {
	group.POST("/appointments", limiters.booking.Middleware(), middleware.BodySizeLimitMiddleware(bookingBodyLimit), bookingHandler.SubmitAppointment)
	group.GET("/appointments/month", limiters.general.Middleware(), calendarHandler.MonthEvents)
	group.POST("/logs", limiters.general.Middleware(), middleware.BodySizeLimitMiddleware(logsBodyLimit), logsHandler.ReceiveFrontendLogs)
}

// registerAuthRoutes registers the Google sign-in routes
func registerAuthRoutes(group *gin.RouterGroup, limiters rateLimiters, authHandler *handlers.AuthHandler) {
	auth := group.Group("/auth")
	auth.GET("/google", limiters.auth.Middleware(), authHandler.SignIn)
	auth.GET("/google/callback", limiters.auth.Middleware(), authHandler.Callback)
	auth.GET("/session", limiters.general.Middleware(), authHandler.GetSession)
	auth.POST("/sign-out", limiters.general.Middleware(), authHandler.SignOut)
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
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting studio booking service",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize distributed tracing
	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	// Continuous profiling
	stopProfiling, err := profiling.Start(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to start profiler", zap.Error(err))
	}
	defer stopProfiling()

	// Start infrastructure metrics collection
	metrics.RecordInfrastructureMetrics(ctx.Done())

	// HTTP client for the webhooks, reCAPTCHA and Google
	httpClient := httpclient.NewStandardClient(time.Duration(cfg.Webhooks.TimeoutSeconds) * time.Second)

	webhookClient := webhook.NewClient(webhook.Config{
		IntakeURL:            cfg.Webhooks.IntakeURL,
		MonthAppointmentsURL: cfg.Webhooks.MonthAppointmentsURL,
	}, httpClient)

	appointmentsCache := cache.NewAppointmentsCache(webhookClient, cfg.Cache.AppointmentsTTLSeconds)
	if !appointmentsCache.Enabled() {
		logger.Warn("Appointments cache is DISABLED - every page view calls the month webhook")
	}

	// Optional collaborators stay nil interfaces when disabled
	var captcha services.CaptchaVerifier
	if cfg.CaptchaEnabled() {
		captcha = recaptcha.NewVerifier(cfg.ReCAPTCHA.SecretKey, httpClient)
	} else {
		logger.Warn("ReCAPTCHA disabled: RECAPTCHA_SECRET_KEY not configured")
	}
	var invalidator services.CalendarInvalidator
	if appointmentsCache.Enabled() {
		invalidator = appointmentsCache
	}

	// Initialize services
	bookingService := services.NewBookingService(webhookClient, captcha, invalidator)
	calendarService := services.NewCalendarService(appointmentsCache)

	// Initialize handlers
	pageHandler := handlers.NewPageHandler(bookingService, calendarService, handlers.PageOptions{
		AuthEnabled:      cfg.GoogleAuthEnabled(),
		RecaptchaSiteKey: cfg.ReCAPTCHA.SiteKey,
	})
	bookingHandler := handlers.NewBookingHandler(bookingService)
	calendarHandler := handlers.NewCalendarHandler(calendarService)
	healthHandler := handlers.NewHealthHandler(webhookClient.OpenBreakers)

	frontendLog := logger.NewRotatingFile(cfg.Logging.Dir, "frontend.log")
	defer frontendLog.Close()
	logsHandler := handlers.NewLogsHandler(frontendLog)

	templates, err := web.Templates()
	if err != nil {
		logger.Fatal("Failed to load page templates", zap.Error(err))
	}

	// Set up Gin router
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.SetHTMLTemplate(templates)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName)) // OpenTelemetry tracing
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:3000", "http://127.0.0.1:3000")
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader, "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true, // session cookie
		MaxAge:           12 * time.Hour,
	}))

	cookies := middleware.CookieSettings{
		Domain: cfg.Session.CookieDomain,
		Secure: cfg.Session.CookieSecure,
	}

	var authService *services.AuthService
	if cfg.GoogleAuthEnabled() {
		authService = services.NewAuthService(cfg.GoogleAuth, cfg.Session)
		router.Use(middleware.OptionalSessionMiddleware(authService, cookies))
	}

	// Per-IP rate limiters, pruned until shutdown
	limiters := rateLimiters{
		general: middleware.NewRateLimiter(ctx, 50, 100),
		booking: middleware.NewRateLimiter(ctx, rate.Every(10*time.Second), 5),
		auth:    middleware.NewRateLimiter(ctx, rate.Every(5*time.Second), 10),
	}

	registerPageRoutes(router, limiters, pageHandler)

	// Utility endpoints (not versioned - operational endpoints)
	api := router.Group("/api")
	api.GET("/healthcheck", limiters.general.Middleware(), healthHandler.Healthcheck)
	api.GET("/metrics", limiters.general.Middleware(), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	registerAPIRoutes(v1, limiters, bookingHandler, calendarHandler, logsHandler)

	if authService != nil {
		registerAuthRoutes(v1, limiters, handlers.NewAuthHandler(authService, cookies))
	} else {
		logger.Warn("Google sign-in disabled: GOOGLE_CLIENT_ID, GOOGLE_CLIENT_SECRET or SESSION_SECRET not configured")
	}

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Leaves room for a webhook call at its full timeout
		WriteTimeout:   time.Duration(cfg.Webhooks.TimeoutSeconds+15) * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
