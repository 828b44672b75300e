package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/rentalhub/internal/handler"
	"github.com/yourorg/rentalhub/internal/infrastructure/logger"
	"github.com/yourorg/rentalhub/internal/infrastructure/redis"
	"github.com/yourorg/rentalhub/internal/migrate"
	"github.com/yourorg/rentalhub/internal/observability/metrics"
	"github.com/yourorg/rentalhub/internal/observability/tracing"
	"github.com/yourorg/rentalhub/internal/repository"
	"github.com/yourorg/rentalhub/internal/security"
	"github.com/yourorg/rentalhub/internal/security/audit"
	"github.com/yourorg/rentalhub/internal/security/auth"
	"github.com/yourorg/rentalhub/internal/security/middleware"
	"github.com/yourorg/rentalhub/internal/security/ratelimit"
	"github.com/yourorg/rentalhub/internal/service"
	"github.com/yourorg/rentalhub/pkg/config"
	"github.com/yourorg/rentalhub/pkg/database"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 2. Initialize structured logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("starting RentalHub server", slog.String("environment", cfg.Environment))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 3. Initialize tracing (no-op without an OTLP endpoint)
	shutdownTracing, err := tracing.Init(ctx, log, cfg.OTLPEndpoint, "rentalhub", cfg.Environment)
	if err != nil {
		log.Error("failed to initialize tracing", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer shutdownTracing(context.Background())

	// 4. Connect to PostgreSQL and bring the schema up
	pool, err := database.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if err := migrate.Up(ctx, pool.DB(), log); err != nil {
		log.Error("migration failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.SeedOnStartup {
		if err := migrate.Seed(ctx, pool.DB(), log); err != nil {
			log.Error("seeding failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// 5. Initialize Redis client
	redisClient, err := redis.NewClient(cfg.RedisURL)
	if err != nil {
		log.Error("failed to connect to Redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()

	// 6. Initialize repositories
	userRepo := repository.NewPostgresUserRepository(pool.DB(), log)
	towerRepo := repository.NewPostgresTowerRepository(pool.DB(), log)
	unitRepo := repository.NewPostgresUnitRepository(pool.DB(), log)
	amenityRepo := repository.NewPostgresAmenityRepository(pool.DB(), log)
	bookingRepo := repository.NewPostgresBookingRepository(pool.DB(), log)
	leaseRepo := repository.NewPostgresLeaseRepository(pool.DB(), log)
	paymentRepo := repository.NewPostgresPaymentRepository(pool.DB(), log)
	statsRepo := repository.NewPostgresStatsRepository(pool.DB(), log)

	// 7. Initialize security components
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, "rentalhub", cfg.TokenTTL)
	policy := security.NewPolicy(log)
	auditLogger := audit.NewLogger(log)
	rateLimiter := ratelimit.NewLimiter(redisClient, cfg.RateLimitPerMinute, time.Minute, log)

	// 8. Initialize services
	authService := service.NewAuthService(userRepo, tokenManager, log)
	bookingService := service.NewBookingService(bookingRepo, policy, log)
	statsService := service.NewStatsService(statsRepo, log)

	// 9. Initialize handlers
	authHandler := handler.NewAuthHandler(authService, log)
	towerHandler := handler.NewTowerHandler(towerRepo, userRepo, policy, auditLogger, log)
	unitHandler := handler.NewUnitHandler(unitRepo, userRepo, policy, auditLogger, log)
	amenityHandler := handler.NewAmenityHandler(amenityRepo, userRepo, policy, auditLogger, log)
	bookingHandler := handler.NewBookingHandler(bookingService, userRepo, auditLogger, log)
	leaseHandler := handler.NewLeaseHandler(leaseRepo, userRepo, policy, auditLogger, log)
	paymentHandler := handler.NewPaymentHandler(paymentRepo, userRepo, policy, auditLogger, log)
	statsHandler := handler.NewStatsHandler(statsService, userRepo, policy, log)
	userHandler := handler.NewUserHandler(userRepo, policy, log)
	healthHandler := handler.NewHealthHandler(pool, redisClient, log)

	// 10. Setup HTTP routes
	mux := http.NewServeMux()

	mux.HandleFunc("POST /auth/register", authHandler.Register)
	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("GET /auth/me", authHandler.Me)

	mux.HandleFunc("GET /towers", towerHandler.List)
	mux.HandleFunc("POST /towers", towerHandler.Create)
	mux.HandleFunc("GET /towers/{id}", towerHandler.Get)
	mux.HandleFunc("PUT /towers/{id}", towerHandler.Update)
	mux.HandleFunc("DELETE /towers/{id}", towerHandler.Delete)

	mux.HandleFunc("GET /units", unitHandler.List)
	mux.HandleFunc("POST /units", unitHandler.Create)
	mux.HandleFunc("GET /units/{id}", unitHandler.Get)
	mux.HandleFunc("PUT /units/{id}", unitHandler.Update)
	mux.HandleFunc("DELETE /units/{id}", unitHandler.Delete)

	mux.HandleFunc("GET /amenities", amenityHandler.List)
	mux.HandleFunc("POST /amenities", amenityHandler.Create)
	mux.HandleFunc("GET /amenities/{id}", amenityHandler.Get)
	mux.HandleFunc("PUT /amenities/{id}", amenityHandler.Update)
	mux.HandleFunc("DELETE /amenities/{id}", amenityHandler.Delete)

	mux.HandleFunc("GET /bookings", bookingHandler.List)
	mux.HandleFunc("POST /bookings", bookingHandler.Create)
	mux.HandleFunc("GET /bookings/{id}", bookingHandler.Get)
	mux.HandleFunc("PUT /bookings/{id}", bookingHandler.Update)
	mux.HandleFunc("DELETE /bookings/{id}", bookingHandler.Delete)

	mux.HandleFunc("GET /leases", leaseHandler.List)
	mux.HandleFunc("POST /leases", leaseHandler.Create)
	mux.HandleFunc("GET /leases/{id}", leaseHandler.Get)
	mux.HandleFunc("PUT /leases/{id}", leaseHandler.Update)
	mux.HandleFunc("DELETE /leases/{id}", leaseHandler.Delete)

	mux.HandleFunc("GET /payments", paymentHandler.List)
	mux.HandleFunc("POST /payments", paymentHandler.Create)
	mux.HandleFunc("GET /payments/{id}", paymentHandler.Get)

	mux.HandleFunc("GET /stats/dashboard", statsHandler.Dashboard)
	mux.HandleFunc("GET /users", userHandler.List)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Authenticated chain: content type -> JWT -> rate limit -> routes
	var protected http.Handler = mux
	protected = middleware.RateLimitMiddleware(rateLimiter, log)(protected)
	protected = middleware.JWTMiddleware(tokenManager, log)(protected)
	protected = middleware.ValidateJSONContentType(log)(protected)

	// CORS middleware honoring configured origins. Runs before the
	// authenticated chain so preflight requests are answered without a token.
	handlerWithCORS := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if originAllowed(cfg.CORSAllowedOrigins, origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else if len(cfg.CORSAllowedOrigins) > 0 {
			w.Header().Set("Access-Control-Allow-Origin", cfg.CORSAllowedOrigins[0])
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Accept, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		protected.ServeHTTP(w, r)
	})

	// Chain middleware: request ID -> metrics -> tracing -> CORS ->
	// content type -> JWT -> rate limit
	var root http.Handler = otelhttp.NewHandler(handlerWithCORS, "rentalhub")
	root = metrics.HTTPMetricsMiddleware(root)
	root = withRequestID(root, log)

	// 11. Start HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Info("server starting",
		slog.Int("port", cfg.ServerPort),
		slog.String("auth", "jwt"),
		slog.Int("rate_limit", cfg.RateLimitPerMinute),
		slog.String("rate_limit_window", "1m"),
	)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.String("error", err.Error()))
		}
	}()

	<-sigChan
	log.Info("shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", slog.String("error", err.Error()))
	}

	log.Info("server stopped")
}

type requestIDKey struct{}

// withRequestID attaches a request ID to the context and response headers
// for traceability.
func withRequestID(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-ID", reqID)

		ctx := context.WithValue(r.Context(), requestIDKey{}, reqID)
		start := time.Now()

		next.ServeHTTP(w, r.WithContext(ctx))

		log.Info("request completed",
			slog.String("request_id", reqID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Duration("duration_ms", time.Since(start)),
		)
	})
}

func originAllowed(allowed []string, origin string) bool {
	if origin == "" {
		return false
	}
	for _, a := range allowed {
		if a == "*" || a == origin {
			return true
		}
	}
	return false
}
