package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	clerk "github.com/clerk/clerk-sdk-go/v2"
	gorilllaHandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"habitLogAPI/handlers"
	"habitLogAPI/internal/config"
	"habitLogAPI/internal/lock"
	"habitLogAPI/internal/logger"
	"habitLogAPI/internal/metrics"
	"habitLogAPI/internal/store"
	"habitLogAPI/internal/workers"
	"habitLogAPI/middleware"
	"habitLogAPI/services"
	"habitLogAPI/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// The logger depends on config, so this is the one plain exit.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.IsDevelopment(),
	})
	defer logger.Sync(log)

	log.Info("Logger initialized successfully",
		zap.String("level", cfg.LogLevel),
		zap.String("format", cfg.LogFormat),
		zap.String("environment", cfg.Environment),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	userStore, err := store.Open(ctx, store.Options{
		Driver:      cfg.StoreDriver,
		DataDir:     cfg.DataDir,
		DatabaseURL: cfg.DatabaseURL,
		SQLitePath:  cfg.SQLitePath,
	})
	if err != nil {
		log.Fatal("Failed to open user store", zap.String("driver", cfg.StoreDriver), zap.Error(err))
	}
	defer func() {
		log.Info("Closing user store...")
		if err := userStore.Close(); err != nil {
			log.Error("Failed to close user store", zap.Error(err))
		}
	}()
	log.Info("User store ready", zap.String("driver", cfg.StoreDriver))

	var locker lock.Locker = lock.NewLocal()
	if cfg.UsesRedis() {
		client, err := lock.NewRedisClient(ctx, lock.RedisOptions{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer client.Close()
		locker = lock.NewRedis(client, cfg.RedisPrefix, 0)
		log.Info("Using Redis for per-user locks", zap.String("addr", cfg.RedisAddr))
	}

	var auth func(http.Handler) http.Handler
	switch cfg.AuthMode {
	case "header":
		auth = middleware.HeaderAuthMiddleware
	default:
		clerk.SetKey(cfg.ClerkSecretKey)
		auth = middleware.ClerkAuthMiddleware(log)
		log.Info("Clerk initialized successfully")
	}

	middleware.InitPrometheus(prometheus.DefaultRegisterer)
	metrics.Register(prometheus.DefaultRegisterer)

	deps := services.Deps{
		Store:    userStore,
		Locker:   locker,
		Clock:    utils.RealClock{},
		Location: cfg.Location(),
		Log:      log,
	}
	userService := services.NewUserService(deps)
	habitService := services.NewHabitService(deps)
	chatbotService := services.NewChatbotService(deps)
	reminderService := services.NewReminderService(deps)

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	go rateLimiter.CleanupVisitors(ctx)

	r := handlers.NewRouter(handlers.Handlers{
		User:         handlers.NewUserHandler(userService, log),
		Habit:        handlers.NewHabitHandler(habitService, log),
		StreakFreeze: handlers.NewStreakFreezeHandler(habitService, log),
		Chatbot:      handlers.NewChatbotHandler(chatbotService, log),
	}, handlers.RouterOptions{
		Auth:        auth,
		Middlewares: []mux.MiddlewareFunc{rateLimiter.Middleware, middleware.MonitorMiddleware},
		Metrics:     middleware.BasicAuthMiddleware(cfg.MetricsUser, cfg.MetricsPass)(promhttp.Handler()),
		Ping:        userStore.Ping,
	})

	workerDone := workers.StartReminderWorker(ctx, cfg.ReminderInterval, log, reminderService.SendMissedHabitReminders)

	// CORS configuration
	corsHandler := gorilllaHandlers.CORS(
		gorilllaHandlers.AllowedOrigins(cfg.CORSOrigins),
		gorilllaHandlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		gorilllaHandlers.AllowedHeaders([]string{"Content-Type", "Authorization", middleware.UserIDHeader}),
		gorilllaHandlers.ExposedHeaders([]string{"Content-Length"}),
		gorilllaHandlers.AllowCredentials(),
	)

	server := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      corsHandler(r),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Error starting server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}
	<-workerDone

	log.Info("Server shutdown complete")
}
