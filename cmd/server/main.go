package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"tradesim/internal/analytics"
	"tradesim/internal/country"
	"tradesim/internal/forum"
	"tradesim/internal/handler"
	"tradesim/internal/market"
	"tradesim/internal/middleware"
	"tradesim/internal/notification"
	"tradesim/internal/organizations"
	"tradesim/internal/quotes"
	"tradesim/internal/sanctions"
	"tradesim/internal/scheduler"
	"tradesim/internal/settings"
	"tradesim/internal/store"
	"tradesim/internal/trade"
	"tradesim/pkg/config"
	"tradesim/pkg/logger"
	"tradesim/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("tradesim")

	log.Info("Starting trade simulator", map[string]interface{}{
		"port": cfg.Server.Port,
	})

	// Redis connection (snapshot store + rate limiting)
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.URL,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis", map[string]interface{}{
			"error": err.Error(),
		})
	}
	log.Info("Redis connected", nil)

	// Domain store, hydrated from any existing snapshot
	st := store.New(store.NewRedisBackend(redisClient, ""), log)
	st.Hydrate(context.Background())

	// Scheduler and quote simulator
	sched := scheduler.NewScheduler(log)
	sched.Start()

	quoteService := quotes.NewService(st, sched, cfg.Quotes, log, time.Now().UnixNano())
	if st.Settings().AutoRefresh && cfg.Quotes.AutoRefresh {
		quoteService.Start()
	}

	// Services
	settingsService := settings.NewService(st, quoteService, log)
	notifier := notification.NewService(log, st)
	countryService := country.NewService(st, log)
	marketService := market.NewService(st, log)
	tradeService := trade.NewService(st, notifier, log)
	analyticsService := analytics.NewService(st)
	sanctionService := sanctions.NewService(st, notifier, log)
	forumService := forum.NewService(st, log)
	orgService := organizations.NewService(st, notifier, log)

	// Handlers
	val := validator.New()
	handlers := handler.Handlers{
		Country:       handler.NewCountryHandler(countryService, val, log),
		Product:       handler.NewProductHandler(marketService, val, log),
		Trade:         handler.NewTradeHandler(tradeService, val, log),
		Analytics:     handler.NewAnalyticsHandler(analyticsService, log),
		Sanction:      handler.NewSanctionHandler(sanctionService, val, log),
		Forum:         handler.NewForumHandler(forumService, val, log),
		Organizations: handler.NewOrganizationsHandler(orgService, val, log),
		Quotes:        handler.NewQuotesHandler(quoteService, log, cfg.Quotes.CryptoInterval),
		Settings:      handler.NewSettingsHandler(settingsService, notifier, log),
	}

	// Router
	r := mux.NewRouter()
	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.BodyLimit(cfg.Limits.BodyLimitBytes))
	r.Use(middleware.NewRateLimiter(redisClient, cfg.Limits.RequestsPerMinute, time.Minute, log).Limit)

	r.HandleFunc("/health", handler.Health).Methods("GET")
	r.HandleFunc("/ready", handler.Ready(redisClient)).Methods("GET")

	handler.Mount(r, handlers)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("Trade simulator started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down trade simulator...", nil)

	quoteService.Stop()
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Trade simulator stopped gracefully", nil)
}
