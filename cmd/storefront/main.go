package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"

	"github.com/Priest-tz/oja/internal/cart"
	"github.com/Priest-tz/oja/internal/catalog"
	"github.com/Priest-tz/oja/internal/checkout"
	"github.com/Priest-tz/oja/internal/events"
	h "github.com/Priest-tz/oja/internal/http"
	"github.com/Priest-tz/oja/internal/paystack"
)

type Config struct {
	HTTPPort          string
	RedisAddr         string
	RedisPassword     string
	PaystackSecretKey string
	PaystackBaseURL   string
	CatalogBaseURL    string
	KafkaBrokers      string
	RequestTimeout    time.Duration
	ShutdownTimeout   time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:          getEnv("HTTP_PORT", "8080"),
		RedisAddr:         getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:     getEnv("REDIS_PASSWORD", ""),
		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", paystack.DefaultBaseURL),
		CatalogBaseURL:    getEnv("CATALOG_BASE_URL", "https://api.oluwasetemi.dev"),
		KafkaBrokers:      getEnv("KAFKA_BROKERS", ""),
		RequestTimeout:    30 * time.Second,
		ShutdownTimeout:   10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()
	ctx := context.Background()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       0,
	})
	defer redisClient.Close()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("Redis connection failed:", err)
	}
	log.Printf("Redis ping succeeded")

	carts := cart.NewStore(cart.NewRedisStorage(redisClient))

	gateway := paystack.NewClient(cfg.PaystackSecretKey, cfg.PaystackBaseURL)
	if !gateway.Ready() {
		log.Printf("PAYSTACK_SECRET_KEY is not set; checkout submission is blocked")
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.KafkaBrokers != "" {
		publisher = events.NewKafkaPublisher(strings.Split(cfg.KafkaBrokers, ",")...)
		log.Printf("Publishing checkout events to %s", cfg.KafkaBrokers)
	}

	orchestrator := checkout.NewOrchestrator(carts, gateway, publisher)

	cartHandler := h.NewCartHandler(carts, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(orchestrator, cfg.RequestTimeout)
	paystackHandler := h.NewPaystackHandler(gateway, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(catalog.NewClient(cfg.CatalogBaseURL), cfg.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{product_id}", cartHandler.RemoveItem)
		})
		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", checkoutHandler.Enter)
			r.Post("/", checkoutHandler.Submit)
			r.Post("/callback", checkoutHandler.Callback)
		})
		r.Get("/products", productHandler.List)
	})
	r.Post("/api/paystack", paystackHandler.Initialize)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
