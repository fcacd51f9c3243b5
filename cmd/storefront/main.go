package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/nasif952/La-valecia/internal/cache"
	"github.com/nasif952/La-valecia/internal/cart"
	"github.com/nasif952/La-valecia/internal/catalog"
	"github.com/nasif952/La-valecia/internal/chat"
	"github.com/nasif952/La-valecia/internal/checkout"
	"github.com/nasif952/La-valecia/internal/config"
	"github.com/nasif952/La-valecia/internal/consumer"
	"github.com/nasif952/La-valecia/internal/domain"
	"github.com/nasif952/La-valecia/internal/inventory"
	"github.com/nasif952/La-valecia/internal/orders"
	"github.com/nasif952/La-valecia/internal/payment"
	"github.com/nasif952/La-valecia/internal/publisher"
	"github.com/nasif952/La-valecia/internal/repository"

	h "github.com/nasif952/La-valecia/internal/http"
)

type Config struct {
	HTTPPort        string
	ConfigPath      string
	MongoURI        string
	MongoDBName     string
	RedisAddr       string
	RedisPassword   string
	CatalogDBPath   string
	CatalogMigrate  string
	OrdersMigrate   string
	KafkaBrokers    []string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

func loadConfig() *Config {
	return &Config{
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		ConfigPath:      getEnv("CONFIG_PATH", "configs/config.yaml"),
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:     getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		CatalogDBPath:   getEnv("CATALOG_DB_PATH", "storefront.db"),
		CatalogMigrate:  getEnv("CATALOG_MIGRATIONS", "migrations/catalog"),
		OrdersMigrate:   getEnv("ORDERS_MIGRATIONS", "migrations/orders"),
		KafkaBrokers:    strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ","),
		RequestTimeout:  30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	cfg := loadConfig()

	storeCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	// Catalog (sqlite) and the inventory snapshot seeded from it
	catalogRepo, err := catalog.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		log.Fatalf("Failed to open catalog database: %v", err)
	}
	defer catalogRepo.Close()
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrate); err != nil {
		log.Fatalf("Failed to run catalog migrations: %v", err)
	}

	stock := inventory.NewMemoryStore()
	variants, err := catalogRepo.AllVariants(ctx)
	if err != nil {
		log.Fatalf("Failed to load variants: %v", err)
	}
	for _, v := range variants {
		if err := stock.SetStock(v.ID, v.Stock); err != nil {
			log.Fatalf("Failed to seed stock for variant %s: %v", v.ID, err)
		}
	}
	log.Printf("Seeded inventory with %d variants", len(variants))

	// Cart persistence: MongoDB snapshots with a redis cache in front
	mongoDB, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongoDB.Client().Disconnect(ctx)
	cartRepo := repository.NewMongoRepository(mongoDB)
	log.Printf("Connected to MongoDB at %s", cfg.MongoURI)

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

	cartCache := cache.NewRedisCache(redisClient)
	cartService := cart.NewService(cartRepo, cartCache)

	// Order history on postgres
	creds := &orders.Credentials{
		Host:              getEnv("POSTGRES_HOST", "localhost"),
		Port:              getEnvInt("POSTGRES_PORT", 5432),
		User:              getEnv("POSTGRES_USER", "postgres"),
		Password:          getEnv("POSTGRES_PASSWORD", "postgres"),
		DBName:            getEnv("POSTGRES_DB", "storefront"),
		MigrationsDirPath: cfg.OrdersMigrate,
	}
	ordersRepo, err := orders.NewRepository(creds)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer ordersRepo.Close()
	if err := ordersRepo.RunMigrations(creds); err != nil {
		log.Fatalf("Failed to run orders migrations: %v", err)
	}

	// Mock payment providers behind circuit breakers
	providers := map[string]payment.Provider{
		domain.PaymentMethodCard:  payment.NewBreaker("card", payment.NewCardProvider(payment.RandomOutcome{})),
		domain.PaymentMethodBKash: payment.NewBreaker("bkash", payment.NewBKashProvider(payment.RandomOutcome{})),
	}

	checkoutService := checkout.NewService(cartService, ordersRepo, stock, providers, storeCfg)

	// Kafka: confirmation consumer in, outbox events out
	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	paymentConsumer := consumer.NewConsumer(checkoutService, cfg.KafkaBrokers...)
	defer paymentConsumer.Close()
	go paymentConsumer.Run(runCtx)

	outboxPoller := publisher.NewOutboxPoller(ordersRepo, cfg.KafkaBrokers...)
	go outboxPoller.Run(runCtx)

	// Handlers
	cartHandler := h.NewCartHandler(cartService, catalogRepo, stock, storeCfg, cfg.RequestTimeout)
	checkoutHandler := h.NewCheckoutHandler(checkoutService, cfg.RequestTimeout)
	ordersHandler := h.NewOrdersHandler(ordersRepo, cfg.RequestTimeout)
	productHandler := h.NewProductHandler(catalogRepo, cfg.RequestTimeout)
	chatHandler := h.NewChatHandler(chat.DefaultResponder())

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(h.RequestIDMiddleware)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(h.SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Get("/quote", cartHandler.Quote)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{line_id}", cartHandler.UpdateQuantity)
			r.Delete("/items/{line_id}", cartHandler.RemoveItem)
			r.Delete("/", cartHandler.ClearCart)
		})
		r.Post("/checkout", checkoutHandler.Checkout)
		r.Route("/orders", func(r chi.Router) {
			r.Get("/", ordersHandler.ListOrders)
			r.Get("/{order_id}", ordersHandler.GetOrder)
			r.Post("/{order_id}/advance", checkoutHandler.AdvanceStatus)
			r.Post("/{order_id}/cancel", checkoutHandler.CancelOrder)
		})
		r.Route("/products", func(r chi.Router) {
			r.Get("/", productHandler.ListProducts)
			r.Get("/{product_id}", productHandler.GetProduct)
		})
		r.Post("/chat", chatHandler.Chat)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      otelhttp.NewHandler(r, "storefront"),
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

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	cancelRun()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
