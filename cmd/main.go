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

	"github.com/redis/go-redis/v9"

	"storefront/internal/cart"
	"storefront/internal/catalog"
	"storefront/internal/checkout"
	"storefront/internal/contact"
	"storefront/internal/events"
	h "storefront/internal/http"
	"storefront/internal/orders"
	"storefront/internal/products"
	"storefront/internal/session"
	"storefront/internal/storage"
	"storefront/internal/users"
	"storefront/internal/wishlist"
)

type Config struct {
	HTTPPort            string
	MongoURI            string
	MongoDBName         string
	RedisAddr           string
	RedisPassword       string
	KafkaBrokers        []string
	CatalogURL          string
	CatalogSyncInterval time.Duration
	JWTSecret           string
	RequestTimeout      time.Duration
	ShutdownTimeout     time.Duration
	MaxRequestBodySize  int64
}

func loadConfig() *Config {
	var brokers []string
	if raw := os.Getenv("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		MongoURI:            getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDBName:         getEnv("MONGO_DB_NAME", "storefront"),
		RedisAddr:           getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:       getEnv("REDIS_PASSWORD", ""),
		KafkaBrokers:        brokers,
		CatalogURL:          getEnv("CATALOG_URL", "https://dummyjson.com"),
		CatalogSyncInterval: 15 * time.Minute,
		JWTSecret:           getEnv("JWT_SECRET", "dev-secret-change-me"),
		RequestTimeout:      30 * time.Second,
		ShutdownTimeout:     10 * time.Second,
		MaxRequestBodySize:  1 << 20, // 1MB
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

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	mongoDB, err := storage.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
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

	cartRepo := cart.NewMongoRepository(mongoDB)
	cartCache := cart.NewRedisCache(redisClient)
	cartService := cart.NewService(cartRepo, cartCache)

	wishlistRepo := wishlist.NewMongoRepository(mongoDB)
	wishlistService := wishlist.NewService(wishlistRepo)

	ledger := orders.NewRedisLedger(redisClient)
	sessions := session.NewStore(redisClient)

	productRepo := products.NewMongoRepository(mongoDB)
	catalogClient := catalog.NewClient(cfg.CatalogURL)
	if cfg.CatalogURL != "" {
		refresher := catalog.NewRefresher(catalogClient, productRepo, cfg.CatalogSyncInterval)
		go refresher.Run(ctx)
	}

	userRepo := users.NewMongoRepository(mongoDB)
	userService := users.NewService(userRepo, []byte(cfg.JWTSecret))
	contactRepo := contact.NewMongoRepository(mongoDB)

	// the unique email index backstops the duplicate-signup check under
	// concurrent inserts; the session indexes cover lookup and cart expiry
	for _, idx := range []func(context.Context) error{
		userRepo.CreateIndexes,
		cartRepo.CreateIndexes,
		wishlistRepo.CreateIndexes,
	} {
		if err := idx(ctx); err != nil {
			log.Fatalf("Failed to create indexes: %v", err)
		}
	}

	publisher := events.NewPublisher(cfg.KafkaBrokers...)
	defer publisher.Close()

	checkoutService := checkout.NewService(cartService, ledger, sessions, contactRepo, catalogClient, publisher)

	router := h.NewRouter(
		h.RouterConfig{
			RequestTimeout:     cfg.RequestTimeout,
			MaxRequestBodySize: cfg.MaxRequestBodySize,
		},
		h.Handlers{
			Auth:     h.NewAuthHandler(userService, sessions),
			Products: h.NewProductHandler(productRepo, catalogClient),
			Cart:     h.NewCartHandler(cartService),
			Wishlist: h.NewWishlistHandler(wishlistService, cartService),
			Orders:   h.NewOrdersHandler(ledger, cartService),
			Checkout: h.NewCheckoutHandler(checkoutService),
			Contact:  h.NewContactHandler(contactRepo),
		},
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Storefront API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
