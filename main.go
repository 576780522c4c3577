package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"health-ai-server/internal/catalog"
	"health-ai-server/internal/config"
	"health-ai-server/internal/inference"
	"health-ai-server/internal/logger"
	"health-ai-server/internal/models"
	"health-ai-server/internal/notify"
	"health-ai-server/internal/routes"
	"health-ai-server/internal/store"
)

func main() {
	// Load environment variables; a missing .env is fine in containers.
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zlog, err := logger.New(cfg.Log.Level, cfg.Log.Format, "health-ai-server")
	if err != nil {
		log.Fatalf("Error building logger: %v", err)
	}
	defer zlog.Sync()

	// Malformed catalog data is unrecoverable: refuse to start rather than
	// serve assessments off a broken knowledge base.
	cat, err := catalog.LoadDefault()
	if err != nil {
		zlog.Fatal("Invalid catalog data", zap.Error(err))
	}
	engine := inference.NewEngine(cat)

	stores, err := buildStores(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to initialize storage", zap.Error(err))
	}

	dispatcher := notify.NewDispatcher(buildTransport(cfg, zlog), cfg.AlertBuffer, zlog)
	defer dispatcher.Close()

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	routes.SetupRoutes(router, routes.Deps{
		Config:   cfg,
		Logger:   zlog,
		Engine:   engine,
		Stores:   stores,
		Notifier: dispatcher,
	})

	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	zlog.Info("Server starting", zap.String("port", cfg.Port), zap.String("storage", cfg.StorageDriver))
	if err := router.Run(serverAddr); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}

// buildStores selects the storage driver and applies the optional provider
// seed, which stands in for the external provider-management feed.
func buildStores(cfg *config.Config, zlog *zap.Logger) (*store.Stores, error) {
	seed, err := loadProviderSeed(cfg.ProviderSeedFile)
	if err != nil {
		return nil, err
	}

	if cfg.StorageDriver == config.StorageMemory {
		stores := store.NewMemoryStores()
		if len(seed) > 0 {
			stores.Directory.(*store.MemoryProviderDirectory).Seed(seed)
		}
		zlog.Info("Using in-memory storage")
		return stores, nil
	}

	db, err := models.InitDB(models.DatabaseConfig{DSN: cfg.Database.DSN})
	if err != nil {
		return nil, err
	}
	if len(seed) > 0 {
		if err := store.SeedProviders(db, seed); err != nil {
			return nil, err
		}
	}
	return store.NewGormStores(db, zlog), nil
}

// loadProviderSeed reads the optional JSON provider list.
func loadProviderSeed(path string) ([]models.Provider, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading provider seed: %w", err)
	}
	var providers []models.Provider
	if err := json.Unmarshal(data, &providers); err != nil {
		return nil, fmt.Errorf("parsing provider seed: %w", err)
	}
	return providers, nil
}

// buildTransport picks the alert transport: Redis when configured, the
// service log otherwise.
func buildTransport(cfg *config.Config, zlog *zap.Logger) notify.Transport {
	if cfg.Redis.Addr == "" {
		return &notify.LogTransport{Logger: zlog}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	zlog.Info("Publishing risk alerts to Redis", zap.String("channel", cfg.Redis.Channel))
	return notify.NewRedisTransport(client, cfg.Redis.Channel)
}
