package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Bilal-Yasir34/apex-store/cart"
	"github.com/Bilal-Yasir34/apex-store/catalog"
	"github.com/Bilal-Yasir34/apex-store/checkout"
	orderControllers "github.com/Bilal-Yasir34/apex-store/controllers/order"
	"github.com/Bilal-Yasir34/apex-store/events"
	"github.com/Bilal-Yasir34/apex-store/middleware"
	"github.com/Bilal-Yasir34/apex-store/models"
	"github.com/Bilal-Yasir34/apex-store/reviews"
	"github.com/Bilal-Yasir34/apex-store/routes"
)

func main() {
	log.Println("✅ Starting application...")

	// Load environment variables
	_ = godotenv.Load()

	// Init DB
	db := initDatabase()

	// Auto-migrate all tables
	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestSession{},
		&models.Product{},
		&models.Order{},
		&models.Review{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate failed: %v", err)
	}

	// Cart snapshots live in Redis when available, in memory otherwise
	carts := cart.NewService(initCartPersister())

	// Product cache, warmed at boot. A failed warm-up is retried lazily
	// on the first catalog request.
	productCache := catalog.NewCache(db)
	if err := productCache.Load(context.Background()); err != nil {
		log.Printf("❌ Initial product load failed: %v", err)
	}

	// Order fan-out: websocket feed for the admin dashboard plus an
	// optional RabbitMQ event stream.
	orderHub := orderControllers.NewHub()
	notifiers := []checkout.Notifier{orderHub}
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		publisher, err := events.NewPublisher(url)
		if err != nil {
			log.Printf("❌ RabbitMQ connection failed: %v", err)
		} else {
			defer publisher.Close()
			notifiers = append(notifiers, publisher)
			log.Println("✅ RabbitMQ publisher connected")
		}
	}

	checkouts := checkout.NewService(checkout.NewGormOrderWriter(db), notifiers...)
	reviewSvc := reviews.NewService(reviews.NewGormRepo(db))

	// Gin setup
	r := gin.Default()

	// CORS settings
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Metrics
	r.Use(middleware.PrometheusMiddleware())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup routes
	routes.SetupRoutes(r, &routes.Deps{
		DB:        db,
		Carts:     carts,
		Catalog:   productCache,
		Checkouts: checkouts,
		Reviews:   reviewSvc,
		OrderHub:  orderHub,
	})

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Server running on port %s...", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initDatabase sets up the GORM DB connection
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			log.Fatalf("❌ DB connection failed: %v", err)
		}
		return db
	}

	host := os.Getenv("DB_HOST")
	port := os.Getenv("DB_PORT")
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, user, password, dbname, port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Failed to connect DB: %v", err)
	}
	return db
}

// initCartPersister picks the cart snapshot backend. Redis keeps carts
// across restarts; without REDIS_ADDR carts only live for the process.
func initCartPersister() cart.Persister {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("⏳ REDIS_ADDR not set, cart snapshots kept in memory only")
		return cart.NewMemoryPersister()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("❌ Redis connection failed, falling back to in-memory carts: %v", err)
		return cart.NewMemoryPersister()
	}

	log.Printf("✅ Cart snapshots stored in Redis at %s", addr)
	return cart.NewRedisPersister(client)
}
