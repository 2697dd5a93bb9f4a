package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/DrawDrewpf/FullMart-sub000/internal/address"
	"github.com/DrawDrewpf/FullMart-sub000/internal/admin"
	"github.com/DrawDrewpf/FullMart-sub000/internal/auth"
	"github.com/DrawDrewpf/FullMart-sub000/internal/cache"
	"github.com/DrawDrewpf/FullMart-sub000/internal/cart"
	"github.com/DrawDrewpf/FullMart-sub000/internal/config"
	"github.com/DrawDrewpf/FullMart-sub000/internal/database"
	"github.com/DrawDrewpf/FullMart-sub000/internal/event"
	"github.com/DrawDrewpf/FullMart-sub000/internal/order"
	"github.com/DrawDrewpf/FullMart-sub000/internal/product"
	"github.com/DrawDrewpf/FullMart-sub000/internal/response"
	"github.com/DrawDrewpf/FullMart-sub000/internal/user"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Open(cfg.Database.URL, cfg.Database.MaxOpenConns)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := database.EnsureSchema(db); err != nil {
		log.Fatalf("database schema: %v", err)
	}

	var events order.EventPublisher = event.NoopPublisher{}
	if len(cfg.Kafka.Brokers) > 0 {
		kp, err := event.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			log.Fatalf("kafka: %v", err)
		}
		defer kp.Close()
		events = kp
	}

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return response.Fail(c, code, err.Error())
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	store := cache.NewStore()
	apiLimiter := cache.NewLimiter(cfg.RateLimit.Max, time.Duration(cfg.RateLimit.WindowSeconds)*time.Second)
	loginLimiter := cache.NewLimiter(cfg.RateLimit.LoginMax, time.Duration(cfg.RateLimit.LoginWindowSeconds)*time.Second)

	app.Use("/api", cache.RateLimit(apiLimiter, cache.KeyByIP))
	loginGuard := cache.RateLimit(loginLimiter, cache.KeyByIPAndEmail)
	cachedListings := cache.CachedJSON(store, time.Duration(cfg.Cache.ProductTTLSeconds)*time.Second)

	authMW := auth.New(cfg.JWT.Secret)
	adminMW := auth.RequireAdmin()
	tokenTTL := time.Duration(cfg.JWT.TTLHours) * time.Hour

	app.Get("/health", func(c *fiber.Ctx) error {
		return response.Message(c, "ok")
	})

	userHandler := user.NewHandler(user.NewService(user.NewPostgresRepository(db)), cfg.JWT.Secret, tokenTTL, loginLimiter)
	userHandler.RegisterPublicRoutes(app, loginGuard)
	userHandler.RegisterProtectedRoutes(app, authMW)

	productHandler := product.NewHandler(product.NewService(product.NewPostgresRepository(db)), store)
	productHandler.RegisterPublicRoutes(app, cachedListings)
	productHandler.RegisterAdminRoutes(app, authMW, adminMW)

	cartHandler := cart.NewHandler(cart.NewService(cart.NewPostgresRepository(db)))
	cartHandler.RegisterProtectedRoutes(app, authMW)

	orderHandler := order.NewHandler(order.NewService(order.NewPostgresRepository(db), events))
	orderHandler.RegisterProtectedRoutes(app, authMW)
	orderHandler.RegisterAdminRoutes(app, authMW, adminMW)

	addressHandler := address.NewHandler(address.NewService(address.NewPostgresRepository(db)))
	addressHandler.RegisterProtectedRoutes(app, authMW)

	adminHandler := admin.NewHandler(admin.NewPostgresRepository(db))
	adminHandler.RegisterAdminRoutes(app, authMW, adminMW)

	log.Printf("listening on %s", cfg.Server.Addr)
	if err := app.Listen(cfg.Server.Addr); err != nil {
		log.Fatalf("server: %v", err)
	}
}
