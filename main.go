package main

import (
	"flag"
	"log"
	"strings"

	"psytest/config"
	"psytest/handlers"
	"psytest/middleware"
	"psytest/models"
	"psytest/routes"
	"psytest/scoring"
	"psytest/services"

	"github.com/gin-gonic/gin"
)

func main() {
	seed := flag.String("seed", "", "comma separated YAML test definitions to create on startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Test{},
		&models.Question{},
		&models.Option{},
		&models.ScoringRule{},
		&models.Session{},
		&models.UserAnswer{},
		&models.SessionDimension{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize services
	testService := services.NewTestService(db, redisClient, cfg.PopularCacheTTL)
	sessionService := services.NewSessionService(db, scoring.NewEngine(), hub)
	authService := services.NewAuthService(cfg.AdminUser, cfg.AdminPasswordHash, cfg.JWTSecret)

	if *seed != "" {
		created, err := testService.Seed(strings.Split(*seed, ","))
		if err != nil {
			log.Fatal("Failed to seed tests:", err)
		}
		log.Printf("Seeded %d tests", created)
	}

	// Setup Gin router
	router := gin.Default()
	router.Use(middleware.RequestID())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	routes.SetupRoutes(router, routes.Handlers{
		Test:    handlers.NewTestHandler(testService),
		Session: handlers.NewSessionHandler(sessionService),
		Auth:    handlers.NewAuthHandler(authService),
		Live:    handlers.NewLiveHandler(hub, cfg.CORSOrigins),
	}, routes.Options{
		Redis:              redisClient,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Auth:               authService,
	})

	// Start server
	addr := cfg.BindAddress + ":" + cfg.Port
	log.Printf("Server starting on %s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
