package routes

import (
	"net/http"

	"psytest/handlers"
	"psytest/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

type Handlers struct {
	Test    *handlers.TestHandler
	Session *handlers.SessionHandler
	Auth    *handlers.AuthHandler
	Live    *handlers.LiveHandler
}

type Options struct {
	Redis              *redis.Client
	RateLimitPerMinute int
	Auth               middleware.TokenValidator
}

func SetupRoutes(router *gin.Engine, h Handlers, opts Options) {
	api := router.Group("/api/v1")
	api.Use(middleware.RateLimit(opts.Redis, opts.RateLimitPerMinute))
	{
		tests := api.Group("/tests")
		{
			tests.POST("", middleware.AdminAuth(opts.Auth), h.Test.CreateTest)
			tests.GET("/popular", h.Test.GetPopularTests)
			tests.GET("/:test_type", h.Test.GetTestByType)
			tests.POST("/:test_id/submit", h.Session.Submit)
		}

		api.GET("/sessions/:session_id", h.Session.GetSession)
		api.GET("/users/:user_id/sessions", h.Session.GetUserSessions)
		api.POST("/admin/login", h.Auth.Login)
	}

	// Live feed of completed sessions per test type
	router.GET("/ws/tests/:test_type", h.Live.Subscribe)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "psychometric test API is running"})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
