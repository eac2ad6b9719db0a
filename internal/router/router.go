package router

import (
	"time"

	"github.com/DanijelPavlovic/valere-margins-challenge/internal/handlers"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/middleware"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/types"
	"github.com/DanijelPavlovic/valere-margins-challenge/internal/validation"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter() *gin.Engine {
	validation.Register()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", handlers.HealthCheck)

	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	}

	sports := r.Group("/sports", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		sports.GET("", handlers.ListSports)
		sports.GET("/:id", handlers.GetSport)
		sports.POST("", handlers.CreateSport)
		sports.PATCH("/:id", handlers.UpdateSport)
		sports.DELETE("/:id", handlers.DeleteSport)
	}

	users := r.Group("/users", middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		users.GET("", handlers.ListUsers)
		users.GET("/:id", handlers.GetUser)
		users.POST("", handlers.CreateUser)
		users.PATCH("/:id", handlers.UpdateUser)
		users.DELETE("/:id", handlers.DeleteUser)
	}

	classes := r.Group("/classes", middleware.AuthMiddleware())
	{
		classes.GET("", handlers.ListClasses)
		classes.GET("/:id", handlers.GetClass)
		classes.POST("/:id/register", handlers.RegisterForClass)
		classes.DELETE("/:id/unregister", handlers.UnregisterFromClass)

		admin := classes.Group("", middleware.RequireAdmin())
		{
			admin.POST("", handlers.CreateClass)
			admin.PATCH("/:id", handlers.UpdateClass)
			admin.DELETE("/:id", handlers.DeleteClass)
			admin.GET("/:id/registrations", handlers.GetClassRegistrations)
		}
	}

	return r
}
