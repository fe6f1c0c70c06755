package routes

import (
	"train-task-tracker/internal/dashboard"
	"train-task-tracker/internal/handlers"
	"train-task-tracker/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(svc *dashboard.Service) *gin.Engine {
	ginRouter := gin.Default()
	ginRouter.Use(middleware.CORS())

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Train task tracker API is running",
		})
	})

	// Public routes (no authentication required)
	api := ginRouter.Group("/api")
	{
		api.POST("/login", handlers.Login)
	}

	dash := handlers.NewDashboardHandler(svc)

	// Protected routes (authentication required)
	protectedRoutes := api.Group("")
	protectedRoutes.Use(middleware.JWTAuthMiddleware())
	{
		// Paginated read API
		protectedRoutes.GET("/cars", handlers.ListCars)
		protectedRoutes.GET("/completions", handlers.ListCompletions)
		protectedRoutes.GET("/completions/:id", handlers.GetCompletionByID)
		protectedRoutes.PATCH("/completions/:id/status", handlers.UpdateCompletionStatus)

		// Dashboard
		protectedRoutes.GET("/dashboard", dash.GetMetrics)
		protectedRoutes.POST("/dashboard/refresh", dash.Refresh)
		protectedRoutes.GET("/dashboard/status", dash.GetStatus)
		protectedRoutes.GET("/dashboard/export.xlsx", dash.Export)

		protectedRoutes.GET("/roster", handlers.GetRoster)
		protectedRoutes.GET("/users", handlers.GetOperators)
	}

	ginRouter.GET("/ws", middleware.JWTAuthMiddleware(), handlers.WebSocketHandler)

	return ginRouter
}
