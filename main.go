package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	controller "github.com/gokcika/project-scoring-system/controller"
	"github.com/gokcika/project-scoring-system/initializers"
	middleware "github.com/gokcika/project-scoring-system/middleware"
	service "github.com/gokcika/project-scoring-system/service"
)

func init() {
	if err := initializers.LoadEnv(); err != nil {
		log.Printf("[WARN] No .env file loaded: %s", err)
	}
	if err := initializers.ConnectDB(); err != nil {
		log.Fatalf("[CRITICAL] Failed to initialize database connection: %s", err)
	}
	if err := initializers.Migrate(); err != nil {
		log.Fatalf("[CRITICAL] Failed to run database migrations: %s", err)
	}
}

func main() {
	projectService := service.NewProjectService(initializers.DB)
	projectController := controller.NewProjectController(projectService)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// Global rate limiter for most routes
	router.Use(middleware.GlobalRateLimiter.Limit())

	// Intake
	router.POST("/projects",
		middleware.StrictRateLimiter.Limit(),
		projectController.SubmitProject)

	// Queue and record reads
	router.GET("/projects", projectController.GetProjects)
	router.GET("/projects/:id", projectController.GetProject)
	router.GET("/dashboard", projectController.GetDashboard)

	// Reviewer workflow with stricter rate limiting
	router.PUT("/projects/:id/resource-plan",
		middleware.StrictRateLimiter.Limit(),
		projectController.UpdateResourcePlan)
	router.POST("/projects/:id/overrides",
		middleware.StrictRateLimiter.Limit(),
		projectController.SaveOverrides)
	router.POST("/projects/:id/decision",
		middleware.StrictRateLimiter.Limit(),
		projectController.SubmitDecision)
	router.DELETE("/projects/:id",
		middleware.StrictRateLimiter.Limit(),
		projectController.DeleteProject)
	router.POST("/projects/:id/restore",
		middleware.StrictRateLimiter.Limit(),
		projectController.RestoreProject)

	// Healthcheck endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	router.Run(":8080")
}
