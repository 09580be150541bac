package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"planner-backend/internal/planner/delivery"
)

func SetupRoutes(r *gin.Engine, plannerHandler *delivery.PlannerHandler) {
	api := r.Group("/api")
	{
		// Health check
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Planner routes
		planner := api.Group("/planner")
		{
			planner.GET("", plannerHandler.GetPlanner)
			planner.POST("/items", plannerHandler.CreateItem)
			planner.POST("/items/:id/archive", plannerHandler.ArchiveItem)
			planner.POST("/items/:id/restore", plannerHandler.RestoreItem)
			planner.DELETE("/items/:id/permanent", plannerHandler.PurgeItem)
			planner.GET("/items/:id/events", plannerHandler.GetItemEvents)
		}
	}
}
