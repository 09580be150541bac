package api

import (
	"github.com/gin-gonic/gin"

	"planner-backend/internal/planner/delivery"
	"planner-backend/internal/planner/usecase"
)

type Handler struct {
	plannerHandler *delivery.PlannerHandler
}

func NewHandler(plannerUsecase usecase.PlannerUsecase) *Handler {
	return &Handler{
		plannerHandler: delivery.NewPlannerHandler(plannerUsecase),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.plannerHandler)

	return r.Run(addr)
}
