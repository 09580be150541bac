package main

import (
	"log"

	api "planner-backend/cmd/api"
	"planner-backend/internal/planner/repository"
	"planner-backend/internal/planner/scheduler"
	"planner-backend/internal/planner/usecase"
	"planner-backend/pkg/assignments"
	"planner-backend/pkg/config"
	"planner-backend/pkg/database"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize repositories (dependency injection)
	itemRepo := repository.NewGormItemRepository(db)
	eventRepo := repository.NewGormEventRepository(db)

	// Initialize the assignment feed client when configured; without it the
	// planner still serves manual items, refresh just reports a sync error.
	var source usecase.CandidateSource
	if cfg.AssignmentsBaseURL != "" {
		source = assignments.NewClient(cfg.AssignmentsBaseURL, cfg.AssignmentsToken)
	} else {
		log.Println("[WARN] ASSIGNMENTS_BASE_URL not configured, external sync disabled")
	}

	// Initialize use case
	plannerUsecase := usecase.NewPlannerUsecase(itemRepo, eventRepo, source)

	// Background sync
	if cfg.SyncSchedule != "" && source != nil {
		syncScheduler, err := scheduler.NewSyncScheduler(plannerUsecase, cfg.SyncSchedule)
		if err != nil {
			log.Fatal("Invalid SYNC_SCHEDULE:", err)
		}
		syncScheduler.Start()
		defer syncScheduler.Stop()
	}

	// Initialize HTTP handler
	handler := api.NewHandler(plannerUsecase)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
