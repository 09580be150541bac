package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"planner-backend/internal/planner/domain"
)

// gormEventRepository implements EventRepository using GORM
type gormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM-based EventRepository
func NewGormEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) Append(ctx context.Context, event *domain.PlannerEvent) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

func (r *gormEventRepository) ListByItem(ctx context.Context, itemID string) ([]domain.PlannerEvent, error) {
	var events []domain.PlannerEvent
	err := r.db.WithContext(ctx).
		Where("planner_item_id = ?", itemID).
		Order("occurred_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list item events: %w", err)
	}
	return events, nil
}
