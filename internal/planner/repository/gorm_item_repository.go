package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"planner-backend/internal/planner/domain"
)

// Active items sort due-dated first (ascending), undated last, ties by
// creation time. Archive buckets sort most recently archived first.
const (
	activeOrder   = "CASE WHEN due_at IS NULL THEN 1 ELSE 0 END, due_at ASC, created_at ASC"
	archivedOrder = "archived_at DESC"
)

// gormItemRepository implements ItemRepository using GORM
type gormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GORM-based ItemRepository
func NewGormItemRepository(db *gorm.DB) ItemRepository {
	return &gormItemRepository{db: db}
}

func (r *gormItemRepository) CreateManual(ctx context.Context, title, notes string, dueAt *time.Time, scheduledTime *string) (*domain.PlannerItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", domain.ErrValidation)
	}

	now := time.Now()
	item := &domain.PlannerItem{
		ID:            uuid.New().String(),
		Origin:        domain.OriginManual,
		Title:         title,
		Notes:         notes,
		DueAt:         dueAt,
		ScheduledTime: scheduledTime,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("create manual item: %w", err)
	}
	return item, nil
}

func (r *gormItemRepository) CreateExternal(ctx context.Context, externalID, title string, dueAt *time.Time, scheduledTime *string, createdAt time.Time) (*domain.PlannerItem, error) {
	item := &domain.PlannerItem{
		ID:            uuid.New().String(),
		ExternalID:    &externalID,
		Origin:        domain.OriginExternal,
		Title:         title,
		DueAt:         dueAt,
		ScheduledTime: scheduledTime,
		CreatedAt:     createdAt,
		UpdatedAt:     time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%w: external_id %s", domain.ErrConflict, externalID)
		}
		return nil, fmt.Errorf("create external item: %w", err)
	}
	return item, nil
}

func (r *gormItemRepository) UpdateExternalFields(ctx context.Context, id, title string, dueAt *time.Time, scheduledTime *string) error {
	// The archived_reason guard closes the race between a concurrent archive
	// and an in-flight sync: a row archived after it was read is left alone.
	err := r.db.WithContext(ctx).Model(&domain.PlannerItem{}).
		Where("id = ? AND archived_reason IS NULL", id).
		Updates(map[string]interface{}{
			"title":          title,
			"due_at":         dueAt,
			"scheduled_time": scheduledTime,
			"updated_at":     time.Now(),
		}).Error
	if err != nil {
		return fmt.Errorf("update external fields: %w", err)
	}
	return nil
}

func (r *gormItemRepository) FindByID(ctx context.Context, id string) (*domain.PlannerItem, error) {
	var item domain.PlannerItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormItemRepository) FindByOrigin(ctx context.Context, origin domain.Origin, externalID string) (*domain.PlannerItem, error) {
	var item domain.PlannerItem
	err := r.db.WithContext(ctx).Where("origin = ? AND external_id = ?", origin, externalID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *gormItemRepository) ListActive(ctx context.Context) ([]domain.PlannerItem, error) {
	var items []domain.PlannerItem
	err := r.db.WithContext(ctx).
		Where("archived_reason IS NULL").
		Order(activeOrder).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list active items: %w", err)
	}
	return items, nil
}

func (r *gormItemRepository) ListArchived(ctx context.Context, reason domain.ArchiveReason) ([]domain.PlannerItem, error) {
	var items []domain.PlannerItem
	err := r.db.WithContext(ctx).
		Where("archived_reason = ?", reason).
		Order(archivedOrder).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list archived items: %w", err)
	}
	return items, nil
}

func (r *gormItemRepository) Save(ctx context.Context, item *domain.PlannerItem) error {
	item.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

func (r *gormItemRepository) HardDelete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&domain.PlannerItem{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete item: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		if err := tx.Delete(&domain.PlannerEvent{}, "planner_item_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete item events: %w", err)
		}
		return nil
	})
}
