package repository

import (
	"context"
	"time"

	"planner-backend/internal/planner/domain"
)

// ItemRepository defines the interface for planner item persistence
type ItemRepository interface {
	// CreateManual inserts a new user-entered item. Fails with
	// domain.ErrValidation if the title is empty after trimming.
	CreateManual(ctx context.Context, title, notes string, dueAt *time.Time, scheduledTime *string) (*domain.PlannerItem, error)

	// CreateExternal inserts a new feed-sourced item with the given source
	// creation time. Fails with domain.ErrConflict if the external id is
	// already present.
	CreateExternal(ctx context.Context, externalID, title string, dueAt *time.Time, scheduledTime *string, createdAt time.Time) (*domain.PlannerItem, error)

	// UpdateExternalFields overwrites title, due date and scheduled time on an
	// active row. It never touches created_at, completed or the archive
	// fields, and silently no-ops if the row was archived since it was read.
	UpdateExternalFields(ctx context.Context, id, title string, dueAt *time.Time, scheduledTime *string) error

	// FindByID returns the item or (nil, nil) when no row matches.
	FindByID(ctx context.Context, id string) (*domain.PlannerItem, error)

	// FindByOrigin is the dedup point lookup. Returns (nil, nil) when no row
	// matches.
	FindByOrigin(ctx context.Context, origin domain.Origin, externalID string) (*domain.PlannerItem, error)

	// ListActive returns unarchived items, due-dated ones first in ascending
	// due order, then the undated ones, ties broken by creation time.
	ListActive(ctx context.Context) ([]domain.PlannerItem, error)

	// ListArchived returns one archive bucket, most recently archived first.
	ListArchived(ctx context.Context, reason domain.ArchiveReason) ([]domain.PlannerItem, error)

	// Save persists lifecycle transitions on an already-loaded row.
	Save(ctx context.Context, item *domain.PlannerItem) error

	// HardDelete removes the row and its audit events in one transaction.
	// Fails with domain.ErrNotFound if no row matches.
	HardDelete(ctx context.Context, id string) error
}

// EventRepository defines the interface for the append-only audit trail
type EventRepository interface {
	// Append writes one audit event. Callers treat failures as non-fatal.
	Append(ctx context.Context, event *domain.PlannerEvent) error

	// ListByItem returns an item's events, oldest first.
	ListByItem(ctx context.Context, itemID string) ([]domain.PlannerEvent, error)
}
