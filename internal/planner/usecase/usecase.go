package usecase

import (
	"context"
	"time"

	"planner-backend/internal/planner/domain"
	"planner-backend/internal/planner/repository"
)

// Candidate is one record from the external assignment feed, already filtered
// by the source to exclude records the user cannot act on.
type Candidate struct {
	ExternalID string
	Title      string
	DueAt      *time.Time
	CreatedAt  *time.Time
}

// CandidateSource supplies the flattened candidate batch for one sync pass.
// Pagination and transport are the source's problem; a fetch error aborts the
// pass with domain.ErrUpstream.
type CandidateSource interface {
	FetchCandidates(ctx context.Context) ([]Candidate, error)
}

// Snapshot is the externally visible projection of the planner state
type Snapshot struct {
	Active  []domain.PlannerItem `json:"active"`
	Archive ArchiveBuckets       `json:"archive"`
}

// ArchiveBuckets partitions archived items by reason
type ArchiveBuckets struct {
	Completed []domain.PlannerItem `json:"completed"`
	Deleted   []domain.PlannerItem `json:"deleted"`
}

// PlannerUsecase defines the planner business logic interface
type PlannerUsecase interface {
	// Sync runs one reconciliation pass over the external feed
	Sync(ctx context.Context) error

	// AddManual creates a user-entered item
	AddManual(ctx context.Context, title, notes string, dueAt *time.Time, scheduledTime *string) (*domain.PlannerItem, error)

	// Archive moves an active item into the completed or deleted bucket
	Archive(ctx context.Context, id string, reason domain.ArchiveReason) (*domain.PlannerItem, error)

	// Restore moves an archived item back to the active list
	Restore(ctx context.Context, id string) (*domain.PlannerItem, error)

	// Purge permanently removes an item and its audit events
	Purge(ctx context.Context, id string) error

	// Snapshot assembles the active list and archive buckets
	Snapshot(ctx context.Context) (*Snapshot, error)

	// ItemEvents returns an item's audit trail, oldest first
	ItemEvents(ctx context.Context, id string) ([]domain.PlannerEvent, error)
}

// plannerUsecase implements PlannerUsecase
type plannerUsecase struct {
	items  repository.ItemRepository
	events repository.EventRepository
	source CandidateSource
}

// NewPlannerUsecase creates a new instance of plannerUsecase. The source may
// be nil, in which case Sync reports domain.ErrUpstream.
func NewPlannerUsecase(items repository.ItemRepository, events repository.EventRepository, source CandidateSource) PlannerUsecase {
	return &plannerUsecase{
		items:  items,
		events: events,
		source: source,
	}
}

func (u *plannerUsecase) Snapshot(ctx context.Context) (*Snapshot, error) {
	active, err := u.items.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	completed, err := u.items.ListArchived(ctx, domain.ReasonCompleted)
	if err != nil {
		return nil, err
	}
	deleted, err := u.items.ListArchived(ctx, domain.ReasonDeleted)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Active: active,
		Archive: ArchiveBuckets{
			Completed: completed,
			Deleted:   deleted,
		},
	}, nil
}

func (u *plannerUsecase) ItemEvents(ctx context.Context, id string) ([]domain.PlannerEvent, error) {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	return u.events.ListByItem(ctx, id)
}
