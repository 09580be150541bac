package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"planner-backend/internal/planner/domain"
)

// AddManual creates a user-entered item. Title validation lives in the
// repository; the scheduled time is checked here because only user input
// carries a free-form one.
func (u *plannerUsecase) AddManual(ctx context.Context, title, notes string, dueAt *time.Time, scheduledTime *string) (*domain.PlannerItem, error) {
	if scheduledTime != nil {
		if _, err := time.Parse("15:04", *scheduledTime); err != nil {
			return nil, fmt.Errorf("%w: scheduled_time %q is not HH:MM", domain.ErrValidation, *scheduledTime)
		}
	}
	return u.items.CreateManual(ctx, title, notes, dueAt, scheduledTime)
}

// Archive moves an active item into an archive bucket. This is the only path
// that sets completed = true; archiving as deleted leaves the flag as-is.
func (u *plannerUsecase) Archive(ctx context.Context, id string, reason domain.ArchiveReason) (*domain.PlannerItem, error) {
	switch reason {
	case domain.ReasonCompleted, domain.ReasonDeleted:
	default:
		return nil, fmt.Errorf("%w: unknown archive reason %q", domain.ErrValidation, reason)
	}

	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || !item.Active() {
		return nil, fmt.Errorf("%w: no active item %s", domain.ErrNotFound, id)
	}

	now := time.Now()
	r := reason
	item.ArchivedAt = &now
	item.ArchivedReason = &r
	if reason == domain.ReasonCompleted {
		item.Completed = true
	}
	if err := u.items.Save(ctx, item); err != nil {
		return nil, err
	}

	u.appendEvent(ctx, item, domain.EventType(reason))
	return item, nil
}

// Restore moves an archived item back to the active list. Restored external
// items become visible to the reconciler again.
func (u *plannerUsecase) Restore(ctx context.Context, id string) (*domain.PlannerItem, error) {
	item, err := u.items.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil || item.Active() {
		return nil, fmt.Errorf("%w: no archived item %s", domain.ErrNotFound, id)
	}

	item.ArchivedAt = nil
	item.ArchivedReason = nil
	item.Completed = false
	if err := u.items.Save(ctx, item); err != nil {
		return nil, err
	}

	u.appendEvent(ctx, item, domain.EventRestored)
	return item, nil
}

// Purge permanently removes an item in any lifecycle state. The audit events
// go with it, so no event is appended here.
func (u *plannerUsecase) Purge(ctx context.Context, id string) error {
	return u.items.HardDelete(ctx, id)
}

// appendEvent writes an audit record. Appends are fire-and-forget: a failure
// must never roll back or block the transition it documents.
func (u *plannerUsecase) appendEvent(ctx context.Context, item *domain.PlannerItem, eventType domain.EventType) {
	event := &domain.PlannerEvent{
		PlannerItemID: item.ID,
		EventType:     eventType,
		OccurredAt:    time.Now(),
		Metadata: map[string]string{
			"origin": string(item.Origin),
		},
	}
	if err := u.events.Append(ctx, event); err != nil {
		log.Printf("[EventLog] failed to append %s event for item %s: %v", eventType, item.ID, err)
	}
}
