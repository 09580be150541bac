package domain

import "time"

// EventType names a lifecycle transition recorded in the audit trail
type EventType string

const (
	EventCompleted EventType = "completed"
	EventDeleted   EventType = "deleted"
	EventRestored  EventType = "restored"
)

// PlannerEvent is an append-only audit record of one lifecycle transition.
// Events are never read back by the reconciliation engine; they exist for
// diagnostics and are removed together with their item.
type PlannerEvent struct {
	ID            string            `json:"id" gorm:"primaryKey"`
	PlannerItemID string            `json:"planner_item_id" gorm:"index;not null"`
	EventType     EventType         `json:"event_type" gorm:"not null"`
	OccurredAt    time.Time         `json:"occurred_at"`
	Metadata      map[string]string `json:"metadata,omitempty" gorm:"serializer:json"`
}
