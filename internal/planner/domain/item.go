package domain

import (
	"fmt"
	"time"
)

// Origin tags where a planner item came from
type Origin string

const (
	OriginExternal Origin = "external"
	OriginManual   Origin = "manual"
)

// ArchiveReason names the archive bucket an item was moved into
type ArchiveReason string

const (
	ReasonCompleted ArchiveReason = "completed"
	ReasonDeleted   ArchiveReason = "deleted"
)

// ParseArchiveReason validates a caller-supplied reason string
func ParseArchiveReason(s string) (ArchiveReason, error) {
	switch ArchiveReason(s) {
	case ReasonCompleted:
		return ReasonCompleted, nil
	case ReasonDeleted:
		return ReasonDeleted, nil
	default:
		return "", fmt.Errorf("%w: unknown archive reason %q", ErrValidation, s)
	}
}

// PlannerItem represents a planner task, either user-entered or pulled from the assignment feed
type PlannerItem struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	ExternalID     *string        `json:"external_id,omitempty" gorm:"uniqueIndex:idx_planner_items_origin_external"`
	Origin         Origin         `json:"origin" gorm:"uniqueIndex:idx_planner_items_origin_external;not null"`
	Title          string         `json:"title" gorm:"not null"`
	Notes          string         `json:"notes,omitempty"`
	DueAt          *time.Time     `json:"due_at,omitempty"`
	ScheduledTime  *string        `json:"scheduled_time,omitempty"` // wall-clock "HH:MM"
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	Completed      bool           `json:"completed" gorm:"default:false"`
	ArchivedAt     *time.Time     `json:"archived_at,omitempty"`
	ArchivedReason *ArchiveReason `json:"archived_reason,omitempty" gorm:"index"`
}

// Active reports whether the item is still in the active list.
// ArchivedAt and ArchivedReason are always set and cleared together.
func (i *PlannerItem) Active() bool {
	return i.ArchivedReason == nil
}
