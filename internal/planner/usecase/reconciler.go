package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"planner-backend/internal/planner/domain"
)

// Sync runs one reconciliation pass: fetch the candidate batch, then merge
// each candidate independently. A fetch failure aborts the pass before any
// mutation; a store failure partway through leaves a prefix of candidates
// merged, which is safe because the pass is idempotent and retried in full.
func (u *plannerUsecase) Sync(ctx context.Context) error {
	if u.source == nil {
		return fmt.Errorf("%w: no candidate source configured", domain.ErrUpstream)
	}

	candidates, err := u.source.FetchCandidates(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrUpstream) {
			return err
		}
		return fmt.Errorf("%w: %v", domain.ErrUpstream, err)
	}

	log.Printf("[Reconciler] merging %d candidates", len(candidates))
	for _, c := range candidates {
		if err := u.mergeCandidate(ctx, c); err != nil {
			return fmt.Errorf("merge candidate %s: %w", c.ExternalID, err)
		}
	}
	return nil
}

// mergeCandidate applies one candidate to the store. Archived rows are
// skipped outright: completing or deleting an item must survive any number
// of future syncs that still carry it.
func (u *plannerUsecase) mergeCandidate(ctx context.Context, c Candidate) error {
	scheduled := deriveScheduledTime(c.DueAt)

	existing, err := u.items.FindByOrigin(ctx, domain.OriginExternal, c.ExternalID)
	if err != nil {
		return err
	}

	if existing == nil {
		createdAt := time.Now()
		if c.CreatedAt != nil {
			createdAt = *c.CreatedAt
		}
		_, err := u.items.CreateExternal(ctx, c.ExternalID, c.Title, c.DueAt, scheduled, createdAt)
		if errors.Is(err, domain.ErrConflict) {
			// Cannot happen under the lookup-then-insert protocol above.
			log.Printf("[Reconciler] conflict inserting external item %s: %v", c.ExternalID, err)
		}
		return err
	}

	if !existing.Active() {
		return nil
	}

	return u.items.UpdateExternalFields(ctx, existing.ID, c.Title, c.DueAt, scheduled)
}

// deriveScheduledTime takes the local wall-clock hour and minute of the due
// timestamp. The derivation is deliberately timezone-sensitive to stay
// compatible with how due times are displayed.
func deriveScheduledTime(dueAt *time.Time) *string {
	if dueAt == nil {
		return nil
	}
	s := dueAt.Local().Format("15:04")
	return &s
}
