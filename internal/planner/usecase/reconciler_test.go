package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"planner-backend/internal/planner/domain"
	"planner-backend/internal/planner/repository"
	"planner-backend/pkg/database"
)

// stubSource replays a fixed candidate batch, or fails.
type stubSource struct {
	candidates []Candidate
	err        error
}

func (s *stubSource) FetchCandidates(ctx context.Context) ([]Candidate, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.candidates, nil
}

type fixture struct {
	uc     PlannerUsecase
	items  repository.ItemRepository
	events repository.EventRepository
	source *stubSource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "planner.db"))
	require.NoError(t, err)

	items := repository.NewGormItemRepository(db)
	events := repository.NewGormEventRepository(db)
	source := &stubSource{}
	return &fixture{
		uc:     NewPlannerUsecase(items, events, source),
		items:  items,
		events: events,
		source: source,
	}
}

func timePtr(v time.Time) *time.Time { return &v }

func strPtr(v string) *string { return &v }

func TestSync_InsertsNewExternalItem(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	due := time.Date(2026, 5, 1, 10, 0, 0, 0, time.Local)
	created := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	f.source.candidates = []Candidate{
		{ExternalID: "501", Title: "Essay", DueAt: timePtr(due), CreatedAt: timePtr(created)},
	}

	require.NoError(t, f.uc.Sync(ctx))

	active, err := f.items.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	item := active[0]
	assert.Equal(t, domain.OriginExternal, item.Origin)
	require.NotNil(t, item.ExternalID)
	assert.Equal(t, "501", *item.ExternalID)
	assert.Equal(t, "Essay", item.Title)
	require.NotNil(t, item.ScheduledTime)
	assert.Equal(t, "10:00", *item.ScheduledTime)
	assert.True(t, item.CreatedAt.Equal(created))
	assert.False(t, item.Completed)
}

func TestSync_IsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.source.candidates = []Candidate{
		{ExternalID: "501", Title: "Essay"},
		{ExternalID: "502", Title: "Lab report"},
	}

	require.NoError(t, f.uc.Sync(ctx))
	require.NoError(t, f.uc.Sync(ctx))

	active, err := f.items.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestSync_UpdatesActiveRowKeepingCreatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created := time.Date(2026, 4, 20, 12, 0, 0, 0, time.UTC)
	f.source.candidates = []Candidate{
		{ExternalID: "501", Title: "Essay", CreatedAt: timePtr(created)},
	}
	require.NoError(t, f.uc.Sync(ctx))

	due := time.Date(2026, 5, 2, 9, 0, 0, 0, time.Local)
	f.source.candidates = []Candidate{
		{ExternalID: "501", Title: "Essay v2", DueAt: timePtr(due), CreatedAt: timePtr(created.Add(time.Hour))},
	}
	require.NoError(t, f.uc.Sync(ctx))

	active, err := f.items.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	item := active[0]
	assert.Equal(t, "Essay v2", item.Title)
	require.NotNil(t, item.ScheduledTime)
	assert.Equal(t, "09:00", *item.ScheduledTime)
	assert.True(t, item.CreatedAt.Equal(created), "created_at is write-once")
}

func TestSync_DoesNotResurrectArchivedItems(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.source.candidates = []Candidate{{ExternalID: "501", Title: "Essay"}}
	require.NoError(t, f.uc.Sync(ctx))

	active, err := f.items.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)

	archived, err := f.uc.Archive(ctx, active[0].ID, domain.ReasonCompleted)
	require.NoError(t, err)

	f.source.candidates = []Candidate{{ExternalID: "501", Title: "Essay reborn"}}
	require.NoError(t, f.uc.Sync(ctx))

	active, err = f.items.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active, "archived item must not reappear")

	got, err := f.items.FindByID(ctx, archived.ID)
	require.NoError(t, err)
	require.NotNil(t, got.ArchivedReason)
	assert.Equal(t, domain.ReasonCompleted, *got.ArchivedReason)
	assert.Equal(t, "Essay", got.Title, "archived row is immutable to sync")
	assert.True(t, got.Completed)
}

func TestSync_RestoredItemIsSyncedAgain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.source.candidates = []Candidate{{ExternalID: "501", Title: "Essay"}}
	require.NoError(t, f.uc.Sync(ctx))
	active, err := f.items.ListActive(ctx)
	require.NoError(t, err)
	id := active[0].ID

	_, err = f.uc.Archive(ctx, id, domain.ReasonDeleted)
	require.NoError(t, err)
	_, err = f.uc.Restore(ctx, id)
	require.NoError(t, err)

	f.source.candidates = []Candidate{{ExternalID: "501", Title: "Essay v2"}}
	require.NoError(t, f.uc.Sync(ctx))

	got, err := f.items.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Essay v2", got.Title)
}

func TestSync_WithoutDueAtHasNoScheduledTime(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.source.candidates = []Candidate{{ExternalID: "501", Title: "Essay"}}
	require.NoError(t, f.uc.Sync(ctx))

	active, err := f.items.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Nil(t, active[0].ScheduledTime)
	assert.Nil(t, active[0].DueAt)
	assert.False(t, active[0].CreatedAt.IsZero(), "falls back to now when source omits created_at")
}

func TestSync_FetchFailureAbortsPass(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.source.err = errors.New("connection refused")
	err := f.uc.Sync(ctx)
	require.ErrorIs(t, err, domain.ErrUpstream)

	active, listErr := f.items.ListActive(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, active)
}

func TestSync_NoSourceConfigured(t *testing.T) {
	f := newFixture(t)
	uc := NewPlannerUsecase(f.items, f.events, nil)

	err := uc.Sync(context.Background())
	require.ErrorIs(t, err, domain.ErrUpstream)
}

func TestDeriveScheduledTime(t *testing.T) {
	assert.Nil(t, deriveScheduledTime(nil))

	due := time.Date(2026, 5, 1, 7, 5, 0, 0, time.Local)
	got := deriveScheduledTime(&due)
	require.NotNil(t, got)
	assert.Equal(t, "07:05", *got)
}
