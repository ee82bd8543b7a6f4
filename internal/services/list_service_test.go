package services

import (
	"context"
	"path/filepath"
	"testing"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupListService(t *testing.T) (ListService, *memoryStore[domain.UserList]) {
	t.Helper()
	store := &memoryStore[domain.UserList]{}
	clock := newFakeClock()
	return NewListService(store, WithClock(clock.Now), WithIDGenerator(sequentialIDs("l"))), store
}

func TestListService_CRUD(t *testing.T) {
	service, _ := setupListService(t)
	ctx := context.Background()

	work, err := service.Add(ctx, domain.ListDraft{Name: "Work", Color: "#ff0000"})
	require.NoError(t, err)
	home, err := service.Add(ctx, domain.ListDraft{Name: "Home"})
	require.NoError(t, err)
	assert.NotEqual(t, work.ID, home.ID)
	assert.Equal(t, work.CreatedAt, work.UpdatedAt)

	outcome, err := service.Update(ctx, work.ID, domain.ListPatch{Name: ptr("Office")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	got, ok := service.Get(ctx, work.ID)
	require.True(t, ok)
	assert.Equal(t, "Office", got.Name)
	assert.Equal(t, "#ff0000", got.Color)
	assert.True(t, got.UpdatedAt.After(work.UpdatedAt))

	outcome, err = service.Delete(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)

	outcome, err = service.Delete(ctx, work.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	outcome, err = service.Update(ctx, work.ID, domain.ListPatch{Name: ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)

	assert.Len(t, service.GetAll(ctx), 1)
}

func TestListService_QuotaExceeded(t *testing.T) {
	service, store := setupListService(t)
	store.saveErr = quotaErr

	_, err := service.Add(context.Background(), domain.ListDraft{Name: "Work"})
	assert.True(t, errors.IsQuotaExceeded(err))
	assert.Empty(t, service.GetAll(context.Background()))
}

func TestOrphanedListReference(t *testing.T) {
	repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "tm.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	container := NewServiceContainer(repo)

	list, err := container.ListService.Add(ctx, domain.ListDraft{Name: "Errands"})
	require.NoError(t, err)

	draft := domain.NewTaskDraft("Post letter")
	draft.ListID = list.ID
	task, err := container.TaskService.Add(ctx, draft)
	require.NoError(t, err)

	_, err = container.ListService.Delete(ctx, list.ID)
	require.NoError(t, err)

	tasks := container.TaskService.GetAll(ctx)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Equal(t, list.ID, tasks[0].ListID)

	_, found := container.ListService.Get(ctx, list.ID)
	assert.False(t, found)
}

func TestSQLiteRoundTrip(t *testing.T) {
	repo, err := sqlite.New(context.Background(), filepath.Join(t.TempDir(), "tm.db"))
	require.NoError(t, err)
	defer repo.Close()

	ctx := context.Background()
	clock := newFakeClock()
	service := NewTaskService(NewTaskStore(repo), WithClock(clock.Now))

	draft := domain.NewTaskDraft("Round trip")
	draft.Tags = []string{"a", "a", "B"}
	draft.Priority = domain.PriorityMedium
	added, err := service.Add(ctx, draft)
	require.NoError(t, err)

	reloaded := NewTaskService(NewTaskStore(repo)).GetAll(ctx)
	require.Len(t, reloaded, 1)
	assert.Equal(t, added, reloaded[0])
}
