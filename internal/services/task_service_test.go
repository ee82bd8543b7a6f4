package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTaskService(t *testing.T) (TaskService, *memoryStore[domain.Task], *fakeClock) {
	t.Helper()
	store := &memoryStore[domain.Task]{}
	clock := newFakeClock()
	return NewTaskService(store, WithClock(clock.Now), WithIDGenerator(sequentialIDs("t"))), store, clock
}

func ptr[T any](v T) *T { return &v }

func TestTaskService_Add(t *testing.T) {
	service, store, _ := setupTaskService(t)
	ctx := context.Background()

	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	draft := domain.NewTaskDraft("Buy milk")
	draft.DueDate = &due
	draft.Tags = []string{"home"}

	first, err := service.Add(ctx, draft)
	require.NoError(t, err)
	second, err := service.Add(ctx, domain.TaskDraft{Title: "Call Bob"})
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
	assert.Equal(t, second.CreatedAt, second.UpdatedAt)
	assert.Equal(t, 0, first.Position)
	assert.Equal(t, 1, second.Position)
	assert.Equal(t, domain.StatusTodo, second.Status)
	assert.Equal(t, domain.PriorityNone, second.Priority)

	due = due.AddDate(0, 1, 0)
	assert.Equal(t, time.June, first.DueDate.Month(), "draft due date is copied")

	all := service.GetAll(ctx)
	require.Len(t, all, 2)
	assert.Equal(t, "Buy milk", all[0].Title)
	assert.Equal(t, 2, store.saves)
}

func TestTaskService_AddFreshIdentity(t *testing.T) {
	store := &memoryStore[domain.Task]{items: []domain.Task{{ID: "t1"}, {ID: "t2"}}}
	service := NewTaskService(store, WithIDGenerator(sequentialIDs("t")))

	task, err := service.Add(context.Background(), domain.NewTaskDraft("x"))
	require.NoError(t, err)
	assert.Equal(t, "t3", task.ID)
}

func TestTaskService_AddGeneratorExhausted(t *testing.T) {
	store := &memoryStore[domain.Task]{items: []domain.Task{{ID: "same"}}}
	service := NewTaskService(store, WithIDGenerator(func() string { return "same" }))

	_, err := service.Add(context.Background(), domain.NewTaskDraft("x"))
	require.Error(t, err)
	assert.Len(t, store.items, 1)
}

func TestTaskService_AddPositionPerList(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	a, _ := service.Add(ctx, domain.TaskDraft{Title: "a", ListID: "work"})
	b, _ := service.Add(ctx, domain.TaskDraft{Title: "b"})
	c, _ := service.Add(ctx, domain.TaskDraft{Title: "c", ListID: "work"})

	assert.Equal(t, 0, a.Position)
	assert.Equal(t, 0, b.Position)
	assert.Equal(t, 1, c.Position)
}

func TestTaskService_QuotaExceededOnAdd(t *testing.T) {
	service, store, _ := setupTaskService(t)
	ctx := context.Background()

	_, err := service.Add(ctx, domain.NewTaskDraft("kept"))
	require.NoError(t, err)
	before := service.GetAll(ctx)

	store.saveErr = quotaErr
	_, err = service.Add(ctx, domain.NewTaskDraft("rejected"))
	require.Error(t, err)
	assert.True(t, errors.IsQuotaExceeded(err))

	assert.Equal(t, before, service.GetAll(ctx))
}

func TestTaskService_Update(t *testing.T) {
	service, _, clock := setupTaskService(t)
	ctx := context.Background()

	task, err := service.Add(ctx, domain.NewTaskDraft("Draft"))
	require.NoError(t, err)

	outcome, err := service.Update(ctx, task.ID, domain.TaskPatch{
		Title:  ptr("Final"),
		Status: ptr(domain.StatusCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, OutcomeUpdated, outcome)

	got, ok := service.Get(ctx, task.ID)
	require.True(t, ok)
	assert.Equal(t, "Final", got.Title)
	assert.Equal(t, domain.StatusCompleted, got.Status)
	assert.Equal(t, task.CreatedAt, got.CreatedAt)
	assert.True(t, got.UpdatedAt.After(task.UpdatedAt))

	t.Run("timestamp strictly increases when the clock stalls", func(t *testing.T) {
		clock.step = 0
		clock.now = got.UpdatedAt.Add(-time.Hour)

		_, err := service.Update(ctx, task.ID, domain.TaskPatch{Title: ptr("Again")})
		require.NoError(t, err)

		again, _ := service.Get(ctx, task.ID)
		assert.True(t, again.UpdatedAt.After(got.UpdatedAt))
	})
}

func TestTaskService_UpdateUnknownID(t *testing.T) {
	service, store, _ := setupTaskService(t)

	outcome, err := service.Update(context.Background(), "missing", domain.TaskPatch{Title: ptr("x")})
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
	assert.False(t, outcome.Found())
	assert.Equal(t, 0, store.saves)
}

func TestTaskService_UpdateMovesToEndOfNewList(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	_, _ = service.Add(ctx, domain.TaskDraft{Title: "w1", ListID: "work"})
	_, _ = service.Add(ctx, domain.TaskDraft{Title: "w2", ListID: "work"})
	loose, _ := service.Add(ctx, domain.TaskDraft{Title: "loose"})

	_, err := service.Update(ctx, loose.ID, domain.TaskPatch{ListID: ptr("work")})
	require.NoError(t, err)

	moved, _ := service.Get(ctx, loose.ID)
	assert.Equal(t, "work", moved.ListID)
	assert.Equal(t, 2, moved.Position)
}

func TestTaskService_UpdateQuotaExceeded(t *testing.T) {
	service, store, _ := setupTaskService(t)
	ctx := context.Background()

	task, _ := service.Add(ctx, domain.NewTaskDraft("orig"))
	store.saveErr = quotaErr

	_, err := service.Update(ctx, task.ID, domain.TaskPatch{Title: ptr("changed")})
	assert.True(t, errors.IsQuotaExceeded(err))

	got, _ := service.Get(ctx, task.ID)
	assert.Equal(t, "orig", got.Title)
}

func TestTaskService_DeleteIdempotent(t *testing.T) {
	service, store, _ := setupTaskService(t)
	ctx := context.Background()

	task, _ := service.Add(ctx, domain.NewTaskDraft("gone soon"))
	keep, _ := service.Add(ctx, domain.NewTaskDraft("keep"))

	outcome, err := service.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeDeleted, outcome)
	saves := store.saves

	outcome, err = service.Delete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotFound, outcome)
	assert.Equal(t, saves, store.saves, "second delete does not write")

	all := service.GetAll(ctx)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)
}

func TestTaskService_DeleteCompleted(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	done := domain.NewTaskDraft("done")
	done.Status = domain.StatusCompleted
	_, _ = service.Add(ctx, done)
	_, _ = service.Add(ctx, domain.NewTaskDraft("open"))

	removed, err := service.DeleteCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = service.DeleteCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
	assert.Len(t, service.GetAll(ctx), 1)
}

func TestTaskService_Reorder(t *testing.T) {
	service, _, _ := setupTaskService(t)
	ctx := context.Background()

	a, _ := service.Add(ctx, domain.TaskDraft{Title: "a", ListID: "work"})
	b, _ := service.Add(ctx, domain.TaskDraft{Title: "b", ListID: "work"})
	c, _ := service.Add(ctx, domain.TaskDraft{Title: "c", ListID: "work"})
	other, _ := service.Add(ctx, domain.TaskDraft{Title: "other"})

	require.NoError(t, service.Reorder(ctx, "work", []string{c.ID, a.ID, other.ID, "missing"}))

	position := func(id string) int {
		task, ok := service.Get(ctx, id)
		require.True(t, ok)
		return task.Position
	}
	assert.Equal(t, 0, position(c.ID))
	assert.Equal(t, 1, position(a.ID))
	assert.Equal(t, 2, position(b.ID))
	assert.Equal(t, 0, position(other.ID), "tasks outside the list are untouched")

	movedC, _ := service.Get(ctx, c.ID)
	assert.True(t, movedC.UpdatedAt.After(c.UpdatedAt))
	untouched, _ := service.Get(ctx, other.ID)
	assert.Equal(t, other.UpdatedAt, untouched.UpdatedAt)
}

func TestTaskService_ReorderNoop(t *testing.T) {
	service, store, _ := setupTaskService(t)
	ctx := context.Background()

	require.NoError(t, service.Reorder(ctx, "empty", []string{"x"}))
	_, _ = service.Add(ctx, domain.NewTaskDraft("a"))
	saves := store.saves
	require.NoError(t, service.Reorder(ctx, "", []string{"unknown"}))
	assert.Equal(t, saves, store.saves)
}

func TestTaskService_CorruptDueDateKeepsCollection(t *testing.T) {
	ctx := context.Background()
	repo, err := sqlite.New(ctx, filepath.Join(t.TempDir(), "tm.db"))
	require.NoError(t, err)
	defer repo.Close()

	svc := NewServiceContainer(repo).TaskService
	due := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)
	for _, title := range []string{"one", "two", "three"} {
		draft := domain.NewTaskDraft(title)
		draft.DueDate = &due
		_, err := svc.Add(ctx, draft)
		require.NoError(t, err)
	}

	raw, ok, err := repo.Get(ctx, sqlite.TasksKey)
	require.NoError(t, err)
	require.True(t, ok)
	last := strings.LastIndex(raw, "2024-07-01T00:00:00Z")
	require.NotEqual(t, -1, last)
	raw = raw[:last] + "not a date" + raw[last+len("2024-07-01T00:00:00Z"):]
	require.NoError(t, repo.Put(ctx, sqlite.TasksKey, raw))

	tasks := svc.GetAll(ctx)
	require.Len(t, tasks, 3)
	assert.NotNil(t, tasks[0].DueDate)
	assert.Nil(t, tasks[2].DueDate)

	_, err = svc.Add(ctx, domain.NewTaskDraft("four"))
	require.NoError(t, err)
	assert.Len(t, svc.GetAll(ctx), 4)
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "updated", OutcomeUpdated.String())
	assert.Equal(t, "deleted", OutcomeDeleted.String())
	assert.Equal(t, "not found", OutcomeNotFound.String())
}
