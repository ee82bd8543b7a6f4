package services

import (
	"context"
	"slices"

	"task-manager/internal/domain"
	"task-manager/internal/logging"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	store Store[domain.Task]
	opts  options
}

// NewTaskService creates a new TaskService instance
func NewTaskService(store Store[domain.Task], opts ...Option) TaskService {
	return &taskServiceImpl{store: store, opts: buildOptions(opts)}
}

// GetAll returns every stored task in stored order
func (s *taskServiceImpl) GetAll(ctx context.Context) []domain.Task {
	return s.store.Load(ctx)
}

// Get looks a task up by id
func (s *taskServiceImpl) Get(ctx context.Context, id string) (domain.Task, bool) {
	for _, task := range s.store.Load(ctx) {
		if task.ID == id {
			return task, true
		}
	}
	return domain.Task{}, false
}

// Add creates a task from draft
func (s *taskServiceImpl) Add(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	tasks := s.store.Load(ctx)

	id, err := freshID(s.opts.newID, func(candidate string) bool {
		return slices.ContainsFunc(tasks, func(t domain.Task) bool { return t.ID == candidate })
	})
	if err != nil {
		return domain.Task{}, err
	}

	now := s.opts.clock()
	task := domain.Task{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		Tags:        append([]string{}, draft.Tags...),
		ListID:      draft.ListID,
		Position:    nextPosition(tasks, draft.ListID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Status == "" {
		task.Status = domain.StatusTodo
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityNone
	}
	if draft.DueDate != nil {
		due := *draft.DueDate
		task.DueDate = &due
	}

	if err := s.store.Save(ctx, append(tasks, task)); err != nil {
		return domain.Task{}, err
	}

	logging.Debugf("added task %s\n", task.ID)
	return task, nil
}

// Update merges patch over the task with id
func (s *taskServiceImpl) Update(ctx context.Context, id string, patch domain.TaskPatch) (Outcome, error) {
	tasks := s.store.Load(ctx)

	idx := slices.IndexFunc(tasks, func(t domain.Task) bool { return t.ID == id })
	if idx < 0 {
		logging.Debugf("update ignored, no task %s\n", id)
		return OutcomeNotFound, nil
	}

	prev := tasks[idx]
	updated := patch.Apply(prev)
	if updated.ListID != prev.ListID {
		updated.Position = nextPosition(tasks, updated.ListID)
	}
	updated.UpdatedAt = nextUpdate(s.opts.clock(), prev.UpdatedAt)
	tasks[idx] = updated

	if err := s.store.Save(ctx, tasks); err != nil {
		return OutcomeNotFound, err
	}
	return OutcomeUpdated, nil
}

// Delete removes the task with id
func (s *taskServiceImpl) Delete(ctx context.Context, id string) (Outcome, error) {
	tasks := s.store.Load(ctx)

	remaining := slices.DeleteFunc(slices.Clone(tasks), func(t domain.Task) bool { return t.ID == id })
	if len(remaining) == len(tasks) {
		return OutcomeNotFound, nil
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		return OutcomeNotFound, err
	}
	return OutcomeDeleted, nil
}

// DeleteCompleted removes all completed tasks
func (s *taskServiceImpl) DeleteCompleted(ctx context.Context) (int, error) {
	tasks := s.store.Load(ctx)

	remaining := slices.DeleteFunc(slices.Clone(tasks), domain.Task.IsCompleted)
	removed := len(tasks) - len(remaining)
	if removed == 0 {
		return 0, nil
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		return 0, err
	}
	return removed, nil
}

// Reorder rewrites positions within listID
func (s *taskServiceImpl) Reorder(ctx context.Context, listID string, ids []string) error {
	tasks := s.store.Load(ctx)

	var scope []int
	for i, task := range tasks {
		if task.ListID == listID {
			scope = append(scope, i)
		}
	}
	if len(scope) == 0 {
		return nil
	}

	named := make(map[string]bool, len(ids))
	var order []int
	for _, id := range ids {
		if named[id] {
			continue
		}
		for _, i := range scope {
			if tasks[i].ID == id {
				order = append(order, i)
				named[id] = true
				break
			}
		}
	}
	if len(order) == 0 {
		return nil
	}

	rest := slices.DeleteFunc(slices.Clone(scope), func(i int) bool { return named[tasks[i].ID] })
	slices.SortStableFunc(rest, func(a, b int) int { return tasks[a].Position - tasks[b].Position })
	order = append(order, rest...)

	now := s.opts.clock()
	for pos, i := range order {
		if named[tasks[i].ID] || tasks[i].Position != pos {
			tasks[i].Position = pos
			tasks[i].UpdatedAt = nextUpdate(now, tasks[i].UpdatedAt)
		}
	}

	return s.store.Save(ctx, tasks)
}

// nextPosition is one past the highest position used in listID.
func nextPosition(tasks []domain.Task, listID string) int {
	next := 0
	for _, task := range tasks {
		if task.ListID == listID && task.Position >= next {
			next = task.Position + 1
		}
	}
	return next
}
