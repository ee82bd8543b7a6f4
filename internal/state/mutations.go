package state

import (
	"context"

	"task-manager/internal/domain"
	"task-manager/internal/services"
)

// mutateTasks runs fn against the task repository and republishes on success.
func (c *Coordinator) mutateTasks(ctx context.Context, fn func() error) error {
	c.writeMu.Lock()
	if err := fn(); err != nil {
		c.writeMu.Unlock()
		return err
	}

	tasks := c.tasks.GetAll(ctx)
	c.mu.Lock()
	c.taskState = tasks
	c.version++
	c.mu.Unlock()
	c.writeMu.Unlock()

	c.publish()
	return nil
}

// mutateLists runs fn against the list repository and republishes on success.
func (c *Coordinator) mutateLists(ctx context.Context, fn func() error) error {
	c.writeMu.Lock()
	if err := fn(); err != nil {
		c.writeMu.Unlock()
		return err
	}

	lists := c.lists.GetAll(ctx)
	c.mu.Lock()
	c.listState = lists
	c.version++
	c.mu.Unlock()
	c.writeMu.Unlock()

	c.publish()
	return nil
}

// AddTask creates a task.
func (c *Coordinator) AddTask(ctx context.Context, draft domain.TaskDraft) (domain.Task, error) {
	var task domain.Task
	err := c.mutateTasks(ctx, func() (err error) {
		task, err = c.tasks.Add(ctx, draft)
		return err
	})
	return task, err
}

// UpdateTask patches the task with id.
func (c *Coordinator) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) (services.Outcome, error) {
	var outcome services.Outcome
	err := c.mutateTasks(ctx, func() (err error) {
		outcome, err = c.tasks.Update(ctx, id, patch)
		return err
	})
	return outcome, err
}

// DeleteTask removes the task with id.
func (c *Coordinator) DeleteTask(ctx context.Context, id string) (services.Outcome, error) {
	var outcome services.Outcome
	err := c.mutateTasks(ctx, func() (err error) {
		outcome, err = c.tasks.Delete(ctx, id)
		return err
	})
	return outcome, err
}

// DeleteCompletedTasks removes every completed task.
func (c *Coordinator) DeleteCompletedTasks(ctx context.Context) (int, error) {
	var removed int
	err := c.mutateTasks(ctx, func() (err error) {
		removed, err = c.tasks.DeleteCompleted(ctx)
		return err
	})
	return removed, err
}

// ReorderTasks sets the manual order within listID.
func (c *Coordinator) ReorderTasks(ctx context.Context, listID string, ids []string) error {
	return c.mutateTasks(ctx, func() error {
		return c.tasks.Reorder(ctx, listID, ids)
	})
}

// AddList creates a list.
func (c *Coordinator) AddList(ctx context.Context, draft domain.ListDraft) (domain.UserList, error) {
	var list domain.UserList
	err := c.mutateLists(ctx, func() (err error) {
		list, err = c.lists.Add(ctx, draft)
		return err
	})
	return list, err
}

// UpdateList patches the list with id.
func (c *Coordinator) UpdateList(ctx context.Context, id string, patch domain.ListPatch) (services.Outcome, error) {
	var outcome services.Outcome
	err := c.mutateLists(ctx, func() (err error) {
		outcome, err = c.lists.Update(ctx, id, patch)
		return err
	})
	return outcome, err
}

// DeleteList removes the list with id. Tasks keep their reference to it.
func (c *Coordinator) DeleteList(ctx context.Context, id string) (services.Outcome, error) {
	var outcome services.Outcome
	err := c.mutateLists(ctx, func() (err error) {
		outcome, err = c.lists.Delete(ctx, id)
		return err
	})
	return outcome, err
}
