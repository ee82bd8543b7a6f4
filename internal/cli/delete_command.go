package cli

import (
	"context"

	"task-manager/internal/api"
	"task-manager/internal/errors"
)

// DeleteCommand handles the rm command
type DeleteCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, businessAPI: app.businessAPI}
}

// Execute deletes every referenced task
func (c *DeleteCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm rm <task-id>... or tm rm --completed")
	}
	for _, ref := range args {
		task, err := c.businessAPI.DeleteTask(ctx, ref)
		if err != nil {
			return NewErrorHandler().Handle("delete task", err)
		}
		c.app.printf("Deleted task %s: %s\n", shortID(task.ID), task.Title)
	}
	return nil
}

// DeleteCompleted removes every completed task
func (c *DeleteCommand) DeleteCompleted(ctx context.Context) error {
	removed, err := c.businessAPI.DeleteCompletedTasks(ctx)
	if err != nil {
		return NewErrorHandler().Handle("delete completed tasks", err)
	}
	if removed == 0 {
		c.app.println("No completed tasks to delete")
		return nil
	}
	c.app.printf("Deleted %d completed task(s)\n", removed)
	return nil
}
