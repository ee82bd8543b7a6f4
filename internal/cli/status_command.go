package cli

import (
	"context"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// DoneCommand marks tasks completed
type DoneCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewDoneCommand creates a new done command handler
func NewDoneCommand(app *App) *DoneCommand {
	return &DoneCommand{app: app, businessAPI: app.businessAPI}
}

// Execute completes every referenced task, stopping at the first failure
func (c *DoneCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm done <task-id>...")
	}
	for _, ref := range args {
		task, err := c.businessAPI.SetTaskStatus(ctx, ref, string(domain.StatusCompleted))
		if err != nil {
			return NewErrorHandler().Handle("complete task", err)
		}
		c.app.printf("Completed task %s: %s\n", shortID(task.ID), task.Title)
	}
	return nil
}

// StatusCommand moves a task to any status
type StatusCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{app: app, businessAPI: app.businessAPI}
}

// Execute sets the status named by the second argument
func (c *StatusCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm status <task-id> <todo|in-progress|completed>")
	}
	task, err := c.businessAPI.SetTaskStatus(ctx, args[0], args[1])
	if err != nil {
		return NewErrorHandler().Handle("change status", err)
	}
	c.app.printf("Task %s is now %s\n", shortID(task.ID), task.Status)
	return nil
}
