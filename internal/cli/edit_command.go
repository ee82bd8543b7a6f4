package cli

import (
	"context"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// EditCommand handles the edit command
type EditCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, businessAPI: app.businessAPI}
}

// Execute renames the task referenced by the first argument to the rest
func (c *EditCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm edit <task-id> <new title>")
	}
	title := strings.Join(args[1:], " ")
	return c.Run(ctx, args[0], validation.TaskChanges{Title: &title})
}

// Run applies changes to the task referenced by ref
func (c *EditCommand) Run(ctx context.Context, ref string, changes validation.TaskChanges) error {
	task, err := c.businessAPI.UpdateTask(ctx, ref, changes)
	if err != nil {
		return NewErrorHandler().Handle("edit task", err)
	}
	c.app.printf("Updated task %s: %s\n", shortID(task.ID), task.Title)
	return nil
}
