package cli

import (
	"context"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/validation"
)

// AddCommand handles the add command
type AddCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewAddCommand creates a new add command handler
func NewAddCommand(app *App) *AddCommand {
	return &AddCommand{app: app, businessAPI: app.businessAPI}
}

// Execute creates a task titled by the joined arguments
func (c *AddCommand) Execute(ctx context.Context, args []string) error {
	return c.Run(ctx, validation.TaskInput{Title: strings.Join(args, " ")})
}

// Run creates a task from input
func (c *AddCommand) Run(ctx context.Context, input validation.TaskInput) error {
	task, err := c.businessAPI.CreateTask(ctx, input)
	if err != nil {
		return NewErrorHandler().Handle("add task", err)
	}
	c.app.printf("Added task %s: %s\n", shortID(task.ID), task.Title)
	return nil
}
