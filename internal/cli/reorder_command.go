package cli

import (
	"context"

	"task-manager/internal/api"
	"task-manager/internal/errors"
)

// unassignedList names the scope of tasks without a list.
const unassignedList = "-"

// ReorderCommand sets the manual order of a list
type ReorderCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewReorderCommand creates a new reorder command handler
func NewReorderCommand(app *App) *ReorderCommand {
	return &ReorderCommand{app: app, businessAPI: app.businessAPI}
}

// Execute takes a list reference, or "-" for unassigned tasks, followed by
// task references in their new order
func (c *ReorderCommand) Execute(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm reorder <list|-> <task-id>...")
	}
	listRef := args[0]
	if listRef == unassignedList {
		listRef = ""
	}
	return c.Run(ctx, listRef, args[1:])
}

// Run reorders taskRefs within the list referenced by listRef
func (c *ReorderCommand) Run(ctx context.Context, listRef string, taskRefs []string) error {
	if err := c.businessAPI.ReorderTasks(ctx, listRef, taskRefs); err != nil {
		return NewErrorHandler().Handle("reorder tasks", err)
	}
	c.app.printf("Reordered %d task(s)\n", len(taskRefs))
	return nil
}
