package cli

import (
	"context"
	"strings"

	"github.com/dustin/go-humanize"

	"task-manager/internal/api"
	"task-manager/internal/errors"
)

// ShowCommand prints every field of one task
type ShowCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewShowCommand creates a new show command handler
func NewShowCommand(app *App) *ShowCommand {
	return &ShowCommand{app: app, businessAPI: app.businessAPI}
}

// Execute shows the task referenced by the first argument
func (c *ShowCommand) Execute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.NewInvalidInputError("arguments", args, "usage: tm show <task-id>")
	}

	task, err := c.businessAPI.GetTask(ctx, args[0])
	if err != nil {
		return NewErrorHandler().Handle("show task", err)
	}

	st := c.app.styles(ctx)
	now := timeNow()

	c.app.println(st.Title.Render(task.Title))
	c.app.printf("  id:        %s\n", task.ID)
	c.app.printf("  status:    %s\n", st.Status(task.Status).Render(task.Status.String()))
	c.app.printf("  priority:  %s\n", st.Priority(task.Priority).Render(task.Priority.String()))
	if task.DueDate != nil {
		c.app.printf("  due:       %s\n", formatDue(*task.DueDate, now, c.app.config.Display.DateLayout))
	}
	if task.ListID != "" {
		if list, err := c.businessAPI.GetList(ctx, task.ListID); err == nil {
			c.app.printf("  list:      %s\n", st.List(list))
		} else {
			c.app.printf("  list:      %s\n", st.Muted.Render("(deleted list)"))
		}
	}
	if len(task.Tags) > 0 {
		c.app.printf("  tags:      %s\n", strings.Join(task.Tags, ", "))
	}
	if task.Description != "" {
		c.app.printf("  notes:     %s\n", task.Description)
	}
	c.app.printf("  created:   %s\n", humanize.RelTime(task.CreatedAt, now, "ago", "from now"))
	c.app.printf("  updated:   %s\n", humanize.RelTime(task.UpdatedAt, now, "ago", "from now"))
	return nil
}
