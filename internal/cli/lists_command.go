package cli

import (
	"context"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ListsCommand manages user lists
type ListsCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewListsCommand creates a new lists command handler
func NewListsCommand(app *App) *ListsCommand {
	return &ListsCommand{app: app, businessAPI: app.businessAPI}
}

// Execute dispatches on the first argument: add, ls, show, edit or rm.
// With no arguments it lists every list.
func (c *ListsCommand) Execute(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.List(ctx)
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "ls":
		return c.List(ctx)
	case "add":
		return c.Add(ctx, validation.ListInput{Name: strings.Join(rest, " ")})
	case "show":
		if len(rest) != 1 {
			return errors.NewInvalidInputError("arguments", rest, "usage: tm lists show <list>")
		}
		return c.Show(ctx, rest[0])
	case "edit":
		if len(rest) < 2 {
			return errors.NewInvalidInputError("arguments", rest, "usage: tm lists edit <list> <new name>")
		}
		name := strings.Join(rest[1:], " ")
		return c.Edit(ctx, rest[0], validation.ListChanges{Name: &name})
	case "rm":
		if len(rest) != 1 {
			return errors.NewInvalidInputError("arguments", rest, "usage: tm lists rm <list>")
		}
		return c.Remove(ctx, rest[0])
	default:
		return errors.NewInvalidInputError("lists command", sub, "must be add, ls, show, edit or rm")
	}
}

// List prints every list with its task count
func (c *ListsCommand) List(ctx context.Context) error {
	summaries := c.businessAPI.GetListSummaries(ctx)
	if len(summaries) == 0 {
		c.app.println("No lists found")
		return nil
	}

	st := c.app.styles(ctx)
	for _, summary := range summaries {
		line := st.ID.Render(shortID(summary.List.ID)) + "  " + st.List(summary.List) + "  " +
			st.Count.Render(pluralTasks(summary.TaskCount))
		if summary.List.Description != "" {
			line += "  " + st.Muted.Render(summary.List.Description)
		}
		c.app.println(line)
	}
	return nil
}

// Add creates a list from input
func (c *ListsCommand) Add(ctx context.Context, input validation.ListInput) error {
	list, err := c.businessAPI.CreateList(ctx, input)
	if err != nil {
		return NewErrorHandler().Handle("add list", err)
	}
	c.app.printf("Added list %s: %s\n", shortID(list.ID), list.Name)
	return nil
}

// Show prints the tasks of one list in manual order
func (c *ListsCommand) Show(ctx context.Context, ref string) error {
	list, views, err := c.businessAPI.GetListTasks(ctx, ref)
	if err != nil {
		return NewErrorHandler().Handle("show list", err)
	}

	st := c.app.styles(ctx)
	c.app.println(st.Header.Render(list.Name))
	if list.Description != "" {
		c.app.println(st.Muted.Render(list.Description))
	}
	printTasks(c.app.out, st, views, timeNow(), c.app.config.Display.DateLayout)
	return nil
}

// Edit applies changes to the list referenced by ref
func (c *ListsCommand) Edit(ctx context.Context, ref string, changes validation.ListChanges) error {
	list, err := c.businessAPI.UpdateList(ctx, ref, changes)
	if err != nil {
		return NewErrorHandler().Handle("edit list", err)
	}
	c.app.printf("Updated list %s: %s\n", shortID(list.ID), list.Name)
	return nil
}

// Remove deletes a list. Its tasks keep their reference and show as
// unassigned.
func (c *ListsCommand) Remove(ctx context.Context, ref string) error {
	list, err := c.businessAPI.DeleteList(ctx, ref)
	if err != nil {
		return NewErrorHandler().Handle("delete list", err)
	}
	c.app.printf("Deleted list %s: %s\n", shortID(list.ID), list.Name)
	return nil
}
