package cli

import (
	"context"
	"strings"

	"task-manager/internal/api"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// ListOptions are the filter and sort choices of the ls command.
type ListOptions struct {
	Statuses      []string
	Priorities    []string
	Tags          []string
	List          string
	Search        string
	HideCompleted bool
	Sort          string
	Descending    bool
}

var sortAliases = map[string]domain.SortKey{
	"due":      domain.SortByDueDate,
	"created":  domain.SortByCreatedAt,
	"manual":   domain.SortByPosition,
	"priority": domain.SortByPriority,
	"title":    domain.SortByTitle,
}

// ListCommand handles the ls command
type ListCommand struct {
	app         *App
	businessAPI api.BusinessAPI
	validator   *validation.Validator
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{
		app:         app,
		businessAPI: app.businessAPI,
		validator:   validation.NewValidatorWithConfig(app.config),
	}
}

// Execute lists tasks whose text contains the joined arguments
func (c *ListCommand) Execute(ctx context.Context, args []string) error {
	return c.Run(ctx, ListOptions{Search: strings.Join(args, " ")})
}

// Run lists the tasks matching opts
func (c *ListCommand) Run(ctx context.Context, opts ListOptions) error {
	filter, err := c.buildFilter(ctx, opts)
	if err != nil {
		return NewErrorHandler().Handle("list tasks", err)
	}

	views := c.businessAPI.SearchTasks(ctx, filter)
	printTasks(c.app.out, c.app.styles(ctx), views, timeNow(), c.app.config.Display.DateLayout)
	return nil
}

func (c *ListCommand) buildFilter(ctx context.Context, opts ListOptions) (domain.TaskFilter, error) {
	filter := domain.TaskFilter{
		Tags:          opts.Tags,
		SearchQuery:   strings.TrimSpace(opts.Search),
		HideCompleted: opts.HideCompleted,
	}

	for _, raw := range opts.Statuses {
		status, ok := c.validator.ParseStatus(raw, "")
		if !ok || status == "" {
			return filter, errors.NewInvalidInputError("status", raw, "must be todo, in-progress or completed")
		}
		filter.Statuses = append(filter.Statuses, status)
	}
	for _, raw := range opts.Priorities {
		priority, ok := c.validator.ParsePriority(raw, "")
		if !ok || priority == "" {
			return filter, errors.NewInvalidInputError("priority", raw, "must be none, low, medium or high")
		}
		filter.Priorities = append(filter.Priorities, priority)
	}

	if opts.List != "" {
		list, err := c.businessAPI.GetList(ctx, opts.List)
		if err != nil {
			return filter, err
		}
		filter.ListID = list.ID
	}

	if opts.Sort != "" {
		key, ok := sortAliases[strings.ToLower(opts.Sort)]
		if !ok {
			key = domain.SortKey(opts.Sort)
		}
		if key == domain.SortByNone || !key.IsValid() {
			return filter, errors.NewInvalidInputError("sort", opts.Sort, "must be due, priority, created, title or manual")
		}
		filter.SortBy = key
		filter.SortDirection = domain.SortAsc
		if opts.Descending {
			filter.SortDirection = domain.SortDesc
		}
	}
	return filter, nil
}
