package cli

import (
	"context"
	"fmt"
	"sort"

	"task-manager/internal/api"
	"task-manager/internal/domain"
)

// DashboardCommand prints the overview
type DashboardCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewDashboardCommand creates a new dashboard command handler
func NewDashboardCommand(app *App) *DashboardCommand {
	return &DashboardCommand{app: app, businessAPI: app.businessAPI}
}

// Execute prints metrics, high-priority and overdue tasks, and list sizes
func (c *DashboardCommand) Execute(ctx context.Context, args []string) error {
	data := c.businessAPI.GetDashboardData(ctx)
	st := c.app.styles(ctx)
	now := timeNow()
	layout := c.app.config.Display.DateLayout
	m := data.Metrics

	c.app.println(st.Header.Render("Overview"))
	c.app.printf("  %s total  %s todo  %s in progress  %s completed  %s done\n",
		st.Count.Render(fmt.Sprint(m.Total)),
		st.Count.Render(fmt.Sprint(m.Todo)),
		st.Count.Render(fmt.Sprint(m.InProgress)),
		st.Count.Render(fmt.Sprint(m.Completed)),
		st.Success.Render(fmt.Sprintf("%d%%", m.CompletionRate)),
	)

	priorities := make([]domain.TaskPriority, 0, len(m.ByPriority))
	for p := range m.ByPriority {
		priorities = append(priorities, p)
	}
	sort.Slice(priorities, func(i, j int) bool { return priorities[i].Rank() > priorities[j].Rank() })
	for _, p := range priorities {
		c.app.printf("  %s %d\n", st.Priority(p).Render(fmt.Sprintf("%-7s", p)), m.ByPriority[p])
	}

	c.app.println()
	c.app.println(st.Header.Render("High priority"))
	printTasks(c.app.out, st, data.HighPriority, now, layout)

	c.app.println()
	c.app.println(st.Header.Render("Overdue"))
	printTasks(c.app.out, st, data.Overdue, now, layout)

	c.app.println()
	c.app.println(st.Header.Render("Lists"))
	for _, summary := range data.Lists {
		c.app.printf("  %s  %s\n", st.List(summary.List), st.Count.Render(pluralTasks(summary.TaskCount)))
	}
	c.app.printf("  %s  %s\n", st.Muted.Render("unassigned"), st.Count.Render(pluralTasks(data.Unassigned)))
	return nil
}

func pluralTasks(n int) string {
	if n == 1 {
		return "1 task"
	}
	return fmt.Sprintf("%d tasks", n)
}
