package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"task-manager/internal/api"
	"task-manager/internal/calendar"
	"task-manager/internal/errors"
)

// monthLayout is the argument format for choosing a month.
const monthLayout = "2006-01"

// CalendarOptions choose the month shown.
type CalendarOptions struct {
	// Month is "YYYY-MM"; empty means the current month.
	Month string
	// Offset moves that many months forward, or back when negative.
	Offset int
}

// CalendarCommand prints a month grid
type CalendarCommand struct {
	app         *App
	businessAPI api.BusinessAPI
}

// NewCalendarCommand creates a new calendar command handler
func NewCalendarCommand(app *App) *CalendarCommand {
	return &CalendarCommand{app: app, businessAPI: app.businessAPI}
}

// Execute shows the month given as the optional first argument
func (c *CalendarCommand) Execute(ctx context.Context, args []string) error {
	opts := CalendarOptions{}
	if len(args) > 0 {
		opts.Month = args[0]
	}
	return c.Run(ctx, opts)
}

// Run prints the grid for the chosen month followed by the tasks due in it.
// Days with open tasks are marked "*", days whose tasks are all completed "+".
func (c *CalendarCommand) Run(ctx context.Context, opts CalendarOptions) error {
	now := timeNow()
	ref := now
	if opts.Month != "" {
		parsed, err := time.ParseInLocation(monthLayout, opts.Month, now.Location())
		if err != nil {
			return errors.NewInvalidInputError("month", opts.Month, "expected YYYY-MM")
		}
		ref = parsed
	}
	ref = calendar.AddMonths(ref, opts.Offset)

	month := c.businessAPI.GetCalendarMonth(ctx, ref)
	st := c.app.styles(ctx)

	c.app.println(st.Header.Render(month.Label))

	headers := make([]string, 0, len(month.Weekdays))
	for _, day := range month.Weekdays {
		headers = append(headers, fmt.Sprintf("%-3s", day.String()[:2]))
	}
	c.app.println(st.Muted.Render(strings.TrimRight(strings.Join(headers, " "), " ")))

	var due []time.Time
	for _, week := range month.Weeks {
		cells := make([]string, 0, len(week))
		for _, day := range week {
			if !day.IsCurrentMonth {
				cells = append(cells, "   ")
				continue
			}
			marker := " "
			if day.TaskCount > 0 {
				due = append(due, day.Date)
				marker = "+"
				if day.HasIncomplete {
					marker = "*"
				}
			}
			cell := fmt.Sprintf("%2d%s", day.DayOfMonth, marker)
			if day.IsToday {
				cell = st.Today.Render(cell)
			}
			cells = append(cells, cell)
		}
		c.app.println(strings.TrimRight(strings.Join(cells, " "), " "))
	}

	layout := c.app.config.Display.DateLayout
	for _, date := range due {
		c.app.println()
		c.app.println(st.Title.Render(date.Format(layout)))
		printTasks(c.app.out, st, c.businessAPI.GetTasksForDate(ctx, date), now, layout)
	}
	return nil
}
