package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"task-manager/internal/api"
	"task-manager/internal/calendar"
	"task-manager/internal/domain"
)

const shortIDLength = 8

// shortID returns the prefix of id shown in listings. Any unique prefix is
// accepted back as a reference.
func shortID(id string) string {
	if len(id) > shortIDLength {
		return id[:shortIDLength]
	}
	return id
}

// relativeDay describes day relative to now at day granularity.
func relativeDay(day, now time.Time) string {
	day = calendar.StartOfDay(day.In(now.Location()))
	today := calendar.StartOfDay(now)
	switch {
	case day.Equal(today):
		return "today"
	case day.Equal(today.AddDate(0, 0, 1)):
		return "tomorrow"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "yesterday"
	}
	return humanize.RelTime(day, today, "ago", "from now")
}

// formatDue renders a due date with its distance from now.
func formatDue(due time.Time, now time.Time, layout string) string {
	return fmt.Sprintf("%s (%s)", due.Format(layout), relativeDay(due, now))
}

func statusMarker(status domain.TaskStatus) string {
	switch status {
	case domain.StatusCompleted:
		return "[x]"
	case domain.StatusInProgress:
		return "[~]"
	default:
		return "[ ]"
	}
}

// printTask writes one task line:
// id [ ] title !priority due ... @list #tag
func printTask(w io.Writer, st *Styles, view api.TaskView, now time.Time, layout string) {
	task := view.Task

	title := st.Title.Render(task.Title)
	if task.IsCompleted() {
		title = st.Completed.Render(task.Title)
	}

	parts := []string{
		st.ID.Render(shortID(task.ID)),
		st.Status(task.Status).Render(statusMarker(task.Status)),
		title,
	}
	if task.Priority != domain.PriorityNone && task.Priority != "" {
		parts = append(parts, st.Priority(task.Priority).Render("!"+string(task.Priority)))
	}
	if task.DueDate != nil {
		due := "due " + formatDue(*task.DueDate, now, layout)
		if view.Overdue {
			due = st.Overdue.Render(due)
		} else {
			due = st.Muted.Render(due)
		}
		parts = append(parts, due)
	}
	if view.List != nil {
		parts = append(parts, st.List(*view.List))
	}
	for _, tag := range task.Tags {
		parts = append(parts, st.Muted.Render("#"+tag))
	}
	fmt.Fprintln(w, strings.Join(parts, "  "))
}

func printTasks(w io.Writer, st *Styles, views []api.TaskView, now time.Time, layout string) {
	if len(views) == 0 {
		fmt.Fprintln(w, "No tasks found")
		return
	}
	for _, view := range views {
		printTask(w, st, view, now, layout)
	}
}
