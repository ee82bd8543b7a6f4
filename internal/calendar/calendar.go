// Package calendar projects a task collection onto a month grid.
package calendar

import (
	"time"

	"task-manager/internal/domain"
)

// DefaultLabelLayout renders "January 2024".
const DefaultLabelLayout = "January 2006"

// Day is one cell of a month grid.
type Day struct {
	Date           time.Time
	DayOfMonth     int
	IsCurrentMonth bool
	IsToday        bool
}

// Week is seven consecutive days beginning on the projector's week start.
type Week [7]Day

// AnnotatedDay is a Day with the tasks due on it summarized.
type AnnotatedDay struct {
	Day
	TaskCount     int
	HasIncomplete bool
}

// AnnotatedWeek is a Week of AnnotatedDay.
type AnnotatedWeek [7]AnnotatedDay

// Projector builds month grids. Its zero value starts weeks on Sunday and
// reads the wall clock.
type Projector struct {
	WeekStart   time.Weekday
	LabelLayout string
	Now         func() time.Time
}

// NewProjector returns a projector whose weeks begin on weekStart.
func NewProjector(weekStart time.Weekday) *Projector {
	return &Projector{WeekStart: weekStart, LabelLayout: DefaultLabelLayout, Now: time.Now}
}

func (p *Projector) now() time.Time {
	if p.Now == nil {
		return time.Now()
	}
	return p.Now()
}

// MonthGrid returns the whole weeks covering the month of ref, in ref's
// location. Days from neighbouring months pad the first and last week.
func (p *Projector) MonthGrid(ref time.Time) []Week {
	loc := ref.Location()
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	lead := (int(first.Weekday()) - int(p.WeekStart) + 7) % 7
	trail := (int(p.WeekStart) + 6 - int(last.Weekday()) + 7) % 7
	start := first.AddDate(0, 0, -lead)
	total := lead + last.Day() + trail

	today := p.now().In(loc)
	weeks := make([]Week, 0, total/7)
	var week Week
	for i := 0; i < total; i++ {
		date := start.AddDate(0, 0, i)
		week[i%7] = Day{
			Date:           date,
			DayOfMonth:     date.Day(),
			IsCurrentMonth: date.Month() == first.Month() && date.Year() == first.Year(),
			IsToday:        SameDay(date, today),
		}
		if i%7 == 6 {
			weeks = append(weeks, week)
		}
	}
	return weeks
}

// AnnotatedMonthGrid is MonthGrid with per-day task counts.
func (p *Projector) AnnotatedMonthGrid(ref time.Time, tasks []domain.Task) []AnnotatedWeek {
	return Annotate(p.MonthGrid(ref), tasks)
}

// Label formats the month and year of ref.
func (p *Projector) Label(ref time.Time) string {
	layout := p.LabelLayout
	if layout == "" {
		layout = DefaultLabelLayout
	}
	return ref.Format(layout)
}

// IsToday reports whether date falls on the current day.
func (p *Projector) IsToday(date time.Time) bool {
	return SameDay(date, p.now())
}

// IsPastDate reports whether date falls on a day before today. Time of day
// is ignored.
func (p *Projector) IsPastDate(date time.Time) bool {
	now := p.now()
	return StartOfDay(date.In(now.Location())).Before(StartOfDay(now))
}

// Annotate attaches task counts to every day of grid.
func Annotate(grid []Week, tasks []domain.Task) []AnnotatedWeek {
	out := make([]AnnotatedWeek, len(grid))
	for w, week := range grid {
		for d, day := range week {
			due := TasksForDate(tasks, day.Date)
			out[w][d] = AnnotatedDay{
				Day:           day,
				TaskCount:     len(due),
				HasIncomplete: hasIncomplete(due),
			}
		}
	}
	return out
}

// TasksForDate returns the tasks due on the calendar day of date, in input
// order. The day is judged in date's location.
func TasksForDate(tasks []domain.Task, date time.Time) []domain.Task {
	result := make([]domain.Task, 0)
	for _, task := range tasks {
		if task.DueDate != nil && SameDay(date, *task.DueDate) {
			result = append(result, task)
		}
	}
	return result
}

// HasIncompleteTasksOnDate reports whether any task due on date is not
// completed.
func HasIncompleteTasksOnDate(tasks []domain.Task, date time.Time) bool {
	return hasIncomplete(TasksForDate(tasks, date))
}

func hasIncomplete(tasks []domain.Task) bool {
	for _, task := range tasks {
		if !task.IsCompleted() {
			return true
		}
	}
	return false
}

// SameDay reports whether b falls on the calendar day of a, judged in a's
// location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
