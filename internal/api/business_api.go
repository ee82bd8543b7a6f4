package api

import (
	"context"
	"time"

	"task-manager/internal/calendar"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/query"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/state"
)

// TaskView pairs a task with the list it points at, if that list still exists.
type TaskView struct {
	Task    domain.Task
	List    *domain.UserList
	Overdue bool
}

// ListSummary is a list with the number of tasks assigned to it.
type ListSummary struct {
	List      domain.UserList
	TaskCount int
}

// DashboardData holds everything the overview screen shows.
type DashboardData struct {
	Metrics      domain.TaskMetrics
	HighPriority []TaskView
	Overdue      []TaskView
	Lists        []ListSummary
	Unassigned   int
}

// CalendarMonth is the grid for one month.
type CalendarMonth struct {
	Label     string
	Reference time.Time
	Weekdays  []time.Weekday
	Weeks     []calendar.AnnotatedWeek
}

// StorageUsage reports what the backing store holds.
type StorageUsage struct {
	Entries []*sqlite.Entry
	Used    int64
	Quota   int64
}

// BusinessAPI adds the read models and preferences the presentation layer
// needs on top of the entity operations.
type BusinessAPI interface {
	API

	// ========== Query Operations ==========

	// SearchTasks applies filter to every task.
	SearchTasks(ctx context.Context, filter domain.TaskFilter) []TaskView
	// GetListTasks returns the tasks of one list in manual order.
	GetListTasks(ctx context.Context, listRef string) (domain.UserList, []TaskView, error)
	GetListSummaries(ctx context.Context) []ListSummary
	AvailableTags(ctx context.Context) []string

	// ========== Dashboard and Calendar ==========

	GetDashboardData(ctx context.Context) DashboardData
	GetCalendarMonth(ctx context.Context, ref time.Time) CalendarMonth
	GetTasksForDate(ctx context.Context, date time.Time) []TaskView

	// ========== Preferences and Storage ==========

	GetTheme(ctx context.Context) domain.Theme
	SetTheme(ctx context.Context, theme domain.Theme) error
	ToggleTheme(ctx context.Context) (domain.Theme, error)
	GetStorageUsage(ctx context.Context) (StorageUsage, error)

	// Subscribe registers l for every state change. The returned function
	// removes it.
	Subscribe(l state.Listener) func()
}

// NewBusinessAPI creates a new BusinessAPI instance
func NewBusinessAPI(ctx context.Context, repo sqlite.Repository, cfg *config.Config, opts ...Option) (BusinessAPI, error) {
	return newAPI(ctx, repo, cfg, opts...)
}

// ========== Query Operations ==========

func (a *apiImpl) SearchTasks(ctx context.Context, filter domain.TaskFilter) []TaskView {
	return a.views(query.FilterAndSort(a.coordinator.Tasks(), filter))
}

func (a *apiImpl) GetListTasks(ctx context.Context, listRef string) (domain.UserList, []TaskView, error) {
	list, err := a.resolveList(listRef)
	if err != nil {
		return domain.UserList{}, nil, err
	}
	return list, a.views(query.TasksInList(a.coordinator.Tasks(), list.ID)), nil
}

func (a *apiImpl) GetListSummaries(ctx context.Context) []ListSummary {
	lists := a.coordinator.Lists()
	return summarize(lists, query.CountByList(a.coordinator.Tasks(), lists))
}

func summarize(lists []domain.UserList, counts map[string]int) []ListSummary {
	summaries := make([]ListSummary, 0, len(lists))
	for _, list := range lists {
		summaries = append(summaries, ListSummary{List: list, TaskCount: counts[list.ID]})
	}
	return summaries
}

func (a *apiImpl) AvailableTags(ctx context.Context) []string {
	return query.AvailableTags(a.coordinator.Tasks())
}

// ========== Dashboard and Calendar ==========

func (a *apiImpl) GetDashboardData(ctx context.Context) DashboardData {
	dashboard := a.coordinator.Dashboard()
	lists := a.coordinator.Lists()
	counts := query.CountByList(a.coordinator.Tasks(), lists)

	return DashboardData{
		Metrics:      dashboard.Metrics,
		HighPriority: a.views(dashboard.HighPriority),
		Overdue:      a.views(dashboard.Overdue),
		Lists:        summarize(lists, counts),
		Unassigned:   counts[""],
	}
}

func (a *apiImpl) GetCalendarMonth(ctx context.Context, ref time.Time) CalendarMonth {
	weeks := a.coordinator.MonthGrid(ref)

	weekdays := make([]time.Weekday, 0, 7)
	if len(weeks) > 0 {
		for _, day := range weeks[0] {
			weekdays = append(weekdays, day.Date.Weekday())
		}
	}

	return CalendarMonth{
		Label:     a.coordinator.MonthLabel(ref),
		Reference: ref,
		Weekdays:  weekdays,
		Weeks:     weeks,
	}
}

func (a *apiImpl) GetTasksForDate(ctx context.Context, date time.Time) []TaskView {
	return a.views(a.coordinator.TasksForDate(date))
}

// ========== Preferences and Storage ==========

func (a *apiImpl) GetTheme(ctx context.Context) domain.Theme {
	theme := domain.Theme(a.themes.Get(ctx))
	if !theme.IsValid() {
		logging.Warnf("ignoring unknown theme %q\n", theme)
		return domain.DefaultTheme
	}
	return theme
}

func (a *apiImpl) SetTheme(ctx context.Context, theme domain.Theme) error {
	if !theme.IsValid() {
		return errors.NewInvalidInputError("theme", string(theme), "must be light or dark")
	}
	return a.themes.Set(ctx, string(theme))
}

func (a *apiImpl) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	next := a.GetTheme(ctx).Toggle()
	if err := a.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return next, nil
}

func (a *apiImpl) GetStorageUsage(ctx context.Context) (StorageUsage, error) {
	entries, err := a.repo.Entries(ctx)
	if err != nil {
		return StorageUsage{}, err
	}
	used, err := a.repo.Usage(ctx)
	if err != nil {
		return StorageUsage{}, err
	}
	return StorageUsage{Entries: entries, Used: used, Quota: a.repo.Quota()}, nil
}

func (a *apiImpl) Subscribe(l state.Listener) func() {
	return a.coordinator.Subscribe(l)
}

// views resolves the list of each task and flags those due before now.
func (a *apiImpl) views(tasks []domain.Task) []TaskView {
	lists := a.coordinator.Lists()
	now := a.clock()

	out := make([]TaskView, 0, len(tasks))
	for _, task := range tasks {
		view := TaskView{Task: task}
		if list, ok := query.ResolveList(lists, task.ListID); ok {
			view.List = &list
		}
		view.Overdue = task.DueDate != nil && task.DueDate.Before(now) && !task.IsCompleted()
		out = append(out, view)
	}
	return out
}
