// Package state holds the published task and list collections and routes
// every mutation through the entity repositories.
package state

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"task-manager/internal/calendar"
	"task-manager/internal/domain"
	"task-manager/internal/logging"
	"task-manager/internal/query"
	"task-manager/internal/services"
)

// Snapshot is the published state at one instant. Its slices are copies and
// may be kept by the receiver. Version grows with every state change.
type Snapshot struct {
	Tasks   []domain.Task
	Lists   []domain.UserList
	Filter  domain.TaskFilter
	Version uint64
}

// Listener receives every newly published snapshot. It may call back into
// the coordinator, including mutations.
type Listener func(Snapshot)

type subscriber struct {
	id     int
	notify Listener
	seen   atomic.Uint64
}

// claim records v as delivered, reporting false when a version at least as
// new already reached the subscriber.
func (s *subscriber) claim(v uint64) bool {
	for {
		seen := s.seen.Load()
		if seen >= v {
			return false
		}
		if s.seen.CompareAndSwap(seen, v) {
			return true
		}
	}
}

// Dashboard is the summary shown on the overview screen.
type Dashboard struct {
	Metrics      domain.TaskMetrics
	HighPriority []domain.Task
	Overdue      []domain.Task
}

// Coordinator is the single read/mutate surface over tasks and lists. After
// each successful mutation it re-reads the affected collection and notifies
// subscribers; a failed mutation publishes nothing.
type Coordinator struct {
	tasks     services.TaskService
	lists     services.ListService
	projector *calendar.Projector
	now       func() time.Time
	limit     int

	// writeMu serializes mutate and re-read. Listeners run after it is
	// released.
	writeMu sync.Mutex

	mu          sync.RWMutex
	taskState   []domain.Task
	listState   []domain.UserList
	filter      domain.TaskFilter
	version     uint64
	subscribers []*subscriber
	nextID      int
}

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithProjector sets the calendar projector.
func WithProjector(p *calendar.Projector) Option {
	return func(c *Coordinator) { c.projector = p }
}

// WithClock sets the clock used for overdue checks.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) { c.now = now }
}

// WithDashboardLimit caps the dashboard lists.
func WithDashboardLimit(limit int) Option {
	return func(c *Coordinator) { c.limit = limit }
}

// New creates an empty coordinator. Call Load to populate it.
func New(tasks services.TaskService, lists services.ListService, opts ...Option) *Coordinator {
	c := &Coordinator{
		tasks:     tasks,
		lists:     lists,
		projector: calendar.NewProjector(time.Sunday),
		now:       time.Now,
		limit:     query.DefaultDashboardLimit,
		taskState: []domain.Task{},
		listState: []domain.UserList{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load reads both collections and publishes them.
func (c *Coordinator) Load(ctx context.Context) {
	c.writeMu.Lock()
	tasks := c.tasks.GetAll(ctx)
	lists := c.lists.GetAll(ctx)

	c.mu.Lock()
	c.taskState = tasks
	c.listState = lists
	c.version++
	c.mu.Unlock()
	c.writeMu.Unlock()

	logging.Debugf("loaded %d tasks and %d lists\n", len(tasks), len(lists))
	c.publish()
}

// Subscribe registers l and returns a function that removes it. Listeners
// are notified in registration order.
func (c *Coordinator) Subscribe(l Listener) func() {
	c.mu.Lock()
	sub := &subscriber{id: c.nextID, notify: l}
	sub.seen.Store(c.version)
	c.nextID++
	c.subscribers = append(c.subscribers, sub)
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		c.subscribers = slices.DeleteFunc(c.subscribers, func(s *subscriber) bool {
			return s.id == sub.id
		})
		c.mu.Unlock()
	}
}

// Snapshot returns the current published state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshotLocked()
}

func (c *Coordinator) snapshotLocked() Snapshot {
	return Snapshot{
		Tasks:   slices.Clone(c.taskState),
		Lists:   slices.Clone(c.listState),
		Filter:  c.filter.Clone(),
		Version: c.version,
	}
}

// publish hands the current snapshot to every subscriber. It must be called
// without holding writeMu or mu. A subscriber that already received a newer
// snapshot, for example from a mutation made inside a listener, is skipped.
func (c *Coordinator) publish() {
	c.mu.RLock()
	snap := c.snapshotLocked()
	subs := slices.Clone(c.subscribers)
	c.mu.RUnlock()

	for _, sub := range subs {
		if sub.claim(snap.Version) {
			sub.notify(snap)
		}
	}
}

// Tasks returns the published task collection.
func (c *Coordinator) Tasks() []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.taskState)
}

// Lists returns the published list collection.
func (c *Coordinator) Lists() []domain.UserList {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.listState)
}

// Filter returns the current filter.
func (c *Coordinator) Filter() domain.TaskFilter {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter.Clone()
}

// SetFilter replaces the filter and publishes.
func (c *Coordinator) SetFilter(f domain.TaskFilter) {
	c.mu.Lock()
	c.filter = f.Clone()
	c.version++
	c.mu.Unlock()
	c.publish()
}

// ToggleSort selects key, flipping the direction if it is already selected.
func (c *Coordinator) ToggleSort(key domain.SortKey) {
	c.mu.Lock()
	c.filter.ToggleSort(key)
	c.version++
	c.mu.Unlock()
	c.publish()
}

// FilteredTasks applies the current filter to the published tasks.
func (c *Coordinator) FilteredTasks() []domain.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.FilterAndSort(c.taskState, c.filter)
}

// Metrics aggregates tasks, or every published task when tasks is nil.
func (c *Coordinator) Metrics(tasks []domain.Task) domain.TaskMetrics {
	if tasks == nil {
		tasks = c.Tasks()
	}
	return query.ComputeMetrics(tasks)
}

// Dashboard summarizes the published tasks.
func (c *Coordinator) Dashboard() Dashboard {
	tasks := c.Tasks()
	return Dashboard{
		Metrics:      query.ComputeMetrics(tasks),
		HighPriority: query.HighPriorityTasks(tasks, c.limit),
		Overdue:      query.OverdueTasks(tasks, c.now(), c.limit),
	}
}

// ResolveList looks up the list a task points at, tolerating dangling ids.
func (c *Coordinator) ResolveList(listID string) (domain.UserList, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return query.ResolveList(c.listState, listID)
}

// MonthGrid returns the annotated grid for the month of ref.
func (c *Coordinator) MonthGrid(ref time.Time) []calendar.AnnotatedWeek {
	return c.projector.AnnotatedMonthGrid(ref, c.Tasks())
}

// TasksForDate returns the published tasks due on date.
func (c *Coordinator) TasksForDate(date time.Time) []domain.Task {
	return calendar.TasksForDate(c.Tasks(), date)
}

// MonthLabel formats the month of ref.
func (c *Coordinator) MonthLabel(ref time.Time) string {
	return c.projector.Label(ref)
}

// NextMonth advances ref by one month.
func (c *Coordinator) NextMonth(ref time.Time) time.Time {
	return calendar.NextMonth(ref)
}

// PrevMonth moves ref back one month.
func (c *Coordinator) PrevMonth(ref time.Time) time.Time {
	return calendar.PrevMonth(ref)
}
