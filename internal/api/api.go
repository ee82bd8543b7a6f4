package api

import (
	"context"
	"strings"
	"time"

	"task-manager/internal/calendar"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/repository/sqlite"
	"task-manager/internal/services"
	"task-manager/internal/state"
	"task-manager/internal/validation"
)

// API defines the entity operations on tasks and lists. Tasks and lists are
// addressed by reference: a full id or an unambiguous id prefix, and for
// lists also a case-insensitive name.
type API interface {
	// Task operations
	ListTasks(ctx context.Context) []domain.Task
	GetTask(ctx context.Context, ref string) (domain.Task, error)
	CreateTask(ctx context.Context, input validation.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, ref string, changes validation.TaskChanges) (domain.Task, error)
	SetTaskStatus(ctx context.Context, ref string, status string) (domain.Task, error)
	DeleteTask(ctx context.Context, ref string) (domain.Task, error)
	DeleteCompletedTasks(ctx context.Context) (int, error)
	ReorderTasks(ctx context.Context, listRef string, taskRefs []string) error

	// List operations
	ListLists(ctx context.Context) []domain.UserList
	GetList(ctx context.Context, ref string) (domain.UserList, error)
	CreateList(ctx context.Context, input validation.ListInput) (domain.UserList, error)
	UpdateList(ctx context.Context, ref string, changes validation.ListChanges) (domain.UserList, error)
	DeleteList(ctx context.Context, ref string) (domain.UserList, error)
}

// Option configures the API.
type Option func(*settings)

type settings struct {
	clock    func() time.Time
	ids      services.IDGenerator
	location *time.Location
}

// WithClock sets the clock for timestamps, overdue checks and the calendar.
func WithClock(clock func() time.Time) Option {
	return func(s *settings) { s.clock = clock }
}

// WithIDGenerator sets the generator for new task and list ids.
func WithIDGenerator(gen services.IDGenerator) Option {
	return func(s *settings) { s.ids = gen }
}

// WithLocation sets the location due dates are read in.
func WithLocation(loc *time.Location) Option {
	return func(s *settings) { s.location = loc }
}

type apiImpl struct {
	repo          sqlite.Repository
	coordinator   *state.Coordinator
	themes        *sqlite.ThemeStore
	taskValidator *validation.TaskValidator
	listValidator *validation.ListValidator
	clock         func() time.Time
}

func newAPI(ctx context.Context, repo sqlite.Repository, cfg *config.Config, opts ...Option) (*apiImpl, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	s := settings{clock: time.Now, ids: services.NewUUID, location: time.Local}
	for _, opt := range opts {
		opt(&s)
	}

	weekStart, err := cfg.WeekStartDay()
	if err != nil {
		return nil, errors.NewInvalidInputError("calendar.week_start", cfg.Calendar.WeekStart, err.Error())
	}
	projector := &calendar.Projector{
		WeekStart:   weekStart,
		LabelLayout: cfg.Calendar.LabelLayout,
		Now:         s.clock,
	}

	container := services.NewServiceContainer(repo,
		services.WithClock(s.clock),
		services.WithIDGenerator(s.ids),
	)
	coordinator := state.New(container.TaskService, container.ListService,
		state.WithProjector(projector),
		state.WithClock(s.clock),
		state.WithDashboardLimit(cfg.Display.DashboardLimit),
	)
	coordinator.Load(ctx)

	taskValidator := validation.NewTaskValidatorWithConfig(cfg)
	taskValidator.Location = s.location

	return &apiImpl{
		repo:          repo,
		coordinator:   coordinator,
		themes:        sqlite.NewThemeStore(repo),
		taskValidator: taskValidator,
		listValidator: validation.NewListValidatorWithConfig(cfg),
		clock:         s.clock,
	}, nil
}

// New creates a new API instance over repo and loads the stored collections.
func New(ctx context.Context, repo sqlite.Repository, cfg *config.Config, opts ...Option) (API, error) {
	return newAPI(ctx, repo, cfg, opts...)
}

// Task operations

func (a *apiImpl) ListTasks(ctx context.Context) []domain.Task {
	return a.coordinator.Tasks()
}

func (a *apiImpl) GetTask(ctx context.Context, ref string) (domain.Task, error) {
	return a.resolveTask(ref)
}

func (a *apiImpl) CreateTask(ctx context.Context, input validation.TaskInput) (domain.Task, error) {
	draft, err := a.taskValidator.ValidateForCreation(input)
	if err != nil {
		return domain.Task{}, toAppError(err)
	}
	if draft.ListID != "" {
		list, err := a.resolveList(draft.ListID)
		if err != nil {
			return domain.Task{}, err
		}
		draft.ListID = list.ID
	}
	return a.coordinator.AddTask(ctx, draft)
}

func (a *apiImpl) UpdateTask(ctx context.Context, ref string, changes validation.TaskChanges) (domain.Task, error) {
	task, err := a.resolveTask(ref)
	if err != nil {
		return domain.Task{}, err
	}
	patch, err := a.taskValidator.ValidateForUpdate(changes)
	if err != nil {
		return domain.Task{}, toAppError(err)
	}
	if patch.IsEmpty() {
		return domain.Task{}, errors.NewValidationError("nothing to update", nil)
	}
	if patch.ListID != nil && *patch.ListID != "" {
		list, err := a.resolveList(*patch.ListID)
		if err != nil {
			return domain.Task{}, err
		}
		patch.ListID = &list.ID
	}

	outcome, err := a.coordinator.UpdateTask(ctx, task.ID, patch)
	if err != nil {
		return domain.Task{}, err
	}
	if !outcome.Found() {
		return domain.Task{}, errors.NewNotFoundError("task", task.ID)
	}
	return a.resolveTask(task.ID)
}

func (a *apiImpl) SetTaskStatus(ctx context.Context, ref string, status string) (domain.Task, error) {
	return a.UpdateTask(ctx, ref, validation.TaskChanges{Status: &status})
}

func (a *apiImpl) DeleteTask(ctx context.Context, ref string) (domain.Task, error) {
	task, err := a.resolveTask(ref)
	if err != nil {
		return domain.Task{}, err
	}
	outcome, err := a.coordinator.DeleteTask(ctx, task.ID)
	if err != nil {
		return domain.Task{}, err
	}
	if !outcome.Found() {
		return domain.Task{}, errors.NewNotFoundError("task", task.ID)
	}
	return task, nil
}

func (a *apiImpl) DeleteCompletedTasks(ctx context.Context) (int, error) {
	return a.coordinator.DeleteCompletedTasks(ctx)
}

func (a *apiImpl) ReorderTasks(ctx context.Context, listRef string, taskRefs []string) error {
	listID := ""
	if strings.TrimSpace(listRef) != "" {
		list, err := a.resolveList(listRef)
		if err != nil {
			return err
		}
		listID = list.ID
	}

	ids := make([]string, 0, len(taskRefs))
	for _, ref := range taskRefs {
		task, err := a.resolveTask(ref)
		if err != nil {
			return err
		}
		if task.ListID != listID {
			return errors.NewInvalidInputError("task", ref, "task belongs to a different list")
		}
		ids = append(ids, task.ID)
	}
	return a.coordinator.ReorderTasks(ctx, listID, ids)
}

// List operations

func (a *apiImpl) ListLists(ctx context.Context) []domain.UserList {
	return a.coordinator.Lists()
}

func (a *apiImpl) GetList(ctx context.Context, ref string) (domain.UserList, error) {
	return a.resolveList(ref)
}

func (a *apiImpl) CreateList(ctx context.Context, input validation.ListInput) (domain.UserList, error) {
	draft, err := a.listValidator.ValidateForCreation(input)
	if err != nil {
		return domain.UserList{}, toAppError(err)
	}
	return a.coordinator.AddList(ctx, draft)
}

func (a *apiImpl) UpdateList(ctx context.Context, ref string, changes validation.ListChanges) (domain.UserList, error) {
	list, err := a.resolveList(ref)
	if err != nil {
		return domain.UserList{}, err
	}
	patch, err := a.listValidator.ValidateForUpdate(changes)
	if err != nil {
		return domain.UserList{}, toAppError(err)
	}
	if patch.IsEmpty() {
		return domain.UserList{}, errors.NewValidationError("nothing to update", nil)
	}

	outcome, err := a.coordinator.UpdateList(ctx, list.ID, patch)
	if err != nil {
		return domain.UserList{}, err
	}
	if !outcome.Found() {
		return domain.UserList{}, errors.NewNotFoundError("list", list.ID)
	}
	return a.resolveList(list.ID)
}

func (a *apiImpl) DeleteList(ctx context.Context, ref string) (domain.UserList, error) {
	list, err := a.resolveList(ref)
	if err != nil {
		return domain.UserList{}, err
	}
	outcome, err := a.coordinator.DeleteList(ctx, list.ID)
	if err != nil {
		return domain.UserList{}, err
	}
	if !outcome.Found() {
		return domain.UserList{}, errors.NewNotFoundError("list", list.ID)
	}
	return list, nil
}

// resolveTask finds the task whose id equals ref, or failing that the only
// task whose id starts with ref.
func (a *apiImpl) resolveTask(ref string) (domain.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.Task{}, errors.NewValidationError("task id is required", nil)
	}

	var matches []domain.Task
	for _, task := range a.coordinator.Tasks() {
		if task.ID == ref {
			return task, nil
		}
		if strings.HasPrefix(task.ID, ref) {
			matches = append(matches, task)
		}
	}
	switch len(matches) {
	case 0:
		return domain.Task{}, errors.NewNotFoundError("task", ref)
	case 1:
		return matches[0], nil
	default:
		return domain.Task{}, errors.NewInvalidInputError("task id", ref, "prefix matches more than one task")
	}
}

// resolveList finds a list by id, unambiguous id prefix or name.
func (a *apiImpl) resolveList(ref string) (domain.UserList, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return domain.UserList{}, errors.NewValidationError("list is required", nil)
	}

	lists := a.coordinator.Lists()
	if list, ok := a.coordinator.ResolveList(ref); ok {
		return list, nil
	}

	var byName, byPrefix []domain.UserList
	for _, list := range lists {
		if strings.EqualFold(list.Name, ref) {
			byName = append(byName, list)
		}
		if strings.HasPrefix(list.ID, ref) {
			byPrefix = append(byPrefix, list)
		}
	}
	for _, matches := range [][]domain.UserList{byName, byPrefix} {
		switch len(matches) {
		case 0:
			continue
		case 1:
			return matches[0], nil
		default:
			return domain.UserList{}, errors.NewInvalidInputError("list", ref, "matches more than one list")
		}
	}
	return domain.UserList{}, errors.NewNotFoundError("list", ref)
}

func toAppError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return ve.ToAppError()
	}
	return err
}
