package services

import (
	"context"
	"time"

	"task-manager/internal/domain"
	"task-manager/internal/repository/sqlite"

	"github.com/google/uuid"
)

// Store is the persistence contract the services write through. Load never
// fails; Save replaces the whole collection.
type Store[T any] interface {
	Load(ctx context.Context) []T
	Save(ctx context.Context, items []T) error
}

// NewTaskStore binds the task collection of repo.
func NewTaskStore(repo sqlite.Repository) Store[domain.Task] {
	return sqlite.NewCollection(repo, sqlite.TasksKey, domain.NewTaskMapper().Codec())
}

// NewListStore binds the list collection of repo.
func NewListStore(repo sqlite.Repository) Store[domain.UserList] {
	return sqlite.NewCollection(repo, sqlite.ListsKey, domain.NewListMapper().Codec())
}

// Outcome reports what an update or delete did. An unknown id is not an
// error; callers decide whether NotFound matters to them.
type Outcome int

const (
	OutcomeNotFound Outcome = iota
	OutcomeUpdated
	OutcomeDeleted
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeDeleted:
		return "deleted"
	default:
		return "not found"
	}
}

// Found reports whether the target entity existed.
func (o Outcome) Found() bool {
	return o != OutcomeNotFound
}

// Clock returns the current instant.
type Clock func() time.Time

// IDGenerator returns a new opaque identifier.
type IDGenerator func() string

// NewUUID generates random identifiers.
func NewUUID() string {
	return uuid.NewString()
}

// Option configures a service.
type Option func(*options)

type options struct {
	clock Clock
	newID IDGenerator
}

// WithClock replaces the wall clock.
func WithClock(clock Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithIDGenerator replaces the identifier source.
func WithIDGenerator(gen IDGenerator) Option {
	return func(o *options) { o.newID = gen }
}

func buildOptions(opts []Option) options {
	o := options{clock: time.Now, newID: NewUUID}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// TaskService is the entity repository for tasks
type TaskService interface {
	// GetAll reads the current collection through the store.
	GetAll(ctx context.Context) []domain.Task
	Get(ctx context.Context, id string) (domain.Task, bool)
	// Add assigns identity, timestamps and a position at the end of the
	// task's list, then persists the collection.
	Add(ctx context.Context, draft domain.TaskDraft) (domain.Task, error)
	Update(ctx context.Context, id string, patch domain.TaskPatch) (Outcome, error)
	Delete(ctx context.Context, id string) (Outcome, error)
	// DeleteCompleted removes every completed task and returns how many went.
	DeleteCompleted(ctx context.Context) (int, error)
	// Reorder sets the manual order of the tasks in listID. Ids outside the
	// list are ignored; tasks not named keep their relative order after the
	// named ones.
	Reorder(ctx context.Context, listID string, ids []string) error
}

// ListService is the entity repository for user lists. Deleting a list never
// touches the tasks that reference it.
type ListService interface {
	GetAll(ctx context.Context) []domain.UserList
	Get(ctx context.Context, id string) (domain.UserList, bool)
	Add(ctx context.Context, draft domain.ListDraft) (domain.UserList, error)
	Update(ctx context.Context, id string, patch domain.ListPatch) (Outcome, error)
	Delete(ctx context.Context, id string) (Outcome, error)
}

// ServiceContainer manages all services and their dependencies
type ServiceContainer struct {
	TaskService TaskService
	ListService ListService
}

// NewServiceContainer wires both entity repositories to repo.
func NewServiceContainer(repo sqlite.Repository, opts ...Option) *ServiceContainer {
	return &ServiceContainer{
		TaskService: NewTaskService(NewTaskStore(repo), opts...),
		ListService: NewListService(NewListStore(repo), opts...),
	}
}
