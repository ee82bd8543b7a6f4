package services

import (
	"context"
	"slices"

	"task-manager/internal/domain"
	"task-manager/internal/logging"
)

// listServiceImpl implements the ListService interface
type listServiceImpl struct {
	store Store[domain.UserList]
	opts  options
}

// NewListService creates a new ListService instance
func NewListService(store Store[domain.UserList], opts ...Option) ListService {
	return &listServiceImpl{store: store, opts: buildOptions(opts)}
}

func (s *listServiceImpl) GetAll(ctx context.Context) []domain.UserList {
	return s.store.Load(ctx)
}

func (s *listServiceImpl) Get(ctx context.Context, id string) (domain.UserList, bool) {
	for _, list := range s.store.Load(ctx) {
		if list.ID == id {
			return list, true
		}
	}
	return domain.UserList{}, false
}

func (s *listServiceImpl) Add(ctx context.Context, draft domain.ListDraft) (domain.UserList, error) {
	lists := s.store.Load(ctx)

	id, err := freshID(s.opts.newID, func(candidate string) bool {
		return slices.ContainsFunc(lists, func(l domain.UserList) bool { return l.ID == candidate })
	})
	if err != nil {
		return domain.UserList{}, err
	}

	now := s.opts.clock()
	list := domain.UserList{
		ID:          id,
		Name:        draft.Name,
		Description: draft.Description,
		Color:       draft.Color,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.Save(ctx, append(lists, list)); err != nil {
		return domain.UserList{}, err
	}

	logging.Debugf("added list %s\n", list.ID)
	return list, nil
}

func (s *listServiceImpl) Update(ctx context.Context, id string, patch domain.ListPatch) (Outcome, error) {
	lists := s.store.Load(ctx)

	idx := slices.IndexFunc(lists, func(l domain.UserList) bool { return l.ID == id })
	if idx < 0 {
		return OutcomeNotFound, nil
	}

	prev := lists[idx]
	updated := patch.Apply(prev)
	updated.UpdatedAt = nextUpdate(s.opts.clock(), prev.UpdatedAt)
	lists[idx] = updated

	if err := s.store.Save(ctx, lists); err != nil {
		return OutcomeNotFound, err
	}
	return OutcomeUpdated, nil
}

func (s *listServiceImpl) Delete(ctx context.Context, id string) (Outcome, error) {
	lists := s.store.Load(ctx)

	remaining := slices.DeleteFunc(slices.Clone(lists), func(l domain.UserList) bool { return l.ID == id })
	if len(remaining) == len(lists) {
		return OutcomeNotFound, nil
	}

	if err := s.store.Save(ctx, remaining); err != nil {
		return OutcomeNotFound, err
	}
	return OutcomeDeleted, nil
}
