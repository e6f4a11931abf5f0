package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

type actionRepository struct {
	mu      sync.RWMutex
	actions map[model.ActionID]*model.Action
}

func newActionRepository() *actionRepository {
	return &actionRepository{
		actions: make(map[model.ActionID]*model.Action),
	}
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := action.Clone()
	if created.ID == "" {
		created.ID = model.NewActionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	r.actions[created.ID] = created
	return created.Clone(), nil
}

func (r *actionRepository) Get(ctx context.Context, id model.ActionID) (*model.Action, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	action, exists := r.actions[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
	}

	return action.Clone(), nil
}

func (r *actionRepository) Update(ctx context.Context, action *model.Action) (*model.Action, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.actions[action.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", action.ID))
	}

	updated := action.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.actions[updated.ID] = updated
	return updated.Clone(), nil
}

// UpdateStatusIf performs the compare-and-set under the same lock that guards
// all writes, so two racing deliveries serialize here.
func (r *actionRepository) UpdateStatusIf(ctx context.Context, id model.ActionID, expected, next types.ActionStatus) (types.UpdateStatusResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.actions[id]
	if !exists {
		return types.UpdateStatusResult{Code: types.UpdateStatusNotFound}, nil
	}

	if existing.Status != expected {
		return types.UpdateStatusResult{
			Code:    types.UpdateStatusMismatch,
			Current: existing.Status,
		}, nil
	}

	existing.Status = next
	existing.UpdatedAt = time.Now().UTC()

	return types.UpdateStatusResult{Code: types.UpdateStatusApplied}, nil
}
