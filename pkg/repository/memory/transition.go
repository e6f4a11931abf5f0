package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/intexura/approvalhub/pkg/domain/model"
)

type transitionRepository struct {
	mu          sync.RWMutex
	transitions map[model.TransitionID]*model.ActionTransition
}

func newTransitionRepository() *transitionRepository {
	return &transitionRepository{
		transitions: make(map[model.TransitionID]*model.ActionTransition),
	}
}

func (r *transitionRepository) Create(ctx context.Context, transition *model.ActionTransition) (*model.ActionTransition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *transition
	created := &copied
	if created.ID == "" {
		created.ID = model.NewTransitionID()
	}
	created.CreatedAt = time.Now().UTC()

	r.transitions[created.ID] = created

	result := *created
	return &result, nil
}

func (r *transitionRepository) ListByAction(ctx context.Context, actionID model.ActionID) ([]*model.ActionTransition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*model.ActionTransition, 0)
	for _, tr := range r.transitions {
		if tr.ActionID == actionID {
			copied := *tr
			result = append(result, &copied)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})

	return result, nil
}
