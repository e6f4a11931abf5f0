package interfaces

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/model"
)

// TransitionRepository defines the interface for action transition audit
// records
type TransitionRepository interface {
	// Create stores a new transition record
	Create(ctx context.Context, transition *model.ActionTransition) (*model.ActionTransition, error)

	// ListByAction retrieves transitions for an action, newest first
	ListByAction(ctx context.Context, actionID model.ActionID) ([]*model.ActionTransition, error)
}
