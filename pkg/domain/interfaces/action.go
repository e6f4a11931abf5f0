package interfaces

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// ActionRepository defines the interface for Action data access
type ActionRepository interface {
	// Create stores a new action (used by the upstream classification flow
	// and by tests)
	Create(ctx context.Context, action *model.Action) (*model.Action, error)

	// Get retrieves an action by ID
	Get(ctx context.Context, id model.ActionID) (*model.Action, error)

	// Update overwrites mutable fields of an existing action
	Update(ctx context.Context, action *model.Action) (*model.Action, error)

	// UpdateStatusIf atomically flips the status from expected to next. It is
	// a single conditional write, never a read-then-write pair: when two
	// deliveries of the same reply race, exactly one observes applied and the
	// other observes status_mismatch with the winning status.
	UpdateStatusIf(ctx context.Context, id model.ActionID, expected, next types.ActionStatus) (types.UpdateStatusResult, error)
}
