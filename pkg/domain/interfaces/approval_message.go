package interfaces

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/model"
)

// ApprovalMessageRepository defines the interface for ApprovalMessage lookup
// and cleanup. Records are created by the upstream notifier; this engine only
// resolves replies through them and deletes them once stale.
type ApprovalMessageRepository interface {
	// Create stores a new approval message record
	Create(ctx context.Context, msg *model.ApprovalMessage) error

	// FindByWamid resolves an outbound message reference into the approval
	// message that produced it
	FindByWamid(ctx context.Context, wamid string) (*model.ApprovalMessage, error)

	// DeleteByActionID removes all approval messages pointing at an action
	DeleteByActionID(ctx context.Context, actionID model.ActionID) error
}
