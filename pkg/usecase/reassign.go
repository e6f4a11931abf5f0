package usecase

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// ReassignInput requests changing the type of an action that is still
// awaiting approval.
type ReassignInput struct {
	ActionID model.ActionID
	UserID   string
	ToType   types.ActionType
	Reason   string
}

// ReassignActionType changes an action's type before approval and records an
// audit trail entry. Only the owner can reassign, and only while the action
// still awaits a reply.
func (uc *ReplyUseCase) ReassignActionType(ctx context.Context, in ReassignInput) (*model.Action, error) {
	action, err := uc.repo.Action().Get(ctx, in.ActionID)
	if err != nil {
		return nil, goerr.Wrap(ErrActionNotFound, "no action to reassign",
			goerr.V(ActionIDKey, in.ActionID))
	}

	if action.UserID != in.UserID {
		return nil, goerr.Wrap(ErrUserMismatch, "reassign requested by a different user",
			goerr.V(ActionIDKey, action.ID), goerr.V(UserIDKey, in.UserID))
	}

	if !action.Status.IsAwaitingApproval() {
		return nil, goerr.Wrap(ErrNotAwaitingApproval, "only unresolved actions can change type",
			goerr.V(ActionIDKey, action.ID), goerr.V("status", action.Status))
	}

	fromType := action.Type
	updated := action.Clone()
	updated.Type = in.ToType
	updated.UpdatedAt = uc.now()

	saved, err := uc.repo.Action().Update(ctx, updated)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update action type",
			goerr.V(ActionIDKey, action.ID))
	}

	if _, err := uc.repo.Transition().Create(ctx, &model.ActionTransition{
		ActionID: action.ID,
		UserID:   in.UserID,
		FromType: fromType,
		ToType:   in.ToType,
		Reason:   in.Reason,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to record type transition",
			goerr.V(ActionIDKey, action.ID))
	}

	uc.send(ctx, action.UserID, fmt.Sprintf("Changed that to a %s: %s", in.ToType, action.Title))

	return saved, nil
}
