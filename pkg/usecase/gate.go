package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// transition flips the action out of awaiting_approval with a single
// conditional write. A status mismatch means a concurrent delivery already
// resolved the action: not an error, just not applied. Everything after the
// committed write (nonce clear, rejection metadata) is best-effort.
func (uc *ReplyUseCase) transition(ctx context.Context, action *model.Action, next types.ActionStatus, reason string) (bool, error) {
	result, err := uc.repo.Action().UpdateStatusIf(ctx, action.ID, types.ActionStatusAwaitingApproval, next)
	if err != nil {
		return false, goerr.Wrap(ErrUpdateStatusFailed, "conditional status update failed",
			goerr.V(ActionIDKey, action.ID), goerr.V("next", next), goerr.V("cause", err))
	}

	switch result.Code {
	case types.UpdateStatusApplied:
		switch next {
		case types.ActionStatusPending:
			uc.clearNonce(ctx, action)
		case types.ActionStatusRejected:
			uc.attachRejection(ctx, action, reason)
		}
		return true, nil

	case types.UpdateStatusMismatch:
		logging.From(ctx).Info("lost transition race, action already resolved",
			"action_id", action.ID, "current", result.Current)
		return false, nil

	case types.UpdateStatusNotFound:
		return false, goerr.Wrap(ErrActionNotFound, "action disappeared before transition",
			goerr.V(ActionIDKey, action.ID))

	default:
		return false, goerr.Wrap(ErrUpdateStatusFailed, "unexpected update result",
			goerr.V(ActionIDKey, action.ID), goerr.V("code", result.Code))
	}
}

// clearNonce drops the consumed nonce after a committed approval. The status
// change is already durable, so a failure here is logged and swallowed.
func (uc *ReplyUseCase) clearNonce(ctx context.Context, action *model.Action) {
	updated := action.Clone()
	updated.Status = types.ActionStatusPending
	updated.Nonce = ""
	updated.NonceExpiresAt = nil
	updated.UpdatedAt = uc.now()

	if _, err := uc.repo.Action().Update(ctx, updated); err != nil {
		logging.From(ctx).Error("failed to clear nonce after approval",
			"action_id", action.ID, "error", err.Error())
	}
}

// attachRejection records why and when the action was rejected. Best-effort
// for the same reason as clearNonce.
func (uc *ReplyUseCase) attachRejection(ctx context.Context, action *model.Action, reason string) {
	updated := action.Clone()
	updated.Status = types.ActionStatusRejected
	updated.Payload = action.WithRejection(reason, uc.now())
	updated.UpdatedAt = uc.now()

	if _, err := uc.repo.Action().Update(ctx, updated); err != nil {
		logging.From(ctx).Error("failed to attach rejection metadata",
			"action_id", action.ID, "error", err.Error())
	}
}
