package usecase

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// dispatchApproved hands an approved action to its dedicated executor, or to
// the generic event stream when no executor is wired for the type. The branch
// is on configuration alone so a type can never receive both. The action is
// already pending by the time this runs, so every failure here is logged and
// swallowed.
func (uc *ReplyUseCase) dispatchApproved(ctx context.Context, action *model.Action) {
	logger := logging.From(ctx)

	if exec := uc.executors.ForType(action.Type); exec != nil {
		result, err := exec(ctx, action.ID)
		if err != nil {
			logger.Error("executor failed",
				"action_id", action.ID, "type", action.Type, "error", err.Error())
			return
		}

		if result.Status == interfaces.ExecutionFailed {
			logger.Error("executor reported failure",
				"action_id", action.ID, "type", action.Type, "message", result.Message)
		} else {
			logger.Info("executor completed",
				"action_id", action.ID, "type", action.Type, "message", result.Message)
		}
		return
	}

	if uc.events == nil {
		logger.Warn("no executor and no event publisher, approved action left for polling",
			"action_id", action.ID, "type", action.Type)
		return
	}

	event := &model.ActionCreatedEvent{
		ActionID:   action.ID,
		UserID:     action.UserID,
		ActionType: action.Type,
		Title:      action.Title,
		Payload:    action.Payload,
		ApprovedAt: uc.now(),
	}
	if err := uc.events.PublishActionCreated(ctx, event); err != nil {
		logger.Error("failed to publish action created event",
			"action_id", action.ID, "type", action.Type, "error", err.Error())
	}
}
