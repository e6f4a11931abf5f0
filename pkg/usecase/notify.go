package usecase

import (
	"context"
	"fmt"

	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// notifyOutcome sends exactly one outbound message matching the resolved
// outcome. Cause-specific copy from the resolver (nonce errors, classifier
// degradation, convert buttons) takes precedence over the defaults.
func (uc *ReplyUseCase) notifyOutcome(ctx context.Context, action *model.Action, resolved *resolvedIntent, outcome types.ReplyOutcome) {
	if resolved.UserCopy != "" {
		uc.send(ctx, action.UserID, resolved.UserCopy)
		return
	}

	switch outcome {
	case types.OutcomeApproved:
		uc.send(ctx, action.UserID, fmt.Sprintf("✅ Approved! Processing your %s: %s", action.Type, action.Title))
	case types.OutcomeRejected:
		uc.send(ctx, action.UserID, fmt.Sprintf("Got it, I won't do that. Cancelled: %s", action.Title))
	default:
		uc.send(ctx, action.UserID, "Sorry, I didn't catch that. Should I go ahead? Please reply yes or no.")
	}
}

// send delivers one outbound message, logging and swallowing any failure
func (uc *ReplyUseCase) send(ctx context.Context, userID, text string) {
	if err := uc.notifier.Send(ctx, userID, text); err != nil {
		logging.From(ctx).Error("failed to send notification",
			"user_id", userID, "error", err.Error())
	}
}
