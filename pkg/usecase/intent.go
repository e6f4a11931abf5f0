package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/service/classifier"
	"github.com/intexura/approvalhub/pkg/service/codeagent"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// approveTextPattern is the reserved free-text form "approve <code>"
var approveTextPattern = regexp.MustCompile(`(?i)^\s*approve\s+(\S+)\s*$`)

// resolvedIntent is the normalized result of one resolution path. UserCopy,
// when set, overrides the default notification copy for the outcome.
type resolvedIntent struct {
	Intent     types.Intent
	Source     types.IntentSource
	Detail     string
	NonceState types.NonceState
	UserCopy   string
}

// resolveIntent tries the three resolution paths in fixed priority order:
// button, free-text nonce, natural language. The first applicable path wins.
// A non-nil shortCircuit means the reply was fully handled without any intent
// (view and cancel_task buttons).
func (uc *ReplyUseCase) resolveIntent(ctx context.Context, action *model.Action, in ReplyInput) (*resolvedIntent, *model.ReplyResult, error) {
	if in.ButtonID != "" {
		return uc.resolveButton(ctx, action, in)
	}

	if m := approveTextPattern.FindStringSubmatch(in.Text); m != nil {
		if resolved := uc.resolveTextNonce(action, m[1]); resolved != nil {
			return resolved, nil, nil
		}
		// No stored nonce: the reserved pattern is just words, let the
		// classifier decide.
	}

	resolved, err := uc.resolveNLP(ctx, action, in.Text)
	if err != nil {
		return nil, nil, err
	}
	return resolved, nil, nil
}

// resolveButton decodes a structured button identifier. Malformed or
// mismatched identifiers are protocol bugs and surface as hard errors, never
// as an unclear outcome.
func (uc *ReplyUseCase) resolveButton(ctx context.Context, action *model.Action, in ReplyInput) (*resolvedIntent, *model.ReplyResult, error) {
	btn, err := model.ParseButtonID(in.ButtonID)
	if err != nil {
		return nil, nil, err
	}

	switch btn.Kind {
	case types.ButtonKindApprove:
		resolved, err := uc.resolveApproveButton(ctx, action, btn)
		return resolved, nil, err

	case types.ButtonKindCancel:
		if btn.ActionID != action.ID {
			return nil, nil, goerr.Wrap(ErrButtonActionMismatch, "cancel button targets a different action",
				goerr.V(ActionIDKey, action.ID), goerr.V("button_action_id", btn.ActionID))
		}
		return &resolvedIntent{
			Intent: types.IntentReject,
			Source: types.IntentSourceButton,
			Detail: "cancel button",
		}, nil, nil

	case types.ButtonKindConvert:
		if btn.ActionID != action.ID {
			return nil, nil, goerr.Wrap(ErrButtonActionMismatch, "convert button targets a different action",
				goerr.V(ActionIDKey, action.ID), goerr.V("button_action_id", btn.ActionID))
		}
		return &resolvedIntent{
			Intent:   types.IntentReject,
			Source:   types.IntentSourceButton,
			Detail:   "convert button",
			UserCopy: "Okay, I won't run this as-is. Tell me what it should be instead and I'll propose it again.",
		}, nil, nil

	case types.ButtonKindCancelTask:
		result, err := uc.cancelTask(ctx, action, btn)
		return nil, result, err

	case types.ButtonKindView:
		uc.send(ctx, action.UserID, fmt.Sprintf("%s/tasks/%s", uc.baseURL, btn.ActionID))
		return nil, &model.ReplyResult{Matched: true, ActionID: action.ID}, nil

	default:
		return nil, nil, goerr.Wrap(ErrUnknownButtonIntent, "unrecognized button kind",
			goerr.V("kind", btn.Kind))
	}
}

// resolveApproveButton validates the nonce carried by an approve button.
// Mismatch and expiry resolve to reject with cause-specific copy; a button
// without a nonce segment, or an action that was never nonce-protected, are
// hard errors but still tell the user what went wrong.
func (uc *ReplyUseCase) resolveApproveButton(ctx context.Context, action *model.Action, btn *model.ButtonID) (*resolvedIntent, error) {
	if btn.ActionID != action.ID {
		return nil, goerr.Wrap(ErrButtonActionMismatch, "approve button targets a different action",
			goerr.V(ActionIDKey, action.ID), goerr.V("button_action_id", btn.ActionID))
	}

	if !btn.HasNonce {
		uc.send(ctx, action.UserID, "That approve button is missing its approval code, so I can't approve the action. Please reply yes or no instead.")
		return nil, goerr.Wrap(ErrApproveMissingNonce, "approve button without nonce segment",
			goerr.V(ActionIDKey, action.ID))
	}

	switch state := model.CheckNonce(action, btn.Nonce, uc.now()); state {
	case types.NonceStateMatched:
		return &resolvedIntent{
			Intent:     types.IntentApprove,
			Source:     types.IntentSourceButton,
			Detail:     "approve button, nonce matched",
			NonceState: state,
		}, nil

	case types.NonceStateMismatched:
		return &resolvedIntent{
			Intent:     types.IntentReject,
			Source:     types.IntentSourceButton,
			Detail:     "approve button, nonce mismatched",
			NonceState: state,
			UserCopy:   "Invalid approval code. The action was not approved.",
		}, nil

	case types.NonceStateExpired:
		return &resolvedIntent{
			Intent:     types.IntentReject,
			Source:     types.IntentSourceButton,
			Detail:     "approve button, nonce expired",
			NonceState: state,
			UserCopy:   "That approval expired. The action was not approved; ask me again if you still want it.",
		}, nil

	default:
		uc.send(ctx, action.UserID, "This action has no approval code, so the button can't approve it. Please reply yes or no instead.")
		return nil, goerr.Wrap(ErrNoNonceConfigured, "approve button on an action without a nonce",
			goerr.V(ActionIDKey, action.ID))
	}
}

// resolveTextNonce handles the reserved "approve <code>" reply form. Returns
// nil when the action carries no nonce so the router can fall through to the
// classifier.
func (uc *ReplyUseCase) resolveTextNonce(action *model.Action, code string) *resolvedIntent {
	switch state := model.CheckNonce(action, code, uc.now()); state {
	case types.NonceStateMatched:
		return &resolvedIntent{
			Intent:     types.IntentApprove,
			Source:     types.IntentSourceTextNonce,
			Detail:     "text nonce matched",
			NonceState: state,
		}

	case types.NonceStateMismatched:
		return &resolvedIntent{
			Intent:     types.IntentReject,
			Source:     types.IntentSourceTextNonce,
			Detail:     "text nonce mismatched",
			NonceState: state,
			UserCopy:   "That approval code doesn't match. The action was not approved.",
		}

	case types.NonceStateExpired:
		return &resolvedIntent{
			Intent:     types.IntentReject,
			Source:     types.IntentSourceTextNonce,
			Detail:     "text nonce expired",
			NonceState: state,
			UserCopy:   "That approval code has expired. The action was not approved; ask me again if you still want it.",
		}

	default:
		return nil
	}
}

// resolveNLP delegates to the per-user natural-language classifier. Factory
// and classification failures degrade to unclear with explanatory copy so the
// human can retry a plain yes/no reply.
func (uc *ReplyUseCase) resolveNLP(ctx context.Context, action *model.Action, text string) (*resolvedIntent, error) {
	logger := logging.From(ctx)

	cls, err := uc.classifiers.CreateForUser(ctx, action.UserID)
	if err != nil {
		logger.Warn("intent classifier unavailable, degrading to unclear",
			"action_id", action.ID, "error", err.Error())

		copyText := "I couldn't analyze your reply right now. Please answer with a simple yes or no."
		switch {
		case errors.Is(err, classifier.ErrNoAPIKey):
			copyText = "LLM API key is not configured for your account, so I can't interpret free-form replies. Please answer with a simple yes or no."
		case errors.Is(err, classifier.ErrInvalidModel):
			copyText = "The configured LLM model is invalid, so I can't interpret free-form replies. Please answer with a simple yes or no."
		}

		return &resolvedIntent{
			Intent:   types.IntentUnclear,
			Source:   types.IntentSourceNLP,
			Detail:   "classifier unavailable: " + err.Error(),
			UserCopy: copyText,
		}, nil
	}

	result, err := cls.Classify(ctx, text)
	if err != nil {
		logger.Warn("intent classification failed, degrading to unclear",
			"action_id", action.ID, "error", err.Error())
		return &resolvedIntent{
			Intent: types.IntentUnclear,
			Source: types.IntentSourceNLP,
			Detail: "classification failed: " + err.Error(),
		}, nil
	}

	return &resolvedIntent{
		Intent: result.Intent,
		Source: types.IntentSourceNLP,
		Detail: result.Reasoning,
	}, nil
}

// cancelTask routes a cancel_task button to the external code agent. The
// button references a task ID, not the action record, so there is no
// referenced-id check and no status transition.
func (uc *ReplyUseCase) cancelTask(ctx context.Context, action *model.Action, btn *model.ButtonID) (*model.ReplyResult, error) {
	if uc.codeAgent == nil {
		uc.send(ctx, action.UserID, "Sorry, task cancellation isn't available right now.")
		return nil, goerr.Wrap(ErrCodeAgentNotConfigured, "cancel_task button without a code agent client",
			goerr.V("task_id", btn.ActionID))
	}

	taskID := btn.ActionID.String()
	if err := uc.codeAgent.CancelTask(ctx, taskID, btn.Nonce, action.UserID); err != nil {
		logging.From(ctx).Error("task cancellation failed",
			"task_id", taskID, "error", err.Error())
		uc.send(ctx, action.UserID, cancelTaskFailureCopy(err))
		return &model.ReplyResult{Matched: true, ActionID: action.ID}, nil
	}

	uc.send(ctx, action.UserID, "🛑 Task cancelled.")
	return &model.ReplyResult{Matched: true, ActionID: action.ID}, nil
}

// cancelTaskFailureCopy maps code agent error codes to user-facing copy
func cancelTaskFailureCopy(err error) string {
	switch {
	case errors.Is(err, codeagent.ErrTaskNotFound):
		return "I couldn't find that task. It may have already finished."
	case errors.Is(err, codeagent.ErrInvalidNonce):
		return "Invalid cancellation code. The task was not cancelled."
	case errors.Is(err, codeagent.ErrNonceExpired):
		return "That cancellation link has expired. The task was not cancelled."
	case errors.Is(err, codeagent.ErrNotOwner):
		return "That task belongs to someone else, so I can't cancel it."
	case errors.Is(err, codeagent.ErrTaskNotCancellable):
		return "That task can no longer be cancelled."
	default:
		return "Sorry, I couldn't cancel the task. Please try again."
	}
}
