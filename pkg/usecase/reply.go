package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// ReplyUseCase resolves an ambiguous human reply about a proposed action into
// exactly one outcome: approved, rejected, or still unclear. It is invoked
// once per inbound reply event; the only concurrency concern is the same
// reply being delivered twice, which the conditional status update absorbs.
type ReplyUseCase struct {
	repo        interfaces.Repository
	notifier    interfaces.Notifier
	classifiers interfaces.ClassifierFactory
	events      interfaces.EventPublisher
	executors   *ExecutorRegistry
	codeAgent   interfaces.CodeAgentClient
	baseURL     string
	now         func() time.Time
}

// ReplyOption is a functional option for ReplyUseCase configuration
type ReplyOption func(*ReplyUseCase)

// WithExecutors wires per-type executors for approved actions
func WithExecutors(registry *ExecutorRegistry) ReplyOption {
	return func(uc *ReplyUseCase) {
		uc.executors = registry
	}
}

// WithEventPublisher wires the generic action-created event fallback
func WithEventPublisher(events interfaces.EventPublisher) ReplyOption {
	return func(uc *ReplyUseCase) {
		uc.events = events
	}
}

// WithCodeAgent wires the task-cancellation client
func WithCodeAgent(client interfaces.CodeAgentClient) ReplyOption {
	return func(uc *ReplyUseCase) {
		uc.codeAgent = client
	}
}

// WithBaseURL sets the base URL used for task deep links
func WithBaseURL(baseURL string) ReplyOption {
	return func(uc *ReplyUseCase) {
		uc.baseURL = baseURL
	}
}

// WithClock overrides the time source (tests)
func WithClock(now func() time.Time) ReplyOption {
	return func(uc *ReplyUseCase) {
		uc.now = now
	}
}

// NewReplyUseCase creates the reply resolution engine
func NewReplyUseCase(repo interfaces.Repository, notifier interfaces.Notifier, classifiers interfaces.ClassifierFactory, opts ...ReplyOption) *ReplyUseCase {
	uc := &ReplyUseCase{
		repo:        repo,
		notifier:    notifier,
		classifiers: classifiers,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ReplyInput is one inbound reply event. An explicit ActionID takes
// precedence over the message reference and skips the approval-message
// lookup (and with it the cleanup of that record).
type ReplyInput struct {
	ReplyToWamid string
	ActionID     model.ActionID
	Text         string
	UserID       string
	ButtonID     string
	ButtonLabel  string // display only, never affects resolution
}

// HandleReply resolves one inbound reply. Hard failures (lookup, ownership,
// malformed buttons, store errors) return an error; everything downstream of
// a committed status transition is best-effort and never alters the result.
func (uc *ReplyUseCase) HandleReply(ctx context.Context, in ReplyInput) (*model.ReplyResult, error) {
	action, viaMessage, err := uc.resolveActionRef(ctx, in)
	if err != nil {
		return nil, err
	}

	if action.UserID != in.UserID {
		return nil, goerr.Wrap(ErrUserMismatch, "reply user does not own the action",
			goerr.V(ActionIDKey, action.ID), goerr.V(UserIDKey, in.UserID))
	}

	// An action already outside awaiting_approval was resolved by an earlier
	// delivery or another flow. Reporting matched-without-outcome keeps the
	// redelivered reply from reprocessing history.
	if !action.Status.IsAwaitingApproval() {
		logging.From(ctx).Info("action already resolved, skipping reply",
			"action_id", action.ID, "status", action.Status)
		return &model.ReplyResult{Matched: true, ActionID: action.ID}, nil
	}

	resolved, shortCircuit, err := uc.resolveIntent(ctx, action, in)
	if err != nil {
		return nil, err
	}
	if shortCircuit != nil {
		return shortCircuit, nil
	}

	result, err := uc.applyIntent(ctx, action, resolved, in.Text)
	if err != nil {
		return nil, err
	}

	if result.Outcome != "" {
		uc.notifyOutcome(ctx, action, resolved, result.Outcome)
		uc.cleanup(ctx, action, viaMessage, result.Outcome)
	}

	return result, nil
}

// resolveActionRef loads the target action either by explicit ID or through
// the remembered approval message. viaMessage reports which path was taken so
// cleanup can be scoped to message-based lookups.
func (uc *ReplyUseCase) resolveActionRef(ctx context.Context, in ReplyInput) (action *model.Action, viaMessage bool, err error) {
	if in.ActionID != "" {
		action, err := uc.repo.Action().Get(ctx, in.ActionID)
		if err != nil {
			return nil, false, goerr.Wrap(ErrActionNotFound, "no action for explicit ID",
				goerr.V(ActionIDKey, in.ActionID))
		}
		return action, false, nil
	}

	msg, err := uc.repo.ApprovalMessage().FindByWamid(ctx, in.ReplyToWamid)
	if err != nil {
		return nil, false, goerr.Wrap(ErrApprovalMessageNotFound, "no approval message for reply reference",
			goerr.V(WamidKey, in.ReplyToWamid))
	}

	if msg.UserID != in.UserID {
		return nil, false, goerr.Wrap(ErrUserMismatch, "reply user does not own the approval message",
			goerr.V(WamidKey, in.ReplyToWamid), goerr.V(UserIDKey, in.UserID))
	}

	action, err = uc.repo.Action().Get(ctx, msg.ActionID)
	if err != nil {
		return nil, false, goerr.Wrap(ErrActionNotFound, "approval message points at a missing action",
			goerr.V(ActionIDKey, msg.ActionID))
	}

	return action, true, nil
}

// applyIntent runs the atomic transition for approve/reject and the
// post-approval dispatch. Unclear causes no transition.
func (uc *ReplyUseCase) applyIntent(ctx context.Context, action *model.Action, resolved *resolvedIntent, replyText string) (*model.ReplyResult, error) {
	switch resolved.Intent {
	case types.IntentApprove:
		applied, err := uc.transition(ctx, action, types.ActionStatusPending, replyText)
		if err != nil {
			return nil, err
		}
		if !applied {
			// A concurrent delivery won the race. Terminal, successful no-op.
			return &model.ReplyResult{Matched: true, ActionID: action.ID}, nil
		}
		uc.dispatchApproved(ctx, action)
		return &model.ReplyResult{
			Matched:  true,
			ActionID: action.ID,
			Intent:   types.IntentApprove,
			Outcome:  types.OutcomeApproved,
		}, nil

	case types.IntentReject:
		// Pure button taps carry no text, so record what was tapped instead.
		reason := replyText
		if reason == "" {
			reason = resolved.Detail
		}
		applied, err := uc.transition(ctx, action, types.ActionStatusRejected, reason)
		if err != nil {
			return nil, err
		}
		if !applied {
			return &model.ReplyResult{Matched: true, ActionID: action.ID}, nil
		}
		return &model.ReplyResult{
			Matched:  true,
			ActionID: action.ID,
			Intent:   types.IntentReject,
			Outcome:  types.OutcomeRejected,
		}, nil

	default:
		return &model.ReplyResult{
			Matched:  true,
			ActionID: action.ID,
			Intent:   types.IntentUnclear,
			Outcome:  types.OutcomeUnclearClarification,
		}, nil
	}
}

// cleanup deletes the approval message once the action no longer awaits a
// reply. Never on unclear, and never when the caller supplied the action ID
// directly. Best-effort.
func (uc *ReplyUseCase) cleanup(ctx context.Context, action *model.Action, viaMessage bool, outcome types.ReplyOutcome) {
	if !viaMessage {
		return
	}
	if outcome != types.OutcomeApproved && outcome != types.OutcomeRejected {
		return
	}

	if err := uc.repo.ApprovalMessage().DeleteByActionID(ctx, action.ID); err != nil {
		logging.From(ctx).Error("failed to delete approval message",
			"action_id", action.ID, "error", err.Error())
	}
}
