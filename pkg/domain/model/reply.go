package model

import "github.com/intexura/approvalhub/pkg/domain/types"

// ReplyResult is the outcome of resolving one inbound reply. Matched without
// intent/outcome means the action was already handled (terminal status or a
// lost transition race) and the reply was a successful no-op.
type ReplyResult struct {
	Matched  bool
	ActionID ActionID
	Intent   types.Intent
	Outcome  types.ReplyOutcome
}
