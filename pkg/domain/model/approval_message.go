package model

import (
	"time"

	"github.com/intexura/approvalhub/pkg/domain/types"
)

// ApprovalMessage links an outbound notification (by its provider message ID,
// the wamid) to the action it proposed. It exists only so that "reply to
// message X" can be resolved into an action ID, and is deleted once the
// action is no longer awaiting a reply.
type ApprovalMessage struct {
	Wamid      string
	ActionID   ActionID
	UserID     string
	ActionType types.ActionType
	Title      string
	CreatedAt  time.Time
}

// Clone returns a copy of the approval message
func (m *ApprovalMessage) Clone() *ApprovalMessage {
	copied := *m
	return &copied
}
