package model

import (
	"time"

	"github.com/intexura/approvalhub/pkg/domain/types"
)

// ActionCreatedEvent is published for approved actions whose type has no
// dedicated executor, so a generic downstream consumer can still act on them.
type ActionCreatedEvent struct {
	ActionID   ActionID
	UserID     string
	ActionType types.ActionType
	Title      string
	Payload    map[string]any
	ApprovedAt time.Time
}
