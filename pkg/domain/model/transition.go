package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// TransitionID is the identifier of an action transition audit record
type TransitionID string

// NewTransitionID generates a new transition ID
func NewTransitionID() TransitionID {
	return TransitionID(uuid.Must(uuid.NewV7()).String())
}

// ActionTransition is an audit record of a type reassignment on an action
// that is still awaiting approval.
type ActionTransition struct {
	ID        TransitionID
	ActionID  ActionID
	UserID    string
	FromType  types.ActionType
	ToType    types.ActionType
	Reason    string
	CreatedAt time.Time
}
