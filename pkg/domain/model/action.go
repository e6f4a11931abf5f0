package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// ActionID is the identifier of a proposed action
type ActionID string

// NewActionID generates a new time-ordered action ID
func NewActionID() ActionID {
	return ActionID(uuid.Must(uuid.NewV7()).String())
}

// String returns the string representation of the action ID
func (id ActionID) String() string {
	return string(id)
}

// Action is a proposed unit of work awaiting human confirmation. It is
// created by the upstream classification flow; this engine reads it and
// conditionally flips its status out of awaiting_approval.
type Action struct {
	ID             ActionID
	UserID         string
	CommandID      string
	Type           types.ActionType
	Confidence     float64
	Title          string
	Status         types.ActionStatus
	Payload        map[string]any
	Nonce          string
	NonceExpiresAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns a deep copy of the action. Repositories hand out clones so
// callers can never mutate stored state through a shared map.
func (a *Action) Clone() *Action {
	copied := *a
	if a.Payload != nil {
		copied.Payload = make(map[string]any, len(a.Payload))
		for k, v := range a.Payload {
			copied.Payload[k] = v
		}
	}
	if a.NonceExpiresAt != nil {
		t := *a.NonceExpiresAt
		copied.NonceExpiresAt = &t
	}
	return &copied
}

// WithRejection returns a payload map carrying rejection metadata on top of
// the existing payload. Existing keys are preserved.
func (a *Action) WithRejection(reason string, at time.Time) map[string]any {
	payload := make(map[string]any, len(a.Payload)+2)
	for k, v := range a.Payload {
		payload[k] = v
	}
	payload["rejection_reason"] = reason
	payload["rejected_at"] = at.UTC().Format(time.RFC3339)
	return payload
}
