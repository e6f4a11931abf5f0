package types

import "fmt"

// ActionStatus represents the lifecycle status of a proposed action
type ActionStatus string

const (
	ActionStatusAwaitingApproval ActionStatus = "awaiting_approval"
	ActionStatusPending          ActionStatus = "pending"
	ActionStatusRejected         ActionStatus = "rejected"
	ActionStatusCompleted        ActionStatus = "completed"
	ActionStatusFailed           ActionStatus = "failed"
	ActionStatusArchived         ActionStatus = "archived"
)

// AllActionStatuses returns all valid action statuses
func AllActionStatuses() []ActionStatus {
	return []ActionStatus{
		ActionStatusAwaitingApproval,
		ActionStatusPending,
		ActionStatusRejected,
		ActionStatusCompleted,
		ActionStatusFailed,
		ActionStatusArchived,
	}
}

// IsValid checks if the action status is valid
func (s ActionStatus) IsValid() bool {
	switch s {
	case ActionStatusAwaitingApproval,
		ActionStatusPending,
		ActionStatusRejected,
		ActionStatusCompleted,
		ActionStatusFailed,
		ActionStatusArchived:
		return true
	default:
		return false
	}
}

// IsAwaitingApproval reports whether a reply can still resolve this action.
// Every other status is terminal for the approval flow.
func (s ActionStatus) IsAwaitingApproval() bool {
	return s == ActionStatusAwaitingApproval
}

// String returns the string representation of the action status
func (s ActionStatus) String() string {
	return string(s)
}

// ParseActionStatus parses a string into an ActionStatus
func ParseActionStatus(s string) (ActionStatus, error) {
	status := ActionStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid action status: %s", s)
	}
	return status, nil
}
