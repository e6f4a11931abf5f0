package usecase

import "errors"

// Sentinel errors for the reply resolution engine. The messages are part of
// the contract surface: clients and tests match on them.
var (
	// Lookup / authorization failures
	ErrActionNotFound          = errors.New("Action not found")
	ErrApprovalMessageNotFound = errors.New("Approval message not found")
	ErrUserMismatch            = errors.New("User ID mismatch")

	// Button protocol violations
	ErrButtonActionMismatch = errors.New("Button action ID mismatch")
	ErrUnknownButtonIntent  = errors.New("Unknown button intent")
	ErrApproveMissingNonce  = errors.New("Approve button missing nonce")
	ErrNoNonceConfigured    = errors.New("Action has no nonce configured")

	// Nonce failures surfaced by the task-cancellation collaborator
	ErrNonceMismatch = errors.New("Nonce mismatch")
	ErrNonceExpired  = errors.New("Approval nonce expired")

	// Dependency failures
	ErrUpdateStatusFailed     = errors.New("Failed to update action status")
	ErrCodeAgentNotConfigured = errors.New("Code agent client not configured")

	// Type reassignment
	ErrNotAwaitingApproval = errors.New("Action is not awaiting approval")
)

// Context keys for error values
const (
	ActionIDKey = "action_id"
	UserIDKey   = "user_id"
	WamidKey    = "wamid"
)
