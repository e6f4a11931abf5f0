package interfaces

import "context"

// CodeAgentClient cancels tasks running on the external code agent. Only the
// cancel_task button kind reaches it.
type CodeAgentClient interface {
	CancelTask(ctx context.Context, taskID, nonce, userID string) error
}
