package interfaces

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/model"
)

// ExecutionStatus reports how an executor finished
type ExecutionStatus string

const (
	ExecutionCompleted ExecutionStatus = "completed"
	ExecutionFailed    ExecutionStatus = "failed"
)

// ExecutionResult is the informational outcome of a per-type executor run.
// Execution is decoupled from approval: the action is already pending by the
// time an executor runs, so this result is only logged.
type ExecutionResult struct {
	Status  ExecutionStatus
	Message string
}

// ExecuteFunc performs the actual work for one approved action
type ExecuteFunc func(ctx context.Context, actionID model.ActionID) (*ExecutionResult, error)
