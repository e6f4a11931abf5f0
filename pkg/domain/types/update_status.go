package types

// UpdateStatusCode classifies the result of a conditional status update
type UpdateStatusCode string

const (
	UpdateStatusApplied  UpdateStatusCode = "applied"
	UpdateStatusMismatch UpdateStatusCode = "status_mismatch"
	UpdateStatusNotFound UpdateStatusCode = "not_found"
)

// UpdateStatusResult is the outcome of ActionRepository.UpdateStatusIf.
// Current is only set for a mismatch and carries the status that won the race.
type UpdateStatusResult struct {
	Code    UpdateStatusCode
	Current ActionStatus
}

// Applied reports whether the conditional update was committed
func (r UpdateStatusResult) Applied() bool {
	return r.Code == UpdateStatusApplied
}
