package usecase

import (
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

// ExecutorRegistry holds one optional executor per action type. Absence of an
// entry is the trigger for the generic action-created event fallback, not an
// error: the dispatcher branches on "executor configured?", never on whether
// a dispatch succeeded, so a type can never receive both.
type ExecutorRegistry struct {
	Note     interfaces.ExecuteFunc
	Todo     interfaces.ExecuteFunc
	Research interfaces.ExecuteFunc
	Link     interfaces.ExecuteFunc
	Calendar interfaces.ExecuteFunc
	Linear   interfaces.ExecuteFunc
	Code     interfaces.ExecuteFunc
	Reminder interfaces.ExecuteFunc
}

// ForType returns the executor wired for the given type, or nil. Unknown
// types always return nil.
func (r *ExecutorRegistry) ForType(t types.ActionType) interfaces.ExecuteFunc {
	if r == nil {
		return nil
	}

	switch t {
	case types.ActionTypeNote:
		return r.Note
	case types.ActionTypeTodo:
		return r.Todo
	case types.ActionTypeResearch:
		return r.Research
	case types.ActionTypeLink:
		return r.Link
	case types.ActionTypeCalendar:
		return r.Calendar
	case types.ActionTypeLinear:
		return r.Linear
	case types.ActionTypeCode:
		return r.Code
	case types.ActionTypeReminder:
		return r.Reminder
	default:
		return nil
	}
}
