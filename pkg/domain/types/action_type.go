package types

// ActionType is the classification tag of a proposed action. Unknown values
// are carried through unchanged so that not-yet-wired types still flow to the
// generic event fallback instead of failing.
type ActionType string

const (
	ActionTypeNote     ActionType = "note"
	ActionTypeTodo     ActionType = "todo"
	ActionTypeResearch ActionType = "research"
	ActionTypeLink     ActionType = "link"
	ActionTypeCalendar ActionType = "calendar"
	ActionTypeLinear   ActionType = "linear"
	ActionTypeCode     ActionType = "code"
	ActionTypeReminder ActionType = "reminder"
)

// KnownActionTypes returns the built-in action types
func KnownActionTypes() []ActionType {
	return []ActionType{
		ActionTypeNote,
		ActionTypeTodo,
		ActionTypeResearch,
		ActionTypeLink,
		ActionTypeCalendar,
		ActionTypeLinear,
		ActionTypeCode,
		ActionTypeReminder,
	}
}

// IsKnown checks if the action type is one of the built-in types
func (t ActionType) IsKnown() bool {
	for _, known := range KnownActionTypes() {
		if t == known {
			return true
		}
	}
	return false
}

// String returns the string representation of the action type
func (t ActionType) String() string {
	return string(t)
}
