package types

// ButtonKind is the action-kind segment of an interactive button identifier
type ButtonKind string

const (
	ButtonKindApprove    ButtonKind = "approve"
	ButtonKindCancel     ButtonKind = "cancel"
	ButtonKindConvert    ButtonKind = "convert"
	ButtonKindCancelTask ButtonKind = "cancel_task"
	ButtonKindView       ButtonKind = "view"
)

// IsValid checks if the button kind is recognized
func (k ButtonKind) IsValid() bool {
	switch k {
	case ButtonKindApprove, ButtonKindCancel, ButtonKindConvert, ButtonKindCancelTask, ButtonKindView:
		return true
	default:
		return false
	}
}

// String returns the string representation of the button kind
func (k ButtonKind) String() string {
	return string(k)
}
