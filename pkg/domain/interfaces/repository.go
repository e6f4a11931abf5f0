package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Action() ActionRepository
	ApprovalMessage() ApprovalMessageRepository
	Transition() TransitionRepository

	Close() error
}
