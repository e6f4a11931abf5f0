package interfaces

import (
	"context"

	"github.com/intexura/approvalhub/pkg/domain/model"
)

// EventPublisher publishes generic action-created events for approved actions
// whose type has no dedicated executor
type EventPublisher interface {
	PublishActionCreated(ctx context.Context, event *model.ActionCreatedEvent) error
}
