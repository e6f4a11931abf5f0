package memory

import (
	"context"
	"sync"

	"github.com/intexura/approvalhub/pkg/domain/model"
)

// EventLog is an in-memory event publisher used for development and tests
type EventLog struct {
	mu     sync.Mutex
	events []*model.ActionCreatedEvent
}

// NewEventLog creates an empty event log
func NewEventLog() *EventLog {
	return &EventLog{}
}

func (l *EventLog) PublishActionCreated(ctx context.Context, event *model.ActionCreatedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	copied := *event
	l.events = append(l.events, &copied)
	return nil
}

// Published returns all events published so far
func (l *EventLog) Published() []*model.ActionCreatedEvent {
	l.mu.Lock()
	defer l.mu.Unlock()

	result := make([]*model.ActionCreatedEvent, len(l.events))
	copy(result, l.events)
	return result
}
