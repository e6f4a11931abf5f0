package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
)

type Firestore struct {
	client          *firestore.Client
	action          *actionRepository
	approvalMessage *approvalMessageRepository
	transition      *transitionRepository
	events          *eventOutbox
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.action.collectionPrefix = prefix
		f.approvalMessage.collectionPrefix = prefix
		f.transition.collectionPrefix = prefix
		f.events.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client", goerr.V("projectID", projectID))
	}

	f := &Firestore{
		client:          client,
		action:          newActionRepository(client),
		approvalMessage: newApprovalMessageRepository(client),
		transition:      newTransitionRepository(client),
		events:          newEventOutbox(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) Action() interfaces.ActionRepository {
	return f.action
}

func (f *Firestore) ApprovalMessage() interfaces.ApprovalMessageRepository {
	return f.approvalMessage
}

func (f *Firestore) Transition() interfaces.TransitionRepository {
	return f.transition
}

// Events returns the outbox-backed event publisher. Downstream consumers
// tail the events collection.
func (f *Firestore) Events() interfaces.EventPublisher {
	return f.events
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
