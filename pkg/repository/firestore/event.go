package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
)

// eventOutbox persists action-created events to a collection that downstream
// consumers tail. Publishing is a plain document write; delivery semantics
// belong to the consumer side.
type eventOutbox struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEventOutbox(client *firestore.Client) *eventOutbox {
	return &eventOutbox{
		client: client,
	}
}

func (o *eventOutbox) collection() string {
	if o.collectionPrefix != "" {
		return o.collectionPrefix + "_action_events"
	}
	return "action_events"
}

func (o *eventOutbox) PublishActionCreated(ctx context.Context, event *model.ActionCreatedEvent) error {
	docID := uuid.Must(uuid.NewV7()).String()

	doc := map[string]any{
		"Kind":        "action_created",
		"ActionID":    event.ActionID.String(),
		"UserID":      event.UserID,
		"ActionType":  event.ActionType.String(),
		"Title":       event.Title,
		"Payload":     event.Payload,
		"ApprovedAt":  event.ApprovedAt,
		"PublishedAt": time.Now().UTC(),
	}

	if _, err := o.client.Collection(o.collection()).Doc(docID).Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to publish action created event", goerr.V("action_id", event.ActionID))
	}

	return nil
}
