package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type transitionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newTransitionRepository(client *firestore.Client) *transitionRepository {
	return &transitionRepository{
		client: client,
	}
}

func (r *transitionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_action_transitions"
	}
	return "action_transitions"
}

func (r *transitionRepository) Create(ctx context.Context, transition *model.ActionTransition) (*model.ActionTransition, error) {
	copied := *transition
	created := &copied
	if created.ID == "" {
		created.ID = model.NewTransitionID()
	}
	created.CreatedAt = time.Now().UTC()

	_, err := r.client.Collection(r.collection()).Doc(string(created.ID)).Set(ctx, created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create transition", goerr.V("id", created.ID))
	}

	return created, nil
}

// ListByAction requires the composite index maintained by the migrate command
func (r *transitionRepository) ListByAction(ctx context.Context, actionID model.ActionID) ([]*model.ActionTransition, error) {
	iter := r.client.Collection(r.collection()).
		Where("ActionID", "==", actionID.String()).
		OrderBy("CreatedAt", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	transitions := make([]*model.ActionTransition, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate transitions", goerr.V("action_id", actionID))
		}

		var tr model.ActionTransition
		if err := docSnap.DataTo(&tr); err != nil {
			return nil, goerr.Wrap(err, "failed to decode transition", goerr.V("id", docSnap.Ref.ID))
		}

		transitions = append(transitions, &tr)
	}

	return transitions, nil
}
