package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type actionRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newActionRepository(client *firestore.Client) *actionRepository {
	return &actionRepository{
		client: client,
	}
}

func (r *actionRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_actions"
	}
	return "actions"
}

func (r *actionRepository) Create(ctx context.Context, action *model.Action) (*model.Action, error) {
	now := time.Now().UTC()
	created := action.Clone()
	if created.ID == "" {
		created.ID = model.NewActionID()
	}
	created.CreatedAt = now
	created.UpdatedAt = now

	_, err := r.client.Collection(r.collection()).Doc(created.ID.String()).Set(ctx, created)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action", goerr.V("id", created.ID))
	}

	return created, nil
}

func (r *actionRepository) Get(ctx context.Context, id model.ActionID) (*model.Action, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(id.String()).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", id))
	}

	var a model.Action
	if err := docSnap.DataTo(&a); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", id))
	}

	return &a, nil
}

func (r *actionRepository) Update(ctx context.Context, action *model.Action) (*model.Action, error) {
	docRef := r.client.Collection(r.collection()).Doc(action.ID.String())

	docSnap, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "action not found", goerr.V("id", action.ID))
		}
		return nil, goerr.Wrap(err, "failed to get action", goerr.V("id", action.ID))
	}

	var existing model.Action
	if err := docSnap.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to decode action", goerr.V("id", action.ID))
	}

	updated := action.Clone()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update action", goerr.V("id", action.ID))
	}

	return updated, nil
}

// UpdateStatusIf runs the compare-and-set inside a Firestore transaction.
// Firestore retries the transaction on contention, so exactly one of two
// racing deliveries commits the flip; the other reads the winner's status
// and reports a mismatch.
func (r *actionRepository) UpdateStatusIf(ctx context.Context, id model.ActionID, expected, next types.ActionStatus) (types.UpdateStatusResult, error) {
	docRef := r.client.Collection(r.collection()).Doc(id.String())

	var result types.UpdateStatusResult
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				result = types.UpdateStatusResult{Code: types.UpdateStatusNotFound}
				return nil
			}
			return goerr.Wrap(err, "failed to get action in transaction")
		}

		var a model.Action
		if err := doc.DataTo(&a); err != nil {
			return goerr.Wrap(err, "failed to decode action in transaction")
		}

		if a.Status != expected {
			result = types.UpdateStatusResult{
				Code:    types.UpdateStatusMismatch,
				Current: a.Status,
			}
			return nil
		}

		result = types.UpdateStatusResult{Code: types.UpdateStatusApplied}
		return tx.Update(docRef, []firestore.Update{
			{Path: "Status", Value: next},
			{Path: "UpdatedAt", Value: time.Now().UTC()},
		})
	})
	if err != nil {
		return types.UpdateStatusResult{}, goerr.Wrap(err, "failed to update action status", goerr.V("id", id))
	}

	return result, nil
}
