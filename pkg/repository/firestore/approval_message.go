package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type approvalMessageRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newApprovalMessageRepository(client *firestore.Client) *approvalMessageRepository {
	return &approvalMessageRepository{
		client: client,
	}
}

func (r *approvalMessageRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_approval_messages"
	}
	return "approval_messages"
}

func (r *approvalMessageRepository) Create(ctx context.Context, msg *model.ApprovalMessage) error {
	created := msg.Clone()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	_, err := r.client.Collection(r.collection()).Doc(created.Wamid).Set(ctx, created)
	if err != nil {
		return goerr.Wrap(err, "failed to create approval message", goerr.V("wamid", created.Wamid))
	}

	return nil
}

func (r *approvalMessageRepository) FindByWamid(ctx context.Context, wamid string) (*model.ApprovalMessage, error) {
	docSnap, err := r.client.Collection(r.collection()).Doc(wamid).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "approval message not found", goerr.V("wamid", wamid))
		}
		return nil, goerr.Wrap(err, "failed to get approval message", goerr.V("wamid", wamid))
	}

	var m model.ApprovalMessage
	if err := docSnap.DataTo(&m); err != nil {
		return nil, goerr.Wrap(err, "failed to decode approval message", goerr.V("wamid", wamid))
	}

	return &m, nil
}

func (r *approvalMessageRepository) DeleteByActionID(ctx context.Context, actionID model.ActionID) error {
	iter := r.client.Collection(r.collection()).
		Where("ActionID", "==", actionID.String()).
		Documents(ctx)
	defer iter.Stop()

	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return goerr.Wrap(err, "failed to iterate approval messages", goerr.V("action_id", actionID))
		}

		if _, err := docSnap.Ref.Delete(ctx); err != nil {
			return goerr.Wrap(err, "failed to delete approval message", goerr.V("wamid", docSnap.Ref.ID))
		}
	}

	return nil
}
