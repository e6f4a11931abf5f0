package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
)

type approvalMessageRepository struct {
	mu       sync.RWMutex
	messages map[string]*model.ApprovalMessage
}

func newApprovalMessageRepository() *approvalMessageRepository {
	return &approvalMessageRepository{
		messages: make(map[string]*model.ApprovalMessage),
	}
}

func (r *approvalMessageRepository) Create(ctx context.Context, msg *model.ApprovalMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	created := msg.Clone()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	r.messages[created.Wamid] = created
	return nil
}

func (r *approvalMessageRepository) FindByWamid(ctx context.Context, wamid string) (*model.ApprovalMessage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	msg, exists := r.messages[wamid]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "approval message not found", goerr.V("wamid", wamid))
	}

	return msg.Clone(), nil
}

func (r *approvalMessageRepository) DeleteByActionID(ctx context.Context, actionID model.ActionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for wamid, msg := range r.messages {
		if msg.ActionID == actionID {
			delete(r.messages, wamid)
		}
	}

	return nil
}
