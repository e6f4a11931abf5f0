package repository_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/repository/firestore"
	"github.com/intexura/approvalhub/pkg/repository/memory"
)

func newAwaitingAction(userID string) *model.Action {
	expires := time.Now().UTC().Add(model.DefaultNonceTTL)
	return &model.Action{
		UserID:         userID,
		CommandID:      "cmd-1",
		Type:           types.ActionTypeTodo,
		Confidence:     0.92,
		Title:          "Buy milk",
		Status:         types.ActionStatusAwaitingApproval,
		Payload:        map[string]any{"text": "buy milk"},
		Nonce:          model.NewNonce(),
		NonceExpiresAt: &expires,
	}
}

func runActionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamps", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, newAwaitingAction("user-1"))
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(model.ActionID(""))
		gt.Value(t, created.Status).Equal(types.ActionStatusAwaitingApproval)
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, newAwaitingAction("user-1"))
		gt.NoError(t, err).Required()

		got, err := repo.Action().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		got.Payload["text"] = "changed"

		again, err := repo.Action().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, again.Payload["text"]).Equal("buy milk")
	})

	t.Run("Get unknown ID fails", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Action().Get(context.Background(), model.NewActionID())
		gt.Value(t, err).NotNil()
	})

	t.Run("Update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, newAwaitingAction("user-1"))
		gt.NoError(t, err).Required()

		created.Title = "Buy oat milk"
		updated, err := repo.Action().Update(ctx, created)
		gt.NoError(t, err).Required()

		gt.Value(t, updated.Title).Equal("Buy oat milk")
		gt.Value(t, updated.CreatedAt).Equal(created.CreatedAt)
	})

	t.Run("UpdateStatusIf applies on matching status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, newAwaitingAction("user-1"))
		gt.NoError(t, err).Required()

		result, err := repo.Action().UpdateStatusIf(ctx, created.ID,
			types.ActionStatusAwaitingApproval, types.ActionStatusPending)
		gt.NoError(t, err).Required()
		gt.True(t, result.Applied())

		got, err := repo.Action().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.Status).Equal(types.ActionStatusPending)
	})

	t.Run("UpdateStatusIf reports mismatch with current status", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, newAwaitingAction("user-1"))
		gt.NoError(t, err).Required()

		first, err := repo.Action().UpdateStatusIf(ctx, created.ID,
			types.ActionStatusAwaitingApproval, types.ActionStatusRejected)
		gt.NoError(t, err).Required()
		gt.True(t, first.Applied())

		second, err := repo.Action().UpdateStatusIf(ctx, created.ID,
			types.ActionStatusAwaitingApproval, types.ActionStatusPending)
		gt.NoError(t, err).Required()
		gt.Value(t, second.Code).Equal(types.UpdateStatusMismatch)
		gt.Value(t, second.Current).Equal(types.ActionStatusRejected)
	})

	t.Run("UpdateStatusIf reports not_found", func(t *testing.T) {
		repo := newRepo(t)

		result, err := repo.Action().UpdateStatusIf(context.Background(), model.NewActionID(),
			types.ActionStatusAwaitingApproval, types.ActionStatusPending)
		gt.NoError(t, err).Required()
		gt.Value(t, result.Code).Equal(types.UpdateStatusNotFound)
	})

	t.Run("concurrent UpdateStatusIf lets exactly one through", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Action().Create(ctx, newAwaitingAction("user-1"))
		gt.NoError(t, err).Required()

		const racers = 8
		results := make([]types.UpdateStatusResult, racers)
		var wg sync.WaitGroup
		for i := 0; i < racers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				result, err := repo.Action().UpdateStatusIf(ctx, created.ID,
					types.ActionStatusAwaitingApproval, types.ActionStatusPending)
				gt.NoError(t, err)
				results[i] = result
			}(i)
		}
		wg.Wait()

		applied := 0
		for _, r := range results {
			if r.Applied() {
				applied++
			} else {
				gt.Value(t, r.Code).Equal(types.UpdateStatusMismatch)
			}
		}
		gt.Number(t, applied).Equal(1)
	})
}

func TestActionRepository_Memory(t *testing.T) {
	runActionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestActionRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	runActionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, os.Getenv("TEST_FIRESTORE_DATABASE_ID"))
		gt.NoError(t, err).Required()
		return repo
	})
}
