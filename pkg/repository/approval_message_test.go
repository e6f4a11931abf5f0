package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/repository/firestore"
	"github.com/intexura/approvalhub/pkg/repository/memory"
)

func runApprovalMessageRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("FindByWamid resolves the stored record", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		actionID := model.NewActionID()
		err := repo.ApprovalMessage().Create(ctx, &model.ApprovalMessage{
			Wamid:      "wamid.test.1",
			ActionID:   actionID,
			UserID:     "user-1",
			ActionType: types.ActionTypeTodo,
			Title:      "Buy milk",
		})
		gt.NoError(t, err).Required()

		msg, err := repo.ApprovalMessage().FindByWamid(ctx, "wamid.test.1")
		gt.NoError(t, err).Required()
		gt.Value(t, msg.ActionID).Equal(actionID)
		gt.Value(t, msg.UserID).Equal("user-1")
	})

	t.Run("FindByWamid unknown ref fails", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.ApprovalMessage().FindByWamid(context.Background(), "wamid.unknown")
		gt.Value(t, err).NotNil()
	})

	t.Run("DeleteByActionID removes every record for the action", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		actionID := model.NewActionID()
		for _, wamid := range []string{"wamid.a", "wamid.b"} {
			err := repo.ApprovalMessage().Create(ctx, &model.ApprovalMessage{
				Wamid:    wamid,
				ActionID: actionID,
				UserID:   "user-1",
			})
			gt.NoError(t, err).Required()
		}
		err := repo.ApprovalMessage().Create(ctx, &model.ApprovalMessage{
			Wamid:    "wamid.other",
			ActionID: model.NewActionID(),
			UserID:   "user-1",
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.ApprovalMessage().DeleteByActionID(ctx, actionID)).Required()

		_, err = repo.ApprovalMessage().FindByWamid(ctx, "wamid.a")
		gt.Value(t, err).NotNil()
		_, err = repo.ApprovalMessage().FindByWamid(ctx, "wamid.b")
		gt.Value(t, err).NotNil()

		// unrelated record survives
		_, err = repo.ApprovalMessage().FindByWamid(ctx, "wamid.other")
		gt.NoError(t, err)
	})

	t.Run("DeleteByActionID with no records is a no-op", func(t *testing.T) {
		repo := newRepo(t)

		gt.NoError(t, repo.ApprovalMessage().DeleteByActionID(context.Background(), model.NewActionID()))
	})
}

func TestApprovalMessageRepository_Memory(t *testing.T) {
	runApprovalMessageRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestApprovalMessageRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	runApprovalMessageRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, os.Getenv("TEST_FIRESTORE_DATABASE_ID"))
		gt.NoError(t, err).Required()
		return repo
	})
}
