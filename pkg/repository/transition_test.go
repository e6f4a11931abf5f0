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

func runTransitionRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns ID and timestamp", func(t *testing.T) {
		repo := newRepo(t)

		created, err := repo.Transition().Create(context.Background(), &model.ActionTransition{
			ActionID: model.NewActionID(),
			UserID:   "user-1",
			FromType: types.ActionTypeNote,
			ToType:   types.ActionTypeTodo,
			Reason:   "this is actually a task",
		})
		gt.NoError(t, err).Required()

		gt.Value(t, created.ID).NotEqual(model.TransitionID(""))
		gt.Bool(t, created.CreatedAt.IsZero()).False()
	})

	t.Run("ListByAction only returns that action's records", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		actionID := model.NewActionID()
		_, err := repo.Transition().Create(ctx, &model.ActionTransition{
			ActionID: actionID,
			UserID:   "user-1",
			FromType: types.ActionTypeNote,
			ToType:   types.ActionTypeTodo,
		})
		gt.NoError(t, err).Required()

		_, err = repo.Transition().Create(ctx, &model.ActionTransition{
			ActionID: model.NewActionID(),
			UserID:   "user-1",
			FromType: types.ActionTypeTodo,
			ToType:   types.ActionTypeCalendar,
		})
		gt.NoError(t, err).Required()

		transitions, err := repo.Transition().ListByAction(ctx, actionID)
		gt.NoError(t, err).Required()
		gt.Number(t, len(transitions)).Equal(1)
		gt.Value(t, transitions[0].ToType).Equal(types.ActionTypeTodo)
	})
}

func TestTransitionRepository_Memory(t *testing.T) {
	runTransitionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New()
	})
}

func TestTransitionRepository_Firestore(t *testing.T) {
	projectID := os.Getenv("TEST_FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("TEST_FIRESTORE_PROJECT_ID not set")
	}

	runTransitionRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		repo, err := firestore.New(context.Background(), projectID, os.Getenv("TEST_FIRESTORE_DATABASE_ID"))
		gt.NoError(t, err).Required()
		return repo
	})
}
