package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

func TestParseButtonID(t *testing.T) {
	t.Run("kind, action ID and nonce", func(t *testing.T) {
		id, err := model.ParseButtonID("approve:act-1:abcd")
		gt.NoError(t, err).Required()
		gt.Value(t, id.Kind).Equal(types.ButtonKindApprove)
		gt.Value(t, id.ActionID).Equal(model.ActionID("act-1"))
		gt.Value(t, id.Nonce).Equal("abcd")
		gt.True(t, id.HasNonce)
	})

	t.Run("nonce segment is optional", func(t *testing.T) {
		id, err := model.ParseButtonID("cancel:act-1")
		gt.NoError(t, err).Required()
		gt.Value(t, id.Kind).Equal(types.ButtonKindCancel)
		gt.False(t, id.HasNonce)
	})

	t.Run("unknown kind parses, validation happens later", func(t *testing.T) {
		id, err := model.ParseButtonID("snooze:act-1")
		gt.NoError(t, err).Required()
		gt.False(t, id.Kind.IsValid())
	})

	t.Run("too few segments", func(t *testing.T) {
		_, err := model.ParseButtonID("approve")
		gt.Error(t, err).Is(model.ErrInvalidButtonID)
	})

	t.Run("too many segments", func(t *testing.T) {
		_, err := model.ParseButtonID("approve:act-1:abcd:extra")
		gt.Error(t, err).Is(model.ErrInvalidButtonID)
	})

	t.Run("empty segments", func(t *testing.T) {
		_, err := model.ParseButtonID(":act-1")
		gt.Error(t, err).Is(model.ErrInvalidButtonID)

		_, err = model.ParseButtonID("approve:")
		gt.Error(t, err).Is(model.ErrInvalidButtonID)
	})
}

func TestFormatButtonID(t *testing.T) {
	gt.Value(t, model.FormatButtonID(types.ButtonKindApprove, "act-1", "abcd")).
		Equal("approve:act-1:abcd")
	gt.Value(t, model.FormatButtonID(types.ButtonKindView, "task-9", "")).
		Equal("view:task-9")
}
