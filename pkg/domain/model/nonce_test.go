package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
)

func TestCheckNonce(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(5 * time.Minute)
	past := now.Add(-time.Second)

	newAction := func(nonce string, expiresAt *time.Time) *model.Action {
		return &model.Action{
			ID:             model.NewActionID(),
			Nonce:          nonce,
			NonceExpiresAt: expiresAt,
		}
	}

	t.Run("matched", func(t *testing.T) {
		action := newAction("abcd", &future)
		gt.Value(t, model.CheckNonce(action, "abcd", now)).Equal(types.NonceStateMatched)
	})

	t.Run("match is case-insensitive", func(t *testing.T) {
		action := newAction("abcd", &future)
		gt.Value(t, model.CheckNonce(action, "ABCD", now)).Equal(types.NonceStateMatched)
	})

	t.Run("mismatched", func(t *testing.T) {
		action := newAction("abcd", &future)
		gt.Value(t, model.CheckNonce(action, "wxyz", now)).Equal(types.NonceStateMismatched)
	})

	t.Run("expired beats matching", func(t *testing.T) {
		action := newAction("abcd", &past)
		gt.Value(t, model.CheckNonce(action, "abcd", now)).Equal(types.NonceStateExpired)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		exact := now
		action := newAction("abcd", &exact)
		gt.Value(t, model.CheckNonce(action, "abcd", now)).Equal(types.NonceStateExpired)
	})

	t.Run("missing stored nonce is distinct from mismatch", func(t *testing.T) {
		action := newAction("", &future)
		gt.Value(t, model.CheckNonce(action, "abcd", now)).Equal(types.NonceStateMissing)
	})

	t.Run("no expiry means nonce stays valid", func(t *testing.T) {
		action := newAction("abcd", nil)
		gt.Value(t, model.CheckNonce(action, "abcd", now)).Equal(types.NonceStateMatched)
	})
}

func TestNewNonce(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		nonce := model.NewNonce()
		gt.Number(t, len(nonce)).Equal(8)
		gt.False(t, seen[nonce])
		seen[nonce] = true
	}
}
