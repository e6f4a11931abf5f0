package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/intexura/approvalhub/pkg/usecase"
	"github.com/intexura/approvalhub/pkg/utils/async"
	"github.com/intexura/approvalhub/pkg/utils/errutil"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

const slackBodyKey contextKey = "slack_body"

// verifySlackSignature verifies the Slack request signature
func verifySlackSignature(signingSecret, timestamp, signature string, body []byte) error {
	if timestamp == "" {
		return goerr.New("missing timestamp")
	}
	if signature == "" {
		return goerr.New("missing signature")
	}

	// Reject stale timestamps to prevent replay attacks
	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return goerr.Wrap(err, "invalid timestamp")
	}

	now := time.Now().Unix()
	if now-ts > 60*5 {
		return goerr.New("timestamp too old", goerr.V("timestamp", timestamp), goerr.V("now", now))
	}

	baseString := fmt.Sprintf("v0:%s:%s", timestamp, body)
	mac := hmac.New(sha256.New, []byte(signingSecret))
	if _, err := mac.Write([]byte(baseString)); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expected := "v0=" + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// SlackSignatureMiddleware verifies Slack request signatures and stashes the
// raw body for the handler.
func SlackSignatureMiddleware(signingSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}

			timestamp := r.Header.Get("X-Slack-Request-Timestamp")
			signature := r.Header.Get("X-Slack-Signature")

			if err := verifySlackSignature(signingSecret, timestamp, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, slackBodyKey, body)
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SlackInteractionHandler turns Slack block-action button taps into reply
// events. The button value carries the encoded button identifier.
type SlackInteractionHandler struct {
	replies ReplyHandler
}

// NewSlackInteractionHandler creates an interaction handler
func NewSlackInteractionHandler(replies ReplyHandler) *SlackInteractionHandler {
	return &SlackInteractionHandler{replies: replies}
}

func (h *SlackInteractionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := ctx.Value(slackBodyKey).([]byte)
	if !ok {
		errutil.HandleHTTP(ctx, w, goerr.New("interaction body not found in context"), http.StatusInternalServerError)
		return
	}

	values, err := url.ParseQuery(string(body))
	if err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction form"), http.StatusBadRequest)
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(values.Get("payload")), &callback); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse interaction payload"), http.StatusBadRequest)
		return
	}

	if callback.Type != slack.InteractionTypeBlockActions {
		w.WriteHeader(http.StatusOK)
		return
	}

	for _, blockAction := range callback.ActionCallback.BlockActions {
		h.handleButton(ctx, callback.User.ID, blockAction)
	}

	// Slack expects an immediate 200; resolution continues asynchronously
	w.WriteHeader(http.StatusOK)
}

func (h *SlackInteractionHandler) handleButton(ctx context.Context, userID string, blockAction *slack.BlockAction) {
	buttonID := blockAction.Value
	actionID, ok := actionIDFromButton(buttonID)
	if !ok {
		logging.From(ctx).Debug("ignoring interaction without an action reference",
			"button_id", buttonID)
		return
	}

	in := usecase.ReplyInput{
		ActionID:    actionID,
		UserID:      userID,
		ButtonID:    buttonID,
		ButtonLabel: blockAction.Text.Text,
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		result, err := h.replies.HandleReply(ctx, in)
		if err != nil {
			return goerr.Wrap(err, "failed to handle interaction", goerr.V("button_id", buttonID))
		}
		logging.From(ctx).Info("interaction resolved",
			"action_id", result.ActionID,
			"intent", result.Intent,
			"outcome", result.Outcome)
		return nil
	})
}
