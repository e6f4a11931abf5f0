package http

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/usecase"
	"github.com/intexura/approvalhub/pkg/utils/async"
	"github.com/intexura/approvalhub/pkg/utils/errutil"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const webhookBodyKey contextKey = "webhook_body"

// ReplyHandler resolves one inbound reply event
type ReplyHandler interface {
	HandleReply(ctx context.Context, in usecase.ReplyInput) (*model.ReplyResult, error)
}

// verifyWhatsAppSignature verifies the X-Hub-Signature-256 header computed
// over the raw request body with the app secret.
func verifyWhatsAppSignature(appSecret, signature string, body []byte) error {
	if signature == "" {
		return goerr.New("missing signature")
	}

	const prefix = "sha256="
	if !strings.HasPrefix(signature, prefix) {
		return goerr.New("malformed signature header")
	}

	mac := hmac.New(sha256.New, []byte(appSecret))
	if _, err := mac.Write(body); err != nil {
		return goerr.Wrap(err, "failed to compute HMAC")
	}
	expected := prefix + hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return goerr.New("signature mismatch")
	}

	return nil
}

// WhatsAppSignatureMiddleware verifies inbound webhook signatures and stashes
// the raw body for the handler.
func WhatsAppSignatureMiddleware(appSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			body, err := io.ReadAll(r.Body)
			if err != nil {
				errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to read request body"), http.StatusBadRequest)
				return
			}

			signature := r.Header.Get("X-Hub-Signature-256")
			if err := verifyWhatsAppSignature(appSecret, signature, body); err != nil {
				errutil.HandleHTTP(ctx, w, err, http.StatusUnauthorized)
				return
			}

			ctx = context.WithValue(ctx, webhookBodyKey, body)
			r.Body = io.NopCloser(bytes.NewReader(body))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// verifyHandler answers the webhook subscription handshake
func verifyHandler(verifyToken string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("hub.mode") != "subscribe" || q.Get("hub.verify_token") != verifyToken {
			http.Error(w, "verification failed", http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(q.Get("hub.challenge")))
	}
}

// webhookPayload is the WhatsApp Cloud API webhook envelope, trimmed to the
// fields the reply flow needs.
type webhookPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []incomingMessage `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type incomingMessage struct {
	From string `json:"from"`
	ID   string `json:"id"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text,omitempty"`
	Context *struct {
		ID string `json:"id"`
	} `json:"context,omitempty"`
	Interactive *struct {
		Type        string `json:"type"`
		ButtonReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply,omitempty"`
	} `json:"interactive,omitempty"`
}

// WhatsAppWebhookHandler turns inbound WhatsApp messages into reply events.
// The webhook must be acknowledged quickly, so resolution runs asynchronously
// and redeliveries are absorbed by the engine's conditional transition.
type WhatsAppWebhookHandler struct {
	replies ReplyHandler
}

// NewWhatsAppWebhookHandler creates a webhook handler
func NewWhatsAppWebhookHandler(replies ReplyHandler) *WhatsAppWebhookHandler {
	return &WhatsAppWebhookHandler{replies: replies}
}

func (h *WhatsAppWebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, ok := ctx.Value(webhookBodyKey).([]byte)
	if !ok {
		errutil.HandleHTTP(ctx, w, goerr.New("webhook body not found in context"), http.StatusInternalServerError)
		return
	}

	var payload webhookPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		errutil.HandleHTTP(ctx, w, goerr.Wrap(err, "failed to parse webhook payload"), http.StatusBadRequest)
		return
	}

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				h.handleMessage(ctx, msg)
			}
		}
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleMessage maps one inbound message to a reply event. Messages that
// reference nothing resolvable are logged and dropped so unrelated chatter
// never turns into webhook errors.
func (h *WhatsAppWebhookHandler) handleMessage(ctx context.Context, msg incomingMessage) {
	in := usecase.ReplyInput{
		UserID: msg.From,
	}

	if msg.Text != nil {
		in.Text = msg.Text.Body
	}
	if msg.Interactive != nil && msg.Interactive.ButtonReply != nil {
		in.ButtonID = msg.Interactive.ButtonReply.ID
		in.ButtonLabel = msg.Interactive.ButtonReply.Title
	}
	if msg.Context != nil {
		in.ReplyToWamid = msg.Context.ID
	}

	if in.ReplyToWamid == "" {
		if id, ok := actionIDFromButton(in.ButtonID); ok {
			in.ActionID = id
		} else {
			logging.From(ctx).Debug("ignoring message with no reply reference",
				"message_id", msg.ID, "type", msg.Type)
			return
		}
	}

	async.Dispatch(ctx, func(ctx context.Context) error {
		result, err := h.replies.HandleReply(ctx, in)
		if err != nil {
			return goerr.Wrap(err, "failed to handle reply", goerr.V("message_id", msg.ID))
		}
		logging.From(ctx).Info("reply resolved",
			"message_id", msg.ID,
			"action_id", result.ActionID,
			"intent", result.Intent,
			"outcome", result.Outcome)
		return nil
	})
}

// actionIDFromButton recovers the target action from a button tapped outside
// a reply thread. Only kinds that reference an action qualify; task buttons
// carry task IDs and need the reply context instead.
func actionIDFromButton(buttonID string) (model.ActionID, bool) {
	if buttonID == "" {
		return "", false
	}

	btn, err := model.ParseButtonID(buttonID)
	if err != nil {
		return "", false
	}

	switch btn.Kind {
	case types.ButtonKindApprove, types.ButtonKindCancel, types.ButtonKindConvert:
		return btn.ActionID, true
	default:
		return "", false
	}
}
