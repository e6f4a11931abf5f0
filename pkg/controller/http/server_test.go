package http_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	controller "github.com/intexura/approvalhub/pkg/controller/http"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/usecase"
)

// recordingReplyHandler records reply inputs and signals each call
type recordingReplyHandler struct {
	mu     sync.Mutex
	inputs []usecase.ReplyInput
	done   chan struct{}
}

func newRecordingReplyHandler() *recordingReplyHandler {
	return &recordingReplyHandler{done: make(chan struct{}, 16)}
}

func (h *recordingReplyHandler) HandleReply(ctx context.Context, in usecase.ReplyInput) (*model.ReplyResult, error) {
	h.mu.Lock()
	h.inputs = append(h.inputs, in)
	h.mu.Unlock()
	h.done <- struct{}{}
	return &model.ReplyResult{Matched: true, ActionID: in.ActionID}, nil
}

func (h *recordingReplyHandler) wait(t *testing.T) usecase.ReplyInput {
	t.Helper()
	select {
	case <-h.done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply handling")
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inputs[len(h.inputs)-1]
}

func (h *recordingReplyHandler) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.inputs)
}

const testAppSecret = "app-secret"

func signWhatsApp(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testAppSecret))
	mac.Write(body)
	return "sha256=" + hex.EncodeToString(mac.Sum(nil))
}

func newWhatsAppServer(handler *recordingReplyHandler) *controller.Server {
	return controller.New(controller.WithWhatsAppWebhook(
		controller.NewWhatsAppWebhookHandler(handler), testAppSecret, "verify-token"))
}

func textReplyPayload(wamid, from, text string) []byte {
	body, _ := json.Marshal(map[string]any{
		"entry": []map[string]any{{
			"changes": []map[string]any{{
				"value": map[string]any{
					"messages": []map[string]any{{
						"from":    from,
						"id":      "wamid.inbound.1",
						"type":    "text",
						"text":    map[string]string{"body": text},
						"context": map[string]string{"id": wamid},
					}},
				},
			}},
		}},
	})
	return body
}

func TestWhatsAppWebhook_Verification(t *testing.T) {
	srv := newWhatsAppServer(newRecordingReplyHandler())

	t.Run("valid token echoes challenge", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/hooks/whatsapp/?hub.mode=subscribe&hub.verify_token=verify-token&hub.challenge=12345", nil)
		srv.ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusOK)
		gt.Value(t, rec.Body.String()).Equal("12345")
	})

	t.Run("wrong token is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/hooks/whatsapp/?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", nil)
		srv.ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusForbidden)
	})
}

func TestWhatsAppWebhook_Signature(t *testing.T) {
	handler := newRecordingReplyHandler()
	srv := newWhatsAppServer(handler)
	body := textReplyPayload("wamid.approval.1", "+15550001111", "yes")

	t.Run("missing signature is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hooks/whatsapp/", bytes.NewReader(body))
		srv.ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
	})

	t.Run("bad signature is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/hooks/whatsapp/", bytes.NewReader(body))
		req.Header.Set("X-Hub-Signature-256", "sha256=deadbeef")
		srv.ServeHTTP(rec, req)

		gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
		gt.Number(t, handler.count()).Equal(0)
	})
}

func TestWhatsAppWebhook_TextReply(t *testing.T) {
	handler := newRecordingReplyHandler()
	srv := newWhatsAppServer(handler)

	body := textReplyPayload("wamid.approval.1", "+15550001111", "yes")
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hooks/whatsapp/", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signWhatsApp(body))
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)

	in := handler.wait(t)
	gt.Value(t, in.ReplyToWamid).Equal("wamid.approval.1")
	gt.Value(t, in.UserID).Equal("+15550001111")
	gt.Value(t, in.Text).Equal("yes")
}

func TestWhatsAppWebhook_ButtonTap(t *testing.T) {
	handler := newRecordingReplyHandler()
	srv := newWhatsAppServer(handler)

	actionID := model.NewActionID()
	buttonID := model.FormatButtonID(types.ButtonKindApprove, actionID, "abcd2345")
	body, err := json.Marshal(map[string]any{
		"entry": []map[string]any{{
			"changes": []map[string]any{{
				"value": map[string]any{
					"messages": []map[string]any{{
						"from": "+15550001111",
						"id":   "wamid.inbound.2",
						"type": "interactive",
						"interactive": map[string]any{
							"type": "button_reply",
							"button_reply": map[string]string{
								"id":    buttonID,
								"title": "Approve",
							},
						},
					}},
				},
			}},
		}},
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hooks/whatsapp/", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signWhatsApp(body))
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)

	in := handler.wait(t)
	gt.Value(t, in.ActionID).Equal(actionID)
	gt.Value(t, in.ButtonID).Equal(buttonID)
	gt.Value(t, in.ButtonLabel).Equal("Approve")
}

func TestWhatsAppWebhook_IgnoresUnrelatedMessages(t *testing.T) {
	handler := newRecordingReplyHandler()
	srv := newWhatsAppServer(handler)

	// plain message, no reply context, no button
	body, err := json.Marshal(map[string]any{
		"entry": []map[string]any{{
			"changes": []map[string]any{{
				"value": map[string]any{
					"messages": []map[string]any{{
						"from": "+15550001111",
						"id":   "wamid.inbound.3",
						"type": "text",
						"text": map[string]string{"body": "hello there"},
					}},
				},
			}},
		}},
	})
	gt.NoError(t, err).Required()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hooks/whatsapp/", bytes.NewReader(body))
	req.Header.Set("X-Hub-Signature-256", signWhatsApp(body))
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)
	gt.Number(t, handler.count()).Equal(0)
}

const testSigningSecret = "signing-secret"

func signSlack(timestamp string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(testSigningSecret))
	fmt.Fprintf(mac, "v0:%s:%s", timestamp, body)
	return "v0=" + hex.EncodeToString(mac.Sum(nil))
}

func TestSlackInteraction(t *testing.T) {
	handler := newRecordingReplyHandler()
	srv := controller.New(controller.WithSlackInteraction(
		controller.NewSlackInteractionHandler(handler), testSigningSecret))

	actionID := model.NewActionID()
	buttonID := model.FormatButtonID(types.ButtonKindCancel, actionID, "")
	payload, err := json.Marshal(map[string]any{
		"type": "block_actions",
		"user": map[string]string{"id": "U12345"},
		"actions": []map[string]any{{
			"block_id":  "approval_buttons",
			"action_id": "approval_cancel",
			"value":     buttonID,
			"text":      map[string]any{"type": "plain_text", "text": "Cancel"},
		}},
	})
	gt.NoError(t, err).Required()

	form := url.Values{"payload": []string{string(payload)}}
	body := []byte(form.Encode())
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hooks/slack/interaction", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", signSlack(timestamp, body))
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)

	in := handler.wait(t)
	gt.Value(t, in.ActionID).Equal(actionID)
	gt.Value(t, in.ButtonID).Equal(buttonID)
	gt.Value(t, in.UserID).Equal("U12345")
}

func TestSlackInteraction_StaleTimestamp(t *testing.T) {
	handler := newRecordingReplyHandler()
	srv := controller.New(controller.WithSlackInteraction(
		controller.NewSlackInteractionHandler(handler), testSigningSecret))

	body := []byte("payload=%7B%7D")
	timestamp := strconv.FormatInt(time.Now().Add(-time.Hour).Unix(), 10)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/hooks/slack/interaction", bytes.NewReader(body))
	req.Header.Set("X-Slack-Request-Timestamp", timestamp)
	req.Header.Set("X-Slack-Signature", signSlack(timestamp, body))
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusUnauthorized)
}

func TestHealthEndpoint(t *testing.T) {
	srv := controller.New()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.ServeHTTP(rec, req)

	gt.Number(t, rec.Code).Equal(http.StatusOK)
}
