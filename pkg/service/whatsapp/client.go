package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/domain/model"
	"github.com/intexura/approvalhub/pkg/domain/types"
	"github.com/intexura/approvalhub/pkg/utils/safe"
)

// DefaultGraphAPIBase is the Meta Graph API endpoint for the Cloud API
const DefaultGraphAPIBase = "https://graph.facebook.com/v21.0"

// Client sends messages through the WhatsApp Cloud API. The user ID on the
// notifier interface is the recipient phone number in E.164 form.
type Client struct {
	apiBase       string
	phoneNumberID string
	accessToken   string
	httpClient    *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithAPIBase overrides the Graph API endpoint (tests)
func WithAPIBase(apiBase string) Option {
	return func(c *Client) {
		c.apiBase = apiBase
	}
}

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a WhatsApp Cloud API client
func New(phoneNumberID, accessToken string, opts ...Option) (*Client, error) {
	if phoneNumberID == "" {
		return nil, goerr.New("WhatsApp phone number ID is required")
	}
	if accessToken == "" {
		return nil, goerr.New("WhatsApp access token is required")
	}

	c := &Client{
		apiBase:       DefaultGraphAPIBase,
		phoneNumberID: phoneNumberID,
		accessToken:   accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

var _ interfaces.Notifier = (*Client)(nil)

// Send implements the outbound notifier. The returned wamid is discarded
// because confirmation messages are not tracked for replies.
func (c *Client) Send(ctx context.Context, userID, text string) error {
	_, err := c.SendText(ctx, userID, text)
	return err
}

// SendText sends a plain text message and returns its wamid
func (c *Client) SendText(ctx context.Context, to, text string) (string, error) {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "text",
		"text":              map[string]any{"body": text},
	}
	return c.post(ctx, payload)
}

// SendApprovalRequest sends the interactive proposal message with approve and
// cancel buttons. The returned wamid must be recorded as an ApprovalMessage
// so text replies to it can be routed back to the action.
func (c *Client) SendApprovalRequest(ctx context.Context, to string, action *model.Action) (string, error) {
	body := fmt.Sprintf("I'd like to create a %s: %s\n\nShould I go ahead?", action.Type, action.Title)
	if action.Nonce != "" {
		body += fmt.Sprintf("\n\nOr reply \"approve %s\" to confirm.", action.Nonce)
	}

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                to,
		"type":              "interactive",
		"interactive": map[string]any{
			"type": "button",
			"body": map[string]any{"text": body},
			"action": map[string]any{
				"buttons": []map[string]any{
					{
						"type": "reply",
						"reply": map[string]any{
							"id":    model.FormatButtonID(types.ButtonKindApprove, action.ID, action.Nonce),
							"title": "Approve",
						},
					},
					{
						"type": "reply",
						"reply": map[string]any{
							"id":    model.FormatButtonID(types.ButtonKindCancel, action.ID, ""),
							"title": "Cancel",
						},
					},
				},
			},
		},
	}
	return c.post(ctx, payload)
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

func (c *Client) post(ctx context.Context, payload map[string]any) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", goerr.Wrap(err, "failed to marshal message payload")
	}

	url := fmt.Sprintf("%s/%s/messages", c.apiBase, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", goerr.Wrap(err, "failed to create message request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", goerr.Wrap(err, "failed to call WhatsApp API")
	}
	defer safe.Close(ctx, resp.Body)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return "", goerr.Wrap(err, "failed to read WhatsApp API response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", goerr.New("WhatsApp API rejected the message",
			goerr.V("status", resp.StatusCode), goerr.V("body", string(data)))
	}

	var sendResp sendResponse
	if err := json.Unmarshal(data, &sendResp); err != nil {
		return "", goerr.Wrap(err, "failed to parse WhatsApp API response")
	}
	if len(sendResp.Messages) == 0 {
		return "", goerr.New("WhatsApp API returned no message ID")
	}

	return sendResp.Messages[0].ID, nil
}
