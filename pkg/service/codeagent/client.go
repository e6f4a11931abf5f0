package codeagent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/utils/safe"
)

// Cancellation error codes surfaced by the code agent API
var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrInvalidNonce       = errors.New("invalid cancellation nonce")
	ErrNonceExpired       = errors.New("cancellation nonce expired")
	ErrNotOwner           = errors.New("task owned by another user")
	ErrTaskNotCancellable = errors.New("task is not cancellable")
)

// Client calls the code agent HTTP API
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option is a functional option for Client configuration
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a code agent client
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

var _ interfaces.CodeAgentClient = (*Client)(nil)

type cancelRequest struct {
	Nonce  string `json:"nonce"`
	UserID string `json:"user_id"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CancelTask asks the code agent to cancel a running task. API error codes
// are mapped to the sentinel errors above so callers can pick user copy.
func (c *Client) CancelTask(ctx context.Context, taskID, nonce, userID string) error {
	body, err := json.Marshal(cancelRequest{Nonce: nonce, UserID: userID})
	if err != nil {
		return goerr.Wrap(err, "failed to marshal cancel request")
	}

	url := fmt.Sprintf("%s/api/tasks/%s/cancel", c.baseURL, taskID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return goerr.Wrap(err, "failed to create cancel request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return goerr.Wrap(err, "failed to call code agent", goerr.V("task_id", taskID))
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return goerr.Wrap(err, "failed to read code agent error response",
			goerr.V("status", resp.StatusCode))
	}

	var errResp errorResponse
	if err := json.Unmarshal(data, &errResp); err == nil {
		if mapped := mapErrorCode(errResp.Error.Code); mapped != nil {
			return goerr.Wrap(mapped, "task cancellation rejected",
				goerr.V("task_id", taskID), goerr.V("code", errResp.Error.Code))
		}
	}

	return goerr.New("unexpected code agent response",
		goerr.V("task_id", taskID), goerr.V("status", resp.StatusCode), goerr.V("body", string(data)))
}

func mapErrorCode(code string) error {
	switch code {
	case "TASK_NOT_FOUND":
		return ErrTaskNotFound
	case "INVALID_NONCE":
		return ErrInvalidNonce
	case "NONCE_EXPIRED":
		return ErrNonceExpired
	case "NOT_OWNER":
		return ErrNotOwner
	case "TASK_NOT_CANCELLABLE":
		return ErrTaskNotCancellable
	default:
		return nil
	}
}
