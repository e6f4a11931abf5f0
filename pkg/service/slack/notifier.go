package slack

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
)

// DefaultCacheTTL is the default TTL for the DM channel cache
const DefaultCacheTTL = 5 * time.Minute

// cacheEntry holds a cached DM channel ID with expiration
type cacheEntry struct {
	channelID string
	expiresAt time.Time
}

// Notifier delivers user-facing messages as Slack DMs. The user ID on the
// notifier interface is the Slack user ID.
type Notifier struct {
	api      *slack.Client
	cacheTTL time.Duration

	mu    sync.RWMutex
	cache map[string]cacheEntry
}

// Option is a functional option for Notifier configuration
type Option func(*Notifier)

// WithCacheTTL sets the TTL for the DM channel cache
func WithCacheTTL(ttl time.Duration) Option {
	return func(n *Notifier) {
		n.cacheTTL = ttl
	}
}

// New creates a Slack notifier with the provided bot token
func New(token string, opts ...Option) (*Notifier, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}

	n := &Notifier{
		api:      slack.New(token),
		cacheTTL: DefaultCacheTTL,
		cache:    make(map[string]cacheEntry),
	}

	for _, opt := range opts {
		opt(n)
	}

	return n, nil
}

var _ interfaces.Notifier = (*Notifier)(nil)

// Send posts a text message to the user's DM channel
func (n *Notifier) Send(ctx context.Context, userID, text string) error {
	channelID, err := n.dmChannel(ctx, userID)
	if err != nil {
		return err
	}

	if _, _, err := n.api.PostMessageContext(ctx, channelID,
		slack.MsgOptionText(text, false)); err != nil {
		return goerr.Wrap(err, "failed to post message", goerr.V("user_id", userID))
	}

	return nil
}

// dmChannel resolves and caches the DM channel for a user
func (n *Notifier) dmChannel(ctx context.Context, userID string) (string, error) {
	now := time.Now()

	n.mu.RLock()
	entry, ok := n.cache[userID]
	n.mu.RUnlock()
	if ok && now.Before(entry.expiresAt) {
		return entry.channelID, nil
	}

	channel, _, _, err := n.api.OpenConversationContext(ctx, &slack.OpenConversationParameters{
		Users: []string{userID},
	})
	if err != nil {
		return "", goerr.Wrap(err, "failed to open DM channel", goerr.V("user_id", userID))
	}

	n.mu.Lock()
	n.cache[userID] = cacheEntry{
		channelID: channel.ID,
		expiresAt: now.Add(n.cacheTTL),
	}
	n.mu.Unlock()

	return channel.ID, nil
}
