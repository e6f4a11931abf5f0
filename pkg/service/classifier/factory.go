package classifier

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
)

// Settings is a user's LLM configuration
type Settings struct {
	APIKey string
	Model  string
}

// SettingsSource resolves a user's LLM configuration. A missing record is
// equivalent to empty settings.
type SettingsSource interface {
	LLMSettings(ctx context.Context, userID string) (*Settings, error)
}

// SettingsSourceFunc adapts a function to the SettingsSource interface
type SettingsSourceFunc func(ctx context.Context, userID string) (*Settings, error)

func (f SettingsSourceFunc) LLMSettings(ctx context.Context, userID string) (*Settings, error) {
	return f(ctx, userID)
}

// ClientBuilder constructs an LLM client from validated settings
type ClientBuilder func(ctx context.Context, settings *Settings) (gollem.LLMClient, error)

// Factory builds per-user intent classifiers. Validation failures return the
// sentinel error codes in errors.go so callers can degrade gracefully.
type Factory struct {
	settings SettingsSource
	build    ClientBuilder
}

// NewFactory creates a classifier factory
func NewFactory(settings SettingsSource, build ClientBuilder) *Factory {
	return &Factory{
		settings: settings,
		build:    build,
	}
}

var _ interfaces.ClassifierFactory = (*Factory)(nil)

// CreateForUser builds a classifier bound to the user's LLM settings
func (f *Factory) CreateForUser(ctx context.Context, userID string) (interfaces.IntentClassifier, error) {
	settings, err := f.settings.LLMSettings(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load LLM settings", goerr.V("user_id", userID))
	}
	if settings == nil {
		settings = &Settings{}
	}

	if settings.APIKey == "" {
		return nil, goerr.Wrap(ErrNoAPIKey, "no API key for user", goerr.V("user_id", userID))
	}
	if !isSupportedModel(settings.Model) {
		return nil, goerr.Wrap(ErrInvalidModel, "unsupported model", goerr.V("model", settings.Model))
	}

	llmClient, err := f.build(ctx, settings)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create LLM client", goerr.V("user_id", userID))
	}

	return newClassifier(llmClient), nil
}

// isSupportedModel accepts the Gemini model family. An empty model falls back
// to the builder's default.
func isSupportedModel(model string) bool {
	if model == "" {
		return true
	}
	return strings.HasPrefix(model, "gemini-")
}
