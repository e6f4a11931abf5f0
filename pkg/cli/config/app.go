package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"github.com/intexura/approvalhub/pkg/service/classifier"
)

// AppConfig is the TOML application configuration carrying per-user settings
type AppConfig struct {
	path  string
	Users []UserConfig `toml:"user"`
}

// UserConfig is one user's settings. The LLM key gates the natural-language
// reply path; users without one still get buttons and nonce replies.
type UserConfig struct {
	ID        string `toml:"id"`
	Phone     string `toml:"phone"`
	LLMAPIKey string `toml:"llm_api_key"`
	LLMModel  string `toml:"llm_model"`
}

// Validate checks if the UserConfig is valid
func (u *UserConfig) Validate() error {
	if u.ID == "" {
		return goerr.New("user id is required")
	}
	return nil
}

// Flags returns CLI flags for app configuration
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "Path to the application TOML configuration",
			Sources:     cli.EnvVars("APPROVALHUB_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Load reads and validates the configuration file. A missing path yields an
// empty configuration.
func (a *AppConfig) Load() error {
	if a.path == "" {
		return nil
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return goerr.Wrap(err, "failed to read config file", goerr.V("path", a.path))
	}

	if err := toml.Unmarshal(data, a); err != nil {
		return goerr.Wrap(err, "failed to parse config file", goerr.V("path", a.path))
	}

	seen := make(map[string]bool, len(a.Users))
	for i := range a.Users {
		user := &a.Users[i]
		if err := user.Validate(); err != nil {
			return goerr.Wrap(err, "invalid user config", goerr.V("index", i))
		}
		if seen[user.ID] {
			return goerr.New("duplicate user id", goerr.V("id", user.ID))
		}
		seen[user.ID] = true
	}

	return nil
}

// User resolves a user by ID or phone number
func (a *AppConfig) User(id string) *UserConfig {
	for i := range a.Users {
		if a.Users[i].ID == id || a.Users[i].Phone == id {
			return &a.Users[i]
		}
	}
	return nil
}

// SettingsSource exposes the per-user LLM settings to the classifier factory
func (a *AppConfig) SettingsSource() classifier.SettingsSource {
	return classifier.SettingsSourceFunc(func(ctx context.Context, userID string) (*classifier.Settings, error) {
		user := a.User(userID)
		if user == nil {
			return nil, nil
		}
		return &classifier.Settings{
			APIKey: user.LLMAPIKey,
			Model:  user.LLMModel,
		}, nil
	})
}
