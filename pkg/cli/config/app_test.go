package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/intexura/approvalhub/pkg/cli/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0644)).Required()
	return path
}

func loadConfig(t *testing.T, content string) *config.AppConfig {
	t.Helper()

	var cfg config.AppConfig
	cmd := newTestCommand(cfg.Flags(), func() error {
		return cfg.Load()
	})
	gt.NoError(t, cmd.Run(context.Background(), []string{"test", "--config", writeConfig(t, content)})).Required()
	return &cfg
}

func TestAppConfig_Load(t *testing.T) {
	t.Run("parses users", func(t *testing.T) {
		cfg := loadConfig(t, `
[[user]]
id = "user-1"
phone = "+15550001111"
llm_api_key = "key-1"
llm_model = "gemini-2.5-flash"

[[user]]
id = "user-2"
`)
		gt.Number(t, len(cfg.Users)).Equal(2)
		gt.Value(t, cfg.Users[0].LLMModel).Equal("gemini-2.5-flash")
	})

	t.Run("resolves users by ID and phone", func(t *testing.T) {
		cfg := loadConfig(t, `
[[user]]
id = "user-1"
phone = "+15550001111"
llm_api_key = "key-1"
`)
		gt.Value(t, cfg.User("user-1")).NotNil()
		gt.Value(t, cfg.User("+15550001111")).NotNil()
		gt.Value(t, cfg.User("unknown")).Nil()
	})

	t.Run("rejects duplicate user IDs", func(t *testing.T) {
		var cfg config.AppConfig
		cmd := newTestCommand(cfg.Flags(), func() error {
			return cfg.Load()
		})
		err := cmd.Run(context.Background(), []string{"test", "--config", writeConfig(t, `
[[user]]
id = "user-1"

[[user]]
id = "user-1"
`)})
		gt.Error(t, err)
	})

	t.Run("settings source maps user config", func(t *testing.T) {
		cfg := loadConfig(t, `
[[user]]
id = "user-1"
llm_api_key = "key-1"
llm_model = "gemini-2.5-pro"
`)
		settings, err := cfg.SettingsSource().LLMSettings(context.Background(), "user-1")
		gt.NoError(t, err).Required()
		gt.Value(t, settings.APIKey).Equal("key-1")
		gt.Value(t, settings.Model).Equal("gemini-2.5-pro")

		missing, err := cfg.SettingsSource().LLMSettings(context.Background(), "nobody")
		gt.NoError(t, err).Required()
		gt.Value(t, missing).Nil()
	})
}
