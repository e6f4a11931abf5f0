package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	slackSvc "github.com/intexura/approvalhub/pkg/service/slack"
)

// Slack holds CLI flags for the Slack integration
type Slack struct {
	botToken      string
	signingSecret string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Usage:       "Slack bot token for DM notifications (xoxb-...)",
			Category:    "Slack",
			Sources:     cli.EnvVars("APPROVALHUB_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-signing-secret",
			Usage:       "Slack signing secret for interaction verification",
			Category:    "Slack",
			Sources:     cli.EnvVars("APPROVALHUB_SLACK_SIGNING_SECRET"),
			Destination: &s.signingSecret,
		},
	}
}

// Enabled reports whether the integration is configured
func (s *Slack) Enabled() bool {
	return s.botToken != ""
}

// SigningSecret returns the interaction signing secret
func (s *Slack) SigningSecret() string {
	return s.signingSecret
}

// Configure builds the Slack notifier. Returns nil when the integration is
// not configured.
func (s *Slack) Configure() (*slackSvc.Notifier, error) {
	if !s.Enabled() {
		return nil, nil
	}

	notifier, err := slackSvc.New(s.botToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Slack notifier")
	}

	return notifier, nil
}
