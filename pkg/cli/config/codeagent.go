package config

import (
	"github.com/urfave/cli/v3"
	"github.com/intexura/approvalhub/pkg/service/codeagent"
)

// CodeAgent holds CLI flags for the code agent integration
type CodeAgent struct {
	baseURL string
	apiKey  string
}

// Flags returns CLI flags for code agent configuration
func (c *CodeAgent) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "codeagent-url",
			Usage:       "Base URL of the code agent API (task cancellation disabled when empty)",
			Category:    "Code agent",
			Sources:     cli.EnvVars("APPROVALHUB_CODEAGENT_URL"),
			Destination: &c.baseURL,
		},
		&cli.StringFlag{
			Name:        "codeagent-api-key",
			Usage:       "API key for the code agent",
			Category:    "Code agent",
			Sources:     cli.EnvVars("APPROVALHUB_CODEAGENT_API_KEY"),
			Destination: &c.apiKey,
		},
	}
}

// Configure builds the code agent client. Returns nil when the integration
// is not configured, which makes cancel_task buttons fail with a
// not-configured error.
func (c *CodeAgent) Configure() *codeagent.Client {
	if c.baseURL == "" {
		return nil
	}
	return codeagent.New(c.baseURL, c.apiKey)
}
