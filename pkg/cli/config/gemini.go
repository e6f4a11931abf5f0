package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/urfave/cli/v3"
	"github.com/intexura/approvalhub/pkg/service/classifier"
)

// Gemini holds CLI flags for the Gemini LLM backend
type Gemini struct {
	projectID string
	location  string
}

// Flags returns CLI flags for Gemini configuration
func (g *Gemini) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "gemini-project-id",
			Usage:       "Google Cloud project ID for Gemini (intent classification disabled when empty)",
			Category:    "LLM",
			Sources:     cli.EnvVars("APPROVALHUB_GEMINI_PROJECT_ID"),
			Destination: &g.projectID,
		},
		&cli.StringFlag{
			Name:        "gemini-location",
			Usage:       "Google Cloud location for Gemini",
			Value:       "us-central1",
			Category:    "LLM",
			Sources:     cli.EnvVars("APPROVALHUB_GEMINI_LOCATION"),
			Destination: &g.location,
		},
	}
}

// ClientBuilder returns a builder that connects validated user settings to
// the shared Gemini backend. The builder fails when the backend is not
// configured, which the reply engine degrades to an unclear outcome.
func (g *Gemini) ClientBuilder() classifier.ClientBuilder {
	return func(ctx context.Context, settings *classifier.Settings) (gollem.LLMClient, error) {
		if g.projectID == "" {
			return nil, goerr.New("gemini-project-id is not configured")
		}

		var opts []gemini.Option
		if settings.Model != "" {
			opts = append(opts, gemini.WithModel(settings.Model))
		}

		client, err := gemini.New(ctx, g.projectID, g.location, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}

		return client, nil
	}
}
