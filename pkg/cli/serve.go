package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/intexura/approvalhub/pkg/cli/config"
	httpctrl "github.com/intexura/approvalhub/pkg/controller/http"
	"github.com/intexura/approvalhub/pkg/domain/interfaces"
	"github.com/intexura/approvalhub/pkg/service/classifier"
	"github.com/intexura/approvalhub/pkg/usecase"
	"github.com/intexura/approvalhub/pkg/utils/errutil"
	"github.com/intexura/approvalhub/pkg/utils/logging"
	"github.com/intexura/approvalhub/pkg/utils/safe"
)

func cmdServe() *cli.Command {
	var addr string
	var baseURL string
	var appCfg config.AppConfig
	var repoCfg config.Repository
	var whatsAppCfg config.WhatsApp
	var slackCfg config.Slack
	var geminiCfg config.Gemini
	var codeAgentCfg config.CodeAgent

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("APPROVALHUB_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Base URL for task deep links (e.g., https://your-domain.com)",
			Sources:     cli.EnvVars("APPROVALHUB_BASE_URL"),
			Destination: &baseURL,
		},
	}

	// Add shared config flags
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, whatsAppCfg.Flags()...)
	flags = append(flags, slackCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)
	flags = append(flags, codeAgentCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			if err := appCfg.Load(); err != nil {
				return goerr.Wrap(err, "failed to load application config")
			}

			repo, events, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, repo)

			whatsAppClient, err := whatsAppCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize WhatsApp client")
			}

			slackNotifier, err := slackCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to initialize Slack notifier")
			}

			var notifier interfaces.Notifier
			switch {
			case whatsAppClient != nil:
				notifier = whatsAppClient
				logger.Info("WhatsApp notifications enabled")
			case slackNotifier != nil:
				notifier = slackNotifier
				logger.Info("Slack notifications enabled")
			default:
				return goerr.New("either WhatsApp or Slack must be configured for notifications")
			}

			classifiers := classifier.NewFactory(appCfg.SettingsSource(), geminiCfg.ClientBuilder())

			opts := []usecase.ReplyOption{
				usecase.WithEventPublisher(events),
				usecase.WithBaseURL(baseURL),
			}
			if agent := codeAgentCfg.Configure(); agent != nil {
				opts = append(opts, usecase.WithCodeAgent(agent))
				logger.Info("Code agent integration enabled")
			}

			replyUC := usecase.NewReplyUseCase(repo, notifier, classifiers, opts...)

			var serverOpts []httpctrl.Options
			if whatsAppClient != nil {
				serverOpts = append(serverOpts, httpctrl.WithWhatsAppWebhook(
					httpctrl.NewWhatsAppWebhookHandler(replyUC),
					whatsAppCfg.AppSecret(),
					whatsAppCfg.VerifyToken(),
				))
			}
			if slackNotifier != nil && slackCfg.SigningSecret() != "" {
				serverOpts = append(serverOpts, httpctrl.WithSlackInteraction(
					httpctrl.NewSlackInteractionHandler(replyUC),
					slackCfg.SigningSecret(),
				))
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(serverOpts...),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return goerr.Wrap(err, "HTTP server failed")
			case sig := <-sigCh:
				logger.Info("Shutting down", "signal", sig.String())
			case <-ctx.Done():
				logger.Info("Shutting down", "reason", "context cancelled")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				_ = errutil.Handle(ctx, err, "failed to shut down HTTP server")
			}

			return nil
		},
	}
}
