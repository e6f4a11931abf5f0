package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/intexura/approvalhub/pkg/service/whatsapp"
)

// WhatsApp holds CLI flags for the WhatsApp Cloud API integration
type WhatsApp struct {
	phoneNumberID string
	accessToken   string
	appSecret     string
	verifyToken   string
}

// Flags returns CLI flags for WhatsApp configuration
func (w *WhatsApp) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "whatsapp-phone-number-id",
			Usage:       "WhatsApp Business phone number ID",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("APPROVALHUB_WHATSAPP_PHONE_NUMBER_ID"),
			Destination: &w.phoneNumberID,
		},
		&cli.StringFlag{
			Name:        "whatsapp-access-token",
			Usage:       "WhatsApp Cloud API access token",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("APPROVALHUB_WHATSAPP_ACCESS_TOKEN"),
			Destination: &w.accessToken,
		},
		&cli.StringFlag{
			Name:        "whatsapp-app-secret",
			Usage:       "Meta app secret for webhook signature verification",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("APPROVALHUB_WHATSAPP_APP_SECRET"),
			Destination: &w.appSecret,
		},
		&cli.StringFlag{
			Name:        "whatsapp-verify-token",
			Usage:       "Token answering the webhook subscription handshake",
			Category:    "WhatsApp",
			Sources:     cli.EnvVars("APPROVALHUB_WHATSAPP_VERIFY_TOKEN"),
			Destination: &w.verifyToken,
		},
	}
}

// Enabled reports whether the integration is configured at all
func (w *WhatsApp) Enabled() bool {
	return w.phoneNumberID != "" || w.accessToken != ""
}

// AppSecret returns the webhook signing secret
func (w *WhatsApp) AppSecret() string {
	return w.appSecret
}

// VerifyToken returns the webhook handshake token
func (w *WhatsApp) VerifyToken() string {
	return w.verifyToken
}

// Configure builds the WhatsApp client. Returns nil when the integration is
// not configured.
func (w *WhatsApp) Configure() (*whatsapp.Client, error) {
	if !w.Enabled() {
		return nil, nil
	}

	if w.appSecret == "" || w.verifyToken == "" {
		return nil, goerr.New("whatsapp-app-secret and whatsapp-verify-token are required when WhatsApp is enabled")
	}

	client, err := whatsapp.New(w.phoneNumberID, w.accessToken)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create WhatsApp client")
	}

	return client, nil
}
