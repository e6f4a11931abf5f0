package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/intexura/approvalhub/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux

	whatsAppHandler     *WhatsAppWebhookHandler
	whatsAppAppSecret   string
	whatsAppVerifyToken string

	slackHandler       *SlackInteractionHandler
	slackSigningSecret string
}

type Options func(*Server)

// WithWhatsAppWebhook enables the WhatsApp webhook endpoints. appSecret signs
// inbound payloads, verifyToken answers the subscription handshake.
func WithWhatsAppWebhook(handler *WhatsAppWebhookHandler, appSecret, verifyToken string) Options {
	return func(s *Server) {
		s.whatsAppHandler = handler
		s.whatsAppAppSecret = appSecret
		s.whatsAppVerifyToken = verifyToken
	}
}

// WithSlackInteraction enables the Slack interactive-message endpoint
func WithSlackInteraction(handler *SlackInteractionHandler, signingSecret string) Options {
	return func(s *Server) {
		s.slackHandler = handler
		s.slackSigningSecret = signingSecret
	}
}

func New(opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// WhatsApp webhook endpoints - no auth, uses signature verification
	if s.whatsAppHandler != nil {
		r.Route("/hooks/whatsapp", func(r chi.Router) {
			r.Get("/", verifyHandler(s.whatsAppVerifyToken))
			r.With(WhatsAppSignatureMiddleware(s.whatsAppAppSecret)).Post("/", s.whatsAppHandler.ServeHTTP)
		})
	}

	// Slack interaction endpoint - no auth, uses signature verification
	if s.slackHandler != nil {
		r.Route("/hooks/slack", func(r chi.Router) {
			r.Use(SlackSignatureMiddleware(s.slackSigningSecret))
			r.Post("/interaction", s.slackHandler.ServeHTTP)
		})
	}

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
