package webhook

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// ErrNoPublicURL is returned by Register when no public URL is configured
var ErrNoPublicURL = errors.New("webhook public url is not configured")

// Registrar registers and removes the webhook on the Bot API. *tele.Bot satisfies it.
type Registrar interface {
	SetWebhook(w *tele.Webhook) error
	RemoveWebhook(dropPending ...bool) error
}

// Lifecycle manages the webhook registration of the bot
type Lifecycle struct {
	registrar   Registrar
	publicURL   string
	secret      string
	dropPending bool
	client      *http.Client
	logger      *zap.Logger

	registered bool
}

// NewLifecycle creates a lifecycle manager. client is the Bot API HTTP client closed on Stop.
func NewLifecycle(registrar Registrar, publicURL, secret string, dropPending bool, client *http.Client, logger *zap.Logger) *Lifecycle {
	return &Lifecycle{
		registrar:   registrar,
		publicURL:   publicURL,
		secret:      secret,
		dropPending: dropPending,
		client:      client,
		logger:      logger,
	}
}

// Register points Telegram at the public URL. Failures are logged and returned; callers keep serving.
func (l *Lifecycle) Register() error {
	if l.publicURL == "" {
		l.logger.Warn("WEBHOOK_BASE_URL is not set, skipping webhook registration")
		return ErrNoPublicURL
	}

	err := l.registrar.SetWebhook(&tele.Webhook{
		SecretToken: l.secret,
		DropUpdates: l.dropPending,
		Endpoint:    &tele.WebhookEndpoint{PublicURL: l.publicURL},
	})
	if err != nil {
		l.logger.Error("Failed to register webhook", zap.String("url", l.publicURL), zap.Error(err))
		return err
	}

	l.registered = true
	l.logger.Info("Webhook registered",
		zap.String("url", l.publicURL),
		zap.Bool("drop_pending_updates", l.dropPending),
	)
	return nil
}

// Stop removes the webhook and releases idle Bot API connections
func (l *Lifecycle) Stop() error {
	var err error
	if l.registered {
		if err = l.registrar.RemoveWebhook(); err != nil {
			l.logger.Error("Failed to remove webhook", zap.Error(err))
		} else {
			l.registered = false
			l.logger.Info("Webhook removed")
		}
	}

	if l.client != nil {
		l.client.CloseIdleConnections()
	}

	return err
}
