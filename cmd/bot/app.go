package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"smartzenbot/internal/ai"
	"smartzenbot/internal/config"
	"smartzenbot/internal/handler"
	"smartzenbot/internal/service"
	"smartzenbot/internal/webhook"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// app is the wired bot: HTTP server, webhook lifecycle and mode store
type app struct {
	server     *http.Server
	lifecycle  *webhook.Lifecycle
	closeStore func()
	log        *zap.Logger
}

// newApp wires every component. Only local failures are returned; the Bot API is not contacted.
func newApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*app, error) {
	// Initialize mode store
	modeRepo, closeStore, err := newModeRepository(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize mode store: %w", err)
	}

	// Initialize AI backend
	backend, err := ai.New(ctx, cfg, log)
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to initialize AI backend: %w", err)
	}

	// Initialize services
	assistantService := service.NewAssistantService(backend, cfg.SystemPrompt, log)
	modeService := service.NewModeService(modeRepo)

	// Initialize Telegram bot. Updates arrive through the webhook server, never by polling.
	botClient := &http.Client{Timeout: 30 * time.Second}
	bot, err := tele.NewBot(tele.Settings{
		URL:         cfg.TelegramAPIURL,
		Token:       cfg.BotToken,
		Client:      botClient,
		Offline:     true,
		Synchronous: true,
		OnError: func(err error, c tele.Context) {
			fields := []zap.Field{zap.Error(err)}
			if c != nil && c.Sender() != nil {
				fields = append(fields, zap.Int64("user_id", c.Sender().ID))
			}
			log.Error("Bot error", fields...)
		},
	})
	if err != nil {
		closeStore()
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	// Initialize handler
	h := handler.NewHandler(bot, assistantService, modeService, log)
	h.RegisterHandlers()

	log.Info("Handlers registered")

	identifyBot(bot, log)

	return &app{
		server: &http.Server{
			Addr:              cfg.ListenAddr(),
			Handler:           webhook.NewServer(cfg.WebhookPath(), cfg.WebhookSecret, bot, log).Routes(),
			ReadHeaderTimeout: 10 * time.Second,
		},
		lifecycle:  webhook.NewLifecycle(bot, cfg.WebhookURL(), cfg.WebhookSecret, cfg.DropPendingUpdates, botClient, log),
		closeStore: closeStore,
		log:        log,
	}, nil
}

// identifyBot fills bot.Me from getMe, leaving it empty when the Bot API is unreachable
func identifyBot(bot *tele.Bot, log *zap.Logger) {
	data, err := bot.Raw("getMe", nil)
	if err != nil {
		log.Warn("Failed to identify bot, continuing", zap.Error(err))
		return
	}

	var resp struct {
		Result *tele.User `json:"result"`
	}
	if err := json.Unmarshal(data, &resp); err != nil || resp.Result == nil {
		log.Warn("Unexpected getMe response, continuing", zap.ByteString("body", data))
		return
	}

	bot.Me = resp.Result
	log.Info("Telegram bot initialized", zap.String("username", bot.Me.Username))
}

// run serves HTTP and registers the webhook until ctx is done or the server fails
func (a *app) run(ctx context.Context) error {
	serverErr := make(chan error, 1)
	go func() {
		a.log.Info("HTTP server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Register webhook; the server keeps running even when this fails
	_ = a.lifecycle.Register()

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("Shutdown signal received, stopping bot...")
	case runErr = <-serverErr:
		a.log.Error("HTTP server failed", zap.Error(runErr))
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		a.log.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	_ = a.lifecycle.Stop()
	a.closeStore()

	return runErr
}
