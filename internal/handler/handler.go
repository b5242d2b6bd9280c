package handler

import (
	"smartzenbot/internal/middleware"
	"smartzenbot/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions
type Handler struct {
	bot       *tele.Bot
	assistant *service.AssistantService
	modes     *service.ModeService
	logger    *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	bot *tele.Bot,
	assistant *service.AssistantService,
	modes *service.ModeService,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		bot:       bot,
		assistant: assistant,
		modes:     modes,
		logger:    logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	// Must run before Handle so every endpoint is wrapped
	h.bot.Use(middleware.Logging(h.logger, cmdStart, cmdHelp))

	// Commands
	h.bot.Handle(cmdStart, h.handleStart)
	h.bot.Handle(cmdHelp, h.handleStart)

	// Reply keyboard labels
	h.bot.Handle(&btnCreateImage, h.handleCreateImage)
	h.bot.Handle(&btnClearContext, h.handleClearContext)

	// Free text
	h.bot.Handle(tele.OnText, h.handleText)

	// Messages without text
	for _, endpoint := range []string{
		tele.OnMedia,
		tele.OnLocation,
		tele.OnVenue,
		tele.OnContact,
		tele.OnPoll,
		tele.OnDice,
	} {
		h.bot.Handle(endpoint, h.handleMedia)
	}
}

const (
	cmdStart = "/start"
	cmdHelp  = "/help"
)

// Reply keyboard buttons
var (
	btnCreateImage = tele.Btn{
		Text: "🎨 Create image",
	}
	btnClearContext = tele.Btn{
		Text: "🧹 Clear context",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{ResizeKeyboard: true}
	menu.Reply(
		menu.Row(btnCreateImage, btnClearContext),
	)
	return menu
}
