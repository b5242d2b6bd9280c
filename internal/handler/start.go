package handler

import (
	"context"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// handleStart handles /start and /help. A pending image prompt is dropped.
func (h *Handler) handleStart(c tele.Context) error {
	userID := c.Sender().ID

	h.logger.Info("User started bot",
		zap.Int64("user_id", userID),
		zap.String("username", c.Sender().Username),
	)

	if err := h.modes.Reset(context.Background(), userID); err != nil {
		h.logger.Error("Failed to reset mode", zap.Int64("user_id", userID), zap.Error(err))
	}

	return c.Send(MsgWelcome, mainMenuMarkup())
}

// handleCreateImage makes the next text message an image prompt
func (h *Handler) handleCreateImage(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.modes.AwaitImagePrompt(context.Background(), userID); err != nil {
		h.logger.Error("Failed to set image mode", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(MsgError)
	}

	h.logger.Info("Awaiting image prompt", zap.Int64("user_id", userID))

	return c.Send(MsgAskImagePrompt, mainMenuMarkup())
}

// handleClearContext drops a pending image prompt
func (h *Handler) handleClearContext(c tele.Context) error {
	userID := c.Sender().ID

	if err := h.modes.Reset(context.Background(), userID); err != nil {
		h.logger.Error("Failed to reset mode", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(MsgError)
	}

	return c.Send(MsgContextCleared, mainMenuMarkup())
}
