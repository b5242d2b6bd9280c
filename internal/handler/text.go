package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"smartzenbot/internal/ai"
	"smartzenbot/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Telegram rejects longer messages
const maxMessageLen = 4096

// handleText handles free text based on the user's mode
func (h *Handler) handleText(c tele.Context) error {
	userID := c.Sender().ID
	text := c.Text()

	// Commands without a handler
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		return c.Send(MsgUnknownCommand)
	}

	awaiting, err := h.modes.ConsumeImagePrompt(context.Background(), userID)
	if err != nil {
		h.logger.Error("Failed to read mode", zap.Int64("user_id", userID), zap.Error(err))
		return c.Send(MsgError)
	}

	if awaiting {
		return h.replyWithImage(c, userID, text)
	}
	return h.replyWithChat(c, userID, text)
}

func (h *Handler) replyWithChat(c tele.Context, userID int64, text string) error {
	if _, err := domain.NormalizePrompt(text); err != nil {
		return c.Send(MsgEmptyPrompt)
	}

	h.notify(c, tele.Typing)

	reply, err := h.assistant.Chat(context.Background(), userID, text)
	if err != nil {
		return c.Send(failureMessage(err))
	}
	if reply == "" {
		return c.Send(MsgEmptyReply)
	}

	for _, part := range splitMessage(reply, maxMessageLen) {
		if err := c.Send(part); err != nil {
			return err
		}
	}
	return nil
}

func (h *Handler) replyWithImage(c tele.Context, userID int64, text string) error {
	if _, err := domain.NormalizePrompt(text); err != nil {
		return c.Send(MsgEmptyImageDesc)
	}

	h.notify(c, tele.UploadingPhoto)

	ref, err := h.assistant.Image(context.Background(), userID, text)
	if err != nil {
		return c.Send(failureMessage(err))
	}

	if err := c.Send(&tele.Photo{File: tele.FromURL(ref)}); err != nil {
		h.logger.Warn("Failed to send photo, falling back to link",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return c.Send(fmt.Sprintf(MsgImageLinkFormat, ref))
	}
	return nil
}

// handleMedia answers messages that carry no text
func (h *Handler) handleMedia(c tele.Context) error {
	return c.Send(MsgTextOnly)
}

func (h *Handler) notify(c tele.Context, action tele.ChatAction) {
	if err := c.Notify(action); err != nil {
		h.logger.Warn("Failed to send chat action",
			zap.String("action", string(action)),
			zap.Error(err),
		)
	}
}

// failureMessage maps an assistant error to the text shown to the user
func failureMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyPrompt):
		return MsgEmptyPrompt
	case errors.Is(err, ai.ErrNotConfigured):
		return MsgNotConfigured
	case errors.Is(err, ai.ErrNoImage):
		return MsgNoImage
	default:
		return MsgUnavailable
	}
}

// splitMessage cuts text into chunks of at most limit characters, preferring line breaks.
// Blank chunks are dropped.
func splitMessage(text string, limit int) []string {
	var parts []string
	for utf8.RuneCountInString(text) > limit {
		head := text[:runeOffset(text, limit)]
		cut := strings.LastIndex(head, "\n")
		if cut <= 0 {
			cut = len(head)
		}
		parts = appendPart(parts, text[:cut])
		text = strings.TrimLeft(text[cut:], "\n")
	}
	return appendPart(parts, text)
}

func appendPart(parts []string, part string) []string {
	if strings.TrimSpace(part) == "" {
		return parts
	}
	return append(parts, part)
}

// runeOffset returns the byte offset of the n-th rune of s
func runeOffset(s string, n int) int {
	for i := range s {
		if n == 0 {
			return i
		}
		n--
	}
	return len(s)
}
