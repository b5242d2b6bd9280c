package middleware

import (
	"strings"
	"time"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Logging creates middleware that logs every handled update.
// Slash text is logged as "command" only when it names one of commands.
func Logging(logger *zap.Logger, commands ...string) tele.MiddlewareFunc {
	known := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		known[cmd] = true
	}

	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.Int("update_id", c.Update().ID),
				zap.String("kind", updateKind(c, known)),
				zap.Int64("duration_ms", time.Since(start).Milliseconds()),
			}
			if sender := c.Sender(); sender != nil {
				fields = append(fields, zap.Int64("user_id", sender.ID))
			}
			if chat := c.Chat(); chat != nil {
				fields = append(fields, zap.Int64("chat_id", chat.ID))
			}

			if err != nil {
				logger.Error("Failed to handle update", append(fields, zap.Error(err))...)
				return err
			}

			logger.Debug("Update handled", fields...)
			return nil
		}
	}
}

func updateKind(c tele.Context, known map[string]bool) string {
	msg := c.Message()
	switch {
	case msg == nil:
		return "other"
	case msg.Text == "":
		return "media"
	case len(msg.Text) > 1 && msg.Text[0] == '/':
		if known[commandName(msg.Text)] {
			return "command"
		}
		return "unknown_command"
	default:
		return "text"
	}
}

// commandName strips arguments and the @bot suffix: "/start@zen_bot now" is "/start"
func commandName(text string) string {
	name := strings.Fields(text)[0]
	if at := strings.IndexByte(name, '@'); at > 0 {
		name = name[:at]
	}
	return name
}
