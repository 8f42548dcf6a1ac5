package notification

import (
	"context"
	"errors"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/wb-go/wbf/logger"
)

const channelTelegram = "telegram"

var errDisabled = errors.New("channel disabled")

type botSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts booking updates into the staff chat.
type TelegramNotifier struct {
	bot    botSender
	chatID int64
	logger logger.Logger
}

func NewTelegramNotifier(token string, chatID int64, logger logger.Logger) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		logger.Warn("telegram bot token or chat id is empty, notifications disabled")
		return &TelegramNotifier{bot: nil, logger: logger}, nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create telegram bot: %w", err)
	}

	return &TelegramNotifier{bot: bot, chatID: chatID, logger: logger}, nil
}

func (n *TelegramNotifier) Notify(ctx context.Context, msg domain.Notification) domain.NotifyResult {
	res := domain.NotifyResult{Channel: channelTelegram}

	if n.bot == nil {
		n.logger.Debug("notification skipped (bot disabled)",
			logger.String("booking_id", msg.BookingID),
			logger.String("kind", string(msg.Kind)),
		)
		res.Err = errDisabled
		return res
	}

	if err := ctx.Err(); err != nil {
		n.logger.Debug("notification skipped (context cancelled)",
			logger.Int64("chat_id", n.chatID),
		)
		res.Err = err
		return res
	}

	text := "*" + title(msg.Kind) + "*\n\n" + body(msg)
	tm := tgbotapi.NewMessage(n.chatID, text)
	tm.ParseMode = "Markdown"

	if _, err := n.bot.Send(tm); err != nil {
		n.logger.Error("failed to send telegram notification",
			logger.Int64("chat_id", n.chatID),
			logger.String("error", err.Error()),
		)
		res.Err = fmt.Errorf("telegram send: %w", err)
		return res
	}

	res.Success = true
	return res
}
