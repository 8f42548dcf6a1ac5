package notification

import (
	"context"
	"fmt"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/wb-go/wbf/logger"
	"gopkg.in/gomail.v2"
)

const channelEmail = "email"

type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       []string
}

// EmailNotifier mails booking updates to the facility staff.
type EmailNotifier struct {
	sender mailSender
	from   string
	to     []string
	logger logger.Logger
}

func NewEmailNotifier(cfg EmailConfig, logger logger.Logger) *EmailNotifier {
	if cfg.Host == "" || len(cfg.To) == 0 {
		logger.Warn("smtp host or recipients are empty, email notifications disabled")
		return &EmailNotifier{logger: logger}
	}

	return &EmailNotifier{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		to:     cfg.To,
		logger: logger,
	}
}

func (n *EmailNotifier) Notify(ctx context.Context, msg domain.Notification) domain.NotifyResult {
	res := domain.NotifyResult{Channel: channelEmail}

	if n.sender == nil {
		res.Err = errDisabled
		return res
	}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to...)
	m.SetHeader("Subject", fmt.Sprintf("[Turf] %s: %s", title(msg.Kind), msg.BookingID))
	m.SetBody("text/plain", body(msg))

	if err := n.sender.DialAndSend(m); err != nil {
		n.logger.Error("failed to send email notification",
			logger.String("booking_id", msg.BookingID),
			logger.String("error", err.Error()),
		)
		res.Err = fmt.Errorf("smtp send: %w", err)
		return res
	}

	res.Success = true
	return res
}
