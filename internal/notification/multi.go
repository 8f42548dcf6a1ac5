package notification

import (
	"context"
	"errors"
	"strings"

	"github.com/stpnv0/TurfBooker/internal/domain"
	"github.com/stpnv0/TurfBooker/internal/service/ports"
)

// Multi fans a notification out to every channel. It succeeds when at least
// one channel delivered.
type Multi struct {
	channels []ports.Notifier
}

func NewMulti(channels ...ports.Notifier) *Multi {
	return &Multi{channels: channels}
}

func (m *Multi) Notify(ctx context.Context, n domain.Notification) domain.NotifyResult {
	var (
		delivered []string
		errs      []error
	)

	for _, ch := range m.channels {
		res := ch.Notify(ctx, n)
		if res.Success {
			delivered = append(delivered, res.Channel)
			continue
		}
		if res.Err != nil && !errors.Is(res.Err, errDisabled) {
			errs = append(errs, res.Err)
		}
	}

	return domain.NotifyResult{
		Success: len(delivered) > 0,
		Channel: strings.Join(delivered, ","),
		Err:     errors.Join(errs...),
	}
}
