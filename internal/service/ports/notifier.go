package ports

import (
	"context"

	"github.com/stpnv0/TurfBooker/internal/domain"
)

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) domain.NotifyResult
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, v any) error
}
