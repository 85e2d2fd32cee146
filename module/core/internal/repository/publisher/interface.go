package publisher

import (
	"context"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

type NotificationPublisher interface {
	Publish(ctx context.Context, n *domain.Notification) error
}
