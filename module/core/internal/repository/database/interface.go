package database

import (
	"context"

	"github.com/nandanugg/kitty-compass/module/core/domain"
)

type LocationRepository interface {
	Insert(ctx context.Context, loc *domain.UserLocation) error
	GetLatest(ctx context.Context, userID string) (*domain.UserLocation, error)
	GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error)
	GetAllUsers(ctx context.Context) ([]domain.User, error)
}

type NotificationRepository interface {
	WasSent(ctx context.Context, userID, placeName string) (bool, error)
	Record(ctx context.Context, n *domain.Notification) error
}

type SubscriptionRepository interface {
	Upsert(ctx context.Context, sub *domain.Subscription) error
	Get(ctx context.Context, userID, collection string) (*domain.Subscription, error)
}
