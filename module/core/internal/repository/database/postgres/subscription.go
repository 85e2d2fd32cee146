package postgres

import (
	"context"
	"database/sql"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/database"
)

var _ database.SubscriptionRepository = (*SubscriptionRepo)(nil)

type SubscriptionRepo struct {
	db *sql.DB
}

func NewSubscriptionRepo(db *sql.DB) *SubscriptionRepo {
	return &SubscriptionRepo{db: db}
}

func (r *SubscriptionRepo) Upsert(ctx context.Context, sub *domain.Subscription) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO subscriptions (user_id, collection, callback_url, created_at) VALUES ($1, $2, $3, $4) ON CONFLICT (user_id, collection) DO UPDATE SET callback_url = EXCLUDED.callback_url`,
		sub.UserID, sub.Collection, sub.CallbackURL, sub.CreatedAt,
	)
	return err
}

func (r *SubscriptionRepo) Get(ctx context.Context, userID, collection string) (*domain.Subscription, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, collection, callback_url, created_at FROM subscriptions WHERE user_id = $1 AND collection = $2`,
		userID, collection,
	)

	var sub domain.Subscription
	if err := row.Scan(&sub.UserID, &sub.Collection, &sub.CallbackURL, &sub.CreatedAt); err != nil {
		return nil, err
	}
	return &sub, nil
}
