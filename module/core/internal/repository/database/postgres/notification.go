package postgres

import (
	"context"
	"database/sql"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/database"
)

var _ database.NotificationRepository = (*NotificationRepo)(nil)

type NotificationRepo struct {
	db *sql.DB
}

func NewNotificationRepo(db *sql.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) WasSent(ctx context.Context, userID, placeName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sent_notifications WHERE user_id = $1 AND place_name = $2)`,
		userID, placeName,
	).Scan(&exists)
	return exists, err
}

func (r *NotificationRepo) Record(ctx context.Context, n *domain.Notification) error {
	var placeName sql.NullString
	if n.Place != nil {
		placeName = sql.NullString{String: n.Place.Name, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sent_notifications (id, user_id, kind, place_name, text, sent_at) VALUES ($1, $2, $3, $4, $5, $6)`,
		n.ID, n.UserID, string(n.Kind), placeName, n.Text, n.Timestamp,
	)
	return err
}
