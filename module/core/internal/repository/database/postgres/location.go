package postgres

import (
	"context"
	"database/sql"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/database"
)

var _ database.LocationRepository = (*LocationRepo)(nil)

type LocationRepo struct {
	db *sql.DB
}

func NewLocationRepo(db *sql.DB) *LocationRepo {
	return &LocationRepo{db: db}
}

func (r *LocationRepo) Insert(ctx context.Context, loc *domain.UserLocation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_locations (user_id, latitude, longitude, recorded_at) VALUES ($1, $2, $3, $4)`,
		loc.UserID, loc.Location.Lat, loc.Location.Lon, loc.Location.Timestamp,
	)
	return err
}

func (r *LocationRepo) GetLatest(ctx context.Context, userID string) (*domain.UserLocation, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT user_id, latitude, longitude, recorded_at FROM user_locations WHERE user_id = $1 ORDER BY recorded_at DESC LIMIT 1`,
		userID,
	)

	var ul domain.UserLocation
	if err := row.Scan(&ul.UserID, &ul.Location.Lat, &ul.Location.Lon, &ul.Location.Timestamp); err != nil {
		return nil, err
	}
	return &ul, nil
}

func (r *LocationRepo) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, latitude, longitude, recorded_at FROM user_locations WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at <= $3 ORDER BY recorded_at ASC`,
		query.UserID, query.Start, query.End,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.UserLocation
	for rows.Next() {
		var ul domain.UserLocation
		if err := rows.Scan(&ul.UserID, &ul.Location.Lat, &ul.Location.Lon, &ul.Location.Timestamp); err != nil {
			return nil, err
		}
		results = append(results, ul)
	}
	return results, rows.Err()
}

func (r *LocationRepo) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT user_id FROM user_locations ORDER BY user_id`,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var results []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.UserID); err != nil {
			return nil, err
		}
		results = append(results, u)
	}
	return results, rows.Err()
}
