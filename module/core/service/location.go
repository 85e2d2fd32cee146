package service

import (
	"context"

	"github.com/nandanugg/kitty-compass/module/core/domain"
	"github.com/nandanugg/kitty-compass/module/core/internal/repository/database"
)

type LocationService struct {
	repo database.LocationRepository
}

func NewLocationService(repo database.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

func (s *LocationService) SaveLocation(ctx context.Context, ul *domain.UserLocation) error {
	return s.repo.Insert(ctx, ul)
}

func (s *LocationService) GetLatest(ctx context.Context, userID string) (*domain.UserLocation, error) {
	return s.repo.GetLatest(ctx, userID)
}

func (s *LocationService) GetHistory(ctx context.Context, query *domain.HistoryQuery) ([]domain.UserLocation, error) {
	return s.repo.GetHistory(ctx, query)
}

func (s *LocationService) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.GetAllUsers(ctx)
}
