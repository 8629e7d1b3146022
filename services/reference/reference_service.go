package referenceservice

import (
	"context"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
)

// ReferenceService backs the pickers and the dashboard: read-only lookups
// that never mutate the store.
type ReferenceService interface {
	SearchUsers(ctx context.Context, query models.UserQuery) ([]models.UserRef, error)
	SearchAssets(ctx context.Context, q string) ([]models.AssetRef, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
}

type referenceService struct {
	store  datastore.DataStore
	logger *zap.Logger
}

func NewReferenceService(store datastore.DataStore, logger *zap.Logger) ReferenceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &referenceService{store: store, logger: logger}
}

func (s *referenceService) SearchUsers(ctx context.Context, query models.UserQuery) ([]models.UserRef, error) {
	users, err := s.store.SearchUsers(ctx, query)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.UserRef{}
	}
	return users, nil
}

func (s *referenceService) SearchAssets(ctx context.Context, q string) ([]models.AssetRef, error) {
	refs, err := s.store.SearchAssetRefs(ctx, q)
	if err != nil {
		return nil, err
	}
	if refs == nil {
		refs = []models.AssetRef{}
	}
	return refs, nil
}

func (s *referenceService) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	stats, err := s.store.DashboardStats(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	s.logger.Debug("dashboard stats computed",
		zap.Int("totalAssets", stats.TotalAssets),
		zap.Int("inspectedAssets", stats.InspectedAssets))
	return stats, nil
}
