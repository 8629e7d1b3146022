package assetservice

import (
	"context"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
)

type AssetService interface {
	ListAssets(ctx context.Context, filter models.AssetFilter) (models.Page[models.Asset], error)
	GetAssetDetail(ctx context.Context, uid string) (models.AssetDetail, error)
	UpsertAsset(ctx context.Context, payload models.AssetPayload) (models.UpsertResult, error)
	DisposeAsset(ctx context.Context, uid string) (models.AssetStatus, error)
}

type assetService struct {
	store  datastore.DataStore
	logger *zap.Logger
}

func NewAssetService(store datastore.DataStore, logger *zap.Logger) AssetService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &assetService{store: store, logger: logger}
}

func (s *assetService) ListAssets(ctx context.Context, filter models.AssetFilter) (models.Page[models.Asset], error) {
	return s.store.ListAssets(ctx, filter)
}

func (s *assetService) GetAssetDetail(ctx context.Context, uid string) (models.AssetDetail, error) {
	return s.store.GetAssetDetail(ctx, uid)
}

func (s *assetService) UpsertAsset(ctx context.Context, payload models.AssetPayload) (models.UpsertResult, error) {
	res, err := s.store.UpsertAsset(ctx, payload)
	if err != nil {
		return res, err
	}
	s.logger.Info("asset saved", zap.String("uid", res.Asset.UID), zap.Bool("created", res.Created))
	return res, nil
}

// DisposeAsset is the soft delete: the record stays, its status changes.
func (s *assetService) DisposeAsset(ctx context.Context, uid string) (models.AssetStatus, error) {
	res, err := s.store.SoftDeleteAsset(ctx, uid)
	if err != nil {
		return res, err
	}
	s.logger.Info("asset disposed", zap.String("uid", res.UID))
	return res, nil
}
