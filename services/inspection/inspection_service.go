package inspectionservice

import (
	"context"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
)

type InspectionService interface {
	ListInspections(ctx context.Context, filter models.InspectionFilter) (models.Page[models.Inspection], error)
	CreateInspection(ctx context.Context, payload models.InspectionPayload) (models.Inspection, error)
	UpdateInspection(ctx context.Context, id string, patch models.InspectionPatch) (models.Inspection, error)
	DeleteInspection(ctx context.Context, id string) (bool, error)
}

type inspectionService struct {
	store  datastore.DataStore
	logger *zap.Logger
}

func NewInspectionService(store datastore.DataStore, logger *zap.Logger) InspectionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &inspectionService{store: store, logger: logger}
}

func (s *inspectionService) ListInspections(ctx context.Context, filter models.InspectionFilter) (models.Page[models.Inspection], error) {
	return s.store.ListInspections(ctx, filter)
}

func (s *inspectionService) CreateInspection(ctx context.Context, payload models.InspectionPayload) (models.Inspection, error) {
	ins, err := s.store.CreateInspection(ctx, payload)
	if err != nil {
		return ins, err
	}
	s.logger.Info("inspection recorded", zap.String("id", ins.ID), zap.String("assetUid", ins.AssetUID))
	return ins, nil
}

func (s *inspectionService) UpdateInspection(ctx context.Context, id string, patch models.InspectionPatch) (models.Inspection, error) {
	ins, err := s.store.UpdateInspection(ctx, id, patch)
	if err != nil {
		return ins, err
	}
	s.logger.Info("inspection updated", zap.String("id", ins.ID))
	return ins, nil
}

func (s *inspectionService) DeleteInspection(ctx context.Context, id string) (bool, error) {
	existed, err := s.store.DeleteInspection(ctx, id)
	if err != nil {
		return false, err
	}
	if existed {
		s.logger.Info("inspection deleted", zap.String("id", id))
	}
	return existed, nil
}
