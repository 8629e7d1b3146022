package memory

import (
	"context"
	"oamanager/datastore"
	"oamanager/models"
	"sort"
	"strings"
)

// sortInspections orders newest scan first; equal scan times fall back to id.
func sortInspections(list []models.Inspection) {
	sort.Slice(list, func(i, j int) bool {
		if !list[i].ScannedAt.Equal(list[j].ScannedAt) {
			return list[i].ScannedAt.After(list[j].ScannedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func matchesInspection(ins models.Inspection, filter models.InspectionFilter) bool {
	if uid := datastore.NormalizeString(filter.AssetUID); uid != "" && !strings.EqualFold(ins.AssetUID, uid) {
		return false
	}
	if filter.Synced != nil && ins.Synced != *filter.Synced {
		return false
	}
	if filter.From != nil && ins.ScannedAt.Before(*filter.From) {
		return false
	}
	if filter.To != nil && ins.ScannedAt.After(*filter.To) {
		return false
	}
	return true
}

func (s *Store) ListInspections(ctx context.Context, filter models.InspectionFilter) (models.Page[models.Inspection], error) {
	s.mu.RLock()
	matched := make([]models.Inspection, 0)
	for _, ins := range s.inspections {
		if matchesInspection(ins, filter) {
			matched = append(matched, ins)
		}
	}
	s.mu.RUnlock()

	sortInspections(matched)
	return models.Paginate(matched, filter.Pagination), nil
}

func (s *Store) CreateInspection(ctx context.Context, payload models.InspectionPayload) (models.Inspection, error) {
	assetUID := datastore.FirstNonEmpty(payload.AssetUID, payload.AssetCode)
	if assetUID == "" {
		return models.Inspection{}, datastore.Invalid("assetUid is required")
	}

	s.mu.Lock()
	now := s.now()
	ins := models.Inspection{
		ID:              datastore.FirstNonEmpty(payload.ID, datastore.DefaultInspectionID(assetUID, now)),
		AssetUID:        assetUID,
		Status:          datastore.FirstNonEmpty(payload.Status, models.StatusInUse),
		Memo:            datastore.NormalizeString(payload.Memo),
		ScannedAt:       now,
		UserTeam:        datastore.NormalizeString(payload.UserTeam),
		UserID:          datastore.FormatUserID(datastore.NormalizeUserID(payload.UserID.String())),
		AssetType:       datastore.NormalizeString(payload.AssetType),
		BarcodePhotoURL: datastore.NormalizeString(payload.BarcodePhotoURL),
	}
	if t := datastore.ParseTimestamp(payload.ScannedAt.String()); t != nil {
		ins.ScannedAt = *t
	}
	if b := datastore.ParseBoolean(payload.Synced.String()); b != nil {
		ins.Synced = *b
	}
	if b := datastore.ParseBoolean(payload.IsVerified.String()); b != nil {
		ins.IsVerified = *b
	}
	if _, exists := s.inspections[ins.ID]; exists {
		s.mu.Unlock()
		return models.Inspection{}, datastore.Invalid("inspection %q already exists", ins.ID)
	}
	s.inspections[ins.ID] = ins
	s.version++
	snapshot, version := s.inspectionSnapshot()
	s.mu.Unlock()

	s.flush(inspectionsFile, version, snapshot)
	return ins, nil
}

func (s *Store) UpdateInspection(ctx context.Context, id string, patch models.InspectionPatch) (models.Inspection, error) {
	id = datastore.NormalizeString(id)
	s.mu.Lock()
	ins, ok := s.inspections[id]
	if !ok {
		s.mu.Unlock()
		return models.Inspection{}, datastore.NotFound("inspection %q", id)
	}
	setIfPresent(&ins.Status, datastore.NormalizeString(patch.Status))
	if patch.Memo.Set {
		if patch.Memo.Null {
			ins.Memo = ""
		} else {
			setIfPresent(&ins.Memo, datastore.NormalizeString(patch.Memo.Value))
		}
	}
	if t := datastore.ParseTimestamp(patch.ScannedAt.String()); t != nil {
		ins.ScannedAt = *t
	}
	if b := datastore.ParseBoolean(patch.Synced.String()); b != nil {
		ins.Synced = *b
	}
	setIfPresent(&ins.UserTeam, datastore.NormalizeString(patch.UserTeam))
	if uid := datastore.NormalizeUserID(patch.UserID.String()); uid != nil {
		ins.UserID = datastore.FormatUserID(uid)
	}
	setIfPresent(&ins.AssetType, datastore.NormalizeString(patch.AssetType))
	if b := datastore.ParseBoolean(patch.IsVerified.String()); b != nil {
		ins.IsVerified = *b
	}
	setIfPresent(&ins.BarcodePhotoURL, datastore.NormalizeString(patch.BarcodePhotoURL))
	s.inspections[id] = ins
	s.version++
	snapshot, version := s.inspectionSnapshot()
	s.mu.Unlock()

	s.flush(inspectionsFile, version, snapshot)
	return ins, nil
}

func (s *Store) DeleteInspection(ctx context.Context, id string) (bool, error) {
	id = datastore.NormalizeString(id)
	s.mu.Lock()
	if _, ok := s.inspections[id]; !ok {
		s.mu.Unlock()
		return false, nil
	}
	delete(s.inspections, id)
	s.version++
	snapshot, version := s.inspectionSnapshot()
	s.mu.Unlock()

	s.flush(inspectionsFile, version, snapshot)
	return true, nil
}

func (s *Store) LatestInspectionByAsset(ctx context.Context, assetUID string) (*models.Inspection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latestInspection(assetUID), nil
}

// latestInspection is called with s.mu held.
func (s *Store) latestInspection(assetUID string) *models.Inspection {
	var latest *models.Inspection
	for _, ins := range s.inspections {
		if ins.AssetUID != assetUID {
			continue
		}
		if latest == nil || ins.ScannedAt.After(latest.ScannedAt) ||
			(ins.ScannedAt.Equal(latest.ScannedAt) && ins.ID < latest.ID) {
			found := ins
			latest = &found
		}
	}
	return latest
}
