package memory

import (
	"context"
	"oamanager/datastore"
	"oamanager/models"
	"sort"
)

func (s *Store) ListAssets(ctx context.Context, filter models.AssetFilter) (models.Page[models.Asset], error) {
	s.mu.RLock()
	rows := make([]datastore.AssetRow, 0, len(s.assets))
	for _, a := range s.assets {
		row := s.row(a)
		if datastore.MatchesQuery(row, filter.Q) &&
			datastore.MatchesStatus(row, filter.Status) &&
			datastore.MatchesTeam(row, filter.Team) {
			rows = append(rows, row)
		}
	}
	s.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].UpdatedAt.Equal(rows[j].UpdatedAt) {
			return rows[i].UpdatedAt.After(rows[j].UpdatedAt)
		}
		return rows[i].UID < rows[j].UID
	})

	page := models.Paginate(rows, filter.Pagination)
	items := make([]models.Asset, 0, len(page.Items))
	for _, row := range page.Items {
		items = append(items, datastore.BuildAsset(row))
	}
	return models.NewPage(items, page.Total, filter.Pagination), nil
}

func (s *Store) GetAssetDetail(ctx context.Context, uid string) (models.AssetDetail, error) {
	uid = datastore.NormalizeString(uid)
	s.mu.RLock()
	a, ok := s.assets[uid]
	var row datastore.AssetRow
	if ok {
		row = s.row(a)
	}
	s.mu.RUnlock()
	if !ok {
		return models.AssetDetail{}, datastore.NotFound("asset %q", uid)
	}

	history, err := s.ListInspections(ctx, models.InspectionFilter{
		AssetUID:   uid,
		Pagination: models.Pagination{PageSize: datastore.AssetHistorySize},
	})
	if err != nil {
		return models.AssetDetail{}, err
	}
	return models.AssetDetail{Asset: datastore.BuildAsset(row), History: history.Items}, nil
}

func (s *Store) UpsertAsset(ctx context.Context, payload models.AssetPayload) (models.UpsertResult, error) {
	uid := datastore.NormalizeString(payload.UID)
	if uid == "" {
		return models.UpsertResult{}, datastore.Invalid("uid is required")
	}

	name := datastore.NormalizeString(payload.Name)
	assetType := datastore.FirstNonEmpty(payload.AssetType, payload.AssetsTypes)
	modelName := datastore.FirstNonEmpty(payload.ModelName, payload.Model)
	serial := datastore.FirstNonEmpty(payload.SerialNumber, payload.Serial)
	vendor := datastore.NormalizeString(payload.Vendor)
	status := datastore.NormalizeString(payload.Status)
	location := datastore.NormalizeString(payload.Location)
	barcode := datastore.NormalizeString(payload.BarcodePhotoURL)

	s.mu.Lock()
	now := s.now()
	ownerID := s.resolveOwner(payload.OwnerID.String())
	a, exists := s.assets[uid]
	if !exists {
		a = &asset{
			AssetRow: datastore.AssetRow{
				UID:    uid,
				Name:   models.NameUnassigned,
				Status: models.StatusInUse,
			},
			CreatedAt: now,
		}
		s.assets[uid] = a
	}
	setIfPresent(&a.Name, name)
	setIfPresent(&a.AssetType, assetType)
	setIfPresent(&a.ModelName, modelName)
	setIfPresent(&a.SerialNumber, serial)
	setIfPresent(&a.Vendor, vendor)
	setIfPresent(&a.Status, status)
	setIfPresent(&a.LocationText, location)
	setIfPresent(&a.BarcodePhotoURL, barcode)
	if ownerID != nil {
		a.OwnerID = ownerID
	}
	a.Metadata = a.Metadata.Merge(payload.Metadata)
	a.UpdatedAt = now
	s.version++
	snapshot, version := s.assetSnapshot()
	s.mu.Unlock()

	s.flush(assetsFile, version, snapshot)
	return models.UpsertResult{Asset: models.UpsertedAsset{UID: uid}, Created: !exists}, nil
}

func (s *Store) SoftDeleteAsset(ctx context.Context, uid string) (models.AssetStatus, error) {
	uid = datastore.NormalizeString(uid)
	s.mu.Lock()
	a, ok := s.assets[uid]
	if !ok {
		s.mu.Unlock()
		return models.AssetStatus{}, datastore.NotFound("asset %q", uid)
	}
	a.Status = models.StatusDisposed
	a.UpdatedAt = s.now()
	s.version++
	snapshot, version := s.assetSnapshot()
	s.mu.Unlock()

	s.flush(assetsFile, version, snapshot)
	return models.AssetStatus{UID: uid, Status: models.StatusDisposed}, nil
}

func (s *Store) GetAllAssetUIDs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	uids := make([]string, 0, len(s.assets))
	for uid := range s.assets {
		uids = append(uids, uid)
	}
	s.mu.RUnlock()
	sort.Strings(uids)
	return uids, nil
}

func setIfPresent(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
