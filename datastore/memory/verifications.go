package memory

import (
	"context"
	"oamanager/datastore"
	"oamanager/models"
	"sort"
	"strings"
)

func (s *Store) ListVerifications(ctx context.Context, filter models.VerificationFilter) (models.Page[models.VerificationSummary], error) {
	uidNeedle := strings.ToLower(datastore.NormalizeString(filter.AssetUID))

	s.mu.RLock()
	uids := make([]string, 0, len(s.assets))
	for uid, a := range s.assets {
		if uidNeedle != "" && !strings.Contains(strings.ToLower(uid), uidNeedle) {
			continue
		}
		if !datastore.MatchesTeam(s.row(a), filter.Team) {
			continue
		}
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	page := models.Paginate(uids, filter.Pagination)
	items := make([]models.VerificationSummary, 0, len(page.Items))
	for _, uid := range page.Items {
		row := s.row(s.assets[uid])
		items = append(items, datastore.BuildVerificationSummary(row, s.latestSignature(uid), s.latestSummary(uid)))
	}
	s.mu.RUnlock()

	return models.NewPage(items, page.Total, filter.Pagination), nil
}

func (s *Store) GetVerificationDetail(ctx context.Context, assetUID string) (models.VerificationDetail, error) {
	assetUID = datastore.NormalizeString(assetUID)
	s.mu.RLock()
	a, ok := s.assets[assetUID]
	if !ok {
		s.mu.RUnlock()
		return models.VerificationDetail{}, datastore.NotFound("asset %q", assetUID)
	}
	row := s.row(a)
	sig := s.latestSignature(assetUID)
	latest := s.latestSummary(assetUID)
	s.mu.RUnlock()

	history, err := s.ListInspections(ctx, models.InspectionFilter{
		AssetUID:   assetUID,
		Pagination: models.Pagination{PageSize: datastore.VerificationHistorySize},
	})
	if err != nil {
		return models.VerificationDetail{}, err
	}
	return datastore.BuildVerificationDetail(row, sig, latest, history.Items), nil
}

// latestSummary is called with s.mu held.
func (s *Store) latestSummary(assetUID string) *models.LatestInspection {
	ins := s.latestInspection(assetUID)
	if ins == nil {
		return nil
	}
	return &models.LatestInspection{ScannedAt: ins.ScannedAt, Status: ins.Status}
}
