package memory

import (
	"context"
	"oamanager/datastore"
	"oamanager/models"
	"sort"
	"strconv"
	"strings"
)

func (s *Store) SearchUsers(ctx context.Context, query models.UserQuery) ([]models.UserRef, error) {
	q := strings.ToLower(datastore.NormalizeString(query.Q))

	s.mu.RLock()
	matched := make([]user, 0)
	for _, u := range s.users {
		if q != "" && !strings.Contains(strings.ToLower(u.Name), q) &&
			!strings.Contains(strings.ToLower(u.EmployeeID), q) {
			continue
		}
		if !datastore.MatchesDepartment(u.Department, query.Team) {
			continue
		}
		matched = append(matched, u)
	}
	s.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].Name != matched[j].Name {
			return matched[i].Name < matched[j].Name
		}
		return matched[i].ID < matched[j].ID
	})
	if len(matched) > datastore.UserSearchLimit {
		matched = matched[:datastore.UserSearchLimit]
	}

	refs := make([]models.UserRef, 0, len(matched))
	for _, u := range matched {
		numeric := strconv.FormatInt(u.ID, 10)
		refs = append(refs, models.UserRef{
			ID:         datastore.FirstNonEmpty(u.EmployeeID, numeric),
			Name:       u.Name,
			Department: datastore.ComposeDepartment(u.Department),
			EmployeeID: u.EmployeeID,
			NumericID:  numeric,
		})
	}
	return refs, nil
}

func (s *Store) SearchAssetRefs(ctx context.Context, q string) ([]models.AssetRef, error) {
	needle := strings.ToLower(datastore.NormalizeString(q))

	s.mu.RLock()
	refs := make([]models.AssetRef, 0)
	for uid, a := range s.assets {
		if needle != "" && !strings.Contains(strings.ToLower(uid), needle) {
			continue
		}
		refs = append(refs, models.AssetRef{
			UID:       uid,
			Name:      datastore.FirstNonEmpty(a.Name, models.NameUnassigned),
			AssetType: a.AssetType,
		})
	}
	s.mu.RUnlock()

	sort.Slice(refs, func(i, j int) bool { return refs[i].UID < refs[j].UID })
	if len(refs) > datastore.AssetRefSearchLimit {
		refs = refs[:datastore.AssetRefSearchLimit]
	}
	return refs, nil
}

func (s *Store) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inspected := make(map[string]bool)
	for _, ins := range s.inspections {
		if _, ok := s.assets[ins.AssetUID]; ok {
			inspected[ins.AssetUID] = true
		}
	}
	signed := make(map[string]bool)
	for _, sig := range s.signatures {
		signed[sig.AssetUID] = true
	}

	stats := models.DashboardStats{
		TotalAssets:     len(s.assets),
		InspectedAssets: len(inspected),
	}
	for uid, a := range s.assets {
		if !signed[uid] {
			stats.UnverifiedCount++
		}
		if a.Status == models.StatusDisposed {
			stats.DisposedCount++
		}
	}
	stats.InspectionRate = datastore.InspectionRate(stats.InspectedAssets, stats.TotalAssets)
	return stats, nil
}
