package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/pkg/errors"
	"oamanager/datastore"
	"oamanager/models"
	"strconv"
)

type userRecord struct {
	ID             int64          `db:"id"`
	EmployeeID     sql.NullString `db:"employee_id"`
	Name           string         `db:"name"`
	DepartmentHQ   sql.NullString `db:"department_hq"`
	DepartmentDept sql.NullString `db:"department_dept"`
	DepartmentTeam sql.NullString `db:"department_team"`
	DepartmentPart sql.NullString `db:"department_part"`
}

func (s *Store) SearchUsers(ctx context.Context, query models.UserQuery) ([]models.UserRef, error) {
	where := &whereBuilder{}
	if datastore.NormalizeString(query.Q) != "" {
		where.add(`(LOWER(u.name) LIKE $%[1]d OR LOWER(COALESCE(u.employee_id, '')) LIKE $%[1]d)`, likePattern(query.Q))
	}
	if datastore.NormalizeString(query.Team) != "" {
		where.add(`(
	LOWER(COALESCE(u.department_hq, '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_dept, '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_team, '')) LIKE $%[1]d OR
	LOWER(COALESCE(u.department_part, '')) LIKE $%[1]d
)`, likePattern(query.Team))
	}

	var records []userRecord
	err := s.db.SelectContext(ctx, &records, fmt.Sprintf(`
		SELECT u.id, u.employee_id, u.name, u.department_hq, u.department_dept, u.department_team, u.department_part
		FROM users u
		%s
		ORDER BY u.name COLLATE "C" ASC, u.id ASC
		LIMIT %d`, where, datastore.UserSearchLimit), where.args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}

	refs := make([]models.UserRef, 0, len(records))
	for _, rec := range records {
		numeric := strconv.FormatInt(rec.ID, 10)
		refs = append(refs, models.UserRef{
			ID:         datastore.FirstNonEmpty(rec.EmployeeID.String, numeric),
			Name:       rec.Name,
			EmployeeID: rec.EmployeeID.String,
			NumericID:  numeric,
			Department: datastore.ComposeDepartment(datastore.Department{
				HQ:   rec.DepartmentHQ.String,
				Dept: rec.DepartmentDept.String,
				Team: rec.DepartmentTeam.String,
				Part: rec.DepartmentPart.String,
			}),
		})
	}
	return refs, nil
}

func (s *Store) SearchAssetRefs(ctx context.Context, q string) ([]models.AssetRef, error) {
	where := &whereBuilder{}
	if datastore.NormalizeString(q) != "" {
		where.add(`LOWER(a.uid) LIKE $%[1]d`, likePattern(q))
	}
	var records []struct {
		UID       string         `db:"uid"`
		Name      sql.NullString `db:"name"`
		AssetType sql.NullString `db:"asset_type"`
	}
	err := s.db.SelectContext(ctx, &records, fmt.Sprintf(`
		SELECT a.uid, a.name, a.asset_type
		FROM assets a
		%s
		ORDER BY a.uid COLLATE "C" ASC
		LIMIT %d`, where, datastore.AssetRefSearchLimit), where.args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search assets")
	}
	refs := make([]models.AssetRef, 0, len(records))
	for _, rec := range records {
		refs = append(refs, models.AssetRef{
			UID:       rec.UID,
			Name:      datastore.FirstNonEmpty(rec.Name.String, models.NameUnassigned),
			AssetType: rec.AssetType.String,
		})
	}
	return refs, nil
}

func (s *Store) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	var counts struct {
		Total      int `db:"total_assets"`
		Inspected  int `db:"inspected_assets"`
		Unverified int `db:"unverified_count"`
		Disposed   int `db:"disposed_count"`
	}
	err := s.db.GetContext(ctx, &counts, `
		SELECT
			COUNT(*) AS total_assets,
			COUNT(*) FILTER (WHERE EXISTS (SELECT 1 FROM inspections i WHERE i.asset_uid = a.uid)) AS inspected_assets,
			COUNT(*) FILTER (WHERE NOT EXISTS (SELECT 1 FROM signatures s WHERE s.asset_uid = a.uid)) AS unverified_count,
			COUNT(*) FILTER (WHERE a.status = $1) AS disposed_count
		FROM assets a`, models.StatusDisposed)
	if err != nil {
		return models.DashboardStats{}, errors.Wrap(err, "failed to compute dashboard stats")
	}
	return models.DashboardStats{
		TotalAssets:     counts.Total,
		InspectedAssets: counts.Inspected,
		InspectionRate:  datastore.InspectionRate(counts.Inspected, counts.Total),
		UnverifiedCount: counts.Unverified,
		DisposedCount:   counts.Disposed,
	}, nil
}
