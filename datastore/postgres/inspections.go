package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"oamanager/datastore"
	"oamanager/models"
	"strings"
)

func inspectionWhere(filter models.InspectionFilter) *whereBuilder {
	w := &whereBuilder{}
	if uid := datastore.NormalizeString(filter.AssetUID); uid != "" {
		w.add(`LOWER(i.asset_uid) = $%[1]d`, strings.ToLower(uid))
	}
	if filter.Synced != nil {
		w.add(`i.synced = $%[1]d`, *filter.Synced)
	}
	if filter.From != nil {
		w.add(`i.scanned_at >= $%[1]d`, *filter.From)
	}
	if filter.To != nil {
		w.add(`i.scanned_at <= $%[1]d`, *filter.To)
	}
	return w
}

func (s *Store) ListInspections(ctx context.Context, filter models.InspectionFilter) (models.Page[models.Inspection], error) {
	p := filter.Pagination.Normalize()
	where := inspectionWhere(filter)
	limit, args := where.page(p.PageSize, p.Offset())

	var (
		records []inspectionRecord
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT %s FROM inspections i %s
			ORDER BY i.scanned_at DESC, i.id COLLATE "C" ASC
			%s`, inspectionColumns, where, limit)
		if err := s.db.SelectContext(gctx, &records, query, args...); err != nil {
			return errors.Wrap(err, "failed to list inspections")
		}
		return nil
	})
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT COUNT(*) FROM inspections i %s`, where)
		if err := s.db.GetContext(gctx, &total, query, where.args...); err != nil {
			return errors.Wrap(err, "failed to count inspections")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Page[models.Inspection]{}, err
	}

	items := make([]models.Inspection, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toModel())
	}
	return models.NewPage(items, total, p), nil
}

func (s *Store) CreateInspection(ctx context.Context, payload models.InspectionPayload) (models.Inspection, error) {
	assetUID := datastore.FirstNonEmpty(payload.AssetUID, payload.AssetCode)
	if assetUID == "" {
		return models.Inspection{}, datastore.Invalid("assetUid is required")
	}
	now := s.now()
	id := datastore.FirstNonEmpty(payload.ID, datastore.DefaultInspectionID(assetUID, now))
	scannedAt := now
	if t := datastore.ParseTimestamp(payload.ScannedAt.String()); t != nil {
		scannedAt = *t
	}
	synced := datastore.ParseBoolean(payload.Synced.String())
	verified := datastore.ParseBoolean(payload.IsVerified.String())

	var rec inspectionRecord
	err := s.db.GetContext(ctx, &rec, `
		INSERT INTO inspections (
			id, asset_uid, status, memo, scanned_at, synced, user_team,
			user_id, asset_type, verified, barcode_photo_url, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now(), now()
		)
		RETURNING`+inspectionColumns,
		id,
		assetUID,
		datastore.FirstNonEmpty(payload.Status, models.StatusInUse),
		nullString(payload.Memo),
		scannedAt,
		synced != nil && *synced,
		nullString(payload.UserTeam),
		nullInt64(datastore.NormalizeUserID(payload.UserID.String())),
		nullString(payload.AssetType),
		verified != nil && *verified,
		nullString(payload.BarcodePhotoURL),
	)
	if isUniqueViolation(err) {
		return models.Inspection{}, datastore.Invalid("inspection %q already exists", id)
	}
	if err != nil {
		return models.Inspection{}, errors.Wrap(err, "failed to create inspection")
	}
	return rec.toModel(), nil
}

// The memo is only touched when $3 is true; $4 NULL then clears it.
const updateInspectionQuery = `
	UPDATE inspections SET
		status = COALESCE($2, status),
		memo = CASE WHEN $3::boolean THEN $4::text ELSE memo END,
		scanned_at = COALESCE($5, scanned_at),
		synced = COALESCE($6, synced),
		user_team = COALESCE($7, user_team),
		user_id = COALESCE($8, user_id),
		asset_type = COALESCE($9, asset_type),
		verified = COALESCE($10, verified),
		barcode_photo_url = COALESCE($11, barcode_photo_url),
		updated_at = now()
	WHERE id = $1
	RETURNING` + inspectionColumns

func (s *Store) UpdateInspection(ctx context.Context, id string, patch models.InspectionPatch) (models.Inspection, error) {
	id = datastore.NormalizeString(id)
	memo := nullString(patch.Memo.Value)
	touchMemo := patch.Memo.Set && (patch.Memo.Null || memo.Valid)
	if patch.Memo.Null {
		memo = sql.NullString{}
	}

	var rec inspectionRecord
	err := s.db.GetContext(ctx, &rec, updateInspectionQuery,
		id,
		nullString(patch.Status),
		touchMemo,
		memo,
		nullTime(datastore.ParseTimestamp(patch.ScannedAt.String())),
		nullBool(datastore.ParseBoolean(patch.Synced.String())),
		nullString(patch.UserTeam),
		nullInt64(datastore.NormalizeUserID(patch.UserID.String())),
		nullString(patch.AssetType),
		nullBool(datastore.ParseBoolean(patch.IsVerified.String())),
		nullString(patch.BarcodePhotoURL),
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Inspection{}, datastore.NotFound("inspection %q", id)
	}
	if err != nil {
		return models.Inspection{}, errors.Wrapf(err, "failed to update inspection %q", id)
	}
	return rec.toModel(), nil
}

func (s *Store) DeleteInspection(ctx context.Context, id string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM inspections WHERE id = $1`, datastore.NormalizeString(id))
	if err != nil {
		return false, errors.Wrapf(err, "failed to delete inspection %q", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, errors.Wrap(err, "failed to read affected rows")
	}
	return n > 0, nil
}

func (s *Store) LatestInspectionByAsset(ctx context.Context, assetUID string) (*models.Inspection, error) {
	var rec inspectionRecord
	err := s.db.GetContext(ctx, &rec, `SELECT`+inspectionColumns+`
		FROM inspections
		WHERE asset_uid = $1
		ORDER BY scanned_at DESC, id COLLATE "C" ASC
		LIMIT 1`, assetUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch latest inspection for %q", assetUID)
	}
	ins := rec.toModel()
	return &ins, nil
}
