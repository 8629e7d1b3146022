package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"oamanager/datastore"
	"oamanager/models"
)

func assetWhere(filter models.AssetFilter) *whereBuilder {
	w := &whereBuilder{}
	if datastore.NormalizeString(filter.Q) != "" {
		w.add(`(
	LOWER(a.uid) LIKE $%[1]d OR
	LOWER(COALESCE(a.name, '')) LIKE $%[1]d OR
	LOWER(COALESCE(a.asset_type, '')) LIKE $%[1]d OR
	LOWER(COALESCE(a.model_name, '')) LIKE $%[1]d OR
	LOWER(COALESCE(a.serial_number, '')) LIKE $%[1]d OR
	LOWER(COALESCE(a.vendor, '')) LIKE $%[1]d
)`, likePattern(filter.Q))
	}
	if status := datastore.NormalizeString(filter.Status); status != "" {
		w.add(`LOWER(COALESCE(a.status, '')) = LOWER($%[1]d)`, status)
	}
	if datastore.NormalizeString(filter.Team) != "" {
		w.add(teamClause, likePattern(filter.Team))
	}
	return w
}

func (s *Store) ListAssets(ctx context.Context, filter models.AssetFilter) (models.Page[models.Asset], error) {
	p := filter.Pagination.Normalize()
	where := assetWhere(filter)
	limit, args := where.page(p.PageSize, p.Offset())

	var (
		records []assetRecord
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT %s %s %s
			ORDER BY a.updated_at DESC, a.uid COLLATE "C" ASC
			%s`, assetColumns, assetFrom, where, limit)
		if err := s.db.SelectContext(gctx, &records, query, args...); err != nil {
			return errors.Wrap(err, "failed to list assets")
		}
		return nil
	})
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT COUNT(*) %s %s`, assetFrom, where)
		if err := s.db.GetContext(gctx, &total, query, where.args...); err != nil {
			return errors.Wrap(err, "failed to count assets")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Page[models.Asset]{}, err
	}

	items := make([]models.Asset, 0, len(records))
	for _, rec := range records {
		items = append(items, datastore.BuildAsset(rec.toRow()))
	}
	return models.NewPage(items, total, p), nil
}

func (s *Store) getAssetRecord(ctx context.Context, uid string) (assetRecord, error) {
	var rec assetRecord
	query := fmt.Sprintf(`SELECT %s %s WHERE a.uid = $1 LIMIT 1`, assetColumns, assetFrom)
	err := s.db.GetContext(ctx, &rec, query, uid)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, datastore.NotFound("asset %q", uid)
	}
	if err != nil {
		return rec, errors.Wrapf(err, "failed to fetch asset %q", uid)
	}
	return rec, nil
}

func (s *Store) GetAssetDetail(ctx context.Context, uid string) (models.AssetDetail, error) {
	uid = datastore.NormalizeString(uid)
	var (
		rec     assetRecord
		history models.Page[models.Inspection]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		rec, err = s.getAssetRecord(gctx, uid)
		return err
	})
	g.Go(func() (err error) {
		history, err = s.ListInspections(gctx, models.InspectionFilter{
			AssetUID:   uid,
			Pagination: models.Pagination{PageSize: datastore.AssetHistorySize},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.AssetDetail{}, err
	}
	return models.AssetDetail{Asset: datastore.BuildAsset(rec.toRow()), History: history.Items}, nil
}

// upsertAssetQuery inserts or patches in one statement. Blank parameters
// arrive as NULL, so COALESCE keeps the stored value; metadata is merged
// key by key with jsonb ||. Owners resolve by employee id, then numeric id;
// an unknown owner leaves the stored one. xmax is 0 only for a freshly
// inserted row.
const upsertAssetQuery = `
	INSERT INTO assets (
		uid, name, asset_type, model_name, serial_number, vendor, status,
		location_text, metadata, owner_user_id, barcode_photo_url, created_at, updated_at
	) VALUES (
		$1, COALESCE($2, $12), $3, $4, $5, $6, COALESCE($7, $13),
		$8, $9::jsonb,
		COALESCE(
			(SELECT id FROM users WHERE employee_id = $10),
			(SELECT id FROM users WHERE id = $11::bigint)
		),
		$14, now(), now()
	)
	ON CONFLICT (uid) DO UPDATE SET
		name = COALESCE($2, assets.name),
		asset_type = COALESCE(EXCLUDED.asset_type, assets.asset_type),
		model_name = COALESCE(EXCLUDED.model_name, assets.model_name),
		serial_number = COALESCE(EXCLUDED.serial_number, assets.serial_number),
		vendor = COALESCE(EXCLUDED.vendor, assets.vendor),
		status = COALESCE($7, assets.status),
		location_text = COALESCE(EXCLUDED.location_text, assets.location_text),
		metadata = COALESCE(assets.metadata, '{}'::jsonb) || EXCLUDED.metadata,
		owner_user_id = COALESCE(EXCLUDED.owner_user_id, assets.owner_user_id),
		barcode_photo_url = COALESCE(EXCLUDED.barcode_photo_url, assets.barcode_photo_url),
		updated_at = now()
	RETURNING (xmax = 0) AS created`

func (s *Store) UpsertAsset(ctx context.Context, payload models.AssetPayload) (models.UpsertResult, error) {
	uid := datastore.NormalizeString(payload.UID)
	if uid == "" {
		return models.UpsertResult{}, datastore.Invalid("uid is required")
	}
	owner := datastore.NormalizeString(payload.OwnerID.String())

	var created bool
	err := s.db.GetContext(ctx, &created, upsertAssetQuery,
		uid,
		nullString(payload.Name),
		nullString(datastore.FirstNonEmpty(payload.AssetType, payload.AssetsTypes)),
		nullString(datastore.FirstNonEmpty(payload.ModelName, payload.Model)),
		nullString(datastore.FirstNonEmpty(payload.SerialNumber, payload.Serial)),
		nullString(payload.Vendor),
		nullString(payload.Status),
		nullString(payload.Location),
		payload.Metadata,
		nullString(owner),
		nullInt64(datastore.NormalizeUserID(owner)),
		models.NameUnassigned,
		models.StatusInUse,
		nullString(payload.BarcodePhotoURL),
	)
	if err != nil {
		return models.UpsertResult{}, errors.Wrapf(err, "failed to upsert asset %q", uid)
	}
	return models.UpsertResult{Asset: models.UpsertedAsset{UID: uid}, Created: created}, nil
}

func (s *Store) SoftDeleteAsset(ctx context.Context, uid string) (models.AssetStatus, error) {
	uid = datastore.NormalizeString(uid)
	var res struct {
		UID    string `db:"uid"`
		Status string `db:"status"`
	}
	err := s.db.GetContext(ctx, &res, `
		UPDATE assets SET status = $2, updated_at = now()
		WHERE uid = $1
		RETURNING uid, status`, uid, models.StatusDisposed)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AssetStatus{}, datastore.NotFound("asset %q", uid)
	}
	if err != nil {
		return models.AssetStatus{}, errors.Wrapf(err, "failed to dispose asset %q", uid)
	}
	return models.AssetStatus{UID: res.UID, Status: res.Status}, nil
}

func (s *Store) GetAllAssetUIDs(ctx context.Context) ([]string, error) {
	uids := make([]string, 0)
	if err := s.db.SelectContext(ctx, &uids, `SELECT uid FROM assets ORDER BY uid COLLATE "C"`); err != nil {
		return nil, errors.Wrap(err, "failed to list asset uids")
	}
	return uids, nil
}
