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

const verificationColumns = assetColumns + `,
	sig.signature_id,
	sig.signature_user_id,
	sig.signature_user_name,
	sig.signature_storage_location,
	sig.signature_sha256,
	sig.signature_captured_at,
	latest.latest_scanned_at,
	latest.latest_status`

const verificationFrom = assetFrom + `
	LEFT JOIN LATERAL (
		SELECT s.id AS signature_id,
			s.user_id AS signature_user_id,
			s.user_name AS signature_user_name,
			s.storage_location AS signature_storage_location,
			s.sha256 AS signature_sha256,
			s.captured_at AS signature_captured_at
		FROM signatures s
		WHERE s.asset_uid = a.uid
		ORDER BY s.captured_at DESC, s.id COLLATE "C" DESC
		LIMIT 1
	) sig ON true
	LEFT JOIN LATERAL (
		SELECT i.scanned_at AS latest_scanned_at,
			i.status AS latest_status
		FROM inspections i
		WHERE i.asset_uid = a.uid
		ORDER BY i.scanned_at DESC, i.id COLLATE "C" ASC
		LIMIT 1
	) latest ON true`

func (s *Store) ListVerifications(ctx context.Context, filter models.VerificationFilter) (models.Page[models.VerificationSummary], error) {
	p := filter.Pagination.Normalize()
	where := &whereBuilder{}
	if datastore.NormalizeString(filter.AssetUID) != "" {
		where.add(`LOWER(a.uid) LIKE $%[1]d`, likePattern(filter.AssetUID))
	}
	if datastore.NormalizeString(filter.Team) != "" {
		where.add(teamClause, likePattern(filter.Team))
	}
	limit, args := where.page(p.PageSize, p.Offset())

	var (
		records []verificationRecord
		total   int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT %s %s %s
			ORDER BY a.uid COLLATE "C" ASC
			%s`, verificationColumns, verificationFrom, where, limit)
		if err := s.db.SelectContext(gctx, &records, query, args...); err != nil {
			return errors.Wrap(err, "failed to list verifications")
		}
		return nil
	})
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT COUNT(*) %s %s`, assetFrom, where)
		if err := s.db.GetContext(gctx, &total, query, where.args...); err != nil {
			return errors.Wrap(err, "failed to count verifications")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return models.Page[models.VerificationSummary]{}, err
	}

	items := make([]models.VerificationSummary, 0, len(records))
	for _, rec := range records {
		items = append(items, datastore.BuildVerificationSummary(rec.toRow(), rec.signature(), rec.latest()))
	}
	return models.NewPage(items, total, p), nil
}

func (s *Store) GetVerificationDetail(ctx context.Context, assetUID string) (models.VerificationDetail, error) {
	assetUID = datastore.NormalizeString(assetUID)
	var (
		rec     verificationRecord
		history models.Page[models.Inspection]
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		query := fmt.Sprintf(`SELECT %s %s WHERE a.uid = $1 LIMIT 1`, verificationColumns, verificationFrom)
		err := s.db.GetContext(gctx, &rec, query, assetUID)
		if errors.Is(err, sql.ErrNoRows) {
			return datastore.NotFound("asset %q", assetUID)
		}
		if err != nil {
			return errors.Wrapf(err, "failed to fetch verification for %q", assetUID)
		}
		return nil
	})
	g.Go(func() (err error) {
		history, err = s.ListInspections(gctx, models.InspectionFilter{
			AssetUID:   assetUID,
			Pagination: models.Pagination{PageSize: datastore.VerificationHistorySize},
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return models.VerificationDetail{}, err
	}
	return datastore.BuildVerificationDetail(rec.toRow(), rec.signature(), rec.latest(), history.Items), nil
}
