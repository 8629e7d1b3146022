package postgres

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
)

func (s *Store) RecordSignature(ctx context.Context, assetUID string, input models.SignatureInput) (models.SignatureMeta, error) {
	assetUID = datastore.NormalizeString(assetUID)
	fileName := datastore.NormalizeString(input.FileName)
	if assetUID == "" {
		return models.SignatureMeta{}, datastore.Invalid("assetUid is required")
	}
	if fileName == "" {
		return models.SignatureMeta{}, datastore.Invalid("fileName is required")
	}

	var exists bool
	if err := s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM assets WHERE uid = $1)`, assetUID); err != nil {
		return models.SignatureMeta{}, errors.Wrapf(err, "failed to check asset %q", assetUID)
	}
	if !exists {
		return models.SignatureMeta{}, datastore.NotFound("asset %q", assetUID)
	}

	hash, err := datastore.ContentHash(ctx, s.blobs, fileName)
	if err != nil {
		return models.SignatureMeta{}, err
	}
	capturedAt := s.now()
	if input.StoredAt != nil {
		capturedAt = datastore.CanonicalTime(*input.StoredAt)
	}

	var rec signatureRecord
	err = s.db.GetContext(ctx, &rec, `
		INSERT INTO signatures (id, asset_uid, user_id, user_name, storage_location, sha256, captured_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING`+signatureColumns,
		uuid.NewString(),
		assetUID,
		nullInt64(datastore.NormalizeUserID(input.UserID)),
		nullString(input.UserName),
		fileName,
		hash,
		capturedAt,
	)
	if err != nil {
		return models.SignatureMeta{}, errors.Wrapf(err, "failed to record signature for %q", assetUID)
	}
	return rec.toModel(), nil
}

func (s *Store) FindSignatureByID(ctx context.Context, signatureID string) (*models.SignatureMeta, error) {
	var rec signatureRecord
	err := s.db.GetContext(ctx, &rec, `SELECT`+signatureColumns+`
		FROM signatures
		WHERE id = $1`, datastore.NormalizeString(signatureID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch signature %q", signatureID)
	}
	meta := rec.toModel()
	return &meta, nil
}

func (s *Store) GetSignatureFilePath(ctx context.Context, assetUID string) (string, error) {
	assetUID = datastore.NormalizeString(assetUID)
	var location string
	err := s.db.GetContext(ctx, &location, `
		SELECT storage_location
		FROM signatures
		WHERE asset_uid = $1
		ORDER BY captured_at DESC, id COLLATE "C" DESC
		LIMIT 1`, assetUID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", datastore.NotFound("no signature for asset %q", assetUID)
	}
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve signature for %q", assetUID)
	}
	return location, nil
}

// cloneSignatureQuery copies the source pointer and hash onto a target asset.
// No row comes back when the target asset does not exist.
const cloneSignatureQuery = `
	INSERT INTO signatures (id, asset_uid, user_id, user_name, storage_location, sha256, captured_at)
	SELECT $1, a.uid, $3, $4, $5, $6, now()
	FROM assets a
	WHERE a.uid = $2
	RETURNING asset_uid`

func (s *Store) BatchAssignSignature(ctx context.Context, assetUIDs []string, signatureID string) ([]string, error) {
	signatureID = datastore.NormalizeString(signatureID)
	if signatureID == "" {
		return nil, datastore.Invalid("signatureId is required")
	}
	var source signatureRecord
	err := s.db.GetContext(ctx, &source, `SELECT`+signatureColumns+`
		FROM signatures
		WHERE id = $1`, signatureID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, datastore.NotFound("signature %q", signatureID)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch signature %q", signatureID)
	}

	applied := make([]string, 0, len(assetUIDs))
	for _, raw := range assetUIDs {
		uid := datastore.NormalizeString(raw)
		if uid == "" {
			datastore.BatchAssignSkipped.WithLabelValues("blank").Inc()
			continue
		}
		var target string
		err := s.db.GetContext(ctx, &target, cloneSignatureQuery,
			uuid.NewString(), uid, source.UserID, source.UserName, source.StorageLocation, source.SHA256)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			datastore.BatchAssignSkipped.WithLabelValues("unknown_asset").Inc()
			s.logger.Debug("batch signature target skipped", zap.String("assetUid", uid))
		case err != nil:
			datastore.BatchAssignSkipped.WithLabelValues("error").Inc()
			s.logger.Error("failed to assign signature",
				zap.String("assetUid", uid),
				zap.String("signatureId", signatureID),
				zap.Error(err))
		default:
			applied = append(applied, target)
		}
	}
	return applied, nil
}
