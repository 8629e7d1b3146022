package memory

import (
	"context"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"oamanager/datastore"
	"oamanager/models"
	"sort"
)

// latestSignature is called with s.mu held. The newest capture wins; equal
// capture times prefer the larger id.
func (s *Store) latestSignature(assetUID string) *models.SignatureMeta {
	var latest *models.SignatureMeta
	for i := range s.signatures {
		sig := &s.signatures[i]
		if sig.AssetUID != assetUID {
			continue
		}
		if latest == nil || sig.CapturedAt.After(latest.CapturedAt) ||
			(sig.CapturedAt.Equal(latest.CapturedAt) && sig.SignatureID > latest.SignatureID) {
			latest = sig
		}
	}
	if latest == nil {
		return nil
	}
	found := *latest
	return &found
}

func (s *Store) RecordSignature(ctx context.Context, assetUID string, input models.SignatureInput) (models.SignatureMeta, error) {
	assetUID = datastore.NormalizeString(assetUID)
	fileName := datastore.NormalizeString(input.FileName)
	if assetUID == "" {
		return models.SignatureMeta{}, datastore.Invalid("assetUid is required")
	}
	if fileName == "" {
		return models.SignatureMeta{}, datastore.Invalid("fileName is required")
	}

	s.mu.RLock()
	_, ok := s.assets[assetUID]
	s.mu.RUnlock()
	if !ok {
		return models.SignatureMeta{}, datastore.NotFound("asset %q", assetUID)
	}

	hash, err := datastore.ContentHash(ctx, s.blobs, fileName)
	if err != nil {
		return models.SignatureMeta{}, err
	}

	sig := models.SignatureMeta{
		SignatureID:     uuid.NewString(),
		AssetUID:        assetUID,
		StorageLocation: fileName,
		SHA256:          hash,
		UserID:          datastore.FormatUserID(datastore.NormalizeUserID(input.UserID)),
		UserName:        datastore.NormalizeString(input.UserName),
	}

	s.mu.Lock()
	sig.CapturedAt = s.now()
	if input.StoredAt != nil {
		sig.CapturedAt = datastore.CanonicalTime(*input.StoredAt)
	}
	s.signatures = append(s.signatures, sig)
	s.version++
	s.mu.Unlock()
	return sig, nil
}

func (s *Store) FindSignatureByID(ctx context.Context, signatureID string) (*models.SignatureMeta, error) {
	signatureID = datastore.NormalizeString(signatureID)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sig := range s.signatures {
		if sig.SignatureID == signatureID {
			found := sig
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Store) GetSignatureFilePath(ctx context.Context, assetUID string) (string, error) {
	assetUID = datastore.NormalizeString(assetUID)
	s.mu.RLock()
	sig := s.latestSignature(assetUID)
	s.mu.RUnlock()
	if sig == nil {
		return "", datastore.NotFound("no signature for asset %q", assetUID)
	}
	return sig.StorageLocation, nil
}

func (s *Store) BatchAssignSignature(ctx context.Context, assetUIDs []string, signatureID string) ([]string, error) {
	signatureID = datastore.NormalizeString(signatureID)
	if signatureID == "" {
		return nil, datastore.Invalid("signatureId is required")
	}
	source, err := s.FindSignatureByID(ctx, signatureID)
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, datastore.NotFound("signature %q", signatureID)
	}

	applied := make([]string, 0, len(assetUIDs))
	s.mu.Lock()
	now := s.now()
	for _, raw := range assetUIDs {
		uid := datastore.NormalizeString(raw)
		if uid == "" {
			datastore.BatchAssignSkipped.WithLabelValues("blank").Inc()
			continue
		}
		if _, ok := s.assets[uid]; !ok {
			datastore.BatchAssignSkipped.WithLabelValues("unknown_asset").Inc()
			s.logger.Debug("batch signature target skipped", zap.String("assetUid", uid))
			continue
		}
		clone := *source
		clone.SignatureID = uuid.NewString()
		clone.AssetUID = uid
		clone.CapturedAt = now
		s.signatures = append(s.signatures, clone)
		applied = append(applied, uid)
	}
	s.version++
	s.mu.Unlock()
	return applied, nil
}

type signatureAssignments map[string]string

// PersistSignatures mirrors every signature row and the current signature of
// each asset to disk.
func (s *Store) PersistSignatures(ctx context.Context) error {
	if s.dir == "" {
		return nil
	}
	s.mu.RLock()
	rows := make([]models.SignatureMeta, len(s.signatures))
	copy(rows, s.signatures)
	assignments := make(signatureAssignments)
	for _, sig := range rows {
		if _, done := assignments[sig.AssetUID]; done {
			continue
		}
		if current := s.latestSignature(sig.AssetUID); current != nil {
			assignments[sig.AssetUID] = current.SignatureID
		}
	}
	version := s.version
	s.mu.RUnlock()

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].CapturedAt.Before(rows[j].CapturedAt) })
	if err := s.writeFile(signaturesFile, version, rows); err != nil {
		return err
	}
	return s.writeFile(assignmentsFile, version, assignments)
}
